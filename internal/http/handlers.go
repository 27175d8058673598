package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"domeda/internal/domain"
	"domeda/internal/repository"
	"domeda/internal/service"
	"domeda/pkg/metrics"
)

type Server struct {
	engine  *gin.Engine
	catalog *service.CatalogService
	orders  *service.OrderService
	log     *slog.Logger
	metrics *metrics.Metrics
}

func NewServer(catalog *service.CatalogService, orders *service.OrderService, log *slog.Logger, m *metrics.Metrics) *Server {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(log), Instrument(m))
	s := &Server{engine: r, catalog: catalog, orders: orders, log: log, metrics: m}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/health", s.health)

		dishes := v1.Group("/dishes")
		dishes.GET("", s.listDishes)
		dishes.GET(":id", s.getDish)

		v1.GET("/cart/preview", s.cartPreview)
		v1.POST("/checkout", s.checkout)

		orders := v1.Group("/orders")
		orders.GET("", s.listOrders)
		orders.GET(":id", s.getOrder)
		orders.POST(":id/status", s.updateOrderStatus)

		v1.GET("/payments", s.listPayments)
	}
}

// @Summary Health check
// @Tags service
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "domeda-api",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// @Summary List dishes
// @Tags catalog
// @Produce json
// @Param district query string false "District"
// @Param cook_id query int false "Cook ID"
// @Param search query string false "Search in title, cook, district"
// @Param delivery query string false "Comma-separated delivery modes"
// @Param categories query string false "Comma-separated tags"
// @Param ids query string false "Comma-separated dish IDs"
// @Param max_price query int false "Max price"
// @Param min_rating query number false "Min rating"
// @Param available_only query string false "1 to hide unavailable"
// @Param sort query string false "rating, price-asc, price-desc"
// @Success 200 {object} map[string]any
// @Router /dishes [get]
func (s *Server) listDishes(c *gin.Context) {
	f := repository.DishFilter{
		District: queryOrDefault(c, "district", ""),
		Search:   c.Query("search"),
	}
	if f.District == "all" {
		f.District = ""
	}
	if v := c.Query("cook_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.CookID = id
		}
	}
	if v := c.Query("max_price"); v != "" {
		if x, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.MaxPrice = x
		}
	}
	if v := c.Query("min_rating"); v != "" {
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinRating = x
		}
	}
	for _, raw := range splitCSV(c.Query("delivery")) {
		if mode, ok := domain.ParseDeliveryMode(raw); ok {
			f.Delivery = append(f.Delivery, mode)
		}
	}
	f.Tags = splitCSV(c.Query("categories"))
	f.IDs = parseIDList(c.Query("ids"))

	sortKey := queryOrDefault(c, "sort", service.SortRating)
	availableOnly := c.Query("available_only") == "1"

	items, err := s.catalog.ListDishes(c, f, sortKey, availableOnly)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// @Summary Get dish by id
// @Tags catalog
// @Produce json
// @Param id path int true "Dish ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /dishes/{id} [get]
func (s *Server) getDish(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dish_id_invalid"})
		return
	}
	dish, err := s.catalog.GetDish(c, id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dish": dish})
}

// @Summary Cart preview
// @Tags cart
// @Produce json
// @Param ids query string true "Comma-separated dish IDs"
// @Success 200 {object} map[string]any
// @Router /cart/preview [get]
func (s *Server) cartPreview(c *gin.Context) {
	items, err := s.catalog.CartPreview(c, parseIDList(c.Query("ids")))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// @Summary Checkout
// @Tags orders
// @Accept json
// @Produce json
// @Param input body service.CheckoutRequest true "Cart and payment"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /checkout [post]
func (s *Server) checkout(c *gin.Context) {
	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	order, payment, err := s.orders.Checkout(c, req)
	if err != nil {
		s.metrics.CheckoutFailures.WithLabelValues(errorCode(err)).Inc()
		s.writeError(c, err)
		return
	}
	s.metrics.OrdersCreated.Inc()
	c.JSON(http.StatusCreated, gin.H{"order": order.View(), "payment": payment})
}

// @Summary List orders
// @Tags orders
// @Produce json
// @Param role query string false "customer or cook"
// @Param customer_phone query string false "Phone filter (customer role)"
// @Param customer_name query string false "Name filter (customer role)"
// @Param cook_id query int false "Cook filter (cook role)"
// @Param status query string false "Status filter"
// @Param order_id query string false "Exact order ID"
// @Success 200 {object} map[string]any
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	f := repository.OrderFilter{OrderID: c.Query("order_id")}

	switch c.Query("role") {
	case "cook":
		if v := c.Query("cook_id"); v != "" {
			if id, err := strconv.ParseInt(v, 10, 64); err == nil {
				f.CookID = id
			}
		}
	case "customer":
		f.CustomerPhone = c.Query("customer_phone")
		f.CustomerName = c.Query("customer_name")
	}

	if raw := strings.ToLower(c.Query("status")); raw != "" && raw != "all" {
		status, ok := domain.ParseStatus(raw)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"items": []domain.OrderView{}, "total": 0})
			return
		}
		f.Status = status
	}

	orders, err := s.orders.ListOrders(c, f)
	if err != nil {
		s.writeError(c, err)
		return
	}
	views := make([]domain.OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, o.View())
	}
	c.JSON(http.StatusOK, gin.H{"items": views, "total": len(views)})
}

// @Summary Get order by id
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	order, err := s.orders.GetOrder(c, c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order.View()})
}

type updateStatusReq struct {
	Status string `json:"status"`
	Actor  string `json:"actor"`
	Note   string `json:"note"`
}

// @Summary Update order status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param input body updateStatusReq true "Target status"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/status [post]
func (s *Server) updateOrderStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	order, err := s.orders.UpdateStatus(c, c.Param("id"), req.Status, req.Actor, req.Note)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.metrics.StatusTransitions.WithLabelValues(string(order.Status)).Inc()
	c.JSON(http.StatusOK, gin.H{"order": order.View()})
}

// @Summary List payments
// @Tags payments
// @Produce json
// @Success 200 {object} map[string]any
// @Router /payments [get]
func (s *Server) listPayments(c *gin.Context) {
	items, err := s.orders.ListPayments(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// writeError отдаёт машинный код ошибки как есть; категория задаёт статус
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch domain.KindOf(err) {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindConflict, domain.KindState:
		status = http.StatusConflict
	case domain.KindNotFound:
		status = http.StatusNotFound
	default:
		s.log.Error("internal error",
			"request_id", c.GetString("request_id"), "error", err)
	}
	c.JSON(status, gin.H{"error": errorCode(err)})
}

func errorCode(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func queryOrDefault(c *gin.Context, name, fallback string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return fallback
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseIDList(raw string) []int64 {
	var out []int64
	for _, part := range splitCSV(raw) {
		if id, err := strconv.ParseInt(part, 10, 64); err == nil && id > 0 {
			out = append(out, id)
		}
	}
	return out
}
