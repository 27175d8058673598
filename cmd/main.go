package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"domeda/internal/domain"
	httpapi "domeda/internal/http"
	"domeda/internal/repository"
	"domeda/internal/service"
	"domeda/pkg/config"
	"domeda/pkg/logging"
	"domeda/pkg/metrics"

	_ "domeda/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	store := repository.NewMemoryStore()
	ordersRepo := repository.NewMemoryOrders(store)
	paymentsRepo := repository.NewMemoryPayments(store)
	tx := repository.NewMemoryTx(store)

	seedCatalog(store)

	ledger := service.NewInventoryLedger(store)
	cards := service.NewCardValidator()
	catalogSvc := service.NewCatalogService(store, logging.WithComponent(logger, "catalog"))
	ordersSvc := service.NewOrderService(store, ordersRepo, paymentsRepo, ledger, cards, tx,
		logging.WithComponent(logger, "orders"))

	m := metrics.New("api")
	srv := httpapi.NewServer(catalogSvc, ordersSvc, logging.WithComponent(logger, "http"), m)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// seedCatalog стартовые блюда, пока у поваров нет своего кабинета
func seedCatalog(store *repository.MemoryStore) {
	ctx := context.Background()
	dishes := []domain.Dish{
		{
			CookID: 1, Title: "Борщ с говядиной", Cook: "Мария К.", District: "Арбат",
			Price: 390, Rating: 4.8, Tags: []string{"hot", "soup"},
			Delivery:          []domain.DeliveryMode{domain.DeliveryPickup, domain.DeliveryCourier},
			PortionsAvailable: 8, AvailableFrom: "11:00", AvailableUntil: "21:00",
		},
		{
			CookID: 1, Title: "Сырники со сметаной", Cook: "Мария К.", District: "Арбат",
			Price: 260, Rating: 4.9, Tags: []string{"breakfast"},
			Delivery:          []domain.DeliveryMode{domain.DeliveryPickup, domain.DeliveryCook, domain.DeliveryCourier},
			PortionsAvailable: 12,
		},
		{
			CookID: 2, Title: "Плов узбекский", Cook: "Тимур А.", District: "Сокольники",
			Price: 450, Rating: 4.7, Tags: []string{"hot"},
			Delivery:          []domain.DeliveryMode{domain.DeliveryPickup, domain.DeliveryCourier},
			PortionsAvailable: 6, AvailableFrom: "12:00", AvailableUntil: "20:00",
		},
		{
			CookID: 3, Title: "Хинкали (10 шт)", Cook: "Нино Г.", District: "Таганка",
			Price: 520, Rating: 4.6, Tags: []string{"hot"},
			Delivery:          []domain.DeliveryMode{domain.DeliveryPickup},
			PortionsAvailable: 5,
		},
	}
	for i := range dishes {
		_ = store.Create(ctx, &dishes[i])
	}
}
