package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValidHHMM пустое окно считается открытым
func ValidHHMM(value string) bool {
	if value == "" {
		return true
	}
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	return hours >= 0 && hours <= 23 && minutes >= 0 && minutes <= 59
}

func hhmmToMinutes(value string) int {
	if value == "" || !ValidHHMM(value) {
		return -1
	}
	parts := strings.Split(value, ":")
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours*60 + minutes
}

func (d Dish) inTimeWindow(now time.Time) bool {
	nowMinutes := now.Hour()*60 + now.Minute()
	if from := hhmmToMinutes(d.AvailableFrom); from >= 0 && nowMinutes < from {
		return false
	}
	if until := hhmmToMinutes(d.AvailableUntil); until >= 0 && nowMinutes > until {
		return false
	}
	return true
}

// Availability вычисляет доступность блюда и подпись для витрины
func Availability(d Dish, now time.Time) (bool, string) {
	inWindow := d.inTimeWindow(now)
	switch {
	case d.PortionsAvailable <= 0:
		return false, "Закончилось"
	case d.Disabled:
		return false, "Временно недоступно"
	case !inWindow:
		return false, "Вне времени приема"
	case d.AvailableUntil != "":
		return true, fmt.Sprintf("В наличии · до %s · %d порц.", d.AvailableUntil, d.PortionsAvailable)
	default:
		return true, fmt.Sprintf("В наличии · %d порц.", d.PortionsAvailable)
	}
}

// Orderable можно ли блюдо заказывать сейчас; остаток порций
// проверяется отдельно, чтобы нехватка не маскировалась недоступностью
func Orderable(d Dish, now time.Time) bool {
	return !d.Disabled && d.inTimeWindow(now)
}

// NewDishView снимок блюда с доступностью на момент now
func NewDishView(d Dish, now time.Time) DishView {
	available, label := Availability(d, now)
	return DishView{Dish: d, IsAvailable: available, AvailabilityLabel: label}
}
