package models

import (
	"time"

	"github.com/google/uuid"
)

// Quote is a customer estimate. Prices are in cents.
type Quote struct {
	ID                  uuid.UUID `db:"id"`
	ClientName          string    `db:"client_name"`
	ClientPhone         string    `db:"client_phone"`
	ClientCPF           string    `db:"client_cpf"`
	ClientAddress       string    `db:"client_address"`
	VehicleBrand        string    `db:"vehicle_brand"`
	VehicleModel        string    `db:"vehicle_model"`
	VehicleYear         string    `db:"vehicle_year"`
	VehicleColor        string    `db:"vehicle_color"`
	VehicleChassi       string    `db:"vehicle_chassi"`
	VehicleLicensePlate string    `db:"vehicle_license_plate"`
	TotalPrice          int64     `db:"total_price"`
	Observations        string    `db:"observations"`
	CreatedAt           time.Time `db:"created_at"`
	Services            []Service
}

// ServicesTotal sums the line item prices.
func (q *Quote) ServicesTotal() int64 {
	var total int64
	for _, s := range q.Services {
		total += s.Price
	}
	return total
}

// Service is a quote line item.
type Service struct {
	ID      uuid.UUID `db:"id"`
	QuoteID uuid.UUID `db:"quote_id"`
	Name    string    `db:"name"`
	Price   int64     `db:"price"`
}
