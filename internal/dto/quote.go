package dto

import "oficina-api/pkg/money"

// ServiceRequest is a quote line item. ID is only read when editing: set it
// to change an existing service, leave it empty to add one.
type ServiceRequest struct {
	ID    string       `json:"id,omitempty"`
	Name  string       `json:"name" validate:"required"`
	Price money.Amount `json:"price" validate:"gte=0"`
}

// CreateQuoteRequest carries prices in reais, as numbers or strings like
// "R$ 1.234,56". A zero TotalPrice is replaced by the sum of the service
// prices.
type CreateQuoteRequest struct {
	ClientName          string           `json:"client_name" validate:"required"`
	ClientPhone         string           `json:"client_phone"`
	ClientCPF           string           `json:"client_cpf"`
	ClientAddress       string           `json:"client_address"`
	VehicleBrand        string           `json:"vehicle_brand"`
	VehicleModel        string           `json:"vehicle_model"`
	VehicleYear         string           `json:"vehicle_year"`
	VehicleColor        string           `json:"vehicle_color"`
	VehicleChassi       string           `json:"vehicle_chassi"`
	VehicleLicensePlate string           `json:"vehicle_license_plate"`
	TotalPrice          money.Amount     `json:"total_price"`
	Observations        string           `json:"observations"`
	Services            []ServiceRequest `json:"services"`
}

// EditQuoteRequest replaces the quote fields, upserts Services and removes
// ServicesToDelete. The total is recomputed from the stored services, so
// TotalPrice is ignored.
type EditQuoteRequest struct {
	CreateQuoteRequest
	ServicesToDelete []string `json:"services_to_delete"`
}

type ServiceResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type QuoteResponse struct {
	ID                  string            `json:"id"`
	ClientName          string            `json:"client_name"`
	ClientPhone         string            `json:"client_phone,omitempty"`
	ClientCPF           string            `json:"client_cpf,omitempty"`
	ClientAddress       string            `json:"client_address,omitempty"`
	VehicleBrand        string            `json:"vehicle_brand,omitempty"`
	VehicleModel        string            `json:"vehicle_model,omitempty"`
	VehicleYear         string            `json:"vehicle_year,omitempty"`
	VehicleColor        string            `json:"vehicle_color,omitempty"`
	VehicleChassi       string            `json:"vehicle_chassi,omitempty"`
	VehicleLicensePlate string            `json:"vehicle_license_plate,omitempty"`
	TotalPrice          float64           `json:"total_price"`
	TotalPriceFormatted string            `json:"total_price_formatted"`
	Observations        string            `json:"observations,omitempty"`
	CreatedAt           string            `json:"created_at"`
	Services            []ServiceResponse `json:"services"`
}

type QuoteListResponse struct {
	Quotes     []QuoteResponse `json:"quotes"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	Total      int             `json:"total"`
}
