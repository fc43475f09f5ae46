package dto

type ClientRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	CPF     string `json:"cpf"`
	Address string `json:"address"`
}

type ClientResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	CPF       string `json:"cpf,omitempty"`
	Address   string `json:"address,omitempty"`
	CreatedAt string `json:"created_at"`
}

type ClientListResponse struct {
	Clients    []ClientResponse `json:"clients"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	Total      int              `json:"total"`
}

// VehicleRequest registers or edits a vehicle of ClientID. The license plate
// is stored upper case.
type VehicleRequest struct {
	ClientID     string `json:"client_id" validate:"required,uuid"`
	Brand        string `json:"brand"`
	Model        string `json:"model" validate:"required"`
	LicensePlate string `json:"license_plate"`
	Year         string `json:"year"`
	Color        string `json:"color"`
	Chassis      string `json:"chassis"`
}

type VehicleResponse struct {
	ID           string `json:"id"`
	ClientID     string `json:"client_id"`
	ClientName   string `json:"client_name,omitempty"`
	Brand        string `json:"brand,omitempty"`
	Model        string `json:"model"`
	LicensePlate string `json:"license_plate,omitempty"`
	Year         string `json:"year,omitempty"`
	Color        string `json:"color,omitempty"`
	Chassis      string `json:"chassis,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// VehicleQuery filters the vehicle listing. Empty fields are ignored.
type VehicleQuery struct {
	Model        string
	LicensePlate string
	ClientID     string
	Page         int
}

type VehicleListResponse struct {
	Vehicles   []VehicleResponse `json:"vehicles"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	Total      int               `json:"total"`
}
