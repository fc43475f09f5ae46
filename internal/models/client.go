package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is a registered shop customer.
type Client struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Phone     string    `db:"phone"`
	CPF       string    `db:"cpf"`
	Address   string    `db:"address"`
	CreatedAt time.Time `db:"created_at"`
}

// Vehicle belongs to a client. LicensePlate is stored upper case.
type Vehicle struct {
	ID           uuid.UUID `db:"id"`
	ClientID     uuid.UUID `db:"client_id"`
	ClientName   string    `db:"client_name"`
	Brand        string    `db:"brand"`
	Model        string    `db:"model"`
	LicensePlate string    `db:"license_plate"`
	Year         string    `db:"year"`
	Color        string    `db:"color"`
	Chassis      string    `db:"chassis"`
	CreatedAt    time.Time `db:"created_at"`
}
