package domain

import "time"

// Customer is referenced by reservations and rentals through its ID.
type Customer struct {
	ID             string    `json:"id"`
	LastName       string    `json:"last_name" validate:"required,max=100"`
	FirstName      string    `json:"first_name" validate:"required,max=100"`
	DocumentNumber string    `json:"document_number" validate:"required,numeric,min=6,max=12"`
	Phone          string    `json:"phone" validate:"omitempty,e164"`
	Email          string    `json:"email" validate:"required,email"`
	CreatedOn      time.Time `json:"created_on"`
}

func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
