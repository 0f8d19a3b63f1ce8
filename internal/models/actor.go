package models

import "github.com/google/uuid"

// Actor is the authenticated admin performing an operation.
type Actor struct {
	ID    uuid.UUID `json:"id"`
	Login string    `json:"login"`
}
