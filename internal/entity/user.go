package entity

import (
	"time"

	"github.com/google/uuid"
)

// User owns receipts. Authentication lives elsewhere; this is just the
// ownership reference the pipeline scopes everything by.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
