package models

import (
	"strings"
	"time"
)

// AnonymousDisplayName is shown when a customer has no name parts on file.
const AnonymousDisplayName = "user"

// Customer mirrors the identity provider's durable user record. The ID is
// the identity provider's subject, not a locally generated key.
type Customer struct {
	ID        string    `json:"id" gorm:"primary_key"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email" gorm:"index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// DisplayName joins the name parts, falling back to the anonymous
// placeholder when both are empty.
func (c *Customer) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
	if name == "" {
		return AnonymousDisplayName
	}
	return name
}
