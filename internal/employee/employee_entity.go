package employee

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ContactKindEmail = "EMAIL"
	ContactKindPhone = "PHONE"
)

// ContactMethod is a nested value object; it is never addressed outside its
// employee. Duplicates are allowed and insertion order is display order.
type ContactMethod struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type Employee struct {
	ID             string `gorm:"type:varchar(64);primaryKey"`
	OwnerID        string `gorm:"type:varchar(64);index;not null"`
	Name           string `gorm:"type:varchar(255);not null"`
	AddressLine1   string `gorm:"type:varchar(255);not null"`
	AddressCity    string `gorm:"type:varchar(128);not null"`
	AddressCountry string `gorm:"type:varchar(128);not null"`
	AddressZipCode string `gorm:"type:varchar(32);not null"`
	// Stored as jsonb so the sequence survives round trips intact
	ContactMethods datatypes.JSONSlice[ContactMethod] `gorm:"type:jsonb"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
