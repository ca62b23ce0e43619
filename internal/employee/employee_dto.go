package employee

import "time"

type AddressPayload struct {
	Line1   string `json:"line1" binding:"required"`
	City    string `json:"city" binding:"required"`
	Country string `json:"country" binding:"required"`
	ZipCode string `json:"zip_code" binding:"required"`
}

type ContactMethodPayload struct {
	Kind  string `json:"kind" binding:"required,oneof=EMAIL PHONE"`
	Value string `json:"value" binding:"required"`
}

// CreateEmployeeRequest carries no owner field on purpose: the owner is
// always stamped from the verified caller, never from client input.
type CreateEmployeeRequest struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name" binding:"required"`
	Address        AddressPayload         `json:"address" binding:"required"`
	ContactMethods []ContactMethodPayload `json:"contact_methods" binding:"omitempty,dive"`
}

// UpdateEmployeeRequest is a partial patch. Nil means "keep the stored
// value"; a present field overwrites it, blanks included. A present
// contact_methods array replaces the stored sequence wholesale.
type UpdateEmployeeRequest struct {
	Name           *string                 `json:"name"`
	Address        *AddressPatch           `json:"address"`
	ContactMethods *[]ContactMethodPayload `json:"contact_methods" binding:"omitempty,dive"`
}

type AddressPatch struct {
	Line1   *string `json:"line1"`
	City    *string `json:"city"`
	Country *string `json:"country"`
	ZipCode *string `json:"zip_code"`
}

type AddressResponse struct {
	Line1          string `json:"line1"`
	City           string `json:"city"`
	Country        string `json:"country"`
	ZipCode        string `json:"zip_code"`
	CountryCode    string `json:"country_code"`
	CountryFlagURL string `json:"country_flag_url"`
}

type EmployeeResponse struct {
	ID             string                 `json:"id"`
	OwnerID        string                 `json:"owner_id"`
	Name           string                 `json:"name"`
	Address        AddressResponse        `json:"address"`
	ContactMethods []ContactMethodPayload `json:"contact_methods"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// EmployeeOption is the trimmed shape picker widgets ask for.
type EmployeeOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
