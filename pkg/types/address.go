package types

import "strings"

// DeliveryAddress is the destination collected during checkout. It is
// validated and echoed back but never persisted; checkout is simulated.
type DeliveryAddress struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	ZipCode  string `json:"zip_code" validate:"required"`
	Country  string `json:"country" validate:"required"`
}

// MissingFields reports which required fields are blank after trimming.
func (a DeliveryAddress) MissingFields() []string {
	fields := map[string]string{
		"full_name": a.FullName,
		"email":     a.Email,
		"phone":     a.Phone,
		"address":   a.Address,
		"city":      a.City,
		"state":     a.State,
		"zip_code":  a.ZipCode,
		"country":   a.Country,
	}
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
