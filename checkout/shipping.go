package checkout

import (
	"errors"
	"regexp"
	"strings"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/models"
)

var loosePhone = regexp.MustCompile(`^[0-9+\-\s().]{7,20}$`)

// ErrEmptyCart is returned when checking out with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// ShippingDetails is the checkout form.
type ShippingDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode,omitempty"`
}

// Validate returns per-field problems; an empty map means the form is complete.
func (s ShippingDetails) Validate() map[string]string {
	fields := map[string]string{}
	required := []struct {
		name, value string
	}{
		{"name", s.Name},
		{"phone", s.Phone},
		{"address", s.Address},
		{"city", s.City},
		{"state", s.State},
		{"country", s.Country},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			fields[f.name] = "is required"
		}
	}
	if _, missing := fields["phone"]; !missing && !loosePhone.MatchString(strings.TrimSpace(s.Phone)) {
		fields["phone"] = "must be a valid phone number"
	}
	return fields
}

// ToAddress converts the form into the snapshot stored on an order.
func (s ShippingDetails) ToAddress() *models.ShippingAddress {
	return &models.ShippingAddress{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Phone:   strings.TrimSpace(s.Phone),
		Address: strings.TrimSpace(s.Address),
		City:    strings.TrimSpace(s.City),
		State:   strings.TrimSpace(s.State),
		Country: strings.TrimSpace(s.Country),
		ZipCode: strings.TrimSpace(s.ZipCode),
	}
}

// FromAddress is the inverse of ToAddress.
func FromAddress(a models.ShippingAddress) ShippingDetails {
	return ShippingDetails{
		Name: a.Name, Email: a.Email, Phone: a.Phone, Address: a.Address,
		City: a.City, State: a.State, Country: a.Country, ZipCode: a.ZipCode,
	}
}

// OrderRequest is the body POSTed to /api/orders.
type OrderRequest struct {
	CustomerName    string                  `json:"customerName"`
	Total           float64                 `json:"total"`
	Items           []models.OrderItem      `json:"items"`
	UserID          *uint                   `json:"userId,omitempty"`
	ShippingAddress *models.ShippingAddress `json:"shippingAddress,omitempty"`
}

// BuildOrder validates the form and turns cart + form into an order request.
func BuildOrder(cart *Cart, shipping ShippingDetails, userID *uint) (*OrderRequest, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, apperror.Validation(ErrEmptyCart.Error(), map[string]string{"items": "must not be empty"})
	}
	if fields := shipping.Validate(); len(fields) > 0 {
		return nil, apperror.Validation("Invalid shipping details", fields)
	}

	addr := shipping.ToAddress()
	return &OrderRequest{
		CustomerName:    addr.Name,
		Total:           cart.Total().InexactFloat64(),
		Items:           cart.Items(),
		UserID:          userID,
		ShippingAddress: addr,
	}, nil
}
