package domain

import (
	"time"

	"github.com/google/uuid"
)

// LocalizedText is a bilingual English/Georgian value pair. KA falls back
// to EN when empty.
type LocalizedText struct {
	EN string `json:"en"`
	KA string `json:"ka"`
}

// In reports the text in the requested locale ("ka" or "en").
func (t LocalizedText) In(locale string) string {
	if locale == "ka" && t.KA != "" {
		return t.KA
	}
	return t.EN
}

// Product represents a catalog product
type Product struct {
	ID          uuid.UUID
	SKU         string
	Name        LocalizedText
	Description LocalizedText
	CategoryID  *uuid.UUID
	BrandID     *uuid.UUID
	Price       float64
	Currency    string
	Stock       int
	MinOrderQty int
	Sizes       []string
	Images      []ProductImage
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductImage is one image of a product; Position drives display order.
type ProductImage struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	URL       string
	Position  int
	CreatedAt time.Time
}

// Category represents a product category
type Category struct {
	ID        uuid.UUID
	Name      LocalizedText
	Slug      string
	CreatedAt time.Time
}

// Brand represents a product brand
type Brand struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
}

// User represents a storefront account
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Role         UserRole
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Order represents a placed order
type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Status          OrderStatus
	Total           float64
	Currency        string
	CustomerName    string
	CustomerPhone   string
	ShippingAddress map[string]interface{} // JSONB
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem is one line of a placed order; price is the cart snapshot at
// checkout time.
type OrderItem struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	ProductID    uuid.UUID
	Name         LocalizedText
	UnitPrice    float64
	Quantity     int
	SelectedSize string
	CreatedAt    time.Time
}
