package service

import "github.com/tacticalshop/storeapi/internal/domain"

// AddItemRequest adds a product to the session cart
type AddItemRequest struct {
	ProductID    string `json:"product_id" binding:"required,uuid"`
	SelectedSize string `json:"selected_size"`
	Quantity     int    `json:"quantity" binding:"min=0"`
}

// UpdateQuantityRequest sets a cart line's quantity. Any value below the
// line's minimum order quantity removes the line, so negatives are
// accepted and read as removal.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest submits the session cart as an order
type CheckoutRequest struct {
	CustomerName  string          `json:"customer_name" binding:"required"`
	CustomerPhone string          `json:"customer_phone"`
	Shipping      ShippingAddress `json:"shipping" binding:"required"`
}

type ShippingAddress struct {
	Street     string  `json:"street" binding:"required"`
	City       string  `json:"city" binding:"required"`
	Region     *string `json:"region,omitempty"`
	PostalCode string  `json:"postal_code" binding:"required"`
	Country    string  `json:"country" binding:"required"`
}

// ProductUpsertRequest creates or updates a catalog product
type ProductUpsertRequest struct {
	SKU           string   `json:"sku" binding:"required"`
	NameEN        string   `json:"name_en" binding:"required"`
	NameKA        string   `json:"name_ka"`
	DescriptionEN string   `json:"description_en"`
	DescriptionKA string   `json:"description_ka"`
	CategoryID    *string  `json:"category_id,omitempty"`
	BrandID       *string  `json:"brand_id,omitempty"`
	Price         float64  `json:"price" binding:"required,min=0"`
	Currency      string   `json:"currency" binding:"required"`
	Stock         int      `json:"stock" binding:"min=0"`
	MinOrderQty   int      `json:"min_order_qty"`
	Sizes         []string `json:"sizes"`
	IsActive      *bool    `json:"is_active,omitempty"`
}

// ReorderImagesRequest rewrites a product's image display order
type ReorderImagesRequest struct {
	ImageIDs []string `json:"image_ids" binding:"required,min=1"`
}

// RegisterRequest creates a customer account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
}

// LoginRequest authenticates a user
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CartSummary is the cart plus derived totals and the minimum-order gate
type CartSummary struct {
	Cart             *domain.Cart `json:"cart"`
	TotalItems       int          `json:"total_items"`
	TotalPrice       float64      `json:"total_price"`
	MinimumValue     float64      `json:"minimum_value"`
	MinimumMet       bool         `json:"minimum_met"`
	MinimumRemaining float64      `json:"minimum_remaining"`
}
