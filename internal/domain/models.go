package domain

import "time"

// Seller is a storefront account. Sellers are created through signup and are
// never deleted.
type Seller struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Password string  `json:"-"` // credential hash, opaque to this layer
	Products []int64 `json:"products"`
}

// Product belongs to a seller. No endpoint mutates products; they are loaded
// from the durable store and round-tripped on every flush.
type Product struct {
	ID          int64   `json:"id"`
	SellerID    int64   `json:"seller_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Available   bool    `json:"available"`
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

// Valid reports whether s is one of the known order statuses. The store does
// not enforce transitions between them.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// Order is placed by an external user against a seller's product. Price is a
// snapshot taken at order time, not a live reference to the product price.
type Order struct {
	ID        int64     `json:"id"`
	SellerID  int64     `json:"seller_id"`
	ProductID int64     `json:"product_id"`
	User      string    `json:"user"`
	Quantity  int64     `json:"quantity"`
	Price     float64   `json:"price"`
	Status    Status    `json:"status"`
	Paid      bool      `json:"paid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Note      string    `json:"note"`
}

// OrderRequest carries the caller-supplied fields of a new order. The store
// fills in id, status, paid and the timestamps.
type OrderRequest struct {
	SellerID  int64   `json:"seller_id"`
	ProductID int64   `json:"product_id"`
	User      string  `json:"user"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
	Note      string  `json:"note"`
}

// OrderUpdate is a partial order mutation. Nil fields mean "leave unchanged".
type OrderUpdate struct {
	Status *Status `json:"status,omitempty"`
	Paid   *bool   `json:"paid,omitempty"`
}
