package repository

import "time"

// ProductListFilter filters product list queries.
type ProductListFilter struct {
	Page          int
	PageSize      int
	RetailerID    uint
	Category      string
	Search        string
	OnlyAvailable bool
}

// OrderListFilter filters order list queries.
type OrderListFilter struct {
	Page        int
	PageSize    int
	CustomerID  uint
	RetailerID  uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// RetailerListFilter filters retailer list queries.
type RetailerListFilter struct {
	Page     int
	PageSize int
	Search   string
	OnlyOpen bool
}
