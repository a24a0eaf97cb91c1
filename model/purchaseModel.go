// model/purchase.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is immutable once created. Price is the book price at the moment
// of purchase.
type Purchase struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"user_id"`
	BookID      int64           `json:"book_id"`
	Price       decimal.Decimal `json:"price"`
	PurchasedAt time.Time       `json:"purchased_at"`
}

type PurchaseView struct {
	Purchase
	Book *Book `json:"book"`
}

// Stats is the admin overview. All day-scoped figures share one reference now.
type Stats struct {
	TotalBooks    int64           `json:"total_books"`
	TotalUsers    int64           `json:"total_users"`
	BorrowedToday int64           `json:"borrowed_today"`
	Overdue       int64           `json:"overdue"`
	RevenueToday  decimal.Decimal `json:"revenue_today"`
	AsOf          time.Time       `json:"as_of"`
}

// Dashboard summarises one user's account.
type Dashboard struct {
	Borrowed  int        `json:"borrowed"`
	DueSoon   int        `json:"due_soon"`
	Overdue   int        `json:"overdue"`
	Purchases int        `json:"purchases"`
	Loans     []LoanView `json:"loans"`
	AsOf      time.Time  `json:"as_of"`
}
