// model/book.go
package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Anneshtika/library-management-website/util/apperr"
)

type Book struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Author          string          `json:"author"`
	ISBN            *string         `json:"isbn,omitempty"`
	Category        string          `json:"category"`
	Description     *string         `json:"description,omitempty"`
	CoverURL        *string         `json:"cover_url,omitempty"`
	Price           decimal.Decimal `json:"price"`
	TotalCopies     int             `json:"total_copies"`
	AvailableCopies int             `json:"available_copies"`
	Rating          *float64        `json:"rating,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Validate checks every field constraint, including 0 <= available <= total.
func (b Book) Validate() error {
	switch {
	case strings.TrimSpace(b.Title) == "":
		return apperr.Newf(apperr.ErrInvalidInput, "title is required")
	case strings.TrimSpace(b.Author) == "":
		return apperr.Newf(apperr.ErrInvalidInput, "author is required")
	case strings.TrimSpace(b.Category) == "":
		return apperr.Newf(apperr.ErrInvalidInput, "category is required")
	case b.Price.IsNegative():
		return apperr.Newf(apperr.ErrInvalidInput, "price must be >= 0")
	case b.TotalCopies < 1:
		return apperr.Newf(apperr.ErrInvalidInput, "total_copies must be >= 1")
	case b.AvailableCopies < 0 || b.AvailableCopies > b.TotalCopies:
		return apperr.Newf(apperr.ErrInvalidInput, "available_copies must be between 0 and total_copies")
	case b.Rating != nil && (*b.Rating < 0 || *b.Rating > 5):
		return apperr.Newf(apperr.ErrInvalidInput, "rating must be between 0 and 5")
	}
	return nil
}

// BookFilter narrows a catalog listing. Query is a case-insensitive substring
// of title, author or category; Category must match exactly.
type BookFilter struct {
	Query    string
	Category string
}

type StockStatus string

const (
	StockOut       StockStatus = "OUT_OF_STOCK"
	StockLow       StockStatus = "LOW_STOCK"
	StockAvailable StockStatus = "AVAILABLE"
)

// LowStockThreshold is the highest available count still reported as low stock.
const LowStockThreshold = 2

func StockStatusOf(available int) StockStatus {
	switch {
	case available <= 0:
		return StockOut
	case available <= LowStockThreshold:
		return StockLow
	default:
		return StockAvailable
	}
}

// BookView is a book decorated with its derived stock status.
type BookView struct {
	Book
	StockStatus StockStatus `json:"stock_status"`
}

func NewBookView(b Book) BookView {
	return BookView{Book: b, StockStatus: StockStatusOf(b.AvailableCopies)}
}

// NewBook is the admin "add book" input.
type NewBook struct {
	Title           string
	Author          string
	ISBN            *string
	Category        string
	Description     *string
	CoverURL        *string
	Price           decimal.Decimal
	TotalCopies     int
	AvailableCopies *int
	Rating          *float64
}

// Build turns the input into a validated Book. Available copies default to
// the total.
func (n NewBook) Build() (Book, error) {
	b := Book{
		Title:           strings.TrimSpace(n.Title),
		Author:          strings.TrimSpace(n.Author),
		ISBN:            normalize(n.ISBN),
		Category:        strings.TrimSpace(n.Category),
		Description:     normalize(n.Description),
		CoverURL:        normalize(n.CoverURL),
		Price:           n.Price,
		TotalCopies:     n.TotalCopies,
		AvailableCopies: n.TotalCopies,
		Rating:          n.Rating,
	}
	if n.AvailableCopies != nil {
		b.AvailableCopies = *n.AvailableCopies
	}
	if err := b.Validate(); err != nil {
		return Book{}, err
	}
	return b, nil
}

// BookPatch is a partial admin edit. Nil fields are left untouched; an empty
// string clears an optional text field.
type BookPatch struct {
	Title           *string
	Author          *string
	ISBN            *string
	Category        *string
	Description     *string
	CoverURL        *string
	Price           *decimal.Decimal
	TotalCopies     *int
	AvailableCopies *int
	Rating          *float64
}

// Apply returns b with the patch applied.
//
// Lowering total_copies below the current available count clamps available
// down to the new total. An explicit available_copies above the total is
// rejected instead.
func (p BookPatch) Apply(b Book) (Book, error) {
	if p.Title != nil {
		b.Title = strings.TrimSpace(*p.Title)
	}
	if p.Author != nil {
		b.Author = strings.TrimSpace(*p.Author)
	}
	if p.ISBN != nil {
		b.ISBN = normalize(p.ISBN)
	}
	if p.Category != nil {
		b.Category = strings.TrimSpace(*p.Category)
	}
	if p.Description != nil {
		b.Description = normalize(p.Description)
	}
	if p.CoverURL != nil {
		b.CoverURL = normalize(p.CoverURL)
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.Rating != nil {
		b.Rating = p.Rating
	}
	if p.TotalCopies != nil {
		b.TotalCopies = *p.TotalCopies
	}
	if p.AvailableCopies != nil {
		b.AvailableCopies = *p.AvailableCopies
	} else if b.TotalCopies >= 1 && b.AvailableCopies > b.TotalCopies {
		b.AvailableCopies = b.TotalCopies
	}
	if err := b.Validate(); err != nil {
		return Book{}, err
	}
	return b, nil
}

func normalize(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
