package book

import (
	"github.com/shopspring/decimal"

	"github.com/Anneshtika/library-management-website/model"
)

type CreateBookReq struct {
	Title           string           `json:"title" validate:"required,max=255"`
	Author          string           `json:"author" validate:"required,max=255"`
	ISBN            *string          `json:"isbn" validate:"omitempty,max=32"`
	Category        string           `json:"category" validate:"required,max=100"`
	Description     *string          `json:"description"`
	CoverURL        *string          `json:"cover_url" validate:"omitempty,url"`
	Price           *decimal.Decimal `json:"price" validate:"required"`
	TotalCopies     int              `json:"total_copies" validate:"required,gte=1"`
	AvailableCopies *int             `json:"available_copies" validate:"omitempty,gte=0"`
	Rating          *float64         `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

func (r CreateBookReq) NewBook() model.NewBook {
	return model.NewBook{
		Title:           r.Title,
		Author:          r.Author,
		ISBN:            r.ISBN,
		Category:        r.Category,
		Description:     r.Description,
		CoverURL:        r.CoverURL,
		Price:           *r.Price,
		TotalCopies:     r.TotalCopies,
		AvailableCopies: r.AvailableCopies,
		Rating:          r.Rating,
	}
}

// UpdateBookReq is a partial update; omitted fields stay as they are.
type UpdateBookReq struct {
	Title           *string          `json:"title" validate:"omitempty,min=1,max=255"`
	Author          *string          `json:"author" validate:"omitempty,min=1,max=255"`
	ISBN            *string          `json:"isbn" validate:"omitempty,max=32"`
	Category        *string          `json:"category" validate:"omitempty,min=1,max=100"`
	Description     *string          `json:"description"`
	CoverURL        *string          `json:"cover_url"`
	Price           *decimal.Decimal `json:"price"`
	TotalCopies     *int             `json:"total_copies" validate:"omitempty,gte=1"`
	AvailableCopies *int             `json:"available_copies" validate:"omitempty,gte=0"`
	Rating          *float64         `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

func (r UpdateBookReq) Patch() model.BookPatch {
	return model.BookPatch{
		Title:           r.Title,
		Author:          r.Author,
		ISBN:            r.ISBN,
		Category:        r.Category,
		Description:     r.Description,
		CoverURL:        r.CoverURL,
		Price:           r.Price,
		TotalCopies:     r.TotalCopies,
		AvailableCopies: r.AvailableCopies,
		Rating:          r.Rating,
	}
}
