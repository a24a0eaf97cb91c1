package loan

import "time"

type BorrowReq struct {
	BookID int64 `json:"book_id" validate:"required,gt=0"`
}

type RenewReq struct {
	DueDate *time.Time `json:"due_date" validate:"required"`
}
