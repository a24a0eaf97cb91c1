// model/loan.go
package model

import "time"

type LoanStatus string

const (
	LoanBorrowed LoanStatus = "borrowed"
	LoanReturned LoanStatus = "returned"
)

// LoanPeriod is the time between borrowing and the initial due date.
const LoanPeriod = 14 * 24 * time.Hour

type Loan struct {
	ID         int64      `json:"id"`
	UserID     string     `json:"user_id"`
	BookID     int64      `json:"book_id"`
	Status     LoanStatus `json:"status"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	DueDate    time.Time  `json:"due_date"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

func (l Loan) Active() bool { return l.Status == LoanBorrowed }

// LoanView is a loan with its book snapshot and, while the loan is active,
// its derived due status. Book is nil once the book has been deleted.
type LoanView struct {
	Loan
	Book          *Book     `json:"book"`
	DueStatus     DueStatus `json:"due_status,omitempty"`
	DaysRemaining *int      `json:"days_remaining,omitempty"`
}

func NewLoanView(l Loan, b *Book, now time.Time) LoanView {
	v := LoanView{Loan: l, Book: b}
	if l.Active() {
		days := DaysRemaining(l.DueDate, now)
		v.DueStatus = DueStatusAt(l.DueDate, now)
		v.DaysRemaining = &days
	}
	return v
}
