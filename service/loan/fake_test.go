package loansvc_test

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Anneshtika/library-management-website/model"
	loanrepo "github.com/Anneshtika/library-management-website/repository/loan"
	"github.com/Anneshtika/library-management-website/util/apperr"
)

// store is an in-memory stand-in for the books and loans tables. InTx holds
// the store lock for the whole unit of work and restores the previous state
// when fn fails, which is how row locks plus rollback behave for these rows.
type store struct {
	mu       sync.Mutex
	books    map[int64]model.Book
	loans    map[int64]model.Loan
	nextLoan int64
}

func newStore(books ...model.Book) *store {
	s := &store{books: map[int64]model.Book{}, loans: map[int64]model.Loan{}}
	for _, b := range books {
		s.books[b.ID] = b
	}
	return s
}

func (s *store) InTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, loans, next := maps.Clone(s.books), maps.Clone(s.loans), s.nextLoan
	if err := fn(nil); err != nil {
		s.books, s.loans, s.nextLoan = books, loans, next
		return err
	}
	return nil
}

func (s *store) book(id int64) model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books[id]
}

func (s *store) loanCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loans)
}

// ledger side, called with the lock held

func (s *store) Lock(ctx context.Context, tx pgx.Tx, id int64) (*model.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return nil, apperr.New(apperr.ErrBookNotFound)
	}
	return &b, nil
}

func (s *store) DecrementAvailable(ctx context.Context, tx pgx.Tx, id int64) error {
	b, ok := s.books[id]
	if !ok {
		return apperr.New(apperr.ErrBookNotFound)
	}
	if b.AvailableCopies <= 0 {
		return apperr.New(apperr.ErrNoCopies)
	}
	b.AvailableCopies--
	s.books[id] = b
	return nil
}

func (s *store) IncrementAvailable(ctx context.Context, tx pgx.Tx, id int64) error {
	b, ok := s.books[id]
	if !ok {
		return nil
	}
	b.AvailableCopies = min(b.AvailableCopies+1, b.TotalCopies)
	s.books[id] = b
	return nil
}

// loan repo side

type loans struct{ *store }

func (r loans) ActiveExists(ctx context.Context, tx pgx.Tx, userID string, bookID int64) (bool, error) {
	for _, l := range r.store.loans {
		if l.UserID == userID && l.BookID == bookID && l.Active() {
			return true, nil
		}
	}
	return false, nil
}

func (r loans) Insert(ctx context.Context, tx pgx.Tx, l *model.Loan) error {
	r.nextLoan++
	l.ID = r.nextLoan
	r.store.loans[l.ID] = *l
	return nil
}

func (r loans) GetForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) (*model.Loan, error) {
	l, ok := r.store.loans[loanID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &l, nil
}

func (r loans) MarkReturned(ctx context.Context, tx pgx.Tx, loanID int64, at time.Time) error {
	l := r.store.loans[loanID]
	l.Status = model.LoanReturned
	l.ReturnedAt = &at
	r.store.loans[loanID] = l
	return nil
}

func (r loans) UpdateDueDate(ctx context.Context, tx pgx.Tx, loanID int64, due time.Time) error {
	l := r.store.loans[loanID]
	l.DueDate = due
	r.store.loans[loanID] = l
	return nil
}

func (r loans) ListActiveByUser(ctx context.Context, userID string) ([]loanrepo.Row, error) {
	return r.rows(func(l model.Loan) bool { return l.UserID == userID && l.Active() }), nil
}

func (r loans) ListByUser(ctx context.Context, userID string) ([]loanrepo.Row, error) {
	return r.rows(func(l model.Loan) bool { return l.UserID == userID }), nil
}

func (r loans) ListOverdue(ctx context.Context, now time.Time) ([]loanrepo.Row, error) {
	return r.rows(func(l model.Loan) bool { return l.Active() && model.IsOverdue(l.DueDate, now) }), nil
}

func (r loans) rows(keep func(model.Loan) bool) []loanrepo.Row {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []loanrepo.Row{}
	for _, l := range r.store.loans {
		if !keep(l) {
			continue
		}
		row := loanrepo.Row{Loan: l}
		if b, ok := r.books[l.BookID]; ok {
			row.Book = &b
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Loan.ID < out[j].Loan.ID })
	return out
}
