package catalogsvc_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Anneshtika/library-management-website/model"
	loanrepo "github.com/Anneshtika/library-management-website/repository/loan"
	catalogsvc "github.com/Anneshtika/library-management-website/service/catalog"
	"github.com/Anneshtika/library-management-website/util/apperr"
	"github.com/Anneshtika/library-management-website/util/clock"
)

var (
	jakarta = time.FixedZone("WIB", 7*3600)
	now     = time.Date(2026, 3, 10, 14, 0, 0, 0, jakarta)
	alice   = model.Actor{ID: "alice", Name: "Alice", Role: model.RoleUser}
	admin   = model.Actor{ID: "root", Name: "Root", Role: model.RoleAdmin}
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
)

type booksFake struct{ books []model.Book }

func (f *booksFake) Get(ctx context.Context, id int64) (*model.Book, error) {
	for _, b := range f.books {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, apperr.New(apperr.ErrBookNotFound)
}
func (f *booksFake) List(ctx context.Context, _ model.BookFilter) ([]model.Book, error) {
	return f.books, nil
}
func (f *booksFake) Count(ctx context.Context) (int64, error) { return int64(len(f.books)), nil }

type loansFake struct{ loans []model.Loan }

func (f *loansFake) ListActiveByUser(ctx context.Context, userID string) ([]loanrepo.Row, error) {
	out := []loanrepo.Row{}
	for _, l := range f.loans {
		if l.UserID == userID && l.Active() {
			out = append(out, loanrepo.Row{Loan: l})
		}
	}
	return out, nil
}
func (f *loansFake) CountBorrowedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	for _, l := range f.loans {
		if !l.BorrowedAt.Before(from) && l.BorrowedAt.Before(to) {
			n++
		}
	}
	return n, nil
}
func (f *loansFake) CountOverdue(ctx context.Context, at time.Time) (int64, error) {
	var n int64
	for _, l := range f.loans {
		if l.Active() && model.IsOverdue(l.DueDate, at) {
			n++
		}
	}
	return n, nil
}

type purchasesFake struct {
	prices    map[int64]decimal.Decimal
	purchases []model.Purchase
}

func (f *purchasesFake) Create(ctx context.Context, userID string, bookID int64, at time.Time) (*model.Purchase, error) {
	price, ok := f.prices[bookID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	p := model.Purchase{ID: int64(len(f.purchases) + 1), UserID: userID, BookID: bookID, Price: price, PurchasedAt: at}
	f.purchases = append(f.purchases, p)
	return &p, nil
}
func (f *purchasesFake) ListByUser(ctx context.Context, userID string) ([]model.PurchaseView, error) {
	out := []model.PurchaseView{}
	for _, p := range f.purchases {
		if p.UserID == userID {
			out = append(out, model.PurchaseView{Purchase: p})
		}
	}
	return out, nil
}
func (f *purchasesFake) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	for _, p := range f.purchases {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}
func (f *purchasesFake) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range f.purchases {
		if !p.PurchasedAt.Before(from) && p.PurchasedAt.Before(to) {
			sum = sum.Add(p.Price)
		}
	}
	return sum, nil
}

type usersFake struct{ n int64 }

func (f usersFake) Count(ctx context.Context) (int64, error) { return f.n, nil }

func TestStats_Example(t *testing.T) {
	books := &booksFake{books: []model.Book{
		{ID: 1, Title: "Dune", TotalCopies: 3, AvailableCopies: 2, Price: decimal.RequireFromString("9.99")},
		{ID: 2, Title: "Emma", TotalCopies: 1, AvailableCopies: 0},
	}}
	lastMonth := now.AddDate(0, -1, 0)
	loans := &loansFake{loans: []model.Loan{
		{ID: 1, UserID: "alice", BookID: 1, Status: model.LoanBorrowed, BorrowedAt: now.Add(-2 * time.Hour), DueDate: now.Add(model.LoanPeriod)},
		{ID: 2, UserID: "bob", BookID: 2, Status: model.LoanBorrowed, BorrowedAt: lastMonth, DueDate: lastMonth.Add(model.LoanPeriod)},
	}}
	purchases := &purchasesFake{prices: map[int64]decimal.Decimal{1: decimal.RequireFromString("9.99")}}

	s := catalogsvc.New(books, loans, purchases, usersFake{n: 2}, clock.Fixed(now), logger)
	_, err := s.Purchase(context.Background(), alice, 1)
	require.NoError(t, err)

	st, err := s.Stats(context.Background(), admin)
	require.NoError(t, err)
	require.Equal(t, int64(2), st.TotalBooks)
	require.Equal(t, int64(2), st.TotalUsers)
	require.Equal(t, int64(1), st.BorrowedToday)
	require.Equal(t, int64(1), st.Overdue)
	require.Equal(t, "9.99", st.RevenueToday.StringFixed(2))
	require.Equal(t, now, st.AsOf)
}

func TestStats_TodayIsLocalDay(t *testing.T) {
	lateYesterday := time.Date(2026, 3, 9, 23, 30, 0, 0, jakarta)
	// 06:00 local on the 10th is still the 9th in UTC
	loans := &loansFake{loans: []model.Loan{
		{ID: 1, UserID: "alice", Status: model.LoanBorrowed, BorrowedAt: lateYesterday, DueDate: lateYesterday.Add(model.LoanPeriod)},
		{ID: 2, UserID: "alice", Status: model.LoanReturned, BorrowedAt: time.Date(2026, 3, 10, 6, 0, 0, 0, jakarta), DueDate: now},
	}}
	s := catalogsvc.New(&booksFake{}, loans, &purchasesFake{}, usersFake{}, clock.Fixed(now), logger)

	st, err := s.Stats(context.Background(), admin)
	require.NoError(t, err)
	require.Equal(t, int64(1), st.BorrowedToday)
	require.True(t, st.RevenueToday.IsZero())
}

func TestStats_Forbidden(t *testing.T) {
	s := catalogsvc.New(&booksFake{}, &loansFake{}, &purchasesFake{}, usersFake{}, clock.Fixed(now), logger)
	_, err := s.Stats(context.Background(), alice)
	require.Equal(t, apperr.ErrForbidden, apperr.Code(err))
}

func TestPurchase(t *testing.T) {
	purchases := &purchasesFake{prices: map[int64]decimal.Decimal{7: decimal.RequireFromString("15.50")}}
	s := catalogsvc.New(&booksFake{}, &loansFake{}, purchases, usersFake{}, clock.Fixed(now), logger)
	ctx := context.Background()

	p, err := s.Purchase(ctx, alice, 7)
	require.NoError(t, err)
	require.Equal(t, "15.50", p.Price.StringFixed(2))
	require.Equal(t, now, p.PurchasedAt)

	_, err = s.Purchase(ctx, alice, 8)
	require.Equal(t, apperr.ErrBookNotFound, apperr.Code(err))

	_, err = s.Purchase(ctx, model.Actor{}, 7)
	require.Equal(t, apperr.ErrForbidden, apperr.Code(err))

	mine, err := s.ListPurchasesForUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
}

func TestBooks_StockStatus(t *testing.T) {
	books := &booksFake{books: []model.Book{
		{ID: 1, TotalCopies: 3, AvailableCopies: 0},
		{ID: 2, TotalCopies: 3, AvailableCopies: 2},
		{ID: 3, TotalCopies: 5, AvailableCopies: 3},
	}}
	s := catalogsvc.New(books, &loansFake{}, &purchasesFake{}, usersFake{}, clock.Fixed(now), logger)

	list, err := s.Books(context.Background(), model.BookFilter{})
	require.NoError(t, err)
	require.Equal(t, model.StockOut, list[0].StockStatus)
	require.Equal(t, model.StockLow, list[1].StockStatus)
	require.Equal(t, model.StockAvailable, list[2].StockStatus)

	one, err := s.Book(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, model.StockLow, one.StockStatus)

	_, err = s.Book(context.Background(), 9)
	require.Equal(t, apperr.ErrBookNotFound, apperr.Code(err))
}

func TestDashboard(t *testing.T) {
	loans := &loansFake{loans: []model.Loan{
		{ID: 1, UserID: "alice", Status: model.LoanBorrowed, DueDate: now.Add(-24 * time.Hour)},
		{ID: 2, UserID: "alice", Status: model.LoanBorrowed, DueDate: now.Add(2 * 24 * time.Hour)},
		{ID: 3, UserID: "alice", Status: model.LoanBorrowed, DueDate: now.Add(10 * 24 * time.Hour)},
		{ID: 4, UserID: "alice", Status: model.LoanReturned, DueDate: now.Add(-48 * time.Hour)},
		{ID: 5, UserID: "bob", Status: model.LoanBorrowed, DueDate: now.Add(-48 * time.Hour)},
	}}
	purchases := &purchasesFake{purchases: []model.Purchase{{ID: 1, UserID: "alice"}}}
	s := catalogsvc.New(&booksFake{}, loans, purchases, usersFake{}, clock.Fixed(now), logger)

	d, err := s.Dashboard(context.Background(), alice)
	require.NoError(t, err)
	require.Equal(t, 3, d.Borrowed)
	require.Equal(t, 1, d.Overdue)
	require.Equal(t, 1, d.DueSoon)
	require.Equal(t, 1, d.Purchases)
	require.Len(t, d.Loans, 3)
	require.Equal(t, now, d.AsOf)
}
