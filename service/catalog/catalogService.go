// Package catalogsvc serves the read side of the library: decorated book
// listings, purchases, the user dashboard and the admin statistics.
package catalogsvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Anneshtika/library-management-website/model"
	loanrepo "github.com/Anneshtika/library-management-website/repository/loan"
	"github.com/Anneshtika/library-management-website/service/authz"
	loansvc "github.com/Anneshtika/library-management-website/service/loan"
	"github.com/Anneshtika/library-management-website/util/apperr"
	"github.com/Anneshtika/library-management-website/util/clock"
	"github.com/Anneshtika/library-management-website/util/database"
)

type Books interface {
	Get(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	Count(ctx context.Context) (int64, error)
}

type Loans interface {
	ListActiveByUser(ctx context.Context, userID string) ([]loanrepo.Row, error)
	CountBorrowedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountOverdue(ctx context.Context, now time.Time) (int64, error)
}

type Purchases interface {
	Create(ctx context.Context, userID string, bookID int64, at time.Time) (*model.Purchase, error)
	ListByUser(ctx context.Context, userID string) ([]model.PurchaseView, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

type Users interface {
	Count(ctx context.Context) (int64, error)
}

type Service interface {
	Books(ctx context.Context, f model.BookFilter) ([]model.BookView, error)
	Book(ctx context.Context, id int64) (*model.BookView, error)

	Purchase(ctx context.Context, actor model.Actor, bookID int64) (*model.Purchase, error)
	ListPurchasesForUser(ctx context.Context, actor model.Actor) ([]model.PurchaseView, error)

	Dashboard(ctx context.Context, actor model.Actor) (*model.Dashboard, error)
	Stats(ctx context.Context, actor model.Actor) (*model.Stats, error)
}

type service struct {
	books     Books
	loans     Loans
	purchases Purchases
	users     Users
	now       clock.Clock
	log       *slog.Logger
}

func New(books Books, loans Loans, purchases Purchases, users Users, now clock.Clock, log *slog.Logger) Service {
	if now == nil {
		now = clock.In(time.Local)
	}
	if log == nil {
		log = slog.Default()
	}
	return &service{books: books, loans: loans, purchases: purchases, users: users, now: now, log: log}
}

func (s *service) Books(ctx context.Context, f model.BookFilter) ([]model.BookView, error) {
	list, err := s.books.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]model.BookView, 0, len(list))
	for _, b := range list {
		out = append(out, model.NewBookView(b))
	}
	return out, nil
}

func (s *service) Book(ctx context.Context, id int64) (*model.BookView, error) {
	b, err := s.books.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	v := model.NewBookView(*b)
	return &v, nil
}

func (s *service) Purchase(ctx context.Context, actor model.Actor, bookID int64) (*model.Purchase, error) {
	if err := authz.RequireRole(actor, model.RoleUser); err != nil {
		return nil, err
	}
	p, err := s.purchases.Create(ctx, actor.ID, bookID, s.now())
	if err != nil {
		if database.NoRows(err) {
			return nil, apperr.New(apperr.ErrBookNotFound)
		}
		return nil, err
	}
	s.log.Info("book purchased", "purchase_id", p.ID, "book_id", bookID, "user_id", actor.ID, "price", p.Price.StringFixed(2))
	return p, nil
}

func (s *service) ListPurchasesForUser(ctx context.Context, actor model.Actor) ([]model.PurchaseView, error) {
	if err := authz.RequireRole(actor, model.RoleUser); err != nil {
		return nil, err
	}
	return s.purchases.ListByUser(ctx, actor.ID)
}

func (s *service) Dashboard(ctx context.Context, actor model.Actor) (*model.Dashboard, error) {
	if err := authz.RequireRole(actor, model.RoleUser); err != nil {
		return nil, err
	}
	now := s.now()

	rows, err := s.loans.ListActiveByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	bought, err := s.purchases.CountByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	d := &model.Dashboard{
		Borrowed:  len(rows),
		Purchases: int(bought),
		Loans:     loansvc.Views(rows, now),
		AsOf:      now,
	}
	for _, v := range d.Loans {
		switch {
		case model.IsOverdue(v.DueDate, now):
			d.Overdue++
		case v.DueStatus == model.DueSoon:
			d.DueSoon++
		}
	}
	return d, nil
}

// Stats computes every figure against one reference now. "Today" is the
// local calendar day around it.
func (s *service) Stats(ctx context.Context, actor model.Actor) (*model.Stats, error) {
	if err := authz.RequireRole(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	now := s.now()
	from, to := model.DayBounds(now)

	st := &model.Stats{AsOf: now}
	var err error
	if st.TotalBooks, err = s.books.Count(ctx); err != nil {
		return nil, err
	}
	if st.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if st.BorrowedToday, err = s.loans.CountBorrowedBetween(ctx, from, to); err != nil {
		return nil, err
	}
	if st.Overdue, err = s.loans.CountOverdue(ctx, now); err != nil {
		return nil, err
	}
	if st.RevenueToday, err = s.purchases.RevenueBetween(ctx, from, to); err != nil {
		return nil, err
	}
	return st, nil
}
