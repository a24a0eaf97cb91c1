package loansvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Anneshtika/library-management-website/model"
	loanrepo "github.com/Anneshtika/library-management-website/repository/loan"
	"github.com/Anneshtika/library-management-website/service/authz"
	"github.com/Anneshtika/library-management-website/util/apperr"
	"github.com/Anneshtika/library-management-website/util/clock"
	"github.com/Anneshtika/library-management-website/util/database"
)

// ActiveLoanConstraint is the partial unique index allowing one borrowed
// loan per (user, book).
const ActiveLoanConstraint = "loans_active_user_book_key"

type Repo interface {
	ActiveExists(ctx context.Context, tx pgx.Tx, userID string, bookID int64) (bool, error)
	Insert(ctx context.Context, tx pgx.Tx, l *model.Loan) error
	GetForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) (*model.Loan, error)
	MarkReturned(ctx context.Context, tx pgx.Tx, loanID int64, at time.Time) error
	UpdateDueDate(ctx context.Context, tx pgx.Tx, loanID int64, due time.Time) error

	ListActiveByUser(ctx context.Context, userID string) ([]loanrepo.Row, error)
	ListByUser(ctx context.Context, userID string) ([]loanrepo.Row, error)
	ListOverdue(ctx context.Context, now time.Time) ([]loanrepo.Row, error)
}

// Ledger is the slice of the inventory ledger the tracker drives. All calls
// run inside the tracker's transaction.
type Ledger interface {
	Lock(ctx context.Context, tx pgx.Tx, id int64) (*model.Book, error)
	DecrementAvailable(ctx context.Context, tx pgx.Tx, id int64) error
	IncrementAvailable(ctx context.Context, tx pgx.Tx, id int64) error
}

type TxRunner interface {
	InTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type Service interface {
	// Borrow hands one copy of a book to actor for LoanPeriod.
	Borrow(ctx context.Context, actor model.Actor, bookID int64) (*model.LoanView, error)
	// Return closes a borrowed loan and puts the copy back.
	Return(ctx context.Context, actor model.Actor, loanID int64) (*model.LoanView, error)
	// Renew moves the due date of a borrowed loan forward.
	Renew(ctx context.Context, actor model.Actor, loanID int64, due time.Time) (*model.LoanView, error)

	ListForUser(ctx context.Context, actor model.Actor) ([]model.LoanView, error)
	History(ctx context.Context, actor model.Actor) ([]model.LoanView, error)
	ListOverdue(ctx context.Context, actor model.Actor) ([]model.LoanView, error)
}

type service struct {
	db     TxRunner
	r      Repo
	ledger Ledger
	now    clock.Clock
	log    *slog.Logger
}

func New(db TxRunner, r Repo, ledger Ledger, now clock.Clock, log *slog.Logger) Service {
	if now == nil {
		now = clock.In(time.Local)
	}
	if log == nil {
		log = slog.Default()
	}
	return &service{db: db, r: r, ledger: ledger, now: now, log: log}
}

func (s *service) Borrow(ctx context.Context, actor model.Actor, bookID int64) (*model.LoanView, error) {
	if err := authz.RequireRole(actor, model.RoleUser); err != nil {
		return nil, err
	}
	now := s.now()

	var (
		loan model.Loan
		book model.Book
	)
	err := s.db.InTx(ctx, func(tx pgx.Tx) error {
		b, err := s.ledger.Lock(ctx, tx, bookID)
		if err != nil {
			return err
		}

		dup, err := s.r.ActiveExists(ctx, tx, actor.ID, bookID)
		if err != nil {
			return err
		}
		if dup {
			return apperr.New(apperr.ErrAlreadyBorrowed)
		}

		if err := s.ledger.DecrementAvailable(ctx, tx, bookID); err != nil {
			return err
		}

		loan = model.Loan{
			UserID:     actor.ID,
			BookID:     bookID,
			Status:     model.LoanBorrowed,
			BorrowedAt: now,
			DueDate:    now.Add(model.LoanPeriod),
		}
		if err := s.r.Insert(ctx, tx, &loan); err != nil {
			if c, ok := database.UniqueViolation(err); ok && c == ActiveLoanConstraint {
				return apperr.New(apperr.ErrAlreadyBorrowed)
			}
			return fmt.Errorf("insert loan: %w", err)
		}

		book = *b
		book.AvailableCopies--
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("book borrowed", "loan_id", loan.ID, "book_id", bookID, "user_id", actor.ID, "due_date", loan.DueDate)
	v := model.NewLoanView(loan, &book, now)
	return &v, nil
}

func (s *service) Return(ctx context.Context, actor model.Actor, loanID int64) (*model.LoanView, error) {
	if err := authz.RequireRole(actor, model.RoleUser); err != nil {
		return nil, err
	}
	now := s.now()

	var loan model.Loan
	err := s.db.InTx(ctx, func(tx pgx.Tx) error {
		l, err := s.openLoan(ctx, tx, actor, loanID)
		if err != nil {
			return err
		}
		if err := s.r.MarkReturned(ctx, tx, loanID, now); err != nil {
			return fmt.Errorf("mark returned: %w", err)
		}
		if err := s.ledger.IncrementAvailable(ctx, tx, l.BookID); err != nil {
			return err
		}

		l.Status = model.LoanReturned
		l.ReturnedAt = &now
		loan = *l
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("book returned", "loan_id", loanID, "book_id", loan.BookID, "by", actor.ID)
	v := model.NewLoanView(loan, nil, now)
	return &v, nil
}

func (s *service) Renew(ctx context.Context, actor model.Actor, loanID int64, due time.Time) (*model.LoanView, error) {
	if err := authz.RequireRole(actor, model.RoleUser); err != nil {
		return nil, err
	}
	now := s.now()

	var loan model.Loan
	err := s.db.InTx(ctx, func(tx pgx.Tx) error {
		l, err := s.openLoan(ctx, tx, actor, loanID)
		if err != nil {
			return err
		}
		if !due.After(l.DueDate) {
			return apperr.Newf(apperr.ErrInvalidDueDate, "new due date must be after %s", l.DueDate.Format(time.RFC3339))
		}
		if err := s.r.UpdateDueDate(ctx, tx, loanID, due); err != nil {
			return fmt.Errorf("update due date: %w", err)
		}
		l.DueDate = due
		loan = *l
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("loan renewed", "loan_id", loanID, "due_date", due, "by", actor.ID)
	v := model.NewLoanView(loan, nil, now)
	return &v, nil
}

// openLoan locks a loan the actor may act on and checks it is still borrowed.
func (s *service) openLoan(ctx context.Context, tx pgx.Tx, actor model.Actor, loanID int64) (*model.Loan, error) {
	l, err := s.r.GetForUpdate(ctx, tx, loanID)
	if err != nil {
		if database.NoRows(err) {
			return nil, apperr.New(apperr.ErrLoanNotFound)
		}
		return nil, err
	}
	if err := authz.RequireOwner(actor, l.UserID); err != nil {
		return nil, err
	}
	if !l.Active() {
		return nil, apperr.New(apperr.ErrAlreadyReturned)
	}
	return l, nil
}

func (s *service) ListForUser(ctx context.Context, actor model.Actor) ([]model.LoanView, error) {
	if err := authz.RequireRole(actor, model.RoleUser); err != nil {
		return nil, err
	}
	rows, err := s.r.ListActiveByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return Views(rows, s.now()), nil
}

func (s *service) History(ctx context.Context, actor model.Actor) ([]model.LoanView, error) {
	if err := authz.RequireRole(actor, model.RoleUser); err != nil {
		return nil, err
	}
	rows, err := s.r.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return Views(rows, s.now()), nil
}

func (s *service) ListOverdue(ctx context.Context, actor model.Actor) ([]model.LoanView, error) {
	if err := authz.RequireRole(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	now := s.now()
	rows, err := s.r.ListOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	return Views(rows, now), nil
}

// Views decorates rows against a single reference now.
func Views(rows []loanrepo.Row, now time.Time) []model.LoanView {
	out := make([]model.LoanView, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.NewLoanView(r.Loan, r.Book, now))
	}
	return out
}
