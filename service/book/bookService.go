package booksvc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Anneshtika/library-management-website/model"
	bookrepo "github.com/Anneshtika/library-management-website/repository/book"
	"github.com/Anneshtika/library-management-website/service/authz"
	"github.com/Anneshtika/library-management-website/util/apperr"
	"github.com/Anneshtika/library-management-website/util/database"
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	Detail(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)

	LockForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Book, error)
	Update(ctx context.Context, tx pgx.Tx, b *model.Book) error
	DecrementAvailable(ctx context.Context, tx pgx.Tx, id int64) (bool, error)
	IncrementAvailable(ctx context.Context, tx pgx.Tx, id int64) (bool, error)
}

// TxRunner opens one unit of work; *database.DB implements it.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// Service is the inventory ledger: book records and their copy counts.
type Service interface {
	// Admin commands
	Create(ctx context.Context, actor model.Actor, in model.NewBook) (*model.Book, error)
	Update(ctx context.Context, actor model.Actor, id int64, p model.BookPatch) (*model.Book, error)
	Delete(ctx context.Context, actor model.Actor, id int64) error

	// Reads
	Get(ctx context.Context, id int64) (*model.Book, error)
	Search(ctx context.Context, query string) ([]model.Book, error)
	FilterByCategory(ctx context.Context, category string) ([]model.Book, error)
	List(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)

	// Copy-count transitions, run inside the caller's transaction.
	Lock(ctx context.Context, tx pgx.Tx, id int64) (*model.Book, error)
	DecrementAvailable(ctx context.Context, tx pgx.Tx, id int64) error
	IncrementAvailable(ctx context.Context, tx pgx.Tx, id int64) error
}

type service struct {
	db  TxRunner
	r   Repo
	log *slog.Logger
}

func New(db TxRunner, r Repo, log *slog.Logger) Service {
	if log == nil {
		log = slog.Default()
	}
	return &service{db: db, r: r, log: log}
}

func (s *service) Create(ctx context.Context, actor model.Actor, in model.NewBook) (*model.Book, error) {
	if err := authz.RequireRole(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	b, err := in.Build()
	if err != nil {
		return nil, err
	}
	if err := s.r.Create(ctx, &b); err != nil {
		return nil, mapWriteErr(err)
	}
	s.log.Info("book created", "book_id", b.ID, "total_copies", b.TotalCopies, "by", actor.ID)
	return &b, nil
}

func (s *service) Update(ctx context.Context, actor model.Actor, id int64, p model.BookPatch) (*model.Book, error) {
	if err := authz.RequireRole(actor, model.RoleAdmin); err != nil {
		return nil, err
	}

	var out model.Book
	err := s.db.InTx(ctx, func(tx pgx.Tx) error {
		cur, err := s.Lock(ctx, tx, id)
		if err != nil {
			return err
		}
		next, err := p.Apply(*cur)
		if err != nil {
			return err
		}
		if err := s.r.Update(ctx, tx, &next); err != nil {
			return mapWriteErr(err)
		}
		out = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("book updated", "book_id", id, "total_copies", out.TotalCopies, "available_copies", out.AvailableCopies, "by", actor.ID)
	return &out, nil
}

// Delete removes the book even while copies are out on loan. The loans keep
// their book id for history.
func (s *service) Delete(ctx context.Context, actor model.Actor, id int64) error {
	if err := authz.RequireRole(actor, model.RoleAdmin); err != nil {
		return err
	}
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.New(apperr.ErrBookNotFound)
	}
	s.log.Info("book deleted", "book_id", id, "by", actor.ID)
	return nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.Detail(ctx, id)
	if err != nil {
		if database.NoRows(err) {
			return nil, apperr.New(apperr.ErrBookNotFound)
		}
		return nil, err
	}
	return b, nil
}

func (s *service) Search(ctx context.Context, query string) ([]model.Book, error) {
	return s.r.List(ctx, model.BookFilter{Query: query})
}

// FilterByCategory returns every book when category is empty.
func (s *service) FilterByCategory(ctx context.Context, category string) ([]model.Book, error) {
	return s.r.List(ctx, model.BookFilter{Category: category})
}

func (s *service) List(ctx context.Context, f model.BookFilter) ([]model.Book, error) {
	return s.r.List(ctx, f)
}

func (s *service) Categories(ctx context.Context) ([]string, error) { return s.r.Categories(ctx) }
func (s *service) Count(ctx context.Context) (int64, error)         { return s.r.Count(ctx) }

func (s *service) Lock(ctx context.Context, tx pgx.Tx, id int64) (*model.Book, error) {
	b, err := s.r.LockForUpdate(ctx, tx, id)
	if err != nil {
		if database.NoRows(err) {
			return nil, apperr.New(apperr.ErrBookNotFound)
		}
		return nil, err
	}
	return b, nil
}

func (s *service) DecrementAvailable(ctx context.Context, tx pgx.Tx, id int64) error {
	ok, err := s.r.DecrementAvailable(ctx, tx, id)
	if err != nil {
		return fmt.Errorf("decrement available: %w", err)
	}
	if ok {
		return nil
	}
	// Nothing changed: either the book is gone or no copy is left.
	if _, err := s.Lock(ctx, tx, id); err != nil {
		return err
	}
	return apperr.New(apperr.ErrNoCopies)
}

// IncrementAvailable puts one copy back, never above total_copies. A deleted
// book has nothing to restock.
func (s *service) IncrementAvailable(ctx context.Context, tx pgx.Tx, id int64) error {
	ok, err := s.r.IncrementAvailable(ctx, tx, id)
	if err != nil {
		return fmt.Errorf("increment available: %w", err)
	}
	if !ok {
		s.log.Warn("returned copy of a deleted book", "book_id", id)
	}
	return nil
}

func mapWriteErr(err error) error {
	if c, ok := database.UniqueViolation(err); ok {
		if c == bookrepo.ISBNConstraint || strings.Contains(strings.ToLower(c), "isbn") {
			return apperr.Newf(apperr.ErrISBNTaken, "isbn already registered")
		}
		return apperr.Newf(apperr.ErrInvalidInput, "duplicate value")
	}
	return err
}
