// repository/loan/repo.go
package loanrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Anneshtika/library-management-website/model"
	bookrepo "github.com/Anneshtika/library-management-website/repository/book"
	"github.com/Anneshtika/library-management-website/util/database"
)

// Row is a loan joined with its book. Book is nil when the book was deleted.
type Row struct {
	Loan model.Loan
	Book *model.Book
}

type Repo interface {
	// Loans inside a unit of work
	ActiveExists(ctx context.Context, tx pgx.Tx, userID string, bookID int64) (bool, error)
	Insert(ctx context.Context, tx pgx.Tx, l *model.Loan) error
	GetForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) (*model.Loan, error)
	MarkReturned(ctx context.Context, tx pgx.Tx, loanID int64, at time.Time) error
	UpdateDueDate(ctx context.Context, tx pgx.Tx, loanID int64, due time.Time) error

	// Reads
	ListActiveByUser(ctx context.Context, userID string) ([]Row, error)
	ListByUser(ctx context.Context, userID string) ([]Row, error)
	ListOverdue(ctx context.Context, now time.Time) ([]Row, error)
	CountBorrowedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountOverdue(ctx context.Context, now time.Time) (int64, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

const loanColumns = `l.id, l.user_id, l.book_id, l.status, l.borrowed_at, l.due_date, l.returned_at`

func (r *repo) ActiveExists(ctx context.Context, tx pgx.Tx, userID string, bookID int64) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1
			FROM loans
			WHERE user_id = $1
			AND book_id = $2
			AND status = 'borrowed'
		)`
	var ok bool
	err := tx.QueryRow(ctx, q, userID, bookID).Scan(&ok)
	return ok, err
}

func (r *repo) Insert(ctx context.Context, tx pgx.Tx, l *model.Loan) error {
	const q = `
		INSERT INTO loans (user_id, book_id, status, borrowed_at, due_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return tx.QueryRow(ctx, q, l.UserID, l.BookID, l.Status, l.BorrowedAt, l.DueDate).Scan(&l.ID)
}

func (r *repo) GetForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) (*model.Loan, error) {
	q := `
		SELECT ` + loanColumns + `
		FROM loans l
		WHERE l.id = $1
		FOR UPDATE`
	var l model.Loan
	err := tx.QueryRow(ctx, q, loanID).Scan(
		&l.ID, &l.UserID, &l.BookID, &l.Status, &l.BorrowedAt, &l.DueDate, &l.ReturnedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repo) MarkReturned(ctx context.Context, tx pgx.Tx, loanID int64, at time.Time) error {
	const q = `
		UPDATE loans
		SET status = 'returned',
			returned_at = $2
		WHERE id = $1`
	_, err := tx.Exec(ctx, q, loanID, at)
	return err
}

func (r *repo) UpdateDueDate(ctx context.Context, tx pgx.Tx, loanID int64, due time.Time) error {
	const q = `
		UPDATE loans
		SET due_date = $2
		WHERE id = $1`
	_, err := tx.Exec(ctx, q, loanID, due)
	return err
}

// Reads

func (r *repo) ListActiveByUser(ctx context.Context, userID string) ([]Row, error) {
	return r.list(ctx, `WHERE l.user_id = $1 AND l.status = 'borrowed' ORDER BY l.due_date ASC, l.id ASC`, userID)
}

func (r *repo) ListByUser(ctx context.Context, userID string) ([]Row, error) {
	return r.list(ctx, `WHERE l.user_id = $1 ORDER BY l.borrowed_at DESC, l.id DESC`, userID)
}

func (r *repo) ListOverdue(ctx context.Context, now time.Time) ([]Row, error) {
	return r.list(ctx, `WHERE l.status = 'borrowed' AND l.due_date < $1 ORDER BY l.due_date ASC, l.id ASC`, now)
}

func (r *repo) list(ctx context.Context, where string, args ...any) ([]Row, error) {
	q := `
		SELECT ` + loanColumns + `, ` + bookrepo.Columns("b") + `
		FROM loans l
		LEFT JOIN books b ON b.id = l.book_id
		` + where
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Row{}
	for rows.Next() {
		var (
			l  model.Loan
			nb bookrepo.Nullable
		)
		dest := append([]any{
			&l.ID, &l.UserID, &l.BookID, &l.Status, &l.BorrowedAt, &l.DueDate, &l.ReturnedAt,
		}, nb.Targets()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, Row{Loan: l, Book: nb.Book()})
	}
	return out, rows.Err()
}

func (r *repo) CountBorrowedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	const q = `
		SELECT COUNT(*)
		FROM loans
		WHERE borrowed_at >= $1
		AND borrowed_at < $2`
	var n int64
	err := r.db.Pool.QueryRow(ctx, q, from, to).Scan(&n)
	return n, err
}

func (r *repo) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	const q = `
		SELECT COUNT(*)
		FROM loans
		WHERE status = 'borrowed'
		AND due_date < $1`
	var n int64
	err := r.db.Pool.QueryRow(ctx, q, now).Scan(&n)
	return n, err
}
