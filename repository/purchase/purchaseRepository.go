package purchaserepo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Anneshtika/library-management-website/model"
	bookrepo "github.com/Anneshtika/library-management-website/repository/book"
	"github.com/Anneshtika/library-management-website/util/database"
)

type Repo interface {
	// Create records a purchase at the book's current price. It returns
	// pgx.ErrNoRows when the book does not exist.
	Create(ctx context.Context, userID string, bookID int64, at time.Time) (*model.Purchase, error)
	ListByUser(ctx context.Context, userID string) ([]model.PurchaseView, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, userID string, bookID int64, at time.Time) (*model.Purchase, error) {
	// Price is read and stored in the same statement.
	const q = `
INSERT INTO purchases (user_id, book_id, price, purchased_at)
SELECT $1, b.id, b.price, $3
FROM books b
WHERE b.id = $2
RETURNING id, user_id, book_id, price, purchased_at`
	var p model.Purchase
	if err := r.db.Pool.QueryRow(ctx, q, userID, bookID, at).Scan(
		&p.ID, &p.UserID, &p.BookID, &p.Price, &p.PurchasedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) ListByUser(ctx context.Context, userID string) ([]model.PurchaseView, error) {
	q := `
SELECT p.id, p.user_id, p.book_id, p.price, p.purchased_at, ` + bookrepo.Columns("b") + `
FROM purchases p
LEFT JOIN books b ON b.id = p.book_id
WHERE p.user_id = $1
ORDER BY p.purchased_at DESC, p.id DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.PurchaseView{}
	for rows.Next() {
		var (
			p  model.Purchase
			nb bookrepo.Nullable
		)
		dest := append([]any{&p.ID, &p.UserID, &p.BookID, &p.Price, &p.PurchasedAt}, nb.Targets()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, model.PurchaseView{Purchase: p, Book: nb.Book()})
	}
	return out, rows.Err()
}

func (r *repo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM purchases WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *repo) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	const q = `
SELECT COALESCE(SUM(price), 0)
FROM purchases
WHERE purchased_at >= $1
  AND purchased_at < $2`
	var sum decimal.Decimal
	err := r.db.Pool.QueryRow(ctx, q, from, to).Scan(&sum)
	return sum, err
}
