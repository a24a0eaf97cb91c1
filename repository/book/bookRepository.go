package bookrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Anneshtika/library-management-website/model"
	"github.com/Anneshtika/library-management-website/util/database"
)

// ISBNConstraint is the unique index guarding Book.ISBN.
const ISBNConstraint = "books_isbn_key"

var columns = []string{
	"id", "title", "author", "isbn", "category", "description", "cover_url",
	"price", "total_copies", "available_copies", "rating", "created_at", "updated_at",
}

// Columns returns the book columns qualified with alias, for joins.
func Columns(alias string) string {
	qualified := make([]string, len(columns))
	for i, c := range columns {
		qualified[i] = alias + "." + c
	}
	return strings.Join(qualified, ", ")
}

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	Detail(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// Row-locked operations, only valid inside a transaction.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Book, error)
	Update(ctx context.Context, tx pgx.Tx, b *model.Book) error
	DecrementAvailable(ctx context.Context, tx pgx.Tx, id int64) (bool, error)
	IncrementAvailable(ctx context.Context, tx pgx.Tx, id int64) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	const q = `
INSERT INTO books (title, author, isbn, category, description, cover_url, price, total_copies, available_copies, rating)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING id, created_at, updated_at`
	return r.db.Pool.QueryRow(ctx, q,
		b.Title, b.Author, b.ISBN, b.Category, b.Description, b.CoverURL,
		b.Price, b.TotalCopies, b.AvailableCopies, b.Rating,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Book, error) {
	q := `SELECT ` + Columns("b") + ` FROM books b WHERE b.id = $1`
	return scanOne(r.db.Pool.QueryRow(ctx, q, id))
}

func (r *repo) List(ctx context.Context, f model.BookFilter) ([]model.Book, error) {
	q, args, err := listQuery(f)
	if err != nil {
		return nil, fmt.Errorf("build book query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Book{}
	for rows.Next() {
		b, err := scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *repo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT DISTINCT category FROM books ORDER BY category`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&n)
	return n, err
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repo) LockForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Book, error) {
	q := `SELECT ` + Columns("b") + ` FROM books b WHERE b.id = $1 FOR UPDATE`
	return scanOne(tx.QueryRow(ctx, q, id))
}

func (r *repo) Update(ctx context.Context, tx pgx.Tx, b *model.Book) error {
	const q = `
UPDATE books
SET title = $2,
	author = $3,
	isbn = $4,
	category = $5,
	description = $6,
	cover_url = $7,
	price = $8,
	total_copies = $9,
	available_copies = $10,
	rating = $11,
	updated_at = NOW()
WHERE id = $1
RETURNING updated_at`
	return tx.QueryRow(ctx, q,
		b.ID, b.Title, b.Author, b.ISBN, b.Category, b.Description, b.CoverURL,
		b.Price, b.TotalCopies, b.AvailableCopies, b.Rating,
	).Scan(&b.UpdatedAt)
}

func (r *repo) DecrementAvailable(ctx context.Context, tx pgx.Tx, id int64) (bool, error) {
	// Guard: only take a copy if one is left.
	const q = `
UPDATE books
SET available_copies = available_copies - 1,
	updated_at = NOW()
WHERE id = $1
  AND available_copies > 0`
	tag, err := tx.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repo) IncrementAvailable(ctx context.Context, tx pgx.Tx, id int64) (bool, error) {
	const q = `
UPDATE books
SET available_copies = LEAST(available_copies + 1, total_copies),
	updated_at = NOW()
WHERE id = $1`
	tag, err := tx.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanOne(row pgx.Row) (*model.Book, error) {
	var b model.Book
	if err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Category, &b.Description, &b.CoverURL,
		&b.Price, &b.TotalCopies, &b.AvailableCopies, &b.Rating, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func listQuery(f model.BookFilter) (string, []any, error) {
	cols := make([]any, len(columns))
	for i, c := range columns {
		cols[i] = c
	}
	ds := goqu.Dialect("postgres").From("books").Select(cols...).Order(goqu.I("id").Asc())

	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		ds = ds.Where(goqu.Or(
			goqu.I("title").ILike(pattern),
			goqu.I("author").ILike(pattern),
			goqu.I("category").ILike(pattern),
		))
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		ds = ds.Where(goqu.I("category").Eq(c))
	}
	return ds.Prepared(true).ToSQL()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Nullable scans the book side of a LEFT JOIN, where every column may be NULL
// because the book was deleted.
type Nullable struct {
	ID              *int64
	Title           *string
	Author          *string
	ISBN            *string
	Category        *string
	Description     *string
	CoverURL        *string
	Price           decimal.NullDecimal
	TotalCopies     *int
	AvailableCopies *int
	Rating          *float64
	CreatedAt       *time.Time
	UpdatedAt       *time.Time
}

// Targets returns scan destinations in Columns order.
func (n *Nullable) Targets() []any {
	return []any{
		&n.ID, &n.Title, &n.Author, &n.ISBN, &n.Category, &n.Description, &n.CoverURL,
		&n.Price, &n.TotalCopies, &n.AvailableCopies, &n.Rating, &n.CreatedAt, &n.UpdatedAt,
	}
}

// Book returns the scanned book, or nil when the join found none.
func (n *Nullable) Book() *model.Book {
	if n.ID == nil {
		return nil
	}
	b := &model.Book{
		ID:          *n.ID,
		ISBN:        n.ISBN,
		Description: n.Description,
		CoverURL:    n.CoverURL,
		Price:       n.Price.Decimal,
		Rating:      n.Rating,
	}
	b.Title = deref(n.Title)
	b.Author = deref(n.Author)
	b.Category = deref(n.Category)
	if n.TotalCopies != nil {
		b.TotalCopies = *n.TotalCopies
	}
	if n.AvailableCopies != nil {
		b.AvailableCopies = *n.AvailableCopies
	}
	if n.CreatedAt != nil {
		b.CreatedAt = *n.CreatedAt
	}
	if n.UpdatedAt != nil {
		b.UpdatedAt = *n.UpdatedAt
	}
	return b
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
