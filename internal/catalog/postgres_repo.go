package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo loads the catalog from catalog_books / catalog_reviews and can
// seed those tables.
type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Load implements Source.
func (r *PostgresRepo) Load(ctx context.Context) (Collection, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, `
		SELECT isbn, author, title
		FROM catalog_books
		ORDER BY position ASC, isbn ASC`)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	var out Collection
	positions := make(map[string]int)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ISBN, &e.Book.Author, &e.Book.Title); err != nil {
			return nil, err
		}
		e.Book.Reviews = map[string]string{}
		positions[e.ISBN] = len(out)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	reviewRows, err := r.db.Query(timeoutCtx, `SELECT isbn, reviewer, review FROM catalog_reviews`)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer reviewRows.Close()

	for reviewRows.Next() {
		var isbn, reviewer, review string
		if err := reviewRows.Scan(&isbn, &reviewer, &review); err != nil {
			return nil, err
		}
		if i, ok := positions[isbn]; ok {
			out[i].Book.Reviews[reviewer] = review
		}
	}
	return out, reviewRows.Err()
}

// Seed replaces the stored catalog with c in a single transaction.
func (r *PostgresRepo) Seed(ctx context.Context, c Collection) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return err
	}
	defer tx.Rollback(timeoutCtx)

	if _, err := tx.Exec(timeoutCtx, `DELETE FROM catalog_books`); err != nil {
		return fmt.Errorf("clear books: %w", err)
	}

	const bookSQL = `
		INSERT INTO catalog_books (isbn, position, author, title)
		VALUES ($1, $2, $3, $4)`
	const reviewSQL = `
		INSERT INTO catalog_reviews (isbn, reviewer, review)
		VALUES ($1, $2, $3)`

	for i, e := range c {
		if _, err := tx.Exec(timeoutCtx, bookSQL, e.ISBN, i, e.Book.Author, e.Book.Title); err != nil {
			return fmt.Errorf("insert book %s: %w", e.ISBN, err)
		}
		for reviewer, review := range e.Book.Reviews {
			if _, err := tx.Exec(timeoutCtx, reviewSQL, e.ISBN, reviewer, review); err != nil {
				return fmt.Errorf("insert review %s/%s: %w", e.ISBN, reviewer, err)
			}
		}
	}

	return tx.Commit(timeoutCtx)
}
