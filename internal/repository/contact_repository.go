package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/osa911/portfolio/internal/db"
	"github.com/osa911/portfolio/internal/models"
)

const (
	insertContactQuery = `
		INSERT INTO contacts (name, email, phone, description)
		VALUES (:name, :email, :phone, :description)`

	listContactsQuery = `
		SELECT id, name, email, phone, description, created_at
		FROM contacts
		ORDER BY id DESC
		LIMIT ?`

	countContactsQuery = `SELECT COUNT(*) FROM contacts`
)

// sqlxDB is the subset of *sqlx.DB the repository uses.
type sqlxDB interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Rebind(query string) string
}

type contactRepository struct {
	db     sqlxDB
	driver string

	mu         sync.Mutex
	insertStmt *sqlx.NamedStmt
}

// NewContactRepository creates a new contact repository
func NewContactRepository(database *db.Database) ContactRepository {
	return &contactRepository{
		db:     database.DB,
		driver: database.Driver,
	}
}

// insert returns the prepared insert statement. It is prepared on first use
// and kept only once preparation succeeds, so a failed attempt is retried.
func (r *contactRepository) insert(ctx context.Context) (*sqlx.NamedStmt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.insertStmt != nil {
		return r.insertStmt, nil
	}

	query := insertContactQuery
	if r.driver == db.DriverPostgres {
		query += " RETURNING id"
	}
	// The statement outlives the request that happens to prepare it.
	stmt, err := r.db.PrepareNamedContext(context.WithoutCancel(ctx), query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare contact insert: %w", err)
	}
	r.insertStmt = stmt
	return stmt, nil
}

func (r *contactRepository) Create(ctx context.Context, contact *models.Contact) error {
	stmt, err := r.insert(ctx)
	if err != nil {
		return err
	}

	if r.driver == db.DriverPostgres {
		if err := stmt.QueryRowxContext(ctx, contact).Scan(&contact.ID); err != nil {
			return fmt.Errorf("failed to insert contact: %w", err)
		}
		return nil
	}

	result, err := stmt.ExecContext(ctx, contact)
	if err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		contact.ID = id
	}
	return nil
}

func (r *contactRepository) List(ctx context.Context, limit int) ([]*models.Contact, error) {
	if limit <= 0 {
		limit = 20
	}

	contacts := []*models.Contact{}
	if err := r.db.SelectContext(ctx, &contacts, r.db.Rebind(listContactsQuery), limit); err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

func (r *contactRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, countContactsQuery); err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}
	return count, nil
}
