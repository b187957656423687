package repository

import (
	"context"

	"github.com/osa911/portfolio/internal/models"
)

// ContactRepository defines the interface for contact-related database operations
type ContactRepository interface {
	// Create inserts a contact row and fills in its ID
	Create(ctx context.Context, contact *models.Contact) error
	// List returns the most recent contacts, newest first
	List(ctx context.Context, limit int) ([]*models.Contact, error)
	// Count returns the total number of stored contacts
	Count(ctx context.Context) (int64, error)
}
