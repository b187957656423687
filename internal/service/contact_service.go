package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osa911/portfolio/internal/fanout"
	"github.com/osa911/portfolio/internal/logging"
	"github.com/osa911/portfolio/internal/models"
	"github.com/osa911/portfolio/internal/repository"
)

// ContactService delivers sanitized submissions to every configured sink
type ContactService struct {
	contactRepo repository.ContactRepository
	notifiers   []Notifier
	logger      *logging.Logger
}

// NewContactService creates a new contact service. A nil repository means
// no database is configured; the database step then fails on every call.
func NewContactService(contactRepo repository.ContactRepository, logger *logging.Logger, notifiers ...Notifier) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		notifiers:   notifiers,
		logger:      logger,
	}
}

// Deliver persists the contact and notifies every sink concurrently. It
// reports whether at least one sink succeeded. Individual failures are
// logged and never returned.
func (s *ContactService) Deliver(ctx context.Context, contact *models.Contact) (bool, fanout.Results) {
	if contact.Reference == "" {
		contact.Reference = uuid.NewString()
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now().UTC()
	}

	s.logger.Info("Processing contact submission %s: name=%q email=%q phone=%q descriptionLength=%d",
		contact.Reference, contact.Name, contact.Email, contact.PhoneOrDefault(), len([]rune(contact.Description)))

	effects := make([]fanout.Effect, 0, len(s.notifiers)+1)
	effects = append(effects, fanout.Effect{Name: "database", Run: func(ctx context.Context) error {
		return s.store(ctx, contact)
	}})
	for _, n := range s.notifiers {
		effects = append(effects, fanout.Effect{Name: n.Name(), Run: func(ctx context.Context) error {
			return n.Notify(ctx, contact)
		}})
	}

	delivered, results := fanout.Evaluate(ctx, fanout.AnyOf, effects...)

	for _, r := range results {
		if r.OK() {
			s.logger.Debug("Contact %s: %s succeeded in %s", contact.Reference, r.Name, r.Duration)
			continue
		}
		s.logger.Warn("Contact %s: %s failed: %v", contact.Reference, r.Name, r.Err)
	}
	if !delivered {
		s.logger.Error("Contact %s: every sink failed, responding with fallback message", contact.Reference)
	}

	return delivered, results
}

func (s *ContactService) store(ctx context.Context, contact *models.Contact) error {
	if s.contactRepo == nil {
		return fmt.Errorf("database: %w", ErrNotConfigured)
	}
	// Copy so the concurrent notifiers never observe the ID write.
	row := *contact
	if err := s.contactRepo.Create(ctx, &row); err != nil {
		return err
	}
	return nil
}
