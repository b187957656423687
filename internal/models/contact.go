package models

import "time"

// Contact is a sanitized contact form submission as it is stored and
// forwarded to notification sinks.
type Contact struct {
	ID          int64     `db:"id" json:"id"`
	Reference   string    `db:"-" json:"reference,omitempty"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	Phone       string    `db:"phone" json:"phone"`
	Description string    `db:"description" json:"description"`
	RemoteIP    string    `db:"-" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// PhoneOrDefault returns the phone number, or "Not provided" when empty.
func (c *Contact) PhoneOrDefault() string {
	if c.Phone == "" {
		return "Not provided"
	}
	return c.Phone
}
