package service

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/osa911/portfolio/internal/models"
)

// Notifier forwards a stored contact submission to an external sink.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, contact *models.Contact) error
}

// checkStatus drains a response and turns a non-2xx status into an error.
func checkStatus(sink string, resp *http.Response) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s API returned status %d: %s", sink, resp.StatusCode, body)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
