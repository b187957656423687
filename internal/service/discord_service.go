package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/osa911/portfolio/internal/api/sanitization"
	"github.com/osa911/portfolio/internal/models"
)

const (
	discordEmbedTitle  = "New Contact Form Submission"
	discordEmbedColor  = 0x3b82f6
	discordEmbedFooter = "Personal Portfolio Contact Form"
	discordMessageMax  = 1000
)

// DiscordService posts contact submissions to a Discord webhook
type DiscordService struct {
	webhookURL string
	client     *http.Client
	now        func() time.Time
}

// NewDiscordService creates a new Discord webhook service. An empty URL
// yields a service whose Notify always fails with ErrNotConfigured.
func NewDiscordService(webhookURL string, client *http.Client) *DiscordService {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &DiscordService{
		webhookURL: webhookURL,
		client:     client,
		now:        time.Now,
	}
}

type discordWebhook struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title     string         `json:"title"`
	Color     int            `json:"color"`
	Fields    []discordField `json:"fields"`
	Timestamp string         `json:"timestamp"`
	Footer    discordFooter  `json:"footer"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text string `json:"text"`
}

func (s *DiscordService) Name() string {
	return "discord"
}

// Notify sends the contact as a single embed.
func (s *DiscordService) Notify(ctx context.Context, contact *models.Contact) error {
	if s.webhookURL == "" {
		return fmt.Errorf("discord webhook URL: %w", ErrNotConfigured)
	}

	jsonData, err := json.Marshal(s.buildPayload(contact))
	if err != nil {
		return fmt.Errorf("failed to marshal discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send discord webhook: %w", err)
	}
	return checkStatus("discord", resp)
}

func (s *DiscordService) buildPayload(contact *models.Contact) discordWebhook {
	message := contact.Description
	if truncated := sanitization.Truncate(message, discordMessageMax); truncated != message {
		message = truncated + "..."
	}

	return discordWebhook{
		Embeds: []discordEmbed{{
			Title: discordEmbedTitle,
			Color: discordEmbedColor,
			Fields: []discordField{
				{Name: "👤 Name", Value: contact.Name, Inline: true},
				{Name: "📧 Email", Value: contact.Email, Inline: true},
				{Name: "📞 Phone", Value: contact.PhoneOrDefault(), Inline: true},
				{Name: "💬 Message", Value: message, Inline: false},
			},
			Timestamp: s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			Footer:    discordFooter{Text: discordEmbedFooter},
		}},
	}
}
