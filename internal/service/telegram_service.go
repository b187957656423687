package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/osa911/portfolio/internal/models"
)

const telegramAPIURL = "https://api.telegram.org"

// TelegramService handles sending messages to Telegram
type TelegramService struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
}

// NewTelegramService creates a new Telegram service
func NewTelegramService(botToken, chatID string, client *http.Client) *TelegramService {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &TelegramService{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  telegramAPIURL,
		client:   client,
	}
}

// WithBaseURL points the service at another Bot API host.
func (s *TelegramService) WithBaseURL(baseURL string) *TelegramService {
	s.baseURL = baseURL
	return s
}

// Configured reports whether both the bot token and chat ID are set.
func (s *TelegramService) Configured() bool {
	return s.botToken != "" && s.chatID != ""
}

// telegramMessage represents a Telegram API message
type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

func (s *TelegramService) Name() string {
	return "telegram"
}

// Notify sends a contact form message to Telegram
func (s *TelegramService) Notify(ctx context.Context, contact *models.Contact) error {
	if !s.Configured() {
		return fmt.Errorf("telegram bot token or chat ID: %w", ErrNotConfigured)
	}

	payload := telegramMessage{
		ChatID:    s.chatID,
		Text:      formatTelegramText(contact),
		ParseMode: "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return checkStatus("telegram", resp)
}

func formatTelegramText(contact *models.Contact) string {
	return fmt.Sprintf(
		"🆕 <b>New Contact Form Submission</b>\n\n"+
			"<b>Name:</b> %s\n"+
			"<b>Email:</b> %s\n"+
			"<b>Phone:</b> %s\n"+
			"<b>Message:</b>\n%s",
		html.EscapeString(contact.Name),
		html.EscapeString(contact.Email),
		html.EscapeString(contact.PhoneOrDefault()),
		html.EscapeString(contact.Description),
	)
}
