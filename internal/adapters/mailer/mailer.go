// Package mailer implements the outbound email port. The resend mailer talks
// to the Resend REST API; the log mailer writes the payload to the log and is
// the default for development.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pacemaker/core/internal/adapters/i18n"
	"github.com/pacemaker/core/internal/infrastructure/config"
	"github.com/pacemaker/core/internal/infrastructure/logger"
	"github.com/pacemaker/core/internal/ports"
)

// New builds a mailer from configuration. Unknown types fall back to the log
// mailer so a misconfigured environment degrades to visible no-ops instead of
// failing requests.
func New(cfg config.MailerConfig, translator ports.Translator, log *logger.Logger) ports.Mailer {
	switch cfg.Type {
	case "resend":
		log.Infow("Initializing resend mailer", "base_url", cfg.BaseURL)
		return &ResendMailer{
			cfg:        cfg,
			translator: translator,
			client:     &http.Client{Timeout: cfg.Timeout},
			logger:     log,
		}
	case "log":
		log.Info("Initializing log mailer")
		return &LogMailer{translator: translator, logger: log}
	default:
		log.Warnw("Unknown mailer type, defaulting to log mailer", "type", cfg.Type)
		return &LogMailer{translator: translator, logger: log}
	}
}

// LogMailer writes every email to the application log instead of sending it.
type LogMailer struct {
	translator ports.Translator
	logger     *logger.Logger
}

// Send logs a progress update payload.
func (m *LogMailer) Send(ctx context.Context, update ports.ProgressUpdate) error {
	m.logger.Infow("Sending email (log mailer)",
		"to", update.Email,
		"subject", m.translator.Translate(i18n.DefaultLang, "mail.progress.subject"),
		"goal_title", update.GoalTitle,
		"message", update.Message,
		"progress", update.ProgressPercent,
	)
	return nil
}

// SendLoginLink logs a magic-link email.
func (m *LogMailer) SendLoginLink(ctx context.Context, email, lang, link string) error {
	m.logger.Infow("Sending login link (log mailer)",
		"to", email,
		"subject", m.translator.Translate(lang, "mail.login.subject"),
		"link", link,
	)
	return nil
}

// ResendMailer delivers mail through the Resend HTTP API.
type ResendMailer struct {
	cfg        config.MailerConfig
	translator ports.Translator
	client     *http.Client
	logger     *logger.Logger
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers a progress update email.
func (m *ResendMailer) Send(ctx context.Context, update ports.ProgressUpdate) error {
	html, err := renderProgressEmail(update)
	if err != nil {
		return fmt.Errorf("failed to render progress email: %w", err)
	}

	subject := m.translator.Translate(i18n.DefaultLang, "mail.progress.subject")
	return m.deliver(ctx, update.Email, subject, html)
}

// SendLoginLink delivers a magic-link email.
func (m *ResendMailer) SendLoginLink(ctx context.Context, email, lang, link string) error {
	html, err := renderLoginEmail(loginEmailData{
		Body: m.translator.Translate(lang, "mail.login.body"),
		Link: link,
	})
	if err != nil {
		return fmt.Errorf("failed to render login email: %w", err)
	}

	subject := m.translator.Translate(lang, "mail.login.subject")
	return m.deliver(ctx, email, subject, html)
}

func (m *ResendMailer) deliver(ctx context.Context, to, subject, html string) error {
	payload := resendRequest{
		From:    m.cfg.From,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.BaseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call email API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		m.logger.Warnw("Email API returned error", "status", resp.StatusCode, "to", to)
		return fmt.Errorf("email API returned status %d", resp.StatusCode)
	}

	m.logger.Infow("Email sent", "to", to, "subject", subject)
	return nil
}
