package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"abbafoods/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the body of a QueueEmail job.
type EmailJobPayload struct {
	To         []string `json:"to"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	AttachPath string   `json:"attach_path,omitempty"`
}

// Sender is satisfied by *infra.Mailer.
type Sender interface {
	Send(to []string, subject, body, attachPath string) error
}

// EmailWorker delivers mails through the SMTP circuit breaker so a dead
// relay fails fast instead of holding a worker for the dial timeout.
type EmailWorker struct {
	sender Sender
	cb     *infra.CircuitBreaker
}

func NewEmailWorker(sender Sender, cb *infra.CircuitBreaker) *EmailWorker {
	return &EmailWorker{sender: sender, cb: cb}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email_worker: invalid payload: %w", err)
	}
	if len(payload.To) == 0 {
		log.Warn().Str("subject", payload.Subject).Msg("email_worker: no recipients, skipping")
		return nil
	}

	err := w.cb.Execute(func() error {
		return w.sender.Send(payload.To, payload.Subject, payload.Body, payload.AttachPath)
	})
	if errors.Is(err, infra.ErrMailerNoConfigurado) {
		log.Warn().Msg("email_worker: SMTP not configured, dropping mail")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Strs("to", payload.To).Str("subject", payload.Subject).Msg("email_worker: sent")
	return nil
}
