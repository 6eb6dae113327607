package domain

import (
	"context"
	"errors"
	"fmt"
)

// ErrTemplateNotFound reports a missing email template file. A missing
// template is a configuration error and is never retried.
var ErrTemplateNotFound = errors.New("email template not found")

// EmailMessage is a single outbound email. It is built per notification
// event and consumed once; nothing is persisted. An empty From falls back
// to the transport's configured sender.
type EmailMessage struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Mailer delivers a single message over a configured transport. The
// connection is established per call and implementations do not retry;
// retry is the dispatcher's responsibility. Any network, auth, or protocol
// failure surfaces as *TransportError.
type Mailer interface {
	Deliver(ctx context.Context, msg EmailMessage) error
}

// TemplateRenderer renders a named HTML template, substituting every
// literal {{key}} token with its replacement value.
type TemplateRenderer interface {
	Render(templateName string, replacements map[string]string) (string, error)
}

// EmailDispatcher orchestrates template rendering, transport delivery, and
// bounded retry for one outbound email. There is no idempotency key: two
// identical Send calls send two emails.
type EmailDispatcher interface {
	Send(ctx context.Context, to, subject, templateName string, replacements map[string]string) error
}

// TransportError wraps a failure from the mail transport. Internal to the
// dispatch engine; never user-facing.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "mail transport: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// EmailDeliveryError reports that every delivery attempt for a message
// failed. It is operational: safe to surface to logs and callers.
type EmailDeliveryError struct {
	To       string
	Attempts int
	Err      error
}

func (e *EmailDeliveryError) Error() string {
	return fmt.Sprintf("failed to send email to %s after %d attempts: %v", e.To, e.Attempts, e.Err)
}

func (e *EmailDeliveryError) Unwrap() error { return e.Err }
