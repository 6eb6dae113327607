package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"newsletterplatform/internal/domain"
)

const (
	// maxDeliveryAttempts is the total number of delivery attempts per
	// message, including the first.
	maxDeliveryAttempts = 3
	// retryDelay is the fixed wait between attempts.
	retryDelay = 5 * time.Second
)

// dispatchEngine combines template rendering with transport delivery and
// applies bounded retry on transient transport failure. Attempts are
// sequential and block the caller; there is no cancellation once a
// dispatch has begun.
type dispatchEngine struct {
	mailer   domain.Mailer
	renderer domain.TemplateRenderer
	logger   *slog.Logger
	sleep    func(time.Duration)
}

// NewEmailDispatcher returns the dispatch engine over the given transport
// and renderer.
func NewEmailDispatcher(mailer domain.Mailer, renderer domain.TemplateRenderer, logger *slog.Logger) domain.EmailDispatcher {
	return &dispatchEngine{
		mailer:   mailer,
		renderer: renderer,
		logger:   logger,
		sleep:    time.Sleep,
	}
}

// Send renders the named template and attempts delivery up to
// maxDeliveryAttempts times, waiting retryDelay between attempts. A missing
// template fails immediately: that is a configuration error, not a
// transient one. Only transport failures are retried. After the final
// failed attempt Send returns *domain.EmailDeliveryError carrying the
// attempt count.
func (e *dispatchEngine) Send(ctx context.Context, to, subject, templateName string, replacements map[string]string) error {
	html, err := e.renderer.Render(templateName, replacements)
	if err != nil {
		return fmt.Errorf("failed to render template %q: %w", templateName, err)
	}

	msg := domain.EmailMessage{
		To:      to,
		Subject: subject,
		HTML:    html,
	}

	var lastErr error
	for attempt := 1; attempt <= maxDeliveryAttempts; attempt++ {
		err := e.mailer.Deliver(ctx, msg)
		if err == nil {
			e.logger.Info("email delivered",
				"to", to,
				"template", templateName,
				"attempt", attempt,
			)
			return nil
		}

		lastErr = err
		e.logger.Error("email delivery attempt failed",
			"to", to,
			"template", templateName,
			"attempt", attempt,
			"max_attempts", maxDeliveryAttempts,
			"err", err,
		)

		var transportErr *domain.TransportError
		if !errors.As(err, &transportErr) {
			return err
		}
		if attempt < maxDeliveryAttempts {
			e.sleep(retryDelay)
		}
	}

	e.logger.Error("max retries reached, email could not be sent", "to", to, "template", templateName)
	return &domain.EmailDeliveryError{To: to, Attempts: maxDeliveryAttempts, Err: lastErr}
}
