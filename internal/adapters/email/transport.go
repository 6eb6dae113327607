package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	mail "github.com/go-mail/mail/v2"

	"newsletterplatform/internal/domain"
)

// deliveryTimeout bounds a single SMTP delivery attempt.
const deliveryTimeout = 10 * time.Second

// SMTPConfig holds configuration for the SMTP transport.
type SMTPConfig struct {
	Host               string
	Port               int
	Username           string
	Password           string
	Secure             bool // implicit TLS on connect
	InsecureSkipVerify bool // trust self-signed certificates
}

// SESConfig holds configuration for the AWS SES transport.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// TransportConfig selects and configures a mail transport. It is an
// immutable value injected at construction; there is no ambient transport
// state.
type TransportConfig struct {
	Provider    string // "smtp", "ses", or "noop"
	FromAddress string
	FromName    string
	SMTP        SMTPConfig
	SES         SESConfig
}

// NewTransport creates a Mailer from config. Provider "smtp" dials the
// configured server per delivery; "ses" uses AWS SES; "noop" or unknown
// logs instead of sending.
func NewTransport(config TransportConfig, logger *slog.Logger) domain.Mailer {
	switch config.Provider {
	case "smtp":
		if config.SMTP.InsecureSkipVerify {
			logger.Warn("TLS certificate verification is disabled for SMTP, use only in development")
		}
		return &smtpTransport{
			config:      config.SMTP,
			fromAddress: config.FromAddress,
			fromName:    config.FromName,
		}
	case "ses":
		sesConfig := config.SES
		if sesConfig.InsecureSkipVerify {
			logger.Warn("TLS certificate verification is disabled for SES, use only in development")
		}
		httpClient := &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: sesConfig.InsecureSkipVerify,
					MinVersion:         tls.VersionTLS12,
				},
			},
		}
		awsCfg := aws.Config{
			Region: sesConfig.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					sesConfig.AccessKeyID,
					sesConfig.SecretAccessKey,
					"",
				),
			),
			HTTPClient: httpClient,
		}
		return &sesTransport{
			client:      ses.NewFromConfig(awsCfg),
			fromAddress: config.FromAddress,
			fromName:    config.FromName,
			logger:      logger,
		}
	case "noop":
		return &noopTransport{logger: logger}
	default:
		logger.Warn("unknown email provider, using noop", "provider", config.Provider)
		return &noopTransport{logger: logger}
	}
}

func formatSender(address, name string) string {
	if name != "" {
		return fmt.Sprintf("%s <%s>", name, address)
	}
	return address
}

type smtpTransport struct {
	config      SMTPConfig
	fromAddress string
	fromName    string
}

func (t *smtpTransport) Deliver(_ context.Context, msg domain.EmailMessage) error {
	dialer := mail.NewDialer(t.config.Host, t.config.Port, t.config.Username, t.config.Password)
	dialer.Timeout = deliveryTimeout
	dialer.SSL = t.config.Secure
	if t.config.InsecureSkipVerify {
		dialer.TLSConfig = &tls.Config{
			ServerName:         t.config.Host,
			InsecureSkipVerify: true,
			MinVersion:         tls.VersionTLS12,
		}
	}

	from := msg.From
	if from == "" {
		from = formatSender(t.fromAddress, t.fromName)
	}

	m := mail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := dialer.DialAndSend(m); err != nil {
		return &domain.TransportError{Err: err}
	}
	return nil
}

type sesTransport struct {
	client      *ses.Client
	fromAddress string
	fromName    string
	logger      *slog.Logger
}

func (t *sesTransport) Deliver(ctx context.Context, msg domain.EmailMessage) error {
	from := msg.From
	if from == "" {
		from = formatSender(t.fromAddress, t.fromName)
	}
	input := &ses.SendEmailInput{
		Source: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(msg.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data:    aws.String(msg.HTML),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}
	result, err := t.client.SendEmail(ctx, input)
	if err != nil {
		return &domain.TransportError{Err: err}
	}
	t.logger.Info("email sent via SES", "to", msg.To, "message_id", aws.ToString(result.MessageId))
	return nil
}

type noopTransport struct {
	logger *slog.Logger
}

func (t *noopTransport) Deliver(_ context.Context, msg domain.EmailMessage) error {
	t.logger.Info("email would be sent (noop)", "to", msg.To, "subject", msg.Subject)
	return nil
}
