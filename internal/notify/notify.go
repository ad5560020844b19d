package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/MrJamesThe3rd/khusela/internal/application"
	"github.com/MrJamesThe3rd/khusela/internal/metrics"
)

var ErrNoRecipient = errors.New("client has no cell number or email address")

type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Notifier tells a client by SMS and email that their application changed status.
type Notifier struct {
	ses  SESAPI
	sns  SNSAPI
	from string
}

func New(sesClient SESAPI, snsClient SNSAPI, from string) *Notifier {
	return &Notifier{ses: sesClient, sns: snsClient, from: from}
}

// NewAWS builds a Notifier from the default AWS credential chain.
func NewAWS(ctx context.Context, region, from string) (*Notifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return New(ses.NewFromConfig(cfg), sns.NewFromConfig(cfg), from), nil
}

// StatusChanged sends the SMS and the email independently. Both are attempted
// and their errors joined.
func (n *Notifier) StatusChanged(ctx context.Context, app *application.Application) error {
	if app.Client == nil {
		return ErrNoRecipient
	}

	phone := NormalizePhone(app.Client.Cell)
	email := strings.TrimSpace(app.Client.Email)

	if phone == "" && email == "" {
		return ErrNoRecipient
	}

	subject, body := message(app)

	var errs []error

	if phone != "" {
		err := n.sendSMS(ctx, phone, body)
		record("sms", err)

		if err != nil {
			errs = append(errs, fmt.Errorf("sending sms: %w", err))
		}
	}

	if email != "" {
		err := n.sendEmail(ctx, email, subject, body)
		record("email", err)

		if err != nil {
			errs = append(errs, fmt.Errorf("sending email: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (n *Notifier) sendSMS(ctx context.Context, to, body string) error {
	_, err := n.sns.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(body),
	})

	return err
}

func (n *Notifier) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := n.ses.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body:    &types.Body{Text: &types.Content{Data: aws.String(body)}},
		},
		Source: aws.String(n.from),
	})

	return err
}

func record(channel string, err error) {
	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}

	metrics.NotificationsSent.WithLabelValues(channel, outcome).Inc()
}

func message(app *application.Application) (string, string) {
	name := app.Client.FirstName
	subject := "Your Khusela application: " + string(app.Status)

	var body string

	switch app.Status {
	case application.StatusApproved:
		body = fmt.Sprintf("Hi %s, good news: your Khusela application has been approved. Your consultant will contact you with the next steps.", name)
	case application.StatusRejected:
		body = fmt.Sprintf("Hi %s, unfortunately your Khusela application was not approved. Please contact your consultant for more information.", name)
	case application.StatusPendingDocs:
		body = fmt.Sprintf("Hi %s, we need more documents to process your Khusela application. Please send your ID, latest payslip and proof of address to your consultant.", name)
	default:
		body = fmt.Sprintf("Hi %s, your Khusela application status is now %s.", name, app.Status)
	}

	return subject, body
}

// NormalizePhone turns a South African cell number into E.164 (+27...).
// Numbers that cannot be normalised return "".
func NormalizePhone(cell string) string {
	var b strings.Builder

	for i, r := range strings.TrimSpace(cell) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return ""
		}
	}

	digits := b.String()

	switch {
	case strings.HasPrefix(digits, "+27") && len(digits) == 12:
		return digits
	case strings.HasPrefix(digits, "27") && len(digits) == 11:
		return "+" + digits
	case strings.HasPrefix(digits, "0") && len(digits) == 10:
		return "+27" + digits[1:]
	default:
		return ""
	}
}

// Noop is used when notifications are disabled.
type Noop struct{}

func (Noop) StatusChanged(_ context.Context, app *application.Application) error {
	slog.Debug("notifications disabled, skipping", "application_id", app.ID, "status", app.Status)
	return nil
}
