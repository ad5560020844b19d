package notify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/khusela/internal/application"
	"github.com/MrJamesThe3rd/khusela/internal/notify"
)

type fakeSES struct {
	sent []*ses.SendEmailInput
	err  error
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.sent = append(f.sent, params)
	return &ses.SendEmailOutput{}, f.err
}

type fakeSNS struct {
	sent []*sns.PublishInput
	err  error
}

func (f *fakeSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.sent = append(f.sent, params)
	return &sns.PublishOutput{}, f.err
}

func approved(cell, email string) *application.Application {
	return &application.Application{
		ID:     uuid.New(),
		Status: application.StatusApproved,
		Client: &application.Client{FirstName: "Jane", Cell: cell, Email: email},
	}
}

func TestNotifier_StatusChanged(t *testing.T) {
	type testCase struct {
		name       string
		app        *application.Application
		sesErr     error
		snsErr     error
		wantSMS    int
		wantEmails int
		wantErr    bool
	}

	tests := []testCase{
		{
			name:       "BothChannels",
			app:        approved("082 123 4567", "jane@example.com"),
			wantSMS:    1,
			wantEmails: 1,
		},
		{
			name:    "SMSOnly",
			app:     approved("0821234567", ""),
			wantSMS: 1,
		},
		{
			name:       "InvalidCellStillEmails",
			app:        approved("12345", "jane@example.com"),
			wantEmails: 1,
		},
		{
			name:    "NoRecipient",
			app:     approved("", ""),
			wantErr: true,
		},
		{
			name:       "SMSFailureStillEmails",
			app:        approved("0821234567", "jane@example.com"),
			snsErr:     errors.New("throttled"),
			wantSMS:    1,
			wantEmails: 1,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sesClient := &fakeSES{err: tt.sesErr}
			snsClient := &fakeSNS{err: tt.snsErr}

			err := notify.New(sesClient, snsClient, "no-reply@khusela.co.za").StatusChanged(context.Background(), tt.app)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.Len(t, snsClient.sent, tt.wantSMS)
			assert.Len(t, sesClient.sent, tt.wantEmails)
		})
	}
}

func TestNotifier_StatusChanged_Message(t *testing.T) {
	sesClient := &fakeSES{}
	snsClient := &fakeSNS{}

	app := approved("082 123 4567", "jane@example.com")
	app.Status = application.StatusPendingDocs

	require.NoError(t, notify.New(sesClient, snsClient, "no-reply@khusela.co.za").StatusChanged(context.Background(), app))

	require.Len(t, snsClient.sent, 1)
	assert.Equal(t, "+27821234567", aws.ToString(snsClient.sent[0].PhoneNumber))
	assert.Contains(t, aws.ToString(snsClient.sent[0].Message), "more documents")

	require.Len(t, sesClient.sent, 1)
	assert.Equal(t, "no-reply@khusela.co.za", aws.ToString(sesClient.sent[0].Source))
	assert.Equal(t, []string{"jane@example.com"}, sesClient.sent[0].Destination.ToAddresses)
	assert.Equal(t, "Your Khusela application: Pending Docs", aws.ToString(sesClient.sent[0].Message.Subject.Data))
}

func TestNormalizePhone(t *testing.T) {
	tests := map[string]string{
		"0821234567":      "+27821234567",
		"082 123 4567":    "+27821234567",
		"+27 82 123 4567": "+27821234567",
		"27821234567":     "+27821234567",
		"(082) 123-4567":  "+27821234567",
		"082123456":       "",
		"082-abc-4567":    "",
		"":                "",
	}

	for in, want := range tests {
		assert.Equal(t, want, notify.NormalizePhone(in), in)
	}
}
