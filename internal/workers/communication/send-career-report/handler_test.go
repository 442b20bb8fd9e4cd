// internal/workers/communication/send-career-report/handler_test.go
package sendcareerreport

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "careerfit-workers/internal/common/errors"
	"careerfit-workers/internal/common/logger"
	"careerfit-workers/internal/models"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	calls         []*ses.SendEmailInput
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls = append(m.calls, params)
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	calls       []*sns.PublishInput
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls = append(m.calls, params)
	return m.PublishFunc(ctx, params, optFns...)
}

func okSES() *MockSESService {
	return &MockSESService{SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		return &ses.SendEmailOutput{MessageId: aws.String("ses-1")}, nil
	}}
}

func okSNS() *MockSNSService {
	return &MockSNSService{PublishFunc: func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
		return &sns.PublishOutput{MessageId: aws.String("sns-1")}, nil
	}}
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	cfg := DefaultConfig()
	cfg.SMSEnabled = true
	cfg.FromEmail = "reports@careerfit.example"
	return cfg
}

func createTestInput() *Input {
	return &Input{
		UserID: "42",
		Name:   "Sam",
		Email:  "sam@example.com",
		Phone:  "+15555550100",
		Predictions: []ReportPrediction{
			{Career: "Data Scientist", MatchScore: 81, Growth: "very high"},
			{Career: "Software Engineer", MatchScore: 78},
			{Career: "Business Analyst", MatchScore: 70},
			{Career: "Consultant", MatchScore: 64},
		},
	}
}

func createTestHandler(t *testing.T, cfg *Config, sesClient SESService, snsClient SNSService) *Handler {
	h := NewHandler(cfg, sesClient, snsClient, logger.NewTestLogger(t))
	h.now = func() time.Time { return time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC) }
	return h
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_EmailAndSMS(t *testing.T) {
	sesMock, snsMock := okSES(), okSNS()
	h := createTestHandler(t, createTestConfig(), sesMock, snsMock)

	output, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.Equal(t, StatusSent, output.Status)
	assert.NotEmpty(t, output.ReportID)
	assert.Equal(t, "2024-07-01T12:00:00Z", output.SentAt)
	require.Len(t, output.Notifications, 2)
	assert.Equal(t, models.ChannelEmail, output.Notifications[0].Channel)
	assert.Equal(t, "ses-1", output.Notifications[0].MessageID)
	assert.Equal(t, models.NotificationSent, output.Notifications[1].Status)

	require.Len(t, sesMock.calls, 1)
	text := aws.ToString(sesMock.calls[0].Message.Body.Text.Data)
	assert.Contains(t, text, "Hello Sam,")
	assert.Contains(t, text, "1. Data Scientist - 81% match (very high growth)")
	assert.Contains(t, text, "3. Business Analyst - 70% match")
	assert.NotContains(t, text, "Consultant")
	assert.Equal(t, "reports@careerfit.example", aws.ToString(sesMock.calls[0].Source))

	require.Len(t, snsMock.calls, 1)
	assert.Equal(t, "Your top career match is Data Scientist (81%). Check your email for the full report.",
		aws.ToString(snsMock.calls[0].Message))
}

func TestHandler_Execute_SMSFailureIsPartial(t *testing.T) {
	snsMock := &MockSNSService{PublishFunc: func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
		return nil, errors.New("throttled")
	}}
	h := createTestHandler(t, createTestConfig(), okSES(), snsMock)

	output, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.Equal(t, StatusPartial, output.Status)
	assert.Equal(t, models.NotificationFailed, output.Notifications[1].Status)
	assert.Equal(t, "throttled", output.Notifications[1].Error)
}

func TestHandler_Execute_EmailFailureIsRetryable(t *testing.T) {
	sesMock := &MockSESService{SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		return nil, errors.New("MessageRejected")
	}}
	snsMock := okSNS()
	h := createTestHandler(t, createTestConfig(), sesMock, snsMock)

	_, err := h.Execute(context.Background(), createTestInput())
	require.Error(t, err)

	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeReportSendFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	assert.Empty(t, snsMock.calls)
}

func TestHandler_Execute_ChannelsDisabled(t *testing.T) {
	cfg := createTestConfig()
	cfg.EmailEnabled = false
	cfg.SMSEnabled = false
	sesMock, snsMock := okSES(), okSNS()
	h := createTestHandler(t, cfg, sesMock, snsMock)

	output, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.Equal(t, StatusSkipped, output.Status)
	for _, n := range output.Notifications {
		assert.Equal(t, models.NotificationDisabled, n.Status)
	}
	assert.Empty(t, sesMock.calls)
	assert.Empty(t, snsMock.calls)
}

func TestHandler_Execute_NoPhone(t *testing.T) {
	snsMock := okSNS()
	input := createTestInput()
	input.Phone = ""

	output, err := createTestHandler(t, createTestConfig(), okSES(), snsMock).Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Len(t, output.Notifications, 1)
	assert.Empty(t, snsMock.calls)
}

func TestHandler_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{name: "bad email", mutate: func(in *Input) { in.Email = "not-an-email" }},
		{name: "no predictions", mutate: func(in *Input) { in.Predictions = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := createTestInput()
			tt.mutate(input)

			_, err := createTestHandler(t, createTestConfig(), okSES(), okSNS()).Execute(context.Background(), input)
			stdErr, ok := apperrors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeInvalidRequest, stdErr.Code)
		})
	}
}

func TestRenderEmailHTML_Escapes(t *testing.T) {
	input := createTestInput()
	input.Name = "<script>"
	body := renderEmailHTML(input, 1)
	assert.Contains(t, body, "&lt;script&gt;")
	assert.NotContains(t, body, "Software Engineer")
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, createTestConfig().Validate())
	assert.Error(t, DefaultConfig().Validate())
}
