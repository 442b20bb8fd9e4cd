// internal/workers/communication/send-career-report/handler.go
package sendcareerreport

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"careerfit-workers/internal/common/camunda"
	apperrors "careerfit-workers/internal/common/errors"
	"careerfit-workers/internal/common/logger"
	"careerfit-workers/internal/common/metrics"
	"careerfit-workers/internal/common/validation"
	"careerfit-workers/internal/models"
)

const (
	TaskType = "send-career-report"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config     *Config
	sesClient  SESService
	snsClient  SNSService
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
	now        func() time.Time
}

func NewHandler(config *Config, sesClient SESService, snsClient SNSService, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		sesClient:  sesClient,
		snsClient:  snsClient,
		errHandler: apperrors.NewErrorHandler(l),
		logger:     l,
		now:        time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	result, err := validation.CareerReportRequest.ValidateJSON([]byte(job.Variables))
	if err != nil || !result.Valid {
		details := "invalid job variables"
		if result != nil {
			details = result.Summary()
		}
		h.fail(ctx, client, job, apperrors.NewInvalidRequestError(details))
		return
	}

	var input Input
	if err := job.GetVariablesAs(&input); err != nil {
		h.fail(ctx, client, job, apperrors.NewInvalidRequestError("parse input: "+err.Error()))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}
	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if !validation.ValidateEmail(input.Email) {
		return nil, apperrors.NewInvalidRequestError("email is not a valid address")
	}
	if len(input.Predictions) == 0 {
		return nil, apperrors.NewInvalidRequestError("predictions must not be empty")
	}

	userID := input.UserID.String()
	sentAt := h.now().UTC().Format(time.RFC3339)
	output := &Output{
		ReportID:      uuid.New().String(),
		Status:        StatusSkipped,
		Notifications: []models.Notification{},
		SentAt:        sentAt,
	}

	emailNote := models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Channel:   models.ChannelEmail,
		Recipient: input.Email,
		Status:    models.NotificationDisabled,
	}
	if h.config.EmailEnabled {
		messageID, err := h.sendEmail(ctx, input)
		if err != nil {
			// Email is the primary channel, so the job is retried.
			return nil, apperrors.NewReportSendFailedError(models.ChannelEmail, err).WithMetadata("userId", userID)
		}
		emailNote.Status = models.NotificationSent
		emailNote.MessageID = messageID
		emailNote.SentAt = sentAt
		output.Status = StatusSent
	}
	output.Notifications = append(output.Notifications, emailNote)

	phone := strings.TrimSpace(input.Phone)
	if phone != "" {
		smsNote := models.Notification{
			ID:        uuid.New().String(),
			UserID:    userID,
			Channel:   models.ChannelSMS,
			Recipient: phone,
			Status:    models.NotificationDisabled,
		}
		if h.config.SMSEnabled && validation.ValidatePhone(phone) {
			messageID, err := h.sendSMS(ctx, phone, renderSMS(input))
			if err != nil {
				h.logger.Warn("career report SMS failed", map[string]interface{}{
					"userId": userID,
					"error":  err,
				})
				smsNote.Status = models.NotificationFailed
				smsNote.Error = err.Error()
				if output.Status == StatusSent {
					output.Status = StatusPartial
				}
			} else {
				smsNote.Status = models.NotificationSent
				smsNote.MessageID = messageID
				smsNote.SentAt = sentAt
				if output.Status == StatusSkipped {
					output.Status = StatusSent
				}
			}
		}
		output.Notifications = append(output.Notifications, smsNote)
	}

	return output, nil
}

func (h *Handler) sendEmail(ctx context.Context, input *Input) (string, error) {
	out, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &sestypes.Destination{
			ToAddresses: []string{input.Email},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(emailSubject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(renderEmailText(input, h.config.MaxCareers))},
				Html: &sestypes.Content{Data: aws.String(renderEmailHTML(input, h.config.MaxCareers))},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}

func (h *Handler) sendSMS(ctx context.Context, to, message string) (string, error) {
	params := &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	}
	if h.config.SMSSenderID != "" {
		params.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {DataType: aws.String("String"), StringValue: aws.String(h.config.SMSSenderID)},
		}
	}
	out, err := h.snsClient.Publish(ctx, params)
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := apperrors.Normalize(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.errHandler.HandleJobError(ctx, client, job, stdErr)
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	err = camunda.Retry(ctx, func(ctx context.Context) error {
		_, err := cmd.Send(ctx)
		return err
	}, "complete job")
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
