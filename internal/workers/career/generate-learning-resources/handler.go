// internal/workers/career/generate-learning-resources/handler.go
package generatelearningresources

import (
	"context"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"careerfit-workers/internal/careerfit"
	"careerfit-workers/internal/common/camunda"
	apperrors "careerfit-workers/internal/common/errors"
	"careerfit-workers/internal/common/logger"
	"careerfit-workers/internal/common/metrics"
	"careerfit-workers/internal/common/validation"
)

const (
	TaskType = "generate-learning-resources"
)

type Handler struct {
	config     *Config
	library    *careerfit.ResourceLibrary
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
	now        func() time.Time
}

func NewHandler(config *Config, library *careerfit.ResourceLibrary, log logger.Logger) *Handler {
	if library == nil {
		library = careerfit.DefaultResourceLibrary()
	}
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		library:    library,
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

	result, err := validation.ResourcesRequest.ValidateJSON([]byte(job.Variables))
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	career := strings.TrimSpace(input.Career)
	if career == "" {
		return nil, apperrors.NewResourceLookupFailedError("career is required")
	}

	plan := h.library.Generate(career, input.MissingSkills, careerfit.Level(strings.ToLower(input.UserLevel)))
	return &Output{
		Career:      career,
		Resources:   plan,
		GeneratedAt: h.now().UTC().Format(time.RFC3339),
	}, nil
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
