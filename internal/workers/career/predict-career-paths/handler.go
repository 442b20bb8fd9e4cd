// internal/workers/career/predict-career-paths/handler.go
package predictcareerpaths

import (
	"context"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"careerfit-workers/internal/common/camunda"
	apperrors "careerfit-workers/internal/common/errors"
	"careerfit-workers/internal/common/logger"
	"careerfit-workers/internal/common/metrics"
	"careerfit-workers/internal/common/validation"
	"careerfit-workers/internal/models"
	"careerfit-workers/internal/predictor"
)

const (
	TaskType = "predict-career-paths"
)

// Predictor is the part of predictor.Service the worker uses.
type Predictor interface {
	Predict(ctx context.Context, userID, source string) (*predictor.Result, error)
	PredictFromData(ctx context.Context, userID string, data models.UserData, source string) *predictor.Result
}

type Handler struct {
	config     *Config
	service    Predictor
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, service Predictor, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		service:    service,
		errHandler: apperrors.NewErrorHandler(l),
		logger:     l,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(job)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	if h.config.ValidateInput {
		result, err := validation.PredictRequest.ValidateJSON([]byte(job.Variables))
		if err != nil {
			return nil, apperrors.NewInvalidRequestError(err.Error())
		}
		if !result.Valid {
			return nil, apperrors.NewInvalidRequestError(result.Summary())
		}
	}

	var input Input
	if err := job.GetVariablesAs(&input); err != nil {
		return nil, apperrors.NewInvalidRequestError("parse input: " + err.Error())
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	userID := strings.TrimSpace(input.UserID.String())
	if userID == "" {
		return nil, apperrors.NewInvalidRequestError("userId is required")
	}

	var result *predictor.Result
	if input.UserData != nil {
		result = h.service.PredictFromData(ctx, userID, *input.UserData, metrics.SourceWorker)
	} else {
		var err error
		result, err = h.service.Predict(ctx, userID, metrics.SourceWorker)
		if err != nil {
			return nil, predictor.Classify(userID, err)
		}
	}

	output := &Output{
		Predictions:  result.Predictions,
		AnalysisDate: result.AnalysisDate,
		TopCareer:    result.TopCareer(),
		Confidence:   result.Confidence(),
		SnapshotID:   result.SnapshotID,
	}
	if len(result.Predictions) > 0 {
		output.TopScore = result.Predictions[0].MatchScore
	}
	return output, nil
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
	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":    job.Key,
		"topCareer": output.TopCareer,
		"topScore":  output.TopScore,
	})
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
