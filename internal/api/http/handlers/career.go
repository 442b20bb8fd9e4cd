package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"careerfit-workers/internal/api/http/presenter"
	"careerfit-workers/internal/careerfit"
	"careerfit-workers/internal/common/logger"
	"careerfit-workers/internal/common/metrics"
	"careerfit-workers/internal/common/validation"
	"careerfit-workers/internal/history"
	"careerfit-workers/internal/models"
	"careerfit-workers/internal/predictor"
)

const (
	msgPredictFailed   = "Failed to generate career predictions"
	msgResourcesFailed = "Failed to generate learning resources"
	msgHistoryMissing  = "No prediction history for this user"
	msgHistoryFailed   = "Failed to load prediction history"
)

// CareerService is what the career endpoints need from predictor.Service.
type CareerService interface {
	Predict(ctx context.Context, userID, source string) (*predictor.Result, error)
	PredictFromData(ctx context.Context, userID string, data models.UserData, source string) *predictor.Result
	Latest(ctx context.Context, userID string) (*history.Snapshot, error)
}

type CareerHandler struct {
	svc     CareerService
	library *careerfit.ResourceLibrary
	logger  logger.Logger
	now     func() time.Time
}

func NewCareerHandler(svc CareerService, library *careerfit.ResourceLibrary, log logger.Logger) *CareerHandler {
	if library == nil {
		library = careerfit.DefaultResourceLibrary()
	}
	return &CareerHandler{
		svc:     svc,
		library: library,
		logger:  log.WithFields(map[string]interface{}{"component": "http"}),
		now:     time.Now,
	}
}

type predictRequest struct {
	UserID   models.UserID    `json:"userId"`
	UserData *models.UserData `json:"userData,omitempty"`
}

type predictResponse struct {
	Success      bool                         `json:"success"`
	Predictions  []careerfit.CareerPrediction `json:"predictions"`
	AnalysisDate string                       `json:"analysisDate"`
}

// Predict ranks careers for a user.
func (h *CareerHandler) Predict(c *fiber.Ctx) error {
	body := c.Body()
	if msg, ok := validate(validation.PredictRequest, body); !ok {
		return presenter.Error(c, http.StatusBadRequest, msg)
	}

	var req predictRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON body")
	}
	userID := strings.TrimSpace(req.UserID.String())

	var result *predictor.Result
	if req.UserData != nil {
		result = h.svc.PredictFromData(c.UserContext(), userID, *req.UserData, metrics.SourceHTTP)
	} else {
		var err error
		result, err = h.svc.Predict(c.UserContext(), userID, metrics.SourceHTTP)
		if err != nil {
			stdErr := predictor.Classify(userID, err)
			h.logger.Error("career prediction error", map[string]interface{}{
				"userId":    userID,
				"errorCode": string(stdErr.Code),
				"error":     err,
			})
			return presenter.Error(c, http.StatusInternalServerError, msgPredictFailed)
		}
	}

	return presenter.JSON(c, http.StatusOK, predictResponse{
		Success:      true,
		Predictions:  result.Predictions,
		AnalysisDate: result.AnalysisDate,
	})
}

type resourcesRequest struct {
	Career        string   `json:"career"`
	MissingSkills []string `json:"missingSkills"`
	UserLevel     string   `json:"userLevel"`
}

type resourcesResponse struct {
	Success     bool                   `json:"success"`
	Career      string                 `json:"career"`
	Resources   careerfit.LearningPlan `json:"resources"`
	GeneratedAt string                 `json:"generatedAt"`
}

// Resources suggests study material for the skills a career still needs.
func (h *CareerHandler) Resources(c *fiber.Ctx) error {
	body := c.Body()
	if msg, ok := validate(validation.ResourcesRequest, body); !ok {
		return presenter.Error(c, http.StatusBadRequest, msg)
	}

	var req resourcesRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON body")
	}
	career := strings.TrimSpace(req.Career)
	if career == "" {
		return presenter.Error(c, http.StatusBadRequest, msgResourcesFailed)
	}

	plan := h.library.Generate(career, req.MissingSkills, careerfit.Level(strings.ToLower(req.UserLevel)))
	return presenter.JSON(c, http.StatusOK, resourcesResponse{
		Success:     true,
		Career:      req.Career,
		Resources:   plan,
		GeneratedAt: h.now().UTC().Format(predictor.AnalysisDateLayout),
	})
}

type historyResponse struct {
	Success  bool              `json:"success"`
	Snapshot *history.Snapshot `json:"snapshot"`
}

// History returns the user's most recent archived prediction.
func (h *CareerHandler) History(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Params("userId"))
	if userID == "" {
		return presenter.Error(c, http.StatusBadRequest, "userId is required")
	}

	snap, err := h.svc.Latest(c.UserContext(), userID)
	if errors.Is(err, history.ErrSnapshotNotFound) {
		return presenter.Error(c, http.StatusNotFound, msgHistoryMissing)
	}
	if err != nil {
		h.logger.Error("prediction history error", map[string]interface{}{
			"userId": userID,
			"error":  err,
		})
		return presenter.Error(c, http.StatusInternalServerError, msgHistoryFailed)
	}
	return presenter.JSON(c, http.StatusOK, historyResponse{Success: true, Snapshot: snap})
}

func validate(schema *validation.Schema, body []byte) (string, bool) {
	if len(body) == 0 {
		return "request body is required", false
	}
	result, err := schema.ValidateJSON(body)
	if err != nil {
		return "invalid JSON body", false
	}
	if !result.Valid {
		return result.Summary(), false
	}
	return "", true
}
