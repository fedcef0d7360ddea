// Package approvals handles PublicationEvaluationCompleted events and records
// the evaluation result on the property.
package approvals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/AndreiLesi/aws-serverless-developer-ws/internal/config"
	"github.com/AndreiLesi/aws-serverless-developer-ws/propertyid"
)

// ErrMalformedEvent is returned when the event detail can't be decoded or
// lacks a required field.
var ErrMalformedEvent = errors.New("approvals: malformed event")

// PublicationEvaluationCompleted is the detail of a PublicationEvaluationCompleted event.
type PublicationEvaluationCompleted struct {
	PropertyID       string `json:"property_id"`
	EvaluationResult string `json:"evaluation_result"`

	// WorkflowErrors carries errors reported by the approval workflow, if any.
	WorkflowErrors json.RawMessage `json:"workflowErrors,omitempty"`
}

// Response is returned to the invoker.
type Response struct {
	Result string `json:"result"`
}

// StatusWriter persists property status. *store.Store satisfies it.
type StatusWriter interface {
	UpdatePropertyStatus(ctx context.Context, key propertyid.Key, status string) error
}

// Handler processes publication approval events.
type Handler struct {
	store  StatusWriter
	logger *slog.Logger
}

// NewHandler creates a new approvals handler.
func NewHandler(cfg *config.Config, s StatusWriter, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:  s,
		logger: logger.With("service", cfg.ServiceNamespace),
	}
}

// HandleEvent is the Lambda entry point for EventBridge deliveries.
//
// Events that can never succeed (undecodable detail, invalid property id)
// are logged and acknowledged. Storage errors are returned so the platform
// retries the delivery.
func (h *Handler) HandleEvent(ctx context.Context, event events.CloudWatchEvent) (Response, error) {
	h.logger.Info("received event",
		"eventID", event.ID,
		"detailType", event.DetailType,
		"source", event.Source,
	)

	var detail PublicationEvaluationCompleted
	if err := json.Unmarshal(event.Detail, &detail); err != nil {
		h.logger.Error("rejecting event",
			"eventID", event.ID,
			"error", fmt.Errorf("%w: %w", ErrMalformedEvent, err),
		)
		return Response{Result: "Rejected malformed event"}, nil
	}

	if err := h.Approve(ctx, detail); err != nil {
		var result string
		switch {
		case errors.Is(err, ErrMalformedEvent):
			result = "Rejected malformed event"
		case errors.Is(err, propertyid.ErrInvalidID):
			result = "Rejected invalid property id"
		default:
			return Response{}, err
		}
		h.logger.Error("rejecting event",
			"eventID", event.ID,
			"propertyId", detail.PropertyID,
			"error", err,
		)
		return Response{Result: result}, nil
	}

	return Response{Result: "Successfully updated property status"}, nil
}

// Approve stores the evaluation result of detail on the property it names.
func (h *Handler) Approve(ctx context.Context, detail PublicationEvaluationCompleted) error {
	if detail.PropertyID == "" {
		return fmt.Errorf("%w: missing property_id", ErrMalformedEvent)
	}
	if detail.EvaluationResult == "" {
		return fmt.Errorf("%w: missing evaluation_result", ErrMalformedEvent)
	}
	if len(detail.WorkflowErrors) > 0 && string(detail.WorkflowErrors) != "null" {
		h.logger.Warn("approval workflow reported errors",
			"propertyId", detail.PropertyID,
			"workflowErrors", string(detail.WorkflowErrors),
		)
	}

	key, err := propertyid.KeyFor(detail.PropertyID)
	if err != nil {
		return err
	}

	h.logger.Info("storing property status",
		"pk", key.PK,
		"sk", key.SK,
		"status", detail.EvaluationResult,
	)
	if err := h.store.UpdatePropertyStatus(ctx, key, detail.EvaluationResult); err != nil {
		return fmt.Errorf("update property status: %w", err)
	}

	h.logger.Info("stored property status", "pk", key.PK, "sk", key.SK)
	return nil
}
