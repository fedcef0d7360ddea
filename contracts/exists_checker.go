package contracts

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda/messages"

	"github.com/AndreiLesi/aws-serverless-developer-ws/propertyid"
	"github.com/AndreiLesi/aws-serverless-developer-ws/store"
)

// CheckInput is the Step Functions task payload of the existence check.
type CheckInput struct {
	Input struct {
		PropertyID string `json:"property_id"`
	} `json:"Input"`
}

// HandleExistsCheck returns the contract status of the property named in
// in, or a *ContractStatusNotFoundError when there is none. The workflow
// aborts the approval on that error.
func (h *Handler) HandleExistsCheck(ctx context.Context, in CheckInput) (*store.ContractStatus, error) {
	propertyID := in.Input.PropertyID
	if propertyID == "" {
		return nil, fmt.Errorf("%w: missing property_id", ErrMalformedEvent)
	}
	if _, err := propertyid.Parse(propertyID); err != nil {
		h.logger.Error("invalid property id", "propertyId", propertyID, "error", err)
		return nil, err
	}

	c, err := h.store.GetContractStatus(ctx, propertyID)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrTableNotFound) {
		h.logger.Error("property does not exist, aborting approval process", "propertyId", propertyID)
		return nil, &ContractStatusNotFoundError{PropertyID: propertyID, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("get contract status: %w", err)
	}

	h.logger.Info("found contract status",
		"propertyId", propertyID,
		"contractId", c.ContractID,
		"status", c.ContractStatus,
	)
	return c, nil
}

// InvokeExistsCheck is the Lambda entry point of the existence check. It runs
// HandleExistsCheck and reports a missing contract status to the runtime as
// error type ContractStatusNotFoundErrorType.
func (h *Handler) InvokeExistsCheck(ctx context.Context, in CheckInput) (*store.ContractStatus, error) {
	c, err := h.HandleExistsCheck(ctx, in)
	var notFound *ContractStatusNotFoundError
	if errors.As(err, &notFound) {
		// The runtime only honours an unwrapped InvokeResponse_Error value.
		return nil, messages.InvokeResponse_Error{
			Type:    ContractStatusNotFoundErrorType,
			Message: notFound.Error(),
		}
	}
	return c, err
}
