package contracts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/AndreiLesi/aws-serverless-developer-ws/propertyid"
	"github.com/AndreiLesi/aws-serverless-developer-ws/store"
)

// ContractStatusChanged is the detail of a ContractStatusChanged event.
type ContractStatusChanged struct {
	ContractID             string `json:"contract_id"`
	ContractLastModifiedOn string `json:"contract_last_modified_on"`
	ContractStatus         string `json:"contract_status"`
	PropertyID             string `json:"property_id"`
}

// Response is returned to the invoker of HandleStatusChanged.
type Response struct {
	StatusCode int `json:"statusCode"`
}

// HandleStatusChanged is the Lambda entry point for ContractStatusChanged events.
//
// Events that can never succeed are logged and acknowledged with a 400
// status; storage errors are returned so the platform retries.
func (h *Handler) HandleStatusChanged(ctx context.Context, event events.CloudWatchEvent) (Response, error) {
	h.logger.Info("received event",
		"eventID", event.ID,
		"detailType", event.DetailType,
		"source", event.Source,
	)

	var detail ContractStatusChanged
	if err := json.Unmarshal(event.Detail, &detail); err != nil {
		h.logger.Error("rejecting event",
			"eventID", event.ID,
			"error", fmt.Errorf("%w: %w", ErrMalformedEvent, err),
		)
		return Response{StatusCode: http.StatusBadRequest}, nil
	}

	if err := h.SaveContractStatus(ctx, detail); err != nil {
		if errors.Is(err, ErrMalformedEvent) || errors.Is(err, propertyid.ErrInvalidID) {
			h.logger.Error("rejecting event",
				"eventID", event.ID,
				"propertyId", detail.PropertyID,
				"error", err,
			)
			return Response{StatusCode: http.StatusBadRequest}, nil
		}
		return Response{}, err
	}

	return Response{StatusCode: http.StatusOK}, nil
}

// SaveContractStatus writes the status carried by detail to the contract status table.
func (h *Handler) SaveContractStatus(ctx context.Context, detail ContractStatusChanged) error {
	if detail.ContractID == "" {
		return fmt.Errorf("%w: missing contract_id", ErrMalformedEvent)
	}
	if _, err := propertyid.Parse(detail.PropertyID); err != nil {
		return err
	}

	h.logger.Info("saving contract status",
		"contractId", detail.ContractID,
		"propertyId", detail.PropertyID,
		"status", detail.ContractStatus,
	)

	err := h.store.UpdateContractStatus(ctx, store.ContractStatus{
		PropertyID:             detail.PropertyID,
		ContractID:             detail.ContractID,
		ContractStatus:         detail.ContractStatus,
		ContractLastModifiedOn: detail.ContractLastModifiedOn,
	})
	if err != nil {
		return fmt.Errorf("update contract status: %w", err)
	}
	return nil
}
