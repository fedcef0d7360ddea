// Package contracts keeps the contract status table in step with contract
// events and answers contract existence checks from the approval workflow.
package contracts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AndreiLesi/aws-serverless-developer-ws/internal/config"
	"github.com/AndreiLesi/aws-serverless-developer-ws/store"
)

var (
	// ErrMalformedEvent is returned when an event or task input lacks a required field.
	ErrMalformedEvent = errors.New("contracts: malformed event")

	// ErrContractStatusNotFound matches every *ContractStatusNotFoundError via errors.Is.
	ErrContractStatusNotFound = errors.New("contracts: contract status not found")
)

// ContractStatusNotFoundErrorType is the error type the approval workflow
// catches when a property has no contract.
const ContractStatusNotFoundErrorType = "ContractStatusNotFoundException"

// ContractStatusNotFoundError is returned when no contract status exists for
// a property. InvokeExistsCheck reports it as ContractStatusNotFoundErrorType.
type ContractStatusNotFoundError struct {
	PropertyID string
	Err        error
}

func (e *ContractStatusNotFoundError) Error() string {
	return fmt.Sprintf("contracts: no contract status for property %q", e.PropertyID)
}

// Is reports whether target is ErrContractStatusNotFound.
func (e *ContractStatusNotFoundError) Is(target error) bool {
	return target == ErrContractStatusNotFound
}

func (e *ContractStatusNotFoundError) Unwrap() error {
	return e.Err
}

// Store reads and writes contract status records. *store.Store satisfies it.
type Store interface {
	UpdateContractStatus(ctx context.Context, c store.ContractStatus) error
	GetContractStatus(ctx context.Context, propertyID string) (*store.ContractStatus, error)
}

// Handler serves the contract status functions.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// NewHandler creates a new contracts handler.
func NewHandler(cfg *config.Config, s Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:  s,
		logger: logger.With("service", cfg.ServiceNamespace),
	}
}
