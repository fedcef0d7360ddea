package contracts_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreiLesi/aws-serverless-developer-ws/contracts"
	"github.com/AndreiLesi/aws-serverless-developer-ws/internal/config"
	"github.com/AndreiLesi/aws-serverless-developer-ws/propertyid"
	"github.com/AndreiLesi/aws-serverless-developer-ws/store"
)

// mockStore is an in-memory contracts.Store.
type mockStore struct {
	records  map[string]store.ContractStatus
	writeErr error
	readErr  error
	writes   int
}

func newMockStore() *mockStore {
	return &mockStore{records: map[string]store.ContractStatus{}}
}

func (m *mockStore) UpdateContractStatus(_ context.Context, c store.ContractStatus) error {
	m.writes++
	if m.writeErr != nil {
		return m.writeErr
	}
	m.records[c.PropertyID] = c
	return nil
}

func (m *mockStore) GetContractStatus(_ context.Context, propertyID string) (*store.ContractStatus, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	c, ok := m.records[propertyID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

// compile-time check: *store.Store must satisfy contracts.Store.
var _ contracts.Store = (*store.Store)(nil)

func newHandler(s contracts.Store) (*contracts.Handler, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	return contracts.NewHandler(&config.Config{ServiceNamespace: "unicorn.properties"}, s, logger), &buf
}

func statusEvent(t *testing.T, detail contracts.ContractStatusChanged) events.CloudWatchEvent {
	t.Helper()
	raw, err := json.Marshal(detail)
	require.NoError(t, err)
	return events.CloudWatchEvent{ID: "evt-1", DetailType: "ContractStatusChanged", Source: "unicorn.contracts", Detail: raw}
}

func checkInput(propertyID string) contracts.CheckInput {
	var in contracts.CheckInput
	in.Input.PropertyID = propertyID
	return in
}

// ---- HandleStatusChanged ---------------------------------------------------

func TestHandleStatusChanged(t *testing.T) {
	s := newMockStore()
	h, _ := newHandler(s)
	detail := contracts.ContractStatusChanged{
		ContractID:             "9183453b-d284-4466-a2d9-f00b1d569ad7",
		ContractLastModifiedOn: "10/08/2022 19:56:30",
		ContractStatus:         "APPROVED",
		PropertyID:             "usa/anytown/main-street/111",
	}

	resp, err := h.HandleStatusChanged(context.Background(), statusEvent(t, detail))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, store.ContractStatus{
		PropertyID:             "usa/anytown/main-street/111",
		ContractID:             "9183453b-d284-4466-a2d9-f00b1d569ad7",
		ContractStatus:         "APPROVED",
		ContractLastModifiedOn: "10/08/2022 19:56:30",
	}, s.records["usa/anytown/main-street/111"])
}

func TestHandleStatusChanged_logsReceivedEvent(t *testing.T) {
	h, logs := newHandler(newMockStore())

	_, err := h.HandleStatusChanged(context.Background(), statusEvent(t, contracts.ContractStatusChanged{
		ContractID: "c-1",
		PropertyID: "usa/anytown/main-street/111",
	}))

	require.NoError(t, err)
	var line map[string]any
	first, _, _ := bytes.Cut(logs.Bytes(), []byte("\n"))
	require.NoError(t, json.Unmarshal(first, &line))
	assert.Equal(t, "received event", line["msg"])
	assert.Equal(t, "evt-1", line["eventID"])
	assert.Equal(t, "ContractStatusChanged", line["detailType"])
	assert.Equal(t, "unicorn.contracts", line["source"])
	assert.Equal(t, "unicorn.properties", line["service"])
}

func TestHandleStatusChanged_rejected(t *testing.T) {
	tests := []struct {
		name   string
		detail json.RawMessage
	}{
		{"invalid property id", json.RawMessage(`{"contract_id":"c-1","property_id":"badformat"}`)},
		{"missing property id", json.RawMessage(`{"contract_id":"c-1"}`)},
		{"missing contract id", json.RawMessage(`{"property_id":"us/city/main/12"}`)},
		{"undecodable detail", json.RawMessage(`[1,2,3]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMockStore()
			h, logs := newHandler(s)

			resp, err := h.HandleStatusChanged(context.Background(), events.CloudWatchEvent{ID: "evt-2", Detail: tt.detail})

			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Zero(t, s.writes)
			assert.Contains(t, logs.String(), "rejecting event")
		})
	}
}

func TestHandleStatusChanged_storeError(t *testing.T) {
	s := newMockStore()
	s.writeErr = errors.New("throttled")
	h, _ := newHandler(s)

	_, err := h.HandleStatusChanged(context.Background(), statusEvent(t, contracts.ContractStatusChanged{
		ContractID: "c-1",
		PropertyID: "us/city/main/12",
	}))

	require.Error(t, err)
	assert.ErrorContains(t, err, "throttled")
}

func TestSaveContractStatus_invalidID(t *testing.T) {
	s := newMockStore()
	h, _ := newHandler(s)

	err := h.SaveContractStatus(context.Background(), contracts.ContractStatusChanged{
		ContractID: "c-1",
		PropertyID: "us/city/1street/12",
	})

	assert.ErrorIs(t, err, propertyid.ErrInvalidID)
	assert.Zero(t, s.writes)
}

// ---- HandleExistsCheck -----------------------------------------------------

func TestHandleExistsCheck(t *testing.T) {
	s := newMockStore()
	want := store.ContractStatus{
		PropertyID:     "usa/anytown/main-street/111",
		ContractID:     "c-1",
		ContractStatus: "DRAFT",
	}
	s.records[want.PropertyID] = want
	h, _ := newHandler(s)

	got, err := h.HandleExistsCheck(context.Background(), checkInput(want.PropertyID))

	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestHandleExistsCheck_notFound(t *testing.T) {
	h, logs := newHandler(newMockStore())

	_, err := h.HandleExistsCheck(context.Background(), checkInput("usa/anytown/main-street/222"))

	require.ErrorIs(t, err, contracts.ErrContractStatusNotFound)
	require.ErrorIs(t, err, store.ErrNotFound)
	var notFound *contracts.ContractStatusNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "usa/anytown/main-street/222", notFound.PropertyID)
	assert.Contains(t, logs.String(), "aborting approval process")
}

func TestHandleExistsCheck_tableNotFound(t *testing.T) {
	s := newMockStore()
	s.readErr = fmt.Errorf("%w: contract_status", store.ErrTableNotFound)
	h, _ := newHandler(s)

	_, err := h.HandleExistsCheck(context.Background(), checkInput("usa/anytown/main-street/111"))

	assert.ErrorIs(t, err, contracts.ErrContractStatusNotFound)
}

func TestHandleExistsCheck_otherError(t *testing.T) {
	s := newMockStore()
	s.readErr = errors.New("throttled")
	h, _ := newHandler(s)

	_, err := h.HandleExistsCheck(context.Background(), checkInput("usa/anytown/main-street/111"))

	require.Error(t, err)
	assert.NotErrorIs(t, err, contracts.ErrContractStatusNotFound)
	assert.ErrorContains(t, err, "throttled")
}

func TestHandleExistsCheck_invalidInput(t *testing.T) {
	h, _ := newHandler(newMockStore())

	_, err := h.HandleExistsCheck(context.Background(), checkInput(""))
	assert.ErrorIs(t, err, contracts.ErrMalformedEvent)

	_, err = h.HandleExistsCheck(context.Background(), checkInput("badformat"))
	assert.ErrorIs(t, err, propertyid.ErrInvalidID)
}

func TestCheckInput_decode(t *testing.T) {
	var in contracts.CheckInput
	require.NoError(t, json.Unmarshal([]byte(`{"Input":{"property_id":"us/city/main/12"}}`), &in))
	assert.Equal(t, "us/city/main/12", in.Input.PropertyID)
}

// ---- InvokeExistsCheck -----------------------------------------------------

func TestInvokeExistsCheck_notFoundErrorType(t *testing.T) {
	h, _ := newHandler(newMockStore())

	c, err := h.InvokeExistsCheck(context.Background(), checkInput("usa/anytown/main-street/222"))

	require.Error(t, err)
	assert.Nil(t, c)
	ive, ok := err.(messages.InvokeResponse_Error)
	require.True(t, ok, "expected messages.InvokeResponse_Error, got %T", err)
	assert.Equal(t, "ContractStatusNotFoundException", ive.Type)
	assert.Contains(t, ive.Message, "usa/anytown/main-street/222")
}

func TestInvokeExistsCheck_passThrough(t *testing.T) {
	s := newMockStore()
	want := store.ContractStatus{PropertyID: "usa/anytown/main-street/111", ContractID: "c-1", ContractStatus: "APPROVED"}
	s.records[want.PropertyID] = want
	h, _ := newHandler(s)

	got, err := h.InvokeExistsCheck(context.Background(), checkInput(want.PropertyID))
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	s.readErr = errors.New("throttled")
	_, err = h.InvokeExistsCheck(context.Background(), checkInput(want.PropertyID))
	require.Error(t, err)
	_, ok := err.(messages.InvokeResponse_Error)
	assert.False(t, ok)
	assert.ErrorContains(t, err, "throttled")
}
