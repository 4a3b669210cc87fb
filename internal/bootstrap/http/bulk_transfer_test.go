package http

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/r-o-main/bulk-transfer-api/common/mlog"
	"github.com/r-o-main/bulk-transfer-api/internal/domain"
	"github.com/r-o-main/bulk-transfer-api/internal/postgres"
	"github.com/r-o-main/bulk-transfer-api/internal/queue"
	"github.com/r-o-main/bulk-transfer-api/internal/services/command"
	"github.com/r-o-main/bulk-transfer-api/internal/services/query"
)

const (
	testRequestID = "8348f0e2-cf70-4a32-8dce-d6c6467ca590"
	testAccountID = "019233a2-2f3c-7b1f-9284-6f4bfe286b01"
)

type passthroughTxRunner struct{}

func (passthroughTxRunner) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

func bulkPayload(requestID string, transferCount int) map[string]any {
	transfers := make([]map[string]any, transferCount)
	for i := range transfers {
		transfers[i] = map[string]any{
			"amount":            "14.50",
			"currency":          "EUR",
			"counterparty_name": "Bip Bip",
			"counterparty_bic":  "CRLYFRPPTOU",
			"counterparty_iban": "EE383680981021245685",
			"description":       fmt.Sprintf("Wonderland/%04d", i),
		}
	}

	return map[string]any{
		"request_id":        requestID,
		"organization_bic":  "OIVUSCLQXXX",
		"organization_iban": "FR10474608000002006107XXXXX",
		"credit_transfers":  transfers,
	}
}

func postBulk(t *testing.T, app *fiber.App, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/transfers/bulk", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func decodeDenied(t *testing.T, resp *http.Response) bulkTransferDenied {
	t.Helper()

	var denied bulkTransferDenied
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&denied))

	return denied
}

// TestCreateBulkTransferAccepted is responsible to test the intake
// endpoint answering 201 on a valid submission.
func TestCreateBulkTransferAccepted(t *testing.T) {
	ctrl := gomock.NewController(t)

	accountRepo := postgres.NewMockAccountRepository(ctrl)
	bulkRepo := postgres.NewMockBulkRequestRepository(ctrl)

	account := &domain.BankAccount{ID: testAccountID, BalanceCents: 10_000_000}

	bulkRepo.EXPECT().
		LookupByUUID(gomock.Any(), gomock.Any(), testRequestID).
		Return(nil, nil).
		Times(1)
	accountRepo.EXPECT().
		LookupForUpdate(gomock.Any(), gomock.Any(), "OIVUSCLQXXX", "FR10474608000002006107XXXXX").
		Return(account, nil).
		Times(1)
	bulkRepo.EXPECT().
		Create(gomock.Any(), gomock.Any(), testAccountID, testRequestID, int64(2900)).
		Return(&domain.BulkRequest{RequestUUID: testRequestID, Status: domain.RequestStatusPending}, nil).
		Times(1)
	accountRepo.EXPECT().
		ReserveFunds(gomock.Any(), gomock.Any(), testAccountID, int64(2900)).
		Return(nil).
		Times(1)

	commandUseCase := &command.UseCase{
		Tx:              passthroughTxRunner{},
		AccountRepo:     accountRepo,
		BulkRequestRepo: bulkRepo,
		TransferQueue:   queue.NewMemoryQueue[domain.TransferJob](),
	}

	app := NewRouter(&mlog.NoneLogger{}, "test", &BulkTransferHandler{Command: commandUseCase}, nil)

	resp := postBulk(t, app, bulkPayload(testRequestID, 2))

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var accepted bulkTransferAccepted
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&accepted))
	assert.Equal(t, testRequestID, accepted.BulkID)
	assert.Equal(t, "Bulk transfer accepted", accepted.Message)
}

// TestCreateBulkTransferInvalidRequestID is responsible to test the error
// envelope of a rejected submission.
func TestCreateBulkTransferInvalidRequestID(t *testing.T) {
	app := NewRouter(&mlog.NoneLogger{}, "test", &BulkTransferHandler{Command: &command.UseCase{}}, nil)

	resp := postBulk(t, app, bulkPayload("NOT-A-CANONICAL-UUID", 1))

	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	denied := decodeDenied(t, resp)
	assert.Equal(t, "NOT-A-CANONICAL-UUID", denied.BulkID)
	assert.Equal(t, "Bulk transfer denied", denied.Message)
	assert.Equal(t, "invalid-request-id", denied.Error.Reason)
}

// TestCreateBulkTransferTooManyTransfers is responsible to test the 413
// answer on an oversized bulk.
func TestCreateBulkTransferTooManyTransfers(t *testing.T) {
	bulkRepo := postgres.NewMockBulkRequestRepository(gomock.NewController(t))
	bulkRepo.EXPECT().
		LookupByUUID(gomock.Any(), gomock.Any(), testRequestID).
		Return(nil, nil).
		Times(1)

	commandUseCase := &command.UseCase{
		Tx:              passthroughTxRunner{},
		BulkRequestRepo: bulkRepo,
	}

	app := NewRouter(&mlog.NoneLogger{}, "test", &BulkTransferHandler{Command: commandUseCase}, nil)

	resp := postBulk(t, app, bulkPayload(testRequestID, 1001))

	require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)

	denied := decodeDenied(t, resp)
	assert.Equal(t, "too-many-transfers", denied.Error.Reason)
}

// TestCreateBulkTransferInvalidCurrency is responsible to test that a
// non-ISO-4217 currency code is rejected with 422 before the intake
// pipeline runs.
func TestCreateBulkTransferInvalidCurrency(t *testing.T) {
	app := NewRouter(&mlog.NoneLogger{}, "test", &BulkTransferHandler{Command: &command.UseCase{}}, nil)

	payload := bulkPayload(testRequestID, 1)
	payload["credit_transfers"].([]map[string]any)[0]["currency"] = "EUX"

	resp := postBulk(t, app, payload)

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

// TestCreateBulkTransferUnknownKeyRejected is responsible to test the
// strict schema: an unknown top-level key fails with 422 before the
// handler runs.
func TestCreateBulkTransferUnknownKeyRejected(t *testing.T) {
	app := NewRouter(&mlog.NoneLogger{}, "test", &BulkTransferHandler{Command: &command.UseCase{}}, nil)

	payload := bulkPayload(testRequestID, 1)
	payload["unexpected"] = "key"

	resp := postBulk(t, app, payload)

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

// TestGetBulkTransferStatus is responsible to test the status endpoint.
func TestGetBulkTransferStatus(t *testing.T) {
	bulkRepo := postgres.NewMockBulkRequestRepository(gomock.NewController(t))
	bulkRepo.EXPECT().
		LookupByUUID(gomock.Any(), gomock.Any(), testRequestID).
		Return(&domain.BulkRequest{
			RequestUUID:          testRequestID,
			Status:               domain.RequestStatusCompleted,
			TotalAmountCents:     21449,
			ProcessedAmountCents: 21449,
		}, nil).
		Times(1)

	queryUseCase := &query.UseCase{
		Tx:              passthroughTxRunner{},
		BulkRequestRepo: bulkRepo,
	}

	app := NewRouter(&mlog.NoneLogger{}, "test", &BulkTransferHandler{Query: queryUseCase}, nil)

	req := httptest.NewRequest(http.MethodGet, "/transfers/bulk/"+testRequestID, nil)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var status bulkRequestStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, testRequestID, status.BulkID)
	assert.Equal(t, "COMPLETED", status.Status)
	assert.Equal(t, int64(21449), status.TotalAmountCents)
}

// TestGetBulkTransferNotFound is responsible to test the status endpoint
// answering 404 for an unknown bulk id.
func TestGetBulkTransferNotFound(t *testing.T) {
	bulkRepo := postgres.NewMockBulkRequestRepository(gomock.NewController(t))
	bulkRepo.EXPECT().
		LookupByUUID(gomock.Any(), gomock.Any(), testRequestID).
		Return(nil, nil).
		Times(1)

	queryUseCase := &query.UseCase{
		Tx:              passthroughTxRunner{},
		BulkRequestRepo: bulkRepo,
	}

	app := NewRouter(&mlog.NoneLogger{}, "test", &BulkTransferHandler{Query: queryUseCase}, nil)

	req := httptest.NewRequest(http.MethodGet, "/transfers/bulk/"+testRequestID, nil)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// TestBrokerEndpoints is responsible to test the broker stub's
// enqueue/consume round trip and its 404 on an empty queue.
func TestBrokerEndpoints(t *testing.T) {
	transferQueue := queue.NewMemoryQueue[domain.TransferJob]()
	finalizeQueue := queue.NewMemoryQueue[domain.FinalizeBulkJob]()

	app := NewRouter(&mlog.NoneLogger{}, "test", &BulkTransferHandler{}, &BrokerHandler{
		TransferQueue: transferQueue,
		FinalizeQueue: finalizeQueue,
	})

	job := domain.TransferJob{
		TransferUUID:     "019233a2-7c4e-7d30-b981-12f1a08ff1a3",
		BulkRequestUUID:  testRequestID,
		BankAccountID:    testAccountID,
		CounterpartyName: "Bip Bip",
		CounterpartyBIC:  "CRLYFRPPTOU",
		CounterpartyIBAN: "EE383680981021245685",
		AmountCents:      1450,
		AmountCurrency:   "EUR",
		Description:      "Wonderland/4410",
	}

	body, err := json.Marshal(job)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/internal/jobs/transfer", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, 1, transferQueue.Len())

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/internal/jobs/transfer", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var consumed domain.TransferJob
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&consumed))
	assert.Equal(t, job, consumed)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/internal/jobs/transfer", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/internal/jobs/bulk", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
