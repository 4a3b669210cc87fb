package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/r-o-main/bulk-transfer-api/internal/domain"
)

// httpTransferPayload is the wire shape posted to the remote transfer
// endpoint - a direct mirror of TransferJob, kept separate so the
// domain type's json tags can evolve independently of the outbound
// contract.
type httpTransferPayload struct {
	TransferUUID     string `json:"transfer_uuid"`
	BulkRequestUUID  string `json:"bulk_request_uuid"`
	BankAccountID    string `json:"bank_account_id"`
	CounterpartyName string `json:"counterparty_name"`
	CounterpartyBIC  string `json:"counterparty_bic"`
	CounterpartyIBAN string `json:"counterparty_iban"`
	AmountCents      int64  `json:"amount_cents"`
	AmountCurrency   string `json:"amount_currency"`
	Description      string `json:"description"`
}

type httpTransferResult struct {
	Success bool `json:"success"`
}

// HTTPGateway posts one transfer at a time to a configurable endpoint,
// giving the worker pool a real network boundary to exercise in place
// of an actual bank connection.
type HTTPGateway struct {
	client  *http.Client
	baseURL string
}

// NewHTTPGateway returns an HTTPGateway that posts to baseURL + "/transfer".
func NewHTTPGateway(baseURL string) *HTTPGateway {
	return &HTTPGateway{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

// Send implements RemoteTransferGateway.
func (g *HTTPGateway) Send(ctx context.Context, job domain.TransferJob) (bool, error) {
	payload := httpTransferPayload{
		TransferUUID:     job.TransferUUID,
		BulkRequestUUID:  job.BulkRequestUUID,
		BankAccountID:    job.BankAccountID,
		CounterpartyName: job.CounterpartyName,
		CounterpartyBIC:  job.CounterpartyBIC,
		CounterpartyIBAN: job.CounterpartyIBAN,
		AmountCents:      job.AmountCents,
		AmountCurrency:   job.AmountCurrency,
		Description:      job.Description,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("marshalling JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/transfer", bytes.NewBuffer(jsonData))
	if err != nil {
		return false, errors.New("creating request: " + err.Error())
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return false, errors.New("making POST request: " + err.Error())
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("remote transfer gateway returned status code: %d", resp.StatusCode)
	}

	var result httpTransferResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, errors.New("decoding response JSON: " + err.Error())
	}

	return result.Success, nil
}
