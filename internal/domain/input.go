package domain

// CreditTransferInput is one transfer of an incoming bulk submission, as
// decoded from the HTTP payload. Amounts arrive as decimal strings and are
// only converted to cents once the whole submission is validated.
type CreditTransferInput struct {
	Amount           string `json:"amount" validate:"required"`
	Currency         string `json:"currency" validate:"required,len=3"`
	CounterpartyName string `json:"counterparty_name" validate:"required"`
	CounterpartyBIC  string `json:"counterparty_bic" validate:"required"`
	CounterpartyIBAN string `json:"counterparty_iban" validate:"required"`
	Description      string `json:"description" validate:"required,min=10"`
}

// BulkTransferInput is the request body of POST /transfers/bulk. The
// decoder rejects unknown top-level keys, so the shape here is the whole
// accepted schema.
//
// swagger:model BulkTransferInput
type BulkTransferInput struct {
	RequestID        string                `json:"request_id" validate:"required"`
	OrganizationBIC  string                `json:"organization_bic" validate:"required"`
	OrganizationIBAN string                `json:"organization_iban" validate:"required"`
	CreditTransfers  []CreditTransferInput `json:"credit_transfers" validate:"required,min=1,dive"`
}
