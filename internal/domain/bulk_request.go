package domain

import "time"

// RequestStatus is the bulk request lifecycle state.
type RequestStatus string

const (
	// RequestStatusPending means the bulk request has been accepted and is
	// still being processed by the transfer workers/finalizer.
	RequestStatusPending RequestStatus = "PENDING"
	// RequestStatusCompleted is terminal: every transfer in the bulk
	// cleared and the account balance has been decremented.
	RequestStatusCompleted RequestStatus = "COMPLETED"
	// RequestStatusFailed is terminal: at least one transfer failed and
	// the whole bulk was cancelled, unreserving the funds.
	RequestStatusFailed RequestStatus = "FAILED"
)

// IsTerminal reports whether no further state transition is possible.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusCompleted || s == RequestStatusFailed
}

// BulkRequest tracks the lifecycle of one bulk credit-transfer submission.
type BulkRequest struct {
	ID                   string
	RequestUUID          string
	BankAccountID        string
	Status               RequestStatus
	TotalAmountCents     int64
	ProcessedAmountCents int64
	CreatedAt            time.Time
	CompletedAt          *time.Time
}

// IsComplete reports whether the amounts of successfully executed transfers
// have reached the bulk's total; failed transfers are not counted.
func (b BulkRequest) IsComplete() bool {
	return b.ProcessedAmountCents >= b.TotalAmountCents
}
