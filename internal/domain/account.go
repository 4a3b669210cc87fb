// Package domain holds the entities shared by the persistence layer, the
// intake/worker/finalizer services, and the HTTP surface - the bank
// account, bulk request and transaction records, plus the job envelopes
// passed through the queues.
package domain

// BankAccount is a debtor account, uniquely identified by its BIC/IBAN pair.
type BankAccount struct {
	ID                   string
	BIC                  string
	IBAN                 string
	OrganizationName     string
	BalanceCents         int64
	OngoingTransferCents int64
}

// AvailableCents is the balance minus whatever is already reserved against
// in-flight bulk requests.
func (a BankAccount) AvailableCents() int64 {
	return a.BalanceCents - a.OngoingTransferCents
}

// CanReserve reports whether reserving amountCents on top of whatever is
// already reserved would still fit inside the account balance. Acceptance
// is on equality: a request that exactly exhausts the balance is accepted.
func (a BankAccount) CanReserve(amountCents int64) bool {
	return a.OngoingTransferCents+amountCents <= a.BalanceCents
}
