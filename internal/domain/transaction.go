package domain

import "time"

// Transaction is a single leg of a bulk request: one outbound credit
// transfer attempt against the debtor account. AmountCents is stored
// negative, matching the sign convention of a debit against the account.
type Transaction struct {
	ID               string
	TransferUUID     string
	BulkRequestUUID  string
	BankAccountID    string
	CounterpartyName string
	CounterpartyBIC  string
	CounterpartyIBAN string
	AmountCents      int64
	AmountCurrency   string
	Description      string
	CreatedAt        time.Time
}
