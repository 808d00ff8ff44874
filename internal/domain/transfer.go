package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrSameAccountTransfer indicates that source and destination accounts are the same.
	ErrSameAccountTransfer = errors.New("from and to account cannot be same")
	// ErrTransferFailed indicates that the bounded retries were exhausted under contention.
	ErrTransferFailed = errors.New("transfer failed due to concurrent update - please retry")
	// ErrSourceAccountNotFound identifies the missing side of a transfer.
	// Matches ErrAccountNotFound under errors.Is.
	ErrSourceAccountNotFound = fmt.Errorf("source %w", ErrAccountNotFound)
	// ErrDestinationAccountNotFound identifies the missing side of a transfer.
	ErrDestinationAccountNotFound = fmt.Errorf("destination %w", ErrAccountNotFound)
)

// CreateTransferParams is the input data for the transfer transaction.
//
// Description is accepted for parity with single-account operations; the two
// ledger entries a transfer creates carry fixed descriptions naming the
// counterparty account number.
type CreateTransferParams struct {
	FromAccountID int64  `json:"from_account_id"`
	ToAccountID   int64  `json:"to_account_id"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
}

// TransferResult is the committed outcome of a transfer: one DEBIT entry on
// the source account and one matched CREDIT entry on the destination.
type TransferResult struct {
	DebitTransactionID  int64     `json:"debit_transaction_id"`
	CreditTransactionID int64     `json:"credit_transaction_id"`
	FromAccountID       int64     `json:"from_account_id"`
	ToAccountID         int64     `json:"to_account_id"`
	Amount              string    `json:"amount"`
	Timestamp           time.Time `json:"timestamp"`
	Message             string    `json:"message"`
}
