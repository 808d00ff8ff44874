package domain

import (
	"errors"
	"time"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrInvalidAmount indicates invalid or non-positive amount.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Transaction directions. The amount itself is always positive.
const (
	DirectionCredit = "CREDIT"
	DirectionDebit  = "DEBIT"
)

// Transaction is an immutable ledger entry recording a single balance change.
// Corrections are new offsetting entries, never updates.
type Transaction struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	Amount      string    `json:"amount"`
	Direction   string    `json:"direction"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateTransactionParams is the input data for a single-account credit or debit.
type CreateTransactionParams struct {
	AccountID   int64  `json:"account_id"`
	Amount      string `json:"amount"`
	Direction   string `json:"direction"`
	Description string `json:"description"`
}

// TransactionTxResult is the result of a committed credit or debit:
// the new ledger entry plus the refreshed account.
type TransactionTxResult struct {
	Transaction Transaction `json:"transaction"`
	Account     Account     `json:"account"`
}
