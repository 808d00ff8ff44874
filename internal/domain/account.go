// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidRequest indicates that the account creation request is malformed.
	ErrInvalidRequest = errors.New("invalid account request")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrOwnerRegistryUnavailable indicates that the owner lookup could not be completed.
	ErrOwnerRegistryUnavailable = errors.New("owner registry unavailable")
	// ErrConcurrentModification indicates that another writer committed against
	// the same account first. Internal signal, retried by the engine.
	ErrConcurrentModification = errors.New("account modified concurrently")
)

// Account holds the running balance for a single owner account.
//
// Balance is a fixed-point decimal with scale 2 carried as a string;
// arithmetic happens either in the database or via shopspring/decimal.
// Version increments by exactly 1 on every committed mutation of the row.
type Account struct {
	ID            int64     `json:"id"`
	OwnerID       int64     `json:"owner_id"`
	AccountNumber string    `json:"account_number"`
	Category      string    `json:"category"`
	Balance       string    `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Version       int64     `json:"version"`
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	OwnerID        int64  `json:"owner_id"`
	Category       string `json:"category"`
	InitialBalance string `json:"initial_balance"`
}
