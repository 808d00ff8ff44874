// Package transactionservice manages business logic layer of the transaction engine.
package transactionservice

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bankingapp/account-service/internal/accountdelivery"
	"github.com/bankingapp/account-service/internal/domain"
)

// maxAttempts bounds the automatic retries of an atomic unit of work whose
// version check lost to a concurrent writer. Each attempt re-reads fresh state.
const maxAttempts = 3

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	PerformTx(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionTxResult, error)
	TransferTx(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferResult, error)
	Get(ctx context.Context, id int64) (domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo           Repo
	accountService accountdelivery.Service
}

// New returns transaction service struct to manage the ledger bussines logic.
func New(tr Repo, as accountdelivery.Service) *Service {
	return &Service{
		repo:           tr,
		accountService: as,
	}
}

// Credit adds the amount to the account and records a CREDIT ledger entry.
func (s *Service) Credit(ctx context.Context, accountID int64, amount, description string) (domain.TransactionTxResult, error) {
	return s.perform(ctx, domain.CreateTransactionParams{
		AccountID:   accountID,
		Amount:      amount,
		Direction:   domain.DirectionCredit,
		Description: description,
	})
}

// Debit subtracts the amount from the account and records a DEBIT ledger entry.
func (s *Service) Debit(ctx context.Context, accountID int64, amount, description string) (domain.TransactionTxResult, error) {
	return s.perform(ctx, domain.CreateTransactionParams{
		AccountID:   accountID,
		Amount:      amount,
		Direction:   domain.DirectionDebit,
		Description: description,
	})
}

func (s *Service) perform(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionTxResult, error) {
	l := zerolog.Ctx(ctx)

	if err := validAmount(arg.Amount); err != nil {
		l.Info().Err(err).Send()
		return domain.TransactionTxResult{}, err
	}

	arg.Amount = normalize(arg.Amount)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := s.repo.PerformTx(ctx, arg)
		if errors.Is(err, domain.ErrConcurrentModification) {
			l.Info().
				Int("attempt", attempt).
				Int64("account_id", arg.AccountID).
				Msg("concurrent modification, retrying")

			continue
		}

		return result, err
	}

	return domain.TransactionTxResult{}, domain.ErrTransferFailed
}

// Get returns the ledger entry with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	transaction, err := s.repo.Get(ctx, id)
	if err != nil {
		return transaction, err
	}

	return transaction, nil
}

// ListByAccount returns the account's ledger entries in insertion order.
func (s *Service) ListByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	if _, err := s.accountService.Get(ctx, accountID); err != nil {
		return nil, err
	}

	transactions, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// Transfer atomically debits the source account and credits the destination.
//
// A version conflict on either account aborts the unit of work and restarts
// it from a fresh read, at most maxAttempts times, after which the caller
// gets ErrTransferFailed rather than blocking or silently overwriting.
func (s *Service) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx)

	if arg.FromAccountID == arg.ToAccountID {
		return domain.TransferResult{}, domain.ErrSameAccountTransfer
	}

	if err := validAmount(arg.Amount); err != nil {
		l.Info().Err(err).Send()
		return domain.TransferResult{}, err
	}

	arg.Amount = normalize(arg.Amount)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := s.repo.TransferTx(ctx, arg)
		if errors.Is(err, domain.ErrConcurrentModification) {
			l.Info().
				Int("attempt", attempt).
				Int64("from_account_id", arg.FromAccountID).
				Int64("to_account_id", arg.ToAccountID).
				Msg("concurrent modification, retrying transfer")

			continue
		}

		if err == nil {
			l.Info().
				Int64("debit_transaction_id", result.DebitTransactionID).
				Int64("credit_transaction_id", result.CreditTransactionID).
				Str("amount", result.Amount).
				Msg("transfer completed")
		}

		return result, err
	}

	return domain.TransferResult{}, domain.ErrTransferFailed
}

func validAmount(amount string) error {
	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	return nil
}

// normalize renders the amount at scale 2 so ledger rows and balance math
// always agree on representation.
func normalize(amount string) string {
	d, _ := decimal.NewFromString(amount)
	return d.StringFixed(2)
}
