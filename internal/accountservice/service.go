// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bankingapp/account-service/internal/domain"
	"github.com/bankingapp/account-service/pkg/categorypkg"
	"github.com/bankingapp/account-service/pkg/randompkg"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, ownerID int64, accountNumber, category, balance string) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Delete(ctx context.Context, id int64) error
}

// OwnerRegistry looks up account owners in the external user registry.
type OwnerRegistry interface {
	Get(ctx context.Context, ownerID int64) (domain.OwnerSummary, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo   Repo
	owners OwnerRegistry
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo, owners OwnerRegistry) *Service {
	return &Service{
		repo:   ar,
		owners: owners,
	}
}

// Create validates the request, verifies the owner exists in the external
// registry and creates the account with a generated account number.
func (s *Service) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if arg.OwnerID <= 0 {
		return domain.Account{}, domain.ErrInvalidRequest
	}

	if !categorypkg.IsSupportedCategory(arg.Category) {
		return domain.Account{}, domain.ErrInvalidRequest
	}

	balance := arg.InitialBalance
	if balance == "" {
		balance = "0"
	}

	balanceDecimal, err := decimal.NewFromString(balance)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.ErrInvalidRequest
	}

	if balanceDecimal.IsNegative() {
		return domain.Account{}, domain.ErrInvalidRequest
	}

	if _, err := s.owners.Get(ctx, arg.OwnerID); err != nil {
		l.Info().Err(err).Int64("owner_id", arg.OwnerID).Send()
		return domain.Account{}, err
	}

	account, err := s.repo.Create(ctx, arg.OwnerID, randompkg.AccountNumber(), arg.Category, balanceDecimal.StringFixed(2))
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, id int64) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// List returns all accounts ordered by id.
func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// Delete removes the account and its transaction log.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Int64("account_id", id).Msg("account deleted")

	return nil
}
