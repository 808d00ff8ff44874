// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/bankingapp/account-service/internal/domain"
	"github.com/bankingapp/account-service/pkg/dbpkg"
	"github.com/bankingapp/account-service/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (owner_id, account_number, category, balance)
VALUES
    ($1, $2, $3, $4)
RETURNING id, owner_id, account_number, category, balance, created_at, updated_at, version
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, ownerID int64, accountNumber, category, balance string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, ownerID, accountNumber, category, balance)

	var a domain.Account

	err := scanAccount(row, &a)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_balance_check":
				return a, domain.ErrInvalidRequest
			case "accounts_account_number_key":
				return a, errorspkg.ErrInternal
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	id, owner_id, account_number, category, balance, created_at, updated_at, version
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := scanAccount(row, &a)
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT
	id, owner_id, account_number, category, balance, created_at, updated_at, version
FROM accounts
ORDER BY id
`

// List returns all accounts ordered by id ascending.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(
			&a.ID,
			&a.OwnerID,
			&a.AccountNumber,
			&a.Category,
			&a.Balance,
			&a.CreatedAt,
			&a.UpdatedAt,
			&a.Version,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const deleteQuery = `
DELETE FROM accounts
WHERE id = $1
`

// Delete removes the account with the given id. The transaction log cascades
// with it as one atomic unit.
func (r *RepoPGS) Delete(ctx context.Context, id int64) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

const applyDeltaQuery = `
UPDATE accounts
SET balance = balance + $1,
    version = version + 1,
    updated_at = now()
WHERE id = $2 AND version = $3
RETURNING id, owner_id, account_number, category, balance, created_at, updated_at, version
`

// ApplyDelta is the only mutator of balance. It adds the signed amount to the
// balance of the account whose stored version still equals expectedVersion
// and returns the refreshed account.
//
// Zero rows updated means another writer committed first; callers load the
// account in the same unit of work beforehand, so absence was already ruled
// out on this snapshot. The accounts_balance_check constraint rejects any
// delta that would drive the balance negative.
func (r *RepoPGS) ApplyDelta(ctx context.Context, id int64, delta string, expectedVersion int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, applyDeltaQuery, delta, id, expectedVersion)

	var a domain.Account

	err := scanAccount(row, &a)
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrConcurrentModification
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

func scanAccount(row *sql.Row, a *domain.Account) error {
	return row.Scan(
		&a.ID,
		&a.OwnerID,
		&a.AccountNumber,
		&a.Category,
		&a.Balance,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.Version,
	)
}
