// Package transactionrepo manages repository layer of the transaction log and
// owns the atomic units of work that combine balance updates with log inserts.
package transactionrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/bankingapp/account-service/internal/accountrepo"
	"github.com/bankingapp/account-service/internal/domain"
	"github.com/bankingapp/account-service/pkg/dbpkg"
	"github.com/bankingapp/account-service/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transaction RepoPGS scoped to an open db transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transaction RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createQuery = `
INSERT INTO
    transactions (account_id, amount, direction, description)
VALUES
    ($1, $2, $3, $4)
RETURNING id, account_id, amount, direction, description, created_at
`

// Create creates the ledger entry and then returns it.
func (r *RepoPGS) Create(ctx context.Context, accountID int64, amount, direction, description string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, accountID, amount, direction, description)

	var t domain.Transaction

	err := scanTransaction(row, &t)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_amount_check":
				return t, domain.ErrInvalidAmount
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT
	id, account_id, amount, direction, description, created_at
FROM transactions
WHERE id = $1
`

// Get returns the ledger entry with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var t domain.Transaction

	err := scanTransaction(row, &t)
	if err != nil {
		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		l.Error().Err(err).Send()

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listByAccountQuery = `
SELECT
	id, account_id, amount, direction, description, created_at
FROM transactions
WHERE account_id = $1
ORDER BY id
`

// ListByAccount returns all entries for the given account in insertion order.
func (r *RepoPGS) ListByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByAccountQuery, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.Amount,
			&t.Direction,
			&t.Description,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

// PerformTx applies a single credit or debit: one version-checked balance
// update plus one ledger insert within a single db transaction.
//
// The amount is positive; direction decides the sign of the applied delta.
func (r *RepoPGS) PerformTx(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransactionTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer rollback(ctx, tx)

	accountRepo := accountrepo.NewRepoPGS(tx)
	txRepo := NewTxRepoPGS(tx)

	account, err := accountRepo.Get(ctx, arg.AccountID)
	if err != nil {
		return result, err
	}

	delta := arg.Amount
	if arg.Direction == domain.DirectionDebit {
		delta = "-" + arg.Amount
	}

	result.Account, err = accountRepo.ApplyDelta(ctx, account.ID, delta, account.Version)
	if err != nil {
		return result, err
	}

	result.Transaction, err = txRepo.Create(ctx, account.ID, arg.Amount, arg.Direction, arg.Description)
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}

// TransferTx moves money between two accounts.
//
// It updates both balances through the version-checked mutator and records
// one DEBIT and one CREDIT ledger entry within a single db transaction.
// Either all four writes commit or none do.
func (r *RepoPGS) TransferTx(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer rollback(ctx, tx)

	accountRepo := accountrepo.NewRepoPGS(tx)
	txRepo := NewTxRepoPGS(tx)

	// To avoid deadlocks load and update accounts in consistent id order.
	from, to, err := loadPair(ctx, accountRepo, arg.FromAccountID, arg.ToAccountID)
	if err != nil {
		return result, err
	}

	fromBalance, err := decimal.NewFromString(from.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	amount, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Error().Err(err).Send()
		return result, domain.ErrInvalidAmount
	}

	if fromBalance.LessThan(amount) {
		return result, domain.ErrInsufficientBalance
	}

	if arg.FromAccountID < arg.ToAccountID {
		_, err = accountRepo.ApplyDelta(ctx, from.ID, "-"+arg.Amount, from.Version)
		if err == nil {
			_, err = accountRepo.ApplyDelta(ctx, to.ID, arg.Amount, to.Version)
		}
	} else {
		_, err = accountRepo.ApplyDelta(ctx, to.ID, arg.Amount, to.Version)
		if err == nil {
			_, err = accountRepo.ApplyDelta(ctx, from.ID, "-"+arg.Amount, from.Version)
		}
	}

	if err != nil {
		return result, err
	}

	debit, err := txRepo.Create(ctx, from.ID, arg.Amount, domain.DirectionDebit,
		"Transfer to account "+to.AccountNumber)
	if err != nil {
		return result, err
	}

	credit, err := txRepo.Create(ctx, to.ID, arg.Amount, domain.DirectionCredit,
		"Transfer from account "+from.AccountNumber)
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	result = domain.TransferResult{
		DebitTransactionID:  debit.ID,
		CreditTransactionID: credit.ID,
		FromAccountID:       from.ID,
		ToAccountID:         to.ID,
		Amount:              arg.Amount,
		Timestamp:           time.Now().UTC(),
		Message:             "Transfer successful",
	}

	return result, nil
}

// loadPair reads both transfer accounts in ascending id order and reports
// which side is missing.
func loadPair(ctx context.Context, r *accountrepo.RepoPGS, fromID, toID int64) (domain.Account, domain.Account, error) {
	firstID, secondID := fromID, toID
	if toID < fromID {
		firstID, secondID = toID, fromID
	}

	first, err := r.Get(ctx, firstID)
	if err != nil {
		return domain.Account{}, domain.Account{}, sideError(err, firstID, fromID)
	}

	second, err := r.Get(ctx, secondID)
	if err != nil {
		return domain.Account{}, domain.Account{}, sideError(err, secondID, fromID)
	}

	if firstID == fromID {
		return first, second, nil
	}

	return second, first, nil
}

func sideError(err error, failedID, fromID int64) error {
	if err != domain.ErrAccountNotFound {
		return err
	}

	if failedID == fromID {
		return domain.ErrSourceAccountNotFound
	}

	return domain.ErrDestinationAccountNotFound
}

func rollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		zerolog.Ctx(ctx).Error().Err(err).Send()
	}
}

func scanTransaction(row *sql.Row, t *domain.Transaction) error {
	return row.Scan(
		&t.ID,
		&t.AccountID,
		&t.Amount,
		&t.Direction,
		&t.Description,
		&t.CreatedAt,
	)
}
