package transactionservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/bankingapp/account-service/internal/accountdelivery"
	"github.com/bankingapp/account-service/internal/domain"
)

func testTxResult(accountID int64, amount, direction string) domain.TransactionTxResult {
	return domain.TransactionTxResult{
		Transaction: domain.Transaction{
			ID:        1,
			AccountID: accountID,
			Amount:    amount,
			Direction: direction,
			CreatedAt: time.Now().Truncate(time.Second).UTC(),
		},
		Account: domain.Account{
			ID:      accountID,
			Balance: "100.00",
			Version: 1,
		},
	}
}

func TestCredit(t *testing.T) {
	result := testTxResult(1, "25.00", domain.DirectionCredit)

	testCases := []struct {
		name          string
		accountID     int64
		amount        string
		buildStubs    func(repo *MockRepo)
		checkResponse func(t *testing.T, res domain.TransactionTxResult, err error)
	}{
		{
			name:      "OK",
			accountID: 1,
			amount:    "25.00",
			buildStubs: func(repo *MockRepo) {
				arg := domain.CreateTransactionParams{
					AccountID: 1,
					Amount:    "25.00",
					Direction: domain.DirectionCredit,
				}
				repo.EXPECT().PerformTx(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(result, nil)
			},
			checkResponse: func(t *testing.T, res domain.TransactionTxResult, err error) {
				require.NoError(t, err)
				require.Equal(t, result, res)
			},
		},
		{
			name:      "AmountNormalizedToScaleTwo",
			accountID: 1,
			amount:    "25",
			buildStubs: func(repo *MockRepo) {
				arg := domain.CreateTransactionParams{
					AccountID: 1,
					Amount:    "25.00",
					Direction: domain.DirectionCredit,
				}
				repo.EXPECT().PerformTx(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(result, nil)
			},
			checkResponse: func(t *testing.T, res domain.TransactionTxResult, err error) {
				require.NoError(t, err)
			},
		},
		{
			name:      "ZeroAmount",
			accountID: 1,
			amount:    "0",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().PerformTx(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.TransactionTxResult, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name:      "NegativeAmount",
			accountID: 1,
			amount:    "-5.00",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().PerformTx(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.TransactionTxResult, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name:      "MalformedAmount",
			accountID: 1,
			amount:    "ten",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().PerformTx(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.TransactionTxResult, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name:      "RetriesThenSucceeds",
			accountID: 1,
			amount:    "25.00",
			buildStubs: func(repo *MockRepo) {
				gomock.InOrder(
					repo.EXPECT().PerformTx(gomock.Any(), gomock.Any()).
						Return(domain.TransactionTxResult{}, domain.ErrConcurrentModification),
					repo.EXPECT().PerformTx(gomock.Any(), gomock.Any()).
						Return(result, nil),
				)
			},
			checkResponse: func(t *testing.T, res domain.TransactionTxResult, err error) {
				require.NoError(t, err)
				require.Equal(t, result, res)
			},
		},
		{
			name:      "RetriesExhausted",
			accountID: 1,
			amount:    "25.00",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().PerformTx(gomock.Any(), gomock.Any()).
					Times(maxAttempts).
					Return(domain.TransactionTxResult{}, domain.ErrConcurrentModification)
			},
			checkResponse: func(t *testing.T, res domain.TransactionTxResult, err error) {
				require.ErrorIs(t, err, domain.ErrTransferFailed)
			},
		},
		{
			name:      "AccountNotFoundIsNotRetried",
			accountID: 404,
			amount:    "25.00",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().PerformTx(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransactionTxResult{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(t *testing.T, res domain.TransactionTxResult, err error) {
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			accountService := accountdelivery.NewMockService(ctrl)
			tc.buildStubs(repo)

			service := New(repo, accountService)

			res, err := service.Credit(context.Background(), tc.accountID, tc.amount, "")
			tc.checkResponse(t, res, err)
		})
	}
}

func TestDebit(t *testing.T) {
	result := testTxResult(1, "25.00", domain.DirectionDebit)

	testCases := []struct {
		name          string
		accountID     int64
		amount        string
		buildStubs    func(repo *MockRepo)
		checkResponse func(t *testing.T, res domain.TransactionTxResult, err error)
	}{
		{
			name:      "OK",
			accountID: 1,
			amount:    "25.00",
			buildStubs: func(repo *MockRepo) {
				arg := domain.CreateTransactionParams{
					AccountID: 1,
					Amount:    "25.00",
					Direction: domain.DirectionDebit,
				}
				repo.EXPECT().PerformTx(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(result, nil)
			},
			checkResponse: func(t *testing.T, res domain.TransactionTxResult, err error) {
				require.NoError(t, err)
				require.Equal(t, result, res)
			},
		},
		{
			name:      "InsufficientBalanceIsNotRetried",
			accountID: 1,
			amount:    "1000.00",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().PerformTx(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransactionTxResult{}, domain.ErrInsufficientBalance)
			},
			checkResponse: func(t *testing.T, res domain.TransactionTxResult, err error) {
				require.ErrorIs(t, err, domain.ErrInsufficientBalance)
			},
		},
		{
			name:      "RetriesExhausted",
			accountID: 1,
			amount:    "25.00",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().PerformTx(gomock.Any(), gomock.Any()).
					Times(maxAttempts).
					Return(domain.TransactionTxResult{}, domain.ErrConcurrentModification)
			},
			checkResponse: func(t *testing.T, res domain.TransactionTxResult, err error) {
				require.ErrorIs(t, err, domain.ErrTransferFailed)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			accountService := accountdelivery.NewMockService(ctrl)
			tc.buildStubs(repo)

			service := New(repo, accountService)

			res, err := service.Debit(context.Background(), tc.accountID, tc.amount, "")
			tc.checkResponse(t, res, err)
		})
	}
}

func TestTransfer(t *testing.T) {
	result := domain.TransferResult{
		DebitTransactionID:  1,
		CreditTransactionID: 2,
		FromAccountID:       1,
		ToAccountID:         2,
		Amount:              "25.00",
		Timestamp:           time.Now().Truncate(time.Second).UTC(),
		Message:             "Transfer successful",
	}

	testCases := []struct {
		name          string
		arg           domain.CreateTransferParams
		buildStubs    func(repo *MockRepo)
		checkResponse func(t *testing.T, res domain.TransferResult, err error)
	}{
		{
			name: "OK",
			arg: domain.CreateTransferParams{
				FromAccountID: 1,
				ToAccountID:   2,
				Amount:        "25.00",
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any()).
					Times(1).
					Return(result, nil)
			},
			checkResponse: func(t *testing.T, res domain.TransferResult, err error) {
				require.NoError(t, err)
				require.Equal(t, result, res)
			},
		},
		{
			name: "SameAccount",
			arg: domain.CreateTransferParams{
				FromAccountID: 1,
				ToAccountID:   1,
				Amount:        "25.00",
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.TransferResult, err error) {
				require.ErrorIs(t, err, domain.ErrSameAccountTransfer)
			},
		},
		{
			name: "SameAccountCheckedBeforeAmount",
			arg: domain.CreateTransferParams{
				FromAccountID: 1,
				ToAccountID:   1,
				Amount:        "-5.00",
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.TransferResult, err error) {
				require.ErrorIs(t, err, domain.ErrSameAccountTransfer)
			},
		},
		{
			name: "InvalidAmount",
			arg: domain.CreateTransferParams{
				FromAccountID: 1,
				ToAccountID:   2,
				Amount:        "0",
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.TransferResult, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name: "RetriesThenSucceeds",
			arg: domain.CreateTransferParams{
				FromAccountID: 1,
				ToAccountID:   2,
				Amount:        "25.00",
			},
			buildStubs: func(repo *MockRepo) {
				gomock.InOrder(
					repo.EXPECT().TransferTx(gomock.Any(), gomock.Any()).
						Return(domain.TransferResult{}, domain.ErrConcurrentModification),
					repo.EXPECT().TransferTx(gomock.Any(), gomock.Any()).
						Return(domain.TransferResult{}, domain.ErrConcurrentModification),
					repo.EXPECT().TransferTx(gomock.Any(), gomock.Any()).
						Return(result, nil),
				)
			},
			checkResponse: func(t *testing.T, res domain.TransferResult, err error) {
				require.NoError(t, err)
				require.Equal(t, result, res)
			},
		},
		{
			name: "RetriesExhausted",
			arg: domain.CreateTransferParams{
				FromAccountID: 1,
				ToAccountID:   2,
				Amount:        "25.00",
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any()).
					Times(maxAttempts).
					Return(domain.TransferResult{}, domain.ErrConcurrentModification)
			},
			checkResponse: func(t *testing.T, res domain.TransferResult, err error) {
				require.ErrorIs(t, err, domain.ErrTransferFailed)
			},
		},
		{
			name: "InsufficientBalanceIsNotRetried",
			arg: domain.CreateTransferParams{
				FromAccountID: 1,
				ToAccountID:   2,
				Amount:        "1000.00",
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferResult{}, domain.ErrInsufficientBalance)
			},
			checkResponse: func(t *testing.T, res domain.TransferResult, err error) {
				require.ErrorIs(t, err, domain.ErrInsufficientBalance)
			},
		},
		{
			name: "SourceAccountNotFound",
			arg: domain.CreateTransferParams{
				FromAccountID: 404,
				ToAccountID:   2,
				Amount:        "25.00",
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferResult{}, domain.ErrSourceAccountNotFound)
			},
			checkResponse: func(t *testing.T, res domain.TransferResult, err error) {
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
				require.ErrorIs(t, err, domain.ErrSourceAccountNotFound)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			accountService := accountdelivery.NewMockService(ctrl)
			tc.buildStubs(repo)

			service := New(repo, accountService)

			res, err := service.Transfer(context.Background(), tc.arg)
			tc.checkResponse(t, res, err)
		})
	}
}

func TestGetTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	accountService := accountdelivery.NewMockService(ctrl)
	service := New(repo, accountService)

	transaction := testTxResult(1, "25.00", domain.DirectionCredit).Transaction

	repo.EXPECT().Get(gomock.Any(), gomock.Eq(transaction.ID)).Times(1).Return(transaction, nil)

	got, err := service.Get(context.Background(), transaction.ID)
	require.NoError(t, err)
	require.Equal(t, transaction, got)

	repo.EXPECT().Get(gomock.Any(), gomock.Eq(int64(404))).
		Times(1).
		Return(domain.Transaction{}, domain.ErrTransactionNotFound)

	_, err = service.Get(context.Background(), 404)
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestListByAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	accountService := accountdelivery.NewMockService(ctrl)
	service := New(repo, accountService)

	transactions := []domain.Transaction{
		testTxResult(1, "25.00", domain.DirectionCredit).Transaction,
	}

	accountService.EXPECT().Get(gomock.Any(), gomock.Eq(int64(1))).
		Times(1).
		Return(domain.Account{ID: 1}, nil)
	repo.EXPECT().ListByAccount(gomock.Any(), gomock.Eq(int64(1))).
		Times(1).
		Return(transactions, nil)

	got, err := service.ListByAccount(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, transactions, got)

	accountService.EXPECT().Get(gomock.Any(), gomock.Eq(int64(404))).
		Times(1).
		Return(domain.Account{}, domain.ErrAccountNotFound)
	repo.EXPECT().ListByAccount(gomock.Any(), gomock.Any()).Times(0)

	_, err = service.ListByAccount(context.Background(), 404)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}
