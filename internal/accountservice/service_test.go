package accountservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/bankingapp/account-service/internal/domain"
	"github.com/bankingapp/account-service/pkg/errorspkg"
)

func testOwner(id int64) domain.OwnerSummary {
	return domain.OwnerSummary{
		ID:       id,
		Username: "owner",
		Email:    "owner@email.com",
	}
}

func testAccount(ownerID int64, balance string) domain.Account {
	return domain.Account{
		ID:            1,
		OwnerID:       ownerID,
		AccountNumber: "ACCT-1A2B3C4D",
		Category:      "SAVINGS",
		Balance:       balance,
		CreatedAt:     time.Now().Truncate(time.Second).UTC(),
		UpdatedAt:     time.Now().Truncate(time.Second).UTC(),
		Version:       0,
	}
}

func TestCreate(t *testing.T) {
	account := testAccount(10, "100.00")

	testCases := []struct {
		name          string
		arg           domain.CreateAccountParams
		buildStubs    func(repo *MockRepo, owners *MockOwnerRegistry)
		checkResponse func(t *testing.T, res domain.Account, err error)
	}{
		{
			name: "OK",
			arg: domain.CreateAccountParams{
				OwnerID:        10,
				Category:       "SAVINGS",
				InitialBalance: "100.00",
			},
			buildStubs: func(repo *MockRepo, owners *MockOwnerRegistry) {
				owners.EXPECT().Get(gomock.Any(), gomock.Eq(int64(10))).
					Times(1).
					Return(testOwner(10), nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(int64(10)), gomock.Any(), gomock.Eq("SAVINGS"), gomock.Eq("100.00")).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, account, res)
			},
		},
		{
			name: "DefaultInitialBalanceIsZero",
			arg: domain.CreateAccountParams{
				OwnerID:  10,
				Category: "CURRENT",
			},
			buildStubs: func(repo *MockRepo, owners *MockOwnerRegistry) {
				owners.EXPECT().Get(gomock.Any(), gomock.Eq(int64(10))).
					Times(1).
					Return(testOwner(10), nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(int64(10)), gomock.Any(), gomock.Eq("CURRENT"), gomock.Eq("0.00")).
					Times(1).
					Return(testAccount(10, "0.00"), nil)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "MissingOwner",
			arg: domain.CreateAccountParams{
				Category: "SAVINGS",
			},
			buildStubs: func(repo *MockRepo, owners *MockOwnerRegistry) {
				owners.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidRequest)
			},
		},
		{
			name: "UnsupportedCategory",
			arg: domain.CreateAccountParams{
				OwnerID:  10,
				Category: "CHECKING",
			},
			buildStubs: func(repo *MockRepo, owners *MockOwnerRegistry) {
				owners.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidRequest)
			},
		},
		{
			name: "NegativeInitialBalance",
			arg: domain.CreateAccountParams{
				OwnerID:        10,
				Category:       "SAVINGS",
				InitialBalance: "-5.00",
			},
			buildStubs: func(repo *MockRepo, owners *MockOwnerRegistry) {
				owners.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidRequest)
			},
		},
		{
			name: "OwnerNotFound",
			arg: domain.CreateAccountParams{
				OwnerID:  404,
				Category: "SAVINGS",
			},
			buildStubs: func(repo *MockRepo, owners *MockOwnerRegistry) {
				owners.EXPECT().Get(gomock.Any(), gomock.Eq(int64(404))).
					Times(1).
					Return(domain.OwnerSummary{}, domain.ErrOwnerNotFound)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.ErrorIs(t, err, domain.ErrOwnerNotFound)
			},
		},
		{
			name: "OwnerRegistryUnavailable",
			arg: domain.CreateAccountParams{
				OwnerID:  10,
				Category: "SAVINGS",
			},
			buildStubs: func(repo *MockRepo, owners *MockOwnerRegistry) {
				owners.EXPECT().Get(gomock.Any(), gomock.Eq(int64(10))).
					Times(1).
					Return(domain.OwnerSummary{}, domain.ErrOwnerRegistryUnavailable)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.ErrorIs(t, err, domain.ErrOwnerRegistryUnavailable)
			},
		},
		{
			name: "RepoError",
			arg: domain.CreateAccountParams{
				OwnerID:  10,
				Category: "SAVINGS",
			},
			buildStubs: func(repo *MockRepo, owners *MockOwnerRegistry) {
				owners.EXPECT().Get(gomock.Any(), gomock.Eq(int64(10))).
					Times(1).
					Return(testOwner(10), nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.ErrorIs(t, err, errorspkg.ErrInternal)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			owners := NewMockOwnerRegistry(ctrl)
			tc.buildStubs(repo, owners)

			service := New(repo, owners)

			res, err := service.Create(context.Background(), tc.arg)
			tc.checkResponse(t, res, err)
		})
	}
}

func TestGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	owners := NewMockOwnerRegistry(ctrl)
	service := New(repo, owners)

	account := testAccount(10, "100.00")

	repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(account, nil)

	got, err := service.Get(context.Background(), account.ID)
	require.NoError(t, err)
	require.Equal(t, account, got)

	repo.EXPECT().Get(gomock.Any(), gomock.Eq(int64(404))).
		Times(1).
		Return(domain.Account{}, domain.ErrAccountNotFound)

	_, err = service.Get(context.Background(), 404)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	owners := NewMockOwnerRegistry(ctrl)
	service := New(repo, owners)

	accounts := []domain.Account{testAccount(10, "100.00")}

	repo.EXPECT().List(gomock.Any()).Times(1).Return(accounts, nil)

	got, err := service.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, accounts, got)
}

func TestDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	owners := NewMockOwnerRegistry(ctrl)
	service := New(repo, owners)

	repo.EXPECT().Delete(gomock.Any(), gomock.Eq(int64(1))).Times(1).Return(nil)
	require.NoError(t, service.Delete(context.Background(), 1))

	repo.EXPECT().Delete(gomock.Any(), gomock.Eq(int64(404))).
		Times(1).
		Return(domain.ErrAccountNotFound)
	require.ErrorIs(t, service.Delete(context.Background(), 404), domain.ErrAccountNotFound)
}
