package command

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/r-o-main/bulk-transfer-api/internal/domain"
	"github.com/r-o-main/bulk-transfer-api/internal/postgres"
)

func pendingBulk(totalCents, processedCents int64) *domain.BulkRequest {
	return &domain.BulkRequest{
		RequestUUID:          testRequestID,
		BankAccountID:        testAccountID,
		Status:               domain.RequestStatusPending,
		TotalAmountCents:     totalCents,
		ProcessedAmountCents: processedCents,
	}
}

func finalizeJob(amountCents int64, success bool) domain.FinalizeBulkJob {
	return domain.FinalizeBulkJob{
		BulkRequestUUID: testRequestID,
		BankAccountID:   testAccountID,
		AmountCents:     amountCents,
		Success:         success,
	}
}

// TestFinalizeBulkProgress is responsible to test a success report that
// leaves the bulk still in progress.
func TestFinalizeBulkProgress(t *testing.T) {
	ctrl := gomock.NewController(t)

	accountRepo := postgres.NewMockAccountRepository(ctrl)
	bulkRepo := postgres.NewMockBulkRequestRepository(ctrl)

	bulk := pendingBulk(21449, 0)

	bulkRepo.EXPECT().
		LookupForUpdate(gomock.Any(), gomock.Any(), testRequestID).
		Return(bulk, nil).
		Times(1)
	accountRepo.EXPECT().
		LookupByIDForUpdate(gomock.Any(), gomock.Any(), testAccountID).
		Return(&domain.BankAccount{ID: testAccountID}, nil).
		Times(1)
	bulkRepo.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, saved *domain.BulkRequest) error {
			assert.Equal(t, domain.RequestStatusPending, saved.Status)
			assert.Equal(t, int64(1450), saved.ProcessedAmountCents)
			assert.Nil(t, saved.CompletedAt)
			return nil
		}).
		Times(1)

	uc := UseCase{
		Tx:              passthroughTxRunner{},
		AccountRepo:     accountRepo,
		BulkRequestRepo: bulkRepo,
	}

	err := uc.FinalizeBulk(context.TODO(), finalizeJob(1450, true))

	require.NoError(t, err)
}

// TestFinalizeBulkCompletion is responsible to test the last success
// report: reservation released, balance debited, bulk COMPLETED.
func TestFinalizeBulkCompletion(t *testing.T) {
	ctrl := gomock.NewController(t)

	accountRepo := postgres.NewMockAccountRepository(ctrl)
	bulkRepo := postgres.NewMockBulkRequestRepository(ctrl)

	bulk := pendingBulk(21449, 19999)

	bulkRepo.EXPECT().
		LookupForUpdate(gomock.Any(), gomock.Any(), testRequestID).
		Return(bulk, nil).
		Times(1)
	accountRepo.EXPECT().
		LookupByIDForUpdate(gomock.Any(), gomock.Any(), testAccountID).
		Return(&domain.BankAccount{ID: testAccountID}, nil).
		Times(1)
	accountRepo.EXPECT().
		ReserveFunds(gomock.Any(), gomock.Any(), testAccountID, int64(-21449)).
		Return(nil).
		Times(1)
	accountRepo.EXPECT().
		DebitBalance(gomock.Any(), gomock.Any(), testAccountID, int64(21449)).
		Return(nil).
		Times(1)
	bulkRepo.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, saved *domain.BulkRequest) error {
			assert.Equal(t, domain.RequestStatusCompleted, saved.Status)
			assert.Equal(t, saved.TotalAmountCents, saved.ProcessedAmountCents)
			assert.NotNil(t, saved.CompletedAt)
			return nil
		}).
		Times(1)

	uc := UseCase{
		Tx:              passthroughTxRunner{},
		AccountRepo:     accountRepo,
		BulkRequestRepo: bulkRepo,
	}

	err := uc.FinalizeBulk(context.TODO(), finalizeJob(1450, true))

	require.NoError(t, err)
}

// TestFinalizeBulkCancellation is responsible to test the compensating
// cancel: the full reservation is released, the balance untouched.
func TestFinalizeBulkCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)

	accountRepo := postgres.NewMockAccountRepository(ctrl)
	bulkRepo := postgres.NewMockBulkRequestRepository(ctrl)

	bulk := pendingBulk(21449, 1450)

	bulkRepo.EXPECT().
		LookupForUpdate(gomock.Any(), gomock.Any(), testRequestID).
		Return(bulk, nil).
		Times(1)
	accountRepo.EXPECT().
		LookupByIDForUpdate(gomock.Any(), gomock.Any(), testAccountID).
		Return(&domain.BankAccount{ID: testAccountID}, nil).
		Times(1)
	accountRepo.EXPECT().
		ReserveFunds(gomock.Any(), gomock.Any(), testAccountID, int64(-21449)).
		Return(nil).
		Times(1)
	bulkRepo.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, saved *domain.BulkRequest) error {
			assert.Equal(t, domain.RequestStatusFailed, saved.Status)
			assert.NotNil(t, saved.CompletedAt)
			return nil
		}).
		Times(1)

	uc := UseCase{
		Tx:              passthroughTxRunner{},
		AccountRepo:     accountRepo,
		BulkRequestRepo: bulkRepo,
	}

	err := uc.FinalizeBulk(context.TODO(), finalizeJob(19999, false))

	require.NoError(t, err)
}

// TestFinalizeBulkTerminalDrop is responsible to test that a finalize job
// against an already terminal bulk is dropped without touching anything.
func TestFinalizeBulkTerminalDrop(t *testing.T) {
	for _, status := range []domain.RequestStatus{domain.RequestStatusCompleted, domain.RequestStatusFailed} {
		ctrl := gomock.NewController(t)

		bulkRepo := postgres.NewMockBulkRequestRepository(ctrl)

		terminal := pendingBulk(21449, 21449)
		terminal.Status = status

		bulkRepo.EXPECT().
			LookupForUpdate(gomock.Any(), gomock.Any(), testRequestID).
			Return(terminal, nil).
			Times(1)

		uc := UseCase{
			Tx:              passthroughTxRunner{},
			BulkRequestRepo: bulkRepo,
		}

		err := uc.FinalizeBulk(context.TODO(), finalizeJob(1450, true))

		require.NoError(t, err, "status: %s", status)
	}
}

// TestFinalizeBulkUnknownBulk is responsible to test that a finalize job
// for a bulk that does not exist is dropped.
func TestFinalizeBulkUnknownBulk(t *testing.T) {
	ctrl := gomock.NewController(t)

	bulkRepo := postgres.NewMockBulkRequestRepository(ctrl)
	bulkRepo.EXPECT().
		LookupForUpdate(gomock.Any(), gomock.Any(), testRequestID).
		Return(nil, nil).
		Times(1)

	uc := UseCase{
		Tx:              passthroughTxRunner{},
		BulkRequestRepo: bulkRepo,
	}

	err := uc.FinalizeBulk(context.TODO(), finalizeJob(1450, true))

	require.NoError(t, err)
}
