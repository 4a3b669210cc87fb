package command

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cn "github.com/r-o-main/bulk-transfer-api/internal/constant"
	"github.com/r-o-main/bulk-transfer-api/internal/domain"
	"github.com/r-o-main/bulk-transfer-api/internal/postgres"
	"github.com/r-o-main/bulk-transfer-api/internal/queue"
)

// memStore is an in-memory implementation of the three repositories,
// enough to run the whole intake/worker/finalizer pipeline in one process
// and assert on the end state of the books.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]*domain.BankAccount
	bulks    map[string]*domain.BulkRequest
	txns     map[string]*domain.Transaction
}

func newMemStore(accounts ...*domain.BankAccount) *memStore {
	s := &memStore{
		accounts: map[string]*domain.BankAccount{},
		bulks:    map[string]*domain.BulkRequest{},
		txns:     map[string]*domain.Transaction{},
	}

	for _, a := range accounts {
		copied := *a
		s.accounts[a.ID] = &copied
	}

	return s
}

func (s *memStore) LookupForUpdate(_ context.Context, _ *sql.Tx, bic, iban string) (*domain.BankAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.BIC == bic && a.IBAN == iban {
			copied := *a
			return &copied, nil
		}
	}

	return nil, nil
}

func (s *memStore) LookupByID(_ context.Context, _ *sql.Tx, id string) (*domain.BankAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, nil
	}

	copied := *a

	return &copied, nil
}

func (s *memStore) LookupByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*domain.BankAccount, error) {
	return s.LookupByID(ctx, tx, id)
}

func (s *memStore) ReserveFunds(_ context.Context, _ *sql.Tx, accountID string, deltaCents int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[accountID].OngoingTransferCents += deltaCents

	return nil
}

func (s *memStore) DebitBalance(_ context.Context, _ *sql.Tx, accountID string, amountCents int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[accountID].BalanceCents -= amountCents

	return nil
}

func (s *memStore) Create(_ context.Context, _ *sql.Tx, accountID, requestUUID string, totalCents int64) (*domain.BulkRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bulk := &domain.BulkRequest{
		ID:               requestUUID,
		RequestUUID:      requestUUID,
		BankAccountID:    accountID,
		Status:           domain.RequestStatusPending,
		TotalAmountCents: totalCents,
		CreatedAt:        time.Now().UTC(),
	}
	s.bulks[requestUUID] = bulk

	copied := *bulk

	return &copied, nil
}

func (s *memStore) LookupByUUID(_ context.Context, _ *sql.Tx, requestUUID string) (*domain.BulkRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bulk, ok := s.bulks[requestUUID]
	if !ok {
		return nil, nil
	}

	copied := *bulk

	return &copied, nil
}

func (s *memStore) LookupForUpdateBulk(ctx context.Context, tx *sql.Tx, requestUUID string) (*domain.BulkRequest, error) {
	return s.LookupByUUID(ctx, tx, requestUUID)
}

func (s *memStore) Save(_ context.Context, _ *sql.Tx, bulk *domain.BulkRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *bulk
	s.bulks[bulk.RequestUUID] = &copied

	return nil
}

func (s *memStore) CreateTransaction(_ context.Context, _ *sql.Tx, job domain.TransferJob) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.txns[job.TransferUUID]; ok {
		return nil, postgres.ErrTransferAlreadyProcessed
	}

	txn := &domain.Transaction{
		TransferUUID:    job.TransferUUID,
		BulkRequestUUID: job.BulkRequestUUID,
		BankAccountID:   job.BankAccountID,
		AmountCents:     -job.AmountCents,
		AmountCurrency:  job.AmountCurrency,
		CreatedAt:       time.Now().UTC(),
	}
	s.txns[job.TransferUUID] = txn

	copied := *txn

	return &copied, nil
}

func (s *memStore) LookupByTransferUUID(_ context.Context, _ *sql.Tx, transferUUID string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.txns[transferUUID]
	if !ok {
		return nil, nil
	}

	copied := *txn

	return &copied, nil
}

// The repository interfaces share method names (bulk and transaction both
// declare Create, account and bulk both declare LookupForUpdate), so the
// store is split into thin views.
type bulkRepoView struct{ *memStore }

func (v bulkRepoView) LookupForUpdate(ctx context.Context, tx *sql.Tx, requestUUID string) (*domain.BulkRequest, error) {
	return v.memStore.LookupForUpdateBulk(ctx, tx, requestUUID)
}

type txnRepoView struct{ *memStore }

func (v txnRepoView) Create(ctx context.Context, tx *sql.Tx, job domain.TransferJob) (*domain.Transaction, error) {
	return v.memStore.CreateTransaction(ctx, tx, job)
}

func newPipelineUseCase(store *memStore, remote *stubGateway) (*UseCase, *queue.MemoryQueue[domain.TransferJob], *queue.MemoryQueue[domain.FinalizeBulkJob]) {
	transferQueue := queue.NewMemoryQueue[domain.TransferJob]()
	finalizeQueue := queue.NewMemoryQueue[domain.FinalizeBulkJob]()

	uc := &UseCase{
		Tx:              passthroughTxRunner{},
		AccountRepo:     store,
		BulkRequestRepo: bulkRepoView{store},
		TransactionRepo: txnRepoView{store},
		TransferQueue:   transferQueue,
		FinalizeQueue:   finalizeQueue,
		Gateway:         remote,
	}

	return uc, transferQueue, finalizeQueue
}

// drainQueues runs every pending transfer job, then every finalize job,
// exactly as the worker pools would.
func drainQueues(t *testing.T, uc *UseCase, transferQueue *queue.MemoryQueue[domain.TransferJob], finalizeQueue *queue.MemoryQueue[domain.FinalizeBulkJob]) {
	t.Helper()

	ctx := context.TODO()

	for {
		delivery, err := transferQueue.Dequeue(ctx)
		if errors.Is(err, queue.ErrEmpty) {
			break
		}

		require.NoError(t, err)
		require.NoError(t, uc.ProcessTransfer(ctx, delivery.Job))
		require.NoError(t, delivery.Ack())
	}

	for {
		delivery, err := finalizeQueue.Dequeue(ctx)
		if errors.Is(err, queue.ErrEmpty) {
			break
		}

		require.NoError(t, err)
		require.NoError(t, uc.FinalizeBulk(ctx, delivery.Job))
		require.NoError(t, delivery.Ack())
	}
}

// TestPipelineHappyPath is responsible to test the full lifecycle: intake,
// transfer workers, finalizer, committed books.
func TestPipelineHappyPath(t *testing.T) {
	store := newMemStore(&domain.BankAccount{
		ID:           testAccountID,
		BIC:          testBIC,
		IBAN:         testIBAN,
		BalanceCents: 10_000_000,
	})

	uc, transferQueue, finalizeQueue := newPipelineUseCase(store, &stubGateway{})

	bulk, err := uc.SubmitBulk(context.TODO(), bulkInput("14.50", "199.99"))
	require.NoError(t, err)
	require.Equal(t, domain.RequestStatusPending, bulk.Status)

	drainQueues(t, uc, transferQueue, finalizeQueue)

	account := store.accounts[testAccountID]
	assert.Equal(t, int64(9_978_551), account.BalanceCents)
	assert.Zero(t, account.OngoingTransferCents)

	final := store.bulks[testRequestID]
	assert.Equal(t, domain.RequestStatusCompleted, final.Status)
	assert.Equal(t, final.TotalAmountCents, final.ProcessedAmountCents)
	assert.NotNil(t, final.CompletedAt)

	require.Len(t, store.txns, 2)

	seen := map[int64]bool{}
	for _, txn := range store.txns {
		seen[txn.AmountCents] = true
	}

	assert.True(t, seen[-1450])
	assert.True(t, seen[-19999])
}

// TestPipelineResubmitRejected is responsible to test that replaying the
// same submission after completion changes nothing.
func TestPipelineResubmitRejected(t *testing.T) {
	store := newMemStore(&domain.BankAccount{
		ID:           testAccountID,
		BIC:          testBIC,
		IBAN:         testIBAN,
		BalanceCents: 10_000_000,
	})

	uc, transferQueue, finalizeQueue := newPipelineUseCase(store, &stubGateway{})

	_, err := uc.SubmitBulk(context.TODO(), bulkInput("14.50", "199.99"))
	require.NoError(t, err)

	drainQueues(t, uc, transferQueue, finalizeQueue)

	balanceAfterFirst := store.accounts[testAccountID].BalanceCents

	_, err = uc.SubmitBulk(context.TODO(), bulkInput("14.50", "199.99"))
	assert.ErrorIs(t, err, cn.ErrAlreadyProcessed)

	assert.Equal(t, balanceAfterFirst, store.accounts[testAccountID].BalanceCents)
	assert.Len(t, store.txns, 2)
	assert.Zero(t, transferQueue.Len())
}

// TestPipelineGatewayFailureCancelsBulk is responsible to test the
// all-or-nothing semantic: one refused leg fails the whole bulk, the
// reservation is released, and the balance stays untouched while every
// attempt keeps its audit row.
func TestPipelineGatewayFailureCancelsBulk(t *testing.T) {
	store := newMemStore(&domain.BankAccount{
		ID:           testAccountID,
		BIC:          testBIC,
		IBAN:         testIBAN,
		BalanceCents: 10_000_000,
	})

	// Second leg refused by the remote gateway.
	uc, transferQueue, finalizeQueue := newPipelineUseCase(store, &stubGateway{script: []bool{true, false, true}})

	_, err := uc.SubmitBulk(context.TODO(), bulkInput("10.00", "20.00", "30.00"))
	require.NoError(t, err)

	drainQueues(t, uc, transferQueue, finalizeQueue)

	account := store.accounts[testAccountID]
	assert.Equal(t, int64(10_000_000), account.BalanceCents)
	assert.Zero(t, account.OngoingTransferCents)

	final := store.bulks[testRequestID]
	assert.Equal(t, domain.RequestStatusFailed, final.Status)
	assert.NotNil(t, final.CompletedAt)

	// All three attempts are kept as audit traces.
	assert.Len(t, store.txns, 3)
}

// TestPipelineRedeliveredTransferJob is responsible to test at-least-once
// delivery: replaying an already processed transfer job creates no second
// transaction row and no second finalize job.
func TestPipelineRedeliveredTransferJob(t *testing.T) {
	store := newMemStore(&domain.BankAccount{
		ID:           testAccountID,
		BIC:          testBIC,
		IBAN:         testIBAN,
		BalanceCents: 10_000_000,
	})

	uc, transferQueue, finalizeQueue := newPipelineUseCase(store, &stubGateway{})

	_, err := uc.SubmitBulk(context.TODO(), bulkInput("14.50"))
	require.NoError(t, err)

	delivery, err := transferQueue.Dequeue(context.TODO())
	require.NoError(t, err)

	require.NoError(t, uc.ProcessTransfer(context.TODO(), delivery.Job))
	require.NoError(t, uc.ProcessTransfer(context.TODO(), delivery.Job))

	assert.Len(t, store.txns, 1)
	assert.Equal(t, 1, finalizeQueue.Len())

	drainQueues(t, uc, transferQueue, finalizeQueue)

	assert.Equal(t, domain.RequestStatusCompleted, store.bulks[testRequestID].Status)
}
