package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"orcamentos/internal/domain/entities"
	"orcamentos/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testOrdersTable   = "orders"
	testCountersTable = "counters"
)

func newTestOrderRepo(ddb *fakeDynamo) *OrderDynamoRepository {
	repo := NewOrderDynamoRepository(ddb, testOrdersTable, testCountersTable)
	repo.seq.sleep = func(time.Duration) {}
	return repo
}

func sampleOrder() entities.Order {
	return entities.Order{
		ID:         uuid.NewString(),
		ClientID:   "client-1",
		ClientName: "Prefeitura de Lavras",
		Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Items: []entities.OrderItem{{
			ID:        "item-1",
			ServiceID: "svc-1",
			Code:      "1.1",
			Unit:      "km²",
			Quantity:  decimal.NewFromInt(10),
			UnitPrice: decimal.NewFromInt(150),
			Total:     decimal.NewFromInt(1500),
		}},
		Subtotal: decimal.NewFromInt(1500),
		Discount: decimal.NewFromInt(100),
		Total:    decimal.NewFromInt(1400),
		Status:   entities.OrderStatusDraft,
	}
}

func TestOrderCreate_BackToBackCodes(t *testing.T) {
	ddb := newFakeDynamo()
	repo := newTestOrderRepo(ddb)
	ctx := context.Background()

	first, err := repo.Create(ctx, sampleOrder())
	require.NoError(t, err)
	second, err := repo.Create(ctx, sampleOrder())
	require.NoError(t, err)

	assert.Equal(t, "000001", first.Code)
	assert.Equal(t, "000002", second.Code)

	got, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "000002", got.Code)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(1400)))
	assert.Equal(t, "km²", got.Items[0].Unit)
}

func TestOrderCreate_ConcurrentCodesAreDistinct(t *testing.T) {
	ddb := newFakeDynamo()
	repo := newTestOrderRepo(ddb)
	ctx := context.Background()

	const n = 12
	codes := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			o, err := repo.Create(ctx, sampleOrder())
			codes[i], errs[i] = o.Code, err
		}(i)
	}
	close(start)
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	sort.Strings(codes)
	for i, code := range codes {
		assert.Equal(t, fmt.Sprintf("%06d", i+1), code)
	}

	cur, exists, err := repo.seq.current(ctx, OrdersCounter)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, n, cur)
}

func TestOrderCreate_GivesUpAfterRepeatedConflicts(t *testing.T) {
	ddb := newFakeDynamo()
	ddb.conflictAlways = true
	repo := newTestOrderRepo(ddb)
	sleeps := 0
	repo.seq.sleep = func(time.Duration) { sleeps++ }

	_, err := repo.Create(context.Background(), sampleOrder())

	assert.ErrorIs(t, err, interfaces.ErrSequenceConflict)
	assert.Equal(t, maxSequenceAttempts, ddb.transactCalls)
	assert.Equal(t, maxSequenceAttempts, sleeps)
}

func TestOrderCreate_DuplicateIDDoesNotConsumeCode(t *testing.T) {
	ddb := newFakeDynamo()
	repo := newTestOrderRepo(ddb)
	ctx := context.Background()

	o := sampleOrder()
	_, err := repo.Create(ctx, o)
	require.NoError(t, err)

	_, err = repo.Create(ctx, o)
	assert.ErrorIs(t, err, interfaces.ErrAlreadyExists)

	cur, _, err := repo.seq.current(ctx, OrdersCounter)
	require.NoError(t, err)
	assert.Equal(t, 1, cur)
}

func TestOrderList_ExcludesSoftDeletedAndMetadata(t *testing.T) {
	ddb := newFakeDynamo()
	repo := newTestOrderRepo(ddb)
	ctx := context.Background()

	kept, err := repo.Create(ctx, sampleOrder())
	require.NoError(t, err)
	removed, err := repo.Create(ctx, sampleOrder())
	require.NoError(t, err)
	ddb.put(testOrdersTable, fakeItem{"id": &types.AttributeValueMemberS{Value: metadataID}})

	ok, err := repo.SoftDelete(ctx, removed.ID)
	require.NoError(t, err)
	require.True(t, ok)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, kept.ID, list[0].ID)

	got, err := repo.GetByID(ctx, removed.ID)
	require.NoError(t, err)
	assert.True(t, got.Deleted)
	assert.Equal(t, removed.Code, got.Code)
}

func TestOrderList_OrdersByDateThenCode(t *testing.T) {
	ddb := newFakeDynamo()
	repo := newTestOrderRepo(ddb)
	ctx := context.Background()

	older := sampleOrder()
	older.Date = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, older)
	require.NoError(t, err)
	a, err := repo.Create(ctx, sampleOrder())
	require.NoError(t, err)
	b, err := repo.Create(ctx, sampleOrder())
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)
	assert.Equal(t, older.ID, list[2].ID)
}

func TestOrderList_CodesPastSixDigitsSortNumerically(t *testing.T) {
	ddb := newFakeDynamo()
	repo := newTestOrderRepo(ddb)
	ctx := context.Background()

	low := sampleOrder()
	low.Code = "999999"
	high := sampleOrder()
	high.Code = "1000000"
	for _, o := range []entities.Order{low, high} {
		require.NoError(t, putNew(ctx, ddb, testOrdersTable, toOrderRecord(o)))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "1000000", list[0].Code)
	assert.Equal(t, "999999", list[1].Code)
}

func TestOrderSoftDeleteAll(t *testing.T) {
	ddb := newFakeDynamo()
	repo := newTestOrderRepo(ddb)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, sampleOrder())
		require.NoError(t, err)
	}

	n, err := repo.SoftDeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOrderUpdateStatus(t *testing.T) {
	ddb := newFakeDynamo()
	repo := newTestOrderRepo(ddb)
	ctx := context.Background()

	o, err := repo.Create(ctx, sampleOrder())
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(ctx, o.ID, entities.OrderStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusApproved, updated.Status)
	assert.Equal(t, o.Code, updated.Code)

	missing, err := repo.UpdateStatus(ctx, "nope", entities.OrderStatusApproved)
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}

func TestOrderUpdate_KeepsCode(t *testing.T) {
	ddb := newFakeDynamo()
	repo := newTestOrderRepo(ddb)
	ctx := context.Background()

	o, err := repo.Create(ctx, sampleOrder())
	require.NoError(t, err)

	o.Code = "999999"
	o.Observations = "revisado"
	o.Discount = decimal.Zero
	o.Total = decimal.NewFromInt(1500)
	updated, err := repo.Update(ctx, o)
	require.NoError(t, err)

	assert.Equal(t, "000001", updated.Code)
	assert.Equal(t, "revisado", updated.Observations)
	assert.True(t, updated.Total.Equal(decimal.NewFromInt(1500)))
}
