package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/internal/core/types"
	"stockroom/internal/domain/catalogs/product"
	"stockroom/internal/domain/registers/movement"
)

var fixedNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func newTestService(s *store, opts ...Option) *Service {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewService(fakeProducts{s}, fakeMovements{s}, opts...)
}

func screwdriver(quantity int) *product.Product {
	return product.NewProduct("Screwdriver", "Flat head", quantity, 2, types.MustMoney("1.50"), types.MustMoney("3.90"))
}

func TestRecordMovement_AppliesDelta(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	p := s.seed(screwdriver(5))
	svc := newTestService(s)

	updated, err := svc.RecordMovement(ctx, movement.NewMovement(p.ID, movement.KindInbound, 10, fixedNow, ""))
	require.NoError(t, err)
	assert.Equal(t, 15, updated.Quantity)
	assert.Equal(t, 15, s.products[p.ID].Quantity)

	updated, err = svc.RecordMovement(ctx, movement.NewMovement(p.ID, movement.KindOutbound, 3, fixedNow, ""))
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Quantity)
	assert.Equal(t, 12, s.products[p.ID].Quantity)

	assert.Equal(t, []string{
		"insert movement INBOUND 10 for 1",
		"update product 1 quantity=15",
		"insert movement OUTBOUND 3 for 1",
		"update product 1 quantity=12",
	}, s.ops)
}

func TestRecordMovement_DefaultsDateToToday(t *testing.T) {
	s := newStore()
	p := s.seed(screwdriver(5))
	svc := newTestService(s)

	m := &movement.Movement{ProductID: p.ID, Kind: movement.KindInbound, Quantity: 1}
	_, err := svc.RecordMovement(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, movement.DateOf(fixedNow), m.Date)
	assert.True(t, m.ID.IsAssigned())
}

func TestRecordMovement_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown kind", func(t *testing.T) {
		s := newStore()
		p := s.seed(screwdriver(5))
		_, err := newTestService(s).RecordMovement(ctx, movement.NewMovement(p.ID, "TRANSFER", 1, fixedNow, ""))
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
		assert.Empty(t, s.ops)
	})

	t.Run("missing product", func(t *testing.T) {
		s := newStore()
		_, err := newTestService(s).RecordMovement(ctx, movement.NewMovement(99, movement.KindInbound, 1, fixedNow, ""))
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
		assert.Empty(t, s.ops)
	})

	t.Run("outbound exceeds stock", func(t *testing.T) {
		s := newStore()
		p := s.seed(screwdriver(2))
		_, err := newTestService(s).RecordMovement(ctx, movement.NewMovement(p.ID, movement.KindOutbound, 3, fixedNow, ""))
		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.CodeInsufficientStock))
		assert.Empty(t, s.ops)
	})

	t.Run("future date", func(t *testing.T) {
		s := newStore()
		p := s.seed(screwdriver(2))
		_, err := newTestService(s).RecordMovement(ctx, movement.NewMovement(p.ID, movement.KindInbound, 1, fixedNow.AddDate(0, 0, 1), ""))
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("nil movement", func(t *testing.T) {
		_, err := newTestService(newStore()).RecordMovement(ctx, nil)
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestRecordMovement_PartialWriteInStepMode(t *testing.T) {
	s := newStore()
	p := s.seed(screwdriver(5))
	s.failProductUpdate = errStorageDown
	svc := newTestService(s)
	require.False(t, svc.Transactional())

	_, err := svc.RecordMovement(context.Background(), movement.NewMovement(p.ID, movement.KindInbound, 10, fixedNow, ""))
	require.Error(t, err)
	assert.ErrorIs(t, err, errStorageDown)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodePartialWrite, appErr.Code)
	assert.Equal(t, []string{StepInsertMovement}, appErr.Details["completed"])
	assert.Equal(t, StepUpdateProduct, appErr.Details["failed_step"])
	assert.Equal(t, p.ID, appErr.Details["product_id"])
	assert.Equal(t, 15, appErr.Details["target_quantity"])

	// the movement is kept; re-issuing the absolute update does not double-apply
	require.Len(t, s.movementsOf(p.ID), 1)
	s.failProductUpdate = nil
	retry := s.products[p.ID]
	retry.Quantity = appErr.Details["target_quantity"].(int)
	require.NoError(t, svc.UpdateProduct(context.Background(), &retry))
	require.NoError(t, svc.UpdateProduct(context.Background(), &retry))
	assert.Equal(t, 15, s.products[p.ID].Quantity)
}

func TestRecordMovement_FirstStepFailureIsNotPartial(t *testing.T) {
	s := newStore()
	p := s.seed(screwdriver(5))
	s.failMovementInsert = errStorageDown

	_, err := newTestService(s).RecordMovement(context.Background(), movement.NewMovement(p.ID, movement.KindInbound, 10, fixedNow, ""))
	require.Error(t, err)
	assert.False(t, apperror.Is(err, apperror.CodePartialWrite))
	assert.Equal(t, 5, s.products[p.ID].Quantity)
}

func TestRecordMovement_TransactionalMode(t *testing.T) {
	s := newStore()
	p := s.seed(screwdriver(5))
	s.failProductUpdate = errStorageDown
	txm := &fakeTx{}
	svc := newTestService(s, WithTxManager(txm))
	require.True(t, svc.Transactional())

	_, err := svc.RecordMovement(context.Background(), movement.NewMovement(p.ID, movement.KindInbound, 10, fixedNow, ""))
	require.Error(t, err)
	assert.Equal(t, 1, txm.calls)
	assert.ErrorIs(t, err, errStorageDown)
	assert.False(t, apperror.Is(err, apperror.CodePartialWrite))
}

func TestCreateProduct_WritesInitialStock(t *testing.T) {
	s := newStore()
	svc := newTestService(s)

	p := screwdriver(7)
	newID, err := svc.CreateProduct(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, newID, p.ID)

	ledger := s.movementsOf(newID)
	require.Len(t, ledger, 1)
	assert.Equal(t, movement.KindInbound, ledger[0].Kind)
	assert.Equal(t, 7, ledger[0].Quantity)
	assert.Equal(t, movement.InitialStockNote, ledger[0].Note)
	assert.Equal(t, movement.DateOf(fixedNow), ledger[0].Date)

	assert.Equal(t, []string{
		"insert product 1",
		"insert movement INBOUND 7 for 1",
	}, s.ops)
}

func TestCreateProduct_ZeroStartingStock(t *testing.T) {
	s := newStore()
	newID, err := newTestService(s).CreateProduct(context.Background(), screwdriver(0))
	require.NoError(t, err)

	ledger := s.movementsOf(newID)
	require.Len(t, ledger, 1)
	assert.Equal(t, 0, ledger[0].Quantity)
}

func TestCreateProduct_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate name", func(t *testing.T) {
		s := newStore()
		s.seed(screwdriver(1))
		newID, err := newTestService(s).CreateProduct(ctx, screwdriver(3))
		require.Error(t, err)
		assert.True(t, apperror.IsDuplicate(err))
		assert.Equal(t, id.Unassigned, newID)
		assert.Empty(t, s.movements)
	})

	t.Run("invalid product", func(t *testing.T) {
		s := newStore()
		_, err := newTestService(s).CreateProduct(ctx, screwdriver(-1))
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("initial movement fails", func(t *testing.T) {
		s := newStore()
		s.failMovementInsert = errStorageDown
		_, err := newTestService(s).CreateProduct(ctx, screwdriver(4))
		require.Error(t, err)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodePartialWrite, appErr.Code)
		assert.Equal(t, []string{StepInsertProduct}, appErr.Details["completed"])
		assert.Equal(t, StepInsertMovement, appErr.Details["failed_step"])
		assert.Equal(t, 4, appErr.Details["initial_quantity"])
	})
}

func TestCreateProduct_TransactionalFailureClearsID(t *testing.T) {
	s := newStore()
	s.failMovementInsert = errStorageDown
	txm := &fakeTx{}

	p := screwdriver(4)
	newID, err := newTestService(s, WithTxManager(txm)).CreateProduct(context.Background(), p)
	require.Error(t, err)
	assert.Equal(t, 1, txm.calls)
	assert.ErrorIs(t, err, errStorageDown)
	assert.False(t, apperror.Is(err, apperror.CodePartialWrite))
	assert.Equal(t, id.Unassigned, newID)
	assert.Equal(t, id.Unassigned, p.ID)
	assert.True(t, p.IsNew())
}

func TestCreateProduct_StepModeFailureKeepsID(t *testing.T) {
	s := newStore()
	s.failMovementInsert = errStorageDown

	p := screwdriver(4)
	_, err := newTestService(s).CreateProduct(context.Background(), p)
	require.True(t, apperror.Is(err, apperror.CodePartialWrite))

	// the product row was committed; its id is what a retry needs
	assert.True(t, p.ID.IsAssigned())
	_, stored := s.products[p.ID]
	assert.True(t, stored)
}

func TestDeleteProduct_Cascades(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	svc := newTestService(s)

	keep, err := svc.CreateProduct(ctx, product.NewProduct("Hammer", "Claw", 3, 1, types.Zero(), types.Zero()))
	require.NoError(t, err)
	gone, err := svc.CreateProduct(ctx, screwdriver(5))
	require.NoError(t, err)
	_, err = svc.RecordMovement(ctx, movement.NewMovement(gone, movement.KindOutbound, 1, fixedNow, ""))
	require.NoError(t, err)

	s.ops = nil
	require.NoError(t, svc.DeleteProduct(ctx, gone))

	assert.Equal(t, []string{
		"delete movements of 3",
		"delete product 3",
	}, s.ops)
	assert.Empty(t, s.movementsOf(gone))
	assert.Len(t, s.movementsOf(keep), 1)
	_, err = svc.Product(ctx, gone)
	assert.True(t, apperror.IsNotFound(err))

	// already absent
	require.NoError(t, svc.DeleteProduct(ctx, gone))

	err = svc.DeleteProduct(ctx, id.Unassigned)
	assert.True(t, apperror.IsValidation(err))
}

func TestProducts_CriticalOnly(t *testing.T) {
	s := newStore()
	s.seed(product.NewProduct("A", "a", 10, 2, types.Zero(), types.Zero()))
	s.seed(product.NewProduct("B", "b", 2, 2, types.Zero(), types.Zero()))

	items, err := newTestService(s).Products(context.Background(), nil, true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].Name)
}
