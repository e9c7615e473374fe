package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/xiebiao/library/internal/application/inventory"
	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/category"
	"github.com/xiebiao/library/internal/domain/editorial"
	"github.com/xiebiao/library/internal/domain/inventory"
	"github.com/xiebiao/library/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

type published struct {
	routingKey string
	message    interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, message interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, published{routingKey: routingKey, message: message})
	return nil
}

type fixture struct {
	store     *memory.Store
	repo      inventory.Repository
	publisher *recordingPublisher
	create    *appinventory.CreateInventoryUseCase
	adjust    *appinventory.AdjustUnitsUseCase
	get       *appinventory.GetInventoryUseCase
	list      *appinventory.ListInventoriesUseCase
	delete    *appinventory.DeleteInventoryUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	repo := memory.NewInventoryRepository(store)
	tx := memory.NewTxManager(store)
	publisher := &recordingPublisher{}
	return &fixture{
		store:     store,
		repo:      repo,
		publisher: publisher,
		create:    appinventory.NewCreateInventoryUseCase(repo, memory.NewBookRepository(store)),
		adjust:    appinventory.NewAdjustUnitsUseCase(repo, tx, publisher),
		get:       appinventory.NewGetInventoryUseCase(repo),
		list:      appinventory.NewListInventoriesUseCase(repo),
		delete:    appinventory.NewDeleteInventoryUseCase(repo, tx),
	}
}

// seedBook 写入一本书及其作者、分类、出版社
func (f *fixture) seedBook(t *testing.T, name string) uint {
	t.Helper()
	ctx := context.Background()

	a, err := author.NewAuthor("Juan", "Rulfo", "")
	require.NoError(t, err)
	require.NoError(t, memory.NewAuthorRepository(f.store).Create(ctx, a))
	c, err := category.NewCategory("Cat "+name, "", "")
	require.NoError(t, err)
	require.NoError(t, memory.NewCategoryRepository(f.store).Create(ctx, c))
	e, err := editorial.NewEditorial("Ed "+name, "", "")
	require.NoError(t, err)
	require.NoError(t, memory.NewEditorialRepository(f.store).Create(ctx, e))

	b, err := book.NewBook(book.NewBookParams{
		Name: name, PlaceOfEdition: "México", YearOfEdition: 1955, NumPages: 300,
		AuthorID: a.ID, CategoryID: c.ID, EditorialID: e.ID,
	})
	require.NoError(t, err)
	require.NoError(t, memory.NewBookRepository(f.store).Create(ctx, b))
	return b.ID
}

func TestCreateInventory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bookID := f.seedBook(t, "El amor en los tiempos del cólera")

	inv, err := f.create.Execute(ctx, bookID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, inv.UnitsPurchased, "默认采购1本")
	assert.Equal(t, 1, inv.UnitsAvailable)
	assert.Equal(t, 0, inv.LoanedUnits)

	t.Run("同一本书不能重复建库存", func(t *testing.T) {
		_, err := f.create.Execute(ctx, bookID, 3)
		assert.ErrorIs(t, err, inventory.ErrInventoryExists)
	})

	t.Run("图书不存在返回400", func(t *testing.T) {
		_, err := f.create.Execute(ctx, 999, 3)
		assert.ErrorIs(t, err, apperrors.ErrUnknownReference)
		assert.Equal(t, 400, apperrors.GetAppError(err).HTTPStatus())
	})

	t.Run("负数", func(t *testing.T) {
		_, err := f.create.Execute(ctx, bookID, -1)
		assert.ErrorIs(t, err, inventory.ErrInvalidUnits)
	})
}

func TestAdjustUnits(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	inv, err := f.create.Execute(ctx, f.seedBook(t, "Rayuela"), 2)
	require.NoError(t, err)

	t.Run("补货并发布事件", func(t *testing.T) {
		got, err := f.adjust.Execute(ctx, inv.ID, appinventory.OperationAddUnits, 3)
		require.NoError(t, err)
		assert.Equal(t, 5, got.UnitsPurchased)
		assert.Equal(t, 5, got.UnitsAvailable)

		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, inventory.RoutingKeyRestocked, f.publisher.events[0].routingKey)
		ev := f.publisher.events[0].message.(inventory.RestockedEvent)
		assert.Equal(t, 3, ev.AddedUnits)
		assert.Equal(t, 5, ev.UnitsAvailable)
	})

	t.Run("借出和归还", func(t *testing.T) {
		got, err := f.adjust.Execute(ctx, inv.ID, appinventory.OperationLend, 5)
		require.NoError(t, err)
		assert.Equal(t, 0, got.UnitsAvailable)

		_, err = f.adjust.Execute(ctx, inv.ID, appinventory.OperationLend, 1)
		assert.ErrorIs(t, err, inventory.ErrNoUnitsAvailable)

		got, err = f.adjust.Execute(ctx, inv.ID, appinventory.OperationReturn, 5)
		require.NoError(t, err, "可以归还到0")
		assert.Equal(t, 0, got.LoanedUnits)
		assert.Equal(t, 5, got.UnitsAvailable)

		_, err = f.adjust.Execute(ctx, inv.ID, appinventory.OperationReturn, 1)
		assert.ErrorIs(t, err, inventory.ErrReturnExceedsLoaned)
	})

	t.Run("超过可借数量时不落库", func(t *testing.T) {
		_, err := f.adjust.Execute(ctx, inv.ID, appinventory.OperationLend, 6)
		assert.ErrorIs(t, err, inventory.ErrLoanedExceedsPurchased)

		got, err := f.get.Execute(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.LoanedUnits)
	})

	t.Run("数量必须大于0", func(t *testing.T) {
		_, err := f.adjust.Execute(ctx, inv.ID, appinventory.OperationAddUnits, 0)
		assert.ErrorIs(t, err, inventory.ErrInvalidUnits)
	})

	t.Run("不支持的操作", func(t *testing.T) {
		_, err := f.adjust.Execute(ctx, inv.ID, "burn", 1)
		assert.ErrorIs(t, err, apperrors.ErrInvalidParams)
	})

	t.Run("库存不存在", func(t *testing.T) {
		_, err := f.adjust.Execute(ctx, 999, appinventory.OperationLend, 1)
		assert.ErrorIs(t, err, inventory.ErrInventoryNotFound)
		assert.Equal(t, 404, apperrors.GetAppError(err).HTTPStatus())
	})
}

func TestAdjustUnits_ConcurrentLend(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	inv, err := f.create.Execute(ctx, f.seedBook(t, "Ficciones"), 10)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	success := 0
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.adjust.Execute(ctx, inv.ID, appinventory.OperationLend, 1); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, success)
	got, err := f.get.Execute(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.LoanedUnits)
	assert.Equal(t, 0, got.UnitsAvailable)
}

func TestAdjustUnits_PublishFailureKeepsChange(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	inv, err := f.create.Execute(ctx, f.seedBook(t, "Pedro Páramo"), 1)
	require.NoError(t, err)

	f.publisher.err = errors.New("channel closed")
	got, err := f.adjust.Execute(ctx, inv.ID, appinventory.OperationAddUnits, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, got.UnitsPurchased)
}

func TestGetAndListInventories(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	first, err := f.create.Execute(ctx, f.seedBook(t, "Aura"), 1)
	require.NoError(t, err)
	second, err := f.create.Execute(ctx, f.seedBook(t, "La región más transparente"), 2)
	require.NoError(t, err)

	got, err := f.get.ExecuteByBook(ctx, second.BookID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	_, err = f.get.ExecuteByBook(ctx, 999)
	assert.ErrorIs(t, err, inventory.ErrInventoryNotFound)

	_, err = f.adjust.Execute(ctx, first.ID, appinventory.OperationLend, 1)
	require.NoError(t, err)

	resp, err := f.list.Execute(ctx, appinventory.ListInventoriesRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	assert.Equal(t, 20, resp.PageSize)

	resp, err = f.list.Execute(ctx, appinventory.ListInventoriesRequest{OnlyAvailable: true})
	require.NoError(t, err)
	require.Len(t, resp.List, 1)
	assert.Equal(t, second.ID, resp.List[0].ID)
}

func TestDeleteInventory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	inv, err := f.create.Execute(ctx, f.seedBook(t, "Los de abajo"), 2)
	require.NoError(t, err)

	_, err = f.adjust.Execute(ctx, inv.ID, appinventory.OperationLend, 1)
	require.NoError(t, err)

	_, err = f.delete.Execute(ctx, inv.ID)
	assert.ErrorIs(t, err, inventory.ErrInventoryInUse)

	_, err = f.adjust.Execute(ctx, inv.ID, appinventory.OperationReturn, 1)
	require.NoError(t, err)

	removed, err := f.delete.Execute(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, removed.ID)

	_, err = f.get.Execute(ctx, inv.ID)
	assert.ErrorIs(t, err, inventory.ErrInventoryNotFound)
}
