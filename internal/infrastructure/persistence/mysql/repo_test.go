package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/inventory"
	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

var inventoryColumns = []string{"id", "book_id", "units_purchased", "loaned_units", "units_available", "created_at", "updated_at"}

// newMockDB 用sqlmock替代真实MySQL，断言GORM生成的SQL
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = sqlDB.Close()
	})
	return db, mock
}

func TestInventoryRepository_Lock(t *testing.T) {
	now := time.Now()

	t.Run("LockByID在事务内加行锁", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInventoryRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT \\* FROM `inventories` WHERE `inventories`\\.`id` = \\? ORDER BY `inventories`\\.`id` LIMIT \\S+ FOR UPDATE").
			WillReturnRows(sqlmock.NewRows(inventoryColumns).AddRow(3, 7, 5, 2, 3, now, now))
		mock.ExpectCommit()

		var got *inventory.Inventory
		err := NewTxManager(db).Transaction(context.Background(), func(ctx context.Context) error {
			var err error
			got, err = repo.LockByID(ctx, 3)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, uint(7), got.BookID)
		assert.Equal(t, 3, got.UnitsAvailable)
	})

	t.Run("LockByBookID在事务内加行锁", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInventoryRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT \\* FROM `inventories` WHERE book_id = \\? ORDER BY `inventories`\\.`id` LIMIT \\S+ FOR UPDATE").
			WillReturnRows(sqlmock.NewRows(inventoryColumns).AddRow(3, 7, 5, 2, 3, now, now))
		mock.ExpectCommit()

		err := NewTxManager(db).Transaction(context.Background(), func(ctx context.Context) error {
			inv, err := repo.LockByBookID(ctx, 7)
			if err != nil {
				return err
			}
			assert.Equal(t, uint(3), inv.ID)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("图书没有库存时回滚", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInventoryRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows(inventoryColumns))
		mock.ExpectRollback()

		err := NewTxManager(db).Transaction(context.Background(), func(ctx context.Context) error {
			_, err := repo.LockByBookID(ctx, 99)
			return err
		})
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInventoryNotFound))
	})
}

func TestInventoryRepository_Create(t *testing.T) {
	t.Run("BeforeSave计算可借数量", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInventoryRepository(db)

		mock.ExpectExec("INSERT INTO `inventories`").WillReturnResult(sqlmock.NewResult(12, 1))

		inv := &inventory.Inventory{BookID: 7, UnitsPurchased: 5, LoanedUnits: 1, UnitsAvailable: 99}
		require.NoError(t, repo.Create(context.Background(), inv))
		assert.Equal(t, uint(12), inv.ID)
		assert.Equal(t, 4, inv.UnitsAvailable)
	})

	t.Run("一本书重复建库存", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInventoryRepository(db)

		mock.ExpectExec("INSERT INTO `inventories`").
			WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry '7' for key 'book_id'"})

		err := repo.Create(context.Background(), &inventory.Inventory{BookID: 7, UnitsPurchased: 5})
		assert.ErrorIs(t, err, inventory.ErrInventoryExists)
	})
}

func TestInventoryRepository_Save(t *testing.T) {
	t.Run("借出超过采购时不发出SQL", func(t *testing.T) {
		db, _ := newMockDB(t)
		repo := NewInventoryRepository(db)

		inv := &inventory.Inventory{ID: 3, BookID: 7, UnitsPurchased: 1, LoanedUnits: 2}
		err := repo.Save(context.Background(), inv)
		assert.ErrorIs(t, err, inventory.ErrLoanedExceedsPurchased)
	})

	t.Run("更新时重算可借数量", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewInventoryRepository(db)

		mock.ExpectExec("UPDATE `inventories` SET .* WHERE .*`id` = \\?").WillReturnResult(sqlmock.NewResult(0, 1))

		inv := &inventory.Inventory{ID: 3, BookID: 7, UnitsPurchased: 5, LoanedUnits: 3, UnitsAvailable: 5}
		require.NoError(t, repo.Save(context.Background(), inv))
		assert.Equal(t, 2, inv.UnitsAvailable)
	})
}

func TestInventoryModel_BeforeSave(t *testing.T) {
	m := &InventoryModel{BookID: 7, UnitsPurchased: 1, LoanedUnits: 2}
	assert.ErrorIs(t, m.BeforeSave(nil), inventory.ErrLoanedExceedsPurchased)

	m = &InventoryModel{BookID: 7, UnitsPurchased: 4, LoanedUnits: -1}
	assert.ErrorIs(t, m.BeforeSave(nil), inventory.ErrNegativeUnits)

	m = &InventoryModel{BookID: 7, UnitsPurchased: 4, LoanedUnits: 1, UnitsAvailable: 0}
	require.NoError(t, m.BeforeSave(nil))
	assert.Equal(t, 3, m.UnitsAvailable)
}

func TestInventoryRepository_Delete(t *testing.T) {
	deleteSQL := "DELETE FROM `inventories` WHERE `inventories`\\.`id` = \\?"

	t.Run("没有删除任何行", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(deleteSQL).WithArgs(9).WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewInventoryRepository(db).Delete(context.Background(), 9)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInventoryNotFound))
	})

	t.Run("删除成功", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(deleteSQL).WithArgs(9).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewInventoryRepository(db).Delete(context.Background(), 9))
	})

	t.Run("仍被借阅引用", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(deleteSQL).WillReturnError(&mysqldriver.MySQLError{Number: 1451})

		err := NewInventoryRepository(db).Delete(context.Background(), 9)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeReferencedRow))
	})
}

func TestLoanRepository_ExistsActive(t *testing.T) {
	due := time.Date(2026, 11, 1, 18, 30, 0, 0, time.UTC)
	existsSQL := "SELECT count\\(\\*\\) FROM `loans` WHERE \\(?member_id = \\? AND book_id = \\? AND state = \\?\\)? AND DATE\\(due_date\\) = DATE\\(\\?\\)"

	t.Run("同一天已有借阅", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(existsSQL).
			WithArgs(3, 7, string(loan.StateLent), due).
			WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

		exists, err := NewLoanRepository(db).ExistsActive(context.Background(), 3, 7, due)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("没有借阅", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(existsSQL).WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

		exists, err := NewLoanRepository(db).ExistsActive(context.Background(), 3, 7, due)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("数据库错误", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(existsSQL).WillReturnError(errors.New("connection reset"))

		_, err := NewLoanRepository(db).ExistsActive(context.Background(), 3, 7, due)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDatabaseError))
	})
}

func TestBookRepository_ListSummaries(t *testing.T) {
	db, mock := newMockDB(t)
	joins := "FROM `books` JOIN categories ON categories\\.id = books\\.category_id " +
		"JOIN editorials ON editorials\\.id = books\\.editorial_id " +
		"JOIN authors ON authors\\.id = books\\.author_id WHERE books\\.status = \\?"

	mock.ExpectQuery("SELECT count\\(\\*\\) " + joins).
		WithArgs(string(book.StatusAvailable)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectQuery("SELECT books\\.id, .*category_name.*author_last_name " + joins + " ORDER BY books\\.id DESC LIMIT").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "num_pages", "place_of_edition", "year_of_edition", "status",
			"category_name", "editorial_name", "author_first_name", "author_last_name",
		}).AddRow(1, "Cien años de soledad", 471, "Buenos Aires", 1967, "available",
			"Novela", "Sudamericana", "Gabriel", "García Márquez"))

	list, total, err := NewBookRepository(db).ListSummaries(context.Background(), book.ListParams{
		Status: book.StatusAvailable, Page: 1, PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Novela", list[0].CategoryName)
	assert.Equal(t, "Sudamericana", list[0].EditorialName)
	assert.Equal(t, "García Márquez", list[0].AuthorLastName)
	assert.Equal(t, book.StatusAvailable, list[0].Status)
}
