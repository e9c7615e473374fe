// Package memory 内存实现的仓储和事务管理器
//
// 行为与MySQL实现保持一致(唯一索引、外键约束、FOR UPDATE串行化、
// 事务回滚)，供应用层和HTTP层测试使用，不依赖外部服务。
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/category"
	"github.com/xiebiao/library/internal/domain/editorial"
	"github.com/xiebiao/library/internal/domain/inventory"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/domain/staff"
	"github.com/xiebiao/library/pkg/pagination"
)

// Store 内存数据库
// 表中保存实体的值拷贝，调用方修改返回的指针不会影响已存储的数据
type Store struct {
	// txMu 串行化所有写操作和事务，相当于整库的FOR UPDATE
	txMu sync.Mutex
	mu   sync.RWMutex

	tables tables
}

type tables struct {
	authors     map[uint]author.Author
	categories  map[uint]category.Category
	editorials  map[uint]editorial.Editorial
	members     map[uint]member.Member
	books       map[uint]book.Book
	inventories map[uint]inventory.Inventory
	loans       map[uint]loan.Loan
	staff       map[uint]staff.Staff
	seq         map[string]uint
}

// NewStore 创建空的内存数据库
func NewStore() *Store {
	return &Store{tables: tables{
		authors:     map[uint]author.Author{},
		categories:  map[uint]category.Category{},
		editorials:  map[uint]editorial.Editorial{},
		members:     map[uint]member.Member{},
		books:       map[uint]book.Book{},
		inventories: map[uint]inventory.Inventory{},
		loans:       map[uint]loan.Loan{},
		staff:       map[uint]staff.Staff{},
		seq:         map[string]uint{},
	}}
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// write 执行写操作；事务外的写操作同样需要获取txMu，避免被并发事务的回滚覆盖
func (s *Store) write(ctx context.Context, fn func(t *tables) error) error {
	if !inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.tables)
}

func (s *Store) read(fn func(t *tables) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.tables)
}

func (t *tables) nextID(table string) uint {
	t.seq[table]++
	return t.seq[table]
}

func (t *tables) clone() tables {
	return tables{
		authors:     cloneMap(t.authors),
		categories:  cloneMap(t.categories),
		editorials:  cloneMap(t.editorials),
		members:     cloneMap(t.members),
		books:       cloneMap(t.books),
		inventories: cloneMap(t.inventories),
		loans:       cloneMap(t.loans),
		staff:       cloneMap(t.staff),
		seq:         cloneMap(t.seq),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// sortedDesc 按ID倒序过滤，与MySQL实现的ORDER BY id DESC一致
func sortedDesc[T any](m map[uint]T, keep func(T) bool) []T {
	ids := make([]uint, 0, len(m))
	for id, v := range m {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	out := make([]T, len(ids))
	for i, id := range ids {
		out[i] = m[id]
	}
	return out
}

// pageOf 内存分页并转换为指针切片
func pageOf[T any](rows []T, page, pageSize int) ([]*T, int64) {
	start, end := pagination.Window(len(rows), page, pageSize)
	out := make([]*T, 0, end-start)
	for i := start; i < end; i++ {
		row := rows[i]
		out = append(out, &row)
	}
	return out, int64(len(rows))
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
