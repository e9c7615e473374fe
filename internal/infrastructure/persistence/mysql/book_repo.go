package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/book"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 外键错误(1451/1452)由translateError转换为400
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	if err := getDB(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return translateError(err, nil, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		return nil, translateError(err, book.NotFound(id), "查询图书失败")
	}
	return toBookEntity(&model), nil
}

func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*book.Book, error) {
	out := make(map[uint]*book.Book, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var models []BookModel
	if err := getDB(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, translateError(err, nil, "批量查询图书失败")
	}
	for i := range models {
		out[models[i].ID] = toBookEntity(&models[i])
	}
	return out, nil
}

// Update 更新图书信息(Save更新所有字段)
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	if err := getDB(ctx, r.db).Omit(clause.Associations).Save(model).Error; err != nil {
		return translateError(err, nil, "更新图书失败")
	}
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除图书
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		return translateError(result.Error, nil, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.NotFound(id)
	}
	return nil
}

// summaryRow 列表JOIN查询的扫描目标
type summaryRow struct {
	ID              uint
	Name            string
	NumPages        int
	PlaceOfEdition  string
	YearOfEdition   int
	Status          string
	CategoryName    string
	EditorialName   string
	AuthorFirstName string
	AuthorLastName  string
}

// ListSummaries 分页查询图书摘要
// 一条SQL带出分类、出版社、作者名称:
//
//	SELECT books.id, books.name, ..., categories.name AS category_name, ...
//	FROM books
//	JOIN categories ON categories.id = books.category_id
//	JOIN editorials ON editorials.id = books.editorial_id
//	JOIN authors ON authors.id = books.author_id
func (r *bookRepository) ListSummaries(ctx context.Context, params book.ListParams) ([]*book.Summary, int64, error) {
	query := getDB(ctx, r.db).Model(&BookModel{}).
		Joins("JOIN categories ON categories.id = books.category_id").
		Joins("JOIN editorials ON editorials.id = books.editorial_id").
		Joins("JOIN authors ON authors.id = books.author_id")

	if params.Keyword != "" {
		kw := likePattern(params.Keyword)
		query = query.Where("books.name LIKE ? OR books.description LIKE ?", kw, kw)
	}
	if params.AuthorID != 0 {
		query = query.Where("books.author_id = ?", params.AuthorID)
	}
	if params.CategoryID != 0 {
		query = query.Where("books.category_id = ?", params.CategoryID)
	}
	if params.EditorialID != 0 {
		query = query.Where("books.editorial_id = ?", params.EditorialID)
	}
	if params.Status != "" {
		query = query.Where("books.status = ?", string(params.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, nil, "查询图书总数失败")
	}

	var rows []summaryRow
	err := query.Select(
		"books.id, books.name, books.num_pages, books.place_of_edition, books.year_of_edition, books.status, " +
			"categories.name AS category_name, editorials.name AS editorial_name, " +
			"authors.first_name AS author_first_name, authors.last_name AS author_last_name",
	).Order("books.id DESC").Scopes(paginate(params.Page, params.PageSize)).Scan(&rows).Error
	if err != nil {
		return nil, 0, translateError(err, nil, "查询图书列表失败")
	}

	summaries := make([]*book.Summary, len(rows))
	for i, row := range rows {
		summaries[i] = &book.Summary{
			ID:              row.ID,
			Name:            row.Name,
			NumPages:        row.NumPages,
			PlaceOfEdition:  row.PlaceOfEdition,
			YearOfEdition:   row.YearOfEdition,
			Status:          book.Status(row.Status),
			CategoryName:    row.CategoryName,
			EditorialName:   row.EditorialName,
			AuthorFirstName: row.AuthorFirstName,
			AuthorLastName:  row.AuthorLastName,
		}
	}
	return summaries, total, nil
}
