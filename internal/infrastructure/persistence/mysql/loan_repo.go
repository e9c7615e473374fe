package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/loan"
)

// loanRepository 借阅仓储实现(MySQL)
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository 创建借阅仓储
func NewLoanRepository(db *gorm.DB) loan.Repository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, l *loan.Loan) error {
	model := toLoanModel(l)
	if err := getDB(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return translateError(err, nil, "创建借阅记录失败")
	}
	l.ID = model.ID
	l.CreatedAt = model.CreatedAt
	l.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *loanRepository) FindByID(ctx context.Context, id uint) (*loan.Loan, error) {
	var model LoanModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		return nil, translateError(err, loan.NotFound(id), "查询借阅记录失败")
	}
	return toLoanEntity(&model), nil
}

func (r *loanRepository) LockByID(ctx context.Context, id uint) (*loan.Loan, error) {
	var model LoanModel
	err := getDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		return nil, translateError(err, loan.NotFound(id), "锁定借阅记录失败")
	}
	return toLoanEntity(&model), nil
}

func (r *loanRepository) Update(ctx context.Context, l *loan.Loan) error {
	model := toLoanModel(l)
	if err := getDB(ctx, r.db).Omit(clause.Associations).Save(model).Error; err != nil {
		return translateError(err, nil, "更新借阅记录失败")
	}
	l.UpdatedAt = model.UpdatedAt
	return nil
}

// ExistsActive 应还日期按天比较
func (r *loanRepository) ExistsActive(ctx context.Context, memberID, bookID uint, dueDate time.Time) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&LoanModel{}).
		Where("member_id = ? AND book_id = ? AND state = ?", memberID, bookID, string(loan.StateLent)).
		Where("DATE(due_date) = DATE(?)", dueDate).
		Count(&count).Error
	if err != nil {
		return false, translateError(err, nil, "查询借阅记录失败")
	}
	return count > 0, nil
}

func (r *loanRepository) List(ctx context.Context, params loan.ListParams) ([]*loan.Loan, int64, error) {
	query := getDB(ctx, r.db).Model(&LoanModel{})
	if params.State != "" {
		query = query.Where("state = ?", string(params.State))
	}
	if params.MemberID != 0 {
		query = query.Where("member_id = ?", params.MemberID)
	}
	if params.BookID != 0 {
		query = query.Where("book_id = ?", params.BookID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, nil, "查询借阅总数失败")
	}

	var models []LoanModel
	if err := query.Order("id DESC").Scopes(paginate(params.Page, params.PageSize)).Find(&models).Error; err != nil {
		return nil, 0, translateError(err, nil, "查询借阅列表失败")
	}

	loans := make([]*loan.Loan, len(models))
	for i := range models {
		loans[i] = toLoanEntity(&models[i])
	}
	return loans, total, nil
}
