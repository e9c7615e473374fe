package mysql

import (
	"context"
	"errors"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/member"
)

// memberRepository 读者仓储实现(MySQL)
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 创建读者仓储
func NewMemberRepository(db *gorm.DB) member.Repository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, m *member.Member) error {
	model := toMemberModel(m)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return translateMemberError(err, "创建读者失败")
	}
	m.ID = model.ID
	m.CreatedAt = model.CreatedAt
	m.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *memberRepository) FindByID(ctx context.Context, id uint) (*member.Member, error) {
	var model MemberModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		return nil, translateError(err, member.NotFound(id), "查询读者失败")
	}
	return toMemberEntity(&model), nil
}

func (r *memberRepository) FindByIdentification(ctx context.Context, identification string) (*member.Member, error) {
	var model MemberModel
	err := getDB(ctx, r.db).Where("identification = ?", identification).First(&model).Error
	if err != nil {
		notFound := member.ErrMemberNotFound.WithMessage("证件号为 %s 的读者不存在", identification)
		return nil, translateError(err, notFound, "查询读者失败")
	}
	return toMemberEntity(&model), nil
}

func (r *memberRepository) FindByEmail(ctx context.Context, email string) (*member.Member, error) {
	var model MemberModel
	if err := getDB(ctx, r.db).Where("email = ?", email).First(&model).Error; err != nil {
		return nil, translateError(err, member.ErrMemberNotFound, "查询读者失败")
	}
	return toMemberEntity(&model), nil
}

func (r *memberRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*member.Member, error) {
	out := make(map[uint]*member.Member, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var models []MemberModel
	if err := getDB(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, translateError(err, nil, "批量查询读者失败")
	}
	for i := range models {
		out[models[i].ID] = toMemberEntity(&models[i])
	}
	return out, nil
}

func (r *memberRepository) Update(ctx context.Context, m *member.Member) error {
	model := toMemberModel(m)
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return translateMemberError(err, "更新读者失败")
	}
	m.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&MemberModel{}, id)
	if result.Error != nil {
		return translateError(result.Error, nil, "删除读者失败")
	}
	if result.RowsAffected == 0 {
		return member.NotFound(id)
	}
	return nil
}

func (r *memberRepository) List(ctx context.Context, params member.ListParams) ([]*member.Member, int64, error) {
	query := getDB(ctx, r.db).Model(&MemberModel{})
	if params.Keyword != "" {
		kw := likePattern(params.Keyword)
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR identification LIKE ? OR email LIKE ?", kw, kw, kw, kw)
	}
	if params.Status != "" {
		query = query.Where("status = ?", string(params.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, nil, "查询读者总数失败")
	}

	var models []MemberModel
	if err := query.Order("id DESC").Scopes(paginate(params.Page, params.PageSize)).Find(&models).Error; err != nil {
		return nil, 0, translateError(err, nil, "查询读者列表失败")
	}

	members := make([]*member.Member, len(models))
	for i := range models {
		members[i] = toMemberEntity(&models[i])
	}
	return members, total, nil
}

// translateMemberError 根据冲突的索引名区分证件号重复和邮箱重复
// 1062的错误信息形如：Duplicate entry 'x' for key 'members.idx_members_email'
func translateMemberError(err error, msg string) error {
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) && myErr.Number == errDuplicateEntry {
		switch {
		case strings.Contains(myErr.Message, "identification"):
			return member.ErrIdentificationDuplicate
		case strings.Contains(myErr.Message, "email"):
			return member.ErrEmailDuplicate
		}
	}
	return translateError(err, nil, msg)
}
