package category

import (
	"strings"
	"time"

	"github.com/xiebiao/library/pkg/validator"
)

// Status 分类状态
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid 是否为合法的枚举值
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Category 图书分类
// 名称唯一(数据库唯一索引保证)
type Category struct {
	ID          uint
	Name        string
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory 创建分类，状态为空时默认启用
func NewCategory(name, description string, status Status) (*Category, error) {
	if status == "" {
		status = StatusActive
	}
	now := time.Now()
	c := &Category{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateFields 部分更新，nil表示不修改
type UpdateFields struct {
	Name        *string
	Description *string
	Status      *Status
}

// Apply 应用部分更新
func (c *Category) Apply(f UpdateFields) error {
	next := *c
	if f.Name != nil {
		next.Name = strings.TrimSpace(*f.Name)
	}
	if f.Description != nil {
		next.Description = strings.TrimSpace(*f.Description)
	}
	if f.Status != nil {
		next.Status = *f.Status
	}
	if err := next.validate(); err != nil {
		return err
	}
	next.UpdatedAt = time.Now()
	*c = next
	return nil
}

// IsActive 是否启用
func (c *Category) IsActive() bool {
	return c.Status == StatusActive
}

func (c *Category) validate() error {
	if !validator.MinLen(c.Name, 3) || !validator.MaxLen(c.Name, 100) {
		return ErrInvalidName
	}
	if !c.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}
