package editorial

import (
	"strings"
	"time"

	"github.com/xiebiao/library/pkg/validator"
)

// Status 出版社状态
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid 是否为合法的枚举值
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Editorial 出版社
// 停用的出版社仍保留在已有图书上，只是不再出现在默认列表中
type Editorial struct {
	ID          uint
	Name        string
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewEditorial 创建出版社，状态为空时默认启用
func NewEditorial(name, description string, status Status) (*Editorial, error) {
	if status == "" {
		status = StatusActive
	}
	now := time.Now()
	e := &Editorial{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateFields 部分更新，nil表示不修改
type UpdateFields struct {
	Name        *string
	Description *string
	Status      *Status
}

// Apply 应用部分更新
func (e *Editorial) Apply(f UpdateFields) error {
	next := *e
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
	*e = next
	return nil
}

// IsActive 是否启用
func (e *Editorial) IsActive() bool {
	return e.Status == StatusActive
}

func (e *Editorial) validate() error {
	if !validator.MinLen(e.Name, 3) || !validator.MaxLen(e.Name, 100) {
		return ErrInvalidName
	}
	if !e.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}
