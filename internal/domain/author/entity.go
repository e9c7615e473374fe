package author

import (
	"strings"
	"time"

	"github.com/xiebiao/library/pkg/validator"
)

// Author 作者实体
// 邮箱可以为空，为空表示没有登记邮箱
type Author struct {
	ID        uint
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAuthor 创建作者(工厂方法)，同时校验字段
func NewAuthor(firstName, lastName, email string) (*Author, error) {
	now := time.Now()
	a := &Author{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     strings.TrimSpace(email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateFields 部分更新，nil表示不修改
type UpdateFields struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// Apply 应用部分更新
func (a *Author) Apply(f UpdateFields) error {
	next := *a
	if f.FirstName != nil {
		next.FirstName = strings.TrimSpace(*f.FirstName)
	}
	if f.LastName != nil {
		next.LastName = strings.TrimSpace(*f.LastName)
	}
	if f.Email != nil {
		next.Email = strings.TrimSpace(*f.Email)
	}
	if err := next.validate(); err != nil {
		return err
	}
	next.UpdatedAt = time.Now()
	*a = next
	return nil
}

// FullName 姓名
func (a *Author) FullName() string {
	return a.FirstName + " " + a.LastName
}

func (a *Author) validate() error {
	if !validator.MinLen(a.FirstName, 3) || !validator.MaxLen(a.FirstName, 100) {
		return ErrInvalidFirstName
	}
	if !validator.MinLen(a.LastName, 3) || !validator.MaxLen(a.LastName, 100) {
		return ErrInvalidLastName
	}
	if a.Email != "" && !validator.IsEmail(a.Email) {
		return ErrInvalidEmail
	}
	return nil
}
