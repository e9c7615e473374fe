package member

import (
	"strings"
	"time"

	"github.com/xiebiao/library/pkg/validator"
)

// Status 读者状态
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid 是否为合法的枚举值
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// DefaultObservations 未填写备注时的默认值
const DefaultObservations = "Sin observaciones"

// Member 图书馆读者(借书人)
// Identification为证件号，和Email一样全局唯一
type Member struct {
	ID             uint
	FirstName      string
	LastName       string
	Identification string
	Email          string
	Observations   string
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewMember 创建读者
func NewMember(firstName, lastName, identification, email, observations string, status Status) (*Member, error) {
	if status == "" {
		status = StatusActive
	}
	now := time.Now()
	m := &Member{
		FirstName:      strings.TrimSpace(firstName),
		LastName:       strings.TrimSpace(lastName),
		Identification: strings.TrimSpace(identification),
		Email:          strings.ToLower(strings.TrimSpace(email)),
		Observations:   strings.TrimSpace(observations),
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if m.Observations == "" {
		m.Observations = DefaultObservations
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateFields 部分更新，nil表示不修改
type UpdateFields struct {
	FirstName      *string
	LastName       *string
	Identification *string
	Email          *string
	Observations   *string
	Status         *Status
}

// Apply 应用部分更新
func (m *Member) Apply(f UpdateFields) error {
	next := *m
	if f.FirstName != nil {
		next.FirstName = strings.TrimSpace(*f.FirstName)
	}
	if f.LastName != nil {
		next.LastName = strings.TrimSpace(*f.LastName)
	}
	if f.Identification != nil {
		next.Identification = strings.TrimSpace(*f.Identification)
	}
	if f.Email != nil {
		next.Email = strings.ToLower(strings.TrimSpace(*f.Email))
	}
	if f.Observations != nil {
		next.Observations = strings.TrimSpace(*f.Observations)
		if next.Observations == "" {
			next.Observations = DefaultObservations
		}
	}
	if f.Status != nil {
		next.Status = *f.Status
	}
	if err := next.validate(); err != nil {
		return err
	}
	next.UpdatedAt = time.Now()
	*m = next
	return nil
}

// CanBorrow 停用的读者不能借书
func (m *Member) CanBorrow() bool {
	return m.Status == StatusActive
}

// FullName 姓名
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

func (m *Member) validate() error {
	if !validator.MinLen(m.FirstName, 3) || !validator.MaxLen(m.FirstName, 100) {
		return ErrInvalidFirstName
	}
	if !validator.MinLen(m.LastName, 3) || !validator.MaxLen(m.LastName, 100) {
		return ErrInvalidLastName
	}
	if !validator.MinLen(m.Identification, 6) || !validator.MaxLen(m.Identification, 30) {
		return ErrInvalidIdentification
	}
	if !validator.IsEmail(m.Email) {
		return ErrInvalidEmail
	}
	if !m.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}
