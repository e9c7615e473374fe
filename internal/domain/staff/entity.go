package staff

import (
	"strings"
	"time"
)

// Staff 图书馆管理员(聚合根)
// 设计说明：
// 1. 只有管理员能修改馆藏、库存和借阅，读者(member)不登录系统
// 2. 密码已加密存储（bcrypt），实体不暴露明文
type Staff struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	Nickname  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewStaff 创建管理员（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewStaff(email, hashedPassword, nickname string) *Staff {
	now := time.Now()
	return &Staff{
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  hashedPassword,
		Nickname:  strings.TrimSpace(nickname),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateNickname 更新昵称（领域行为）
func (s *Staff) UpdateNickname(nickname string) {
	s.Nickname = nickname
	s.UpdatedAt = time.Now()
}
