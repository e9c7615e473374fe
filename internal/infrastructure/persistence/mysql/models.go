package mysql

import (
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/category"
	"github.com/xiebiao/library/internal/domain/editorial"
	"github.com/xiebiao/library/internal/domain/inventory"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/domain/staff"
)

// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain层的实体不依赖GORM，Repository负责两者之间的转换
// 3. 所有表物理删除，外键ON DELETE RESTRICT，仍被引用的行删除时返回1451

// StaffModel 管理员
type StaffModel struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Nickname  string    `gorm:"size:50;not null;comment:昵称"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (StaffModel) TableName() string {
	return "staff"
}

// AuthorModel 作者
type AuthorModel struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"index:idx_author_name;size:100;not null;comment:名字"`
	LastName  string `gorm:"index:idx_author_name;size:100;not null;comment:姓氏"`
	Email     string `gorm:"size:100;not null;default:'';comment:邮箱(可为空)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AuthorModel) TableName() string {
	return "authors"
}

// CategoryModel 分类
type CategoryModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:100;not null;comment:分类名称"`
	Description string `gorm:"size:500;not null;default:''"`
	Status      string `gorm:"type:enum('active','inactive');not null;default:'active';comment:状态"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CategoryModel) TableName() string {
	return "categories"
}

// EditorialModel 出版社
type EditorialModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:100;not null;comment:出版社名称"`
	Description string `gorm:"size:500;not null;default:''"`
	Status      string `gorm:"type:enum('active','inactive');not null;default:'active';comment:状态"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (EditorialModel) TableName() string {
	return "editorials"
}

// MemberModel 读者
type MemberModel struct {
	ID             uint   `gorm:"primaryKey"`
	FirstName      string `gorm:"size:100;not null"`
	LastName       string `gorm:"size:100;not null"`
	Identification string `gorm:"uniqueIndex;size:30;not null;comment:证件号"`
	Email          string `gorm:"uniqueIndex;size:100;not null"`
	Observations   string `gorm:"size:500;not null;default:'Sin observaciones'"`
	Status         string `gorm:"type:enum('active','inactive');not null;default:'active'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (MemberModel) TableName() string {
	return "members"
}

// BookModel 图书
// 关联字段只用于迁移时生成外键，读写时Omit(clause.Associations)
type BookModel struct {
	ID             uint           `gorm:"primaryKey"`
	Name           string         `gorm:"index;size:200;not null;comment:书名"`
	Description    string         `gorm:"size:1000;not null"`
	PlaceOfEdition string         `gorm:"size:200;not null;comment:出版地"`
	YearOfEdition  int            `gorm:"not null;comment:出版年份"`
	NumPages       int            `gorm:"not null;comment:页数"`
	CoverURL       string         `gorm:"size:500;not null;default:'';comment:封面URL"`
	Status         string         `gorm:"type:enum('available','loaned','unavailable');not null;default:'available'"`
	AuthorID       uint           `gorm:"index;not null"`
	CategoryID     uint           `gorm:"index;not null"`
	EditorialID    uint           `gorm:"index;not null"`
	Author         AuthorModel    `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Category       CategoryModel  `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Editorial      EditorialModel `gorm:"foreignKey:EditorialID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt      time.Time      `gorm:"index"`
	UpdatedAt      time.Time
}

func (BookModel) TableName() string {
	return "books"
}

// InventoryModel 库存
type InventoryModel struct {
	ID             uint      `gorm:"primaryKey"`
	BookID         uint      `gorm:"uniqueIndex;not null;comment:图书ID(一本书一条库存)"`
	Book           BookModel `gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	UnitsPurchased int       `gorm:"not null;default:1;comment:采购数量"`
	LoanedUnits    int       `gorm:"not null;default:0;comment:借出数量"`
	UnitsAvailable int       `gorm:"not null;default:0;comment:可借数量"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (InventoryModel) TableName() string {
	return "inventories"
}

// BeforeSave 插入和更新前重新计算可借数量
// 不变式由领域实体定义，这里保证任何写入路径都不会保存不一致的行
func (m *InventoryModel) BeforeSave(_ *gorm.DB) error {
	inv := toInventoryEntity(m)
	if err := inv.Recalculate(); err != nil {
		return err
	}
	m.UnitsAvailable = inv.UnitsAvailable
	return nil
}

// LoanModel 借阅记录
type LoanModel struct {
	ID           uint        `gorm:"primaryKey"`
	MemberID     uint        `gorm:"index:idx_loan_active;not null"`
	BookID       uint        `gorm:"index:idx_loan_active;not null"`
	State        string      `gorm:"index:idx_loan_active;type:enum('lent','returned');not null;default:'lent'"`
	Member       MemberModel `gorm:"foreignKey:MemberID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Book         BookModel   `gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Quantity     int         `gorm:"not null;default:1"`
	Observations string      `gorm:"size:500;not null;default:''"`
	LoanDate     time.Time   `gorm:"not null;comment:借出时间"`
	DueDate      time.Time   `gorm:"not null;comment:应还日期"`
	ReturnedAt   *time.Time  `gorm:"comment:实际归还时间"`
	CreatedAt    time.Time   `gorm:"index"`
	UpdatedAt    time.Time
}

func (LoanModel) TableName() string {
	return "loans"
}

// =========================================
// 实体 ↔ 模型转换
// =========================================

func toStaffModel(s *staff.Staff) *StaffModel {
	return &StaffModel{
		ID: s.ID, Email: s.Email, Password: s.Password, Nickname: s.Nickname,
		CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	}
}

func toStaffEntity(m *StaffModel) *staff.Staff {
	return &staff.Staff{
		ID: m.ID, Email: m.Email, Password: m.Password, Nickname: m.Nickname,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func toAuthorModel(a *author.Author) *AuthorModel {
	return &AuthorModel{
		ID: a.ID, FirstName: a.FirstName, LastName: a.LastName, Email: a.Email,
		CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt,
	}
}

func toAuthorEntity(m *AuthorModel) *author.Author {
	return &author.Author{
		ID: m.ID, FirstName: m.FirstName, LastName: m.LastName, Email: m.Email,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func toCategoryModel(c *category.Category) *CategoryModel {
	return &CategoryModel{
		ID: c.ID, Name: c.Name, Description: c.Description, Status: string(c.Status),
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func toCategoryEntity(m *CategoryModel) *category.Category {
	return &category.Category{
		ID: m.ID, Name: m.Name, Description: m.Description, Status: category.Status(m.Status),
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func toEditorialModel(e *editorial.Editorial) *EditorialModel {
	return &EditorialModel{
		ID: e.ID, Name: e.Name, Description: e.Description, Status: string(e.Status),
		CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt,
	}
}

func toEditorialEntity(m *EditorialModel) *editorial.Editorial {
	return &editorial.Editorial{
		ID: m.ID, Name: m.Name, Description: m.Description, Status: editorial.Status(m.Status),
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func toMemberModel(mb *member.Member) *MemberModel {
	return &MemberModel{
		ID:             mb.ID,
		FirstName:      mb.FirstName,
		LastName:       mb.LastName,
		Identification: mb.Identification,
		Email:          mb.Email,
		Observations:   mb.Observations,
		Status:         string(mb.Status),
		CreatedAt:      mb.CreatedAt,
		UpdatedAt:      mb.UpdatedAt,
	}
}

func toMemberEntity(m *MemberModel) *member.Member {
	return &member.Member{
		ID:             m.ID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Identification: m.Identification,
		Email:          m.Email,
		Observations:   m.Observations,
		Status:         member.Status(m.Status),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:             b.ID,
		Name:           b.Name,
		Description:    b.Description,
		PlaceOfEdition: b.PlaceOfEdition,
		YearOfEdition:  b.YearOfEdition,
		NumPages:       b.NumPages,
		CoverURL:       b.CoverURL,
		Status:         string(b.Status),
		AuthorID:       b.AuthorID,
		CategoryID:     b.CategoryID,
		EditorialID:    b.EditorialID,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func toBookEntity(m *BookModel) *book.Book {
	return &book.Book{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		PlaceOfEdition: m.PlaceOfEdition,
		YearOfEdition:  m.YearOfEdition,
		NumPages:       m.NumPages,
		CoverURL:       m.CoverURL,
		Status:         book.Status(m.Status),
		AuthorID:       m.AuthorID,
		CategoryID:     m.CategoryID,
		EditorialID:    m.EditorialID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toInventoryModel(inv *inventory.Inventory) *InventoryModel {
	return &InventoryModel{
		ID:             inv.ID,
		BookID:         inv.BookID,
		UnitsPurchased: inv.UnitsPurchased,
		LoanedUnits:    inv.LoanedUnits,
		UnitsAvailable: inv.UnitsAvailable,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}

func toInventoryEntity(m *InventoryModel) *inventory.Inventory {
	return &inventory.Inventory{
		ID:             m.ID,
		BookID:         m.BookID,
		UnitsPurchased: m.UnitsPurchased,
		LoanedUnits:    m.LoanedUnits,
		UnitsAvailable: m.UnitsAvailable,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toLoanModel(l *loan.Loan) *LoanModel {
	return &LoanModel{
		ID:           l.ID,
		MemberID:     l.MemberID,
		BookID:       l.BookID,
		State:        string(l.State),
		Quantity:     l.Quantity,
		Observations: l.Observations,
		LoanDate:     l.LoanDate,
		DueDate:      l.DueDate,
		ReturnedAt:   l.ReturnedAt,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func toLoanEntity(m *LoanModel) *loan.Loan {
	return &loan.Loan{
		ID:           m.ID,
		MemberID:     m.MemberID,
		BookID:       m.BookID,
		State:        loan.State(m.State),
		Quantity:     m.Quantity,
		Observations: m.Observations,
		LoanDate:     m.LoanDate,
		DueDate:      m.DueDate,
		ReturnedAt:   m.ReturnedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
