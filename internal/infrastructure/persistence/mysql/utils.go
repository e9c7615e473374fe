package mysql

import (
	"context"
	"errors"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/pagination"
)

// MySQL错误码
const (
	errDuplicateEntry    = 1062 // Duplicate entry 'xxx' for key 'yyy'
	errDataTruncated     = 1265 // Data truncated for column（枚举值非法）
	errNoDefaultValue    = 1364 // Field 'xxx' doesn't have a default value
	errRowIsReferenced   = 1451 // Cannot delete or update a parent row
	errNoReferencedRow   = 1452 // Cannot add or update a child row
	errRowIsReferenced56 = 1217 // 旧版本的1451
)

// translateError 把数据库错误转换为业务错误
// - 已经是AppError(如BeforeSave钩子返回的领域错误)：原样返回
// - 记录不存在：notFound
// - 1062/1265/1364/1451/1452：400
// - 其他：500，保留原始错误用于日志
func translateError(err error, notFound error, msg string) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if notFound != nil {
			return notFound
		}
		return apperrors.ErrNotFound
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case errDuplicateEntry:
			return apperrors.WrapCode(err, apperrors.ErrCodeDuplicateEntry, "记录已存在")
		case errDataTruncated:
			return apperrors.WrapCode(err, apperrors.ErrCodeInvalidEnumValue, "字段值不合法")
		case errNoDefaultValue:
			return apperrors.WrapCode(err, apperrors.ErrCodeMissingField, "缺少必填字段")
		case errRowIsReferenced, errRowIsReferenced56:
			return apperrors.WrapCode(err, apperrors.ErrCodeReferencedRow, "记录仍被其他数据引用，无法删除")
		case errNoReferencedRow:
			return apperrors.WrapCode(err, apperrors.ErrCodeUnknownReference, "引用的记录不存在")
		}
	}

	return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, msg)
}

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
func isDuplicateError(err error) bool {
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == errDuplicateEntry
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

type txKey struct{}

// getDB 优先使用context中的事务DB
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// paginate 分页Scope
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		_, size, offset := pagination.Normalize(page, pageSize)
		return db.Offset(offset).Limit(size)
	}
}

// likePattern 转义LIKE通配符
func likePattern(keyword string) string {
	escaped := make([]rune, 0, len(keyword)+2)
	escaped = append(escaped, '%')
	for _, r := range keyword {
		if r == '%' || r == '_' || r == '\\' {
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, r)
	}
	return string(append(escaped, '%'))
}
