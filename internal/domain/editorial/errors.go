package editorial

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 出版社领域错误定义
var (
	ErrEditorialNotFound = apperrors.New(apperrors.ErrCodeEditorialNotFound, "出版社不存在")
	ErrNameDuplicate    = apperrors.New(apperrors.ErrCodeDuplicateEntry, "出版社名称已存在")
	ErrInvalidName      = apperrors.New(apperrors.ErrCodeInvalidParams, "出版社名称至少3个字符，最多100个字符")
	ErrInvalidStatus    = apperrors.New(apperrors.ErrCodeInvalidEnumValue, "出版社状态只能是active或inactive")
)

// NotFound 带ID的不存在错误
func NotFound(id uint) error {
	return ErrEditorialNotFound.WithMessage("出版社 %d 不存在", id)
}
