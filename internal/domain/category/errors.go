package category

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 分类领域错误定义
var (
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")
	ErrNameDuplicate    = apperrors.New(apperrors.ErrCodeDuplicateEntry, "分类名称已存在")
	ErrInvalidName      = apperrors.New(apperrors.ErrCodeInvalidParams, "分类名称至少3个字符，最多100个字符")
	ErrInvalidStatus    = apperrors.New(apperrors.ErrCodeInvalidEnumValue, "分类状态只能是active或inactive")
)

// NotFound 带ID的不存在错误
func NotFound(id uint) error {
	return ErrCategoryNotFound.WithMessage("分类 %d 不存在", id)
}
