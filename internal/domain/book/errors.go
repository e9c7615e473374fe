package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	ErrInvalidName           = apperrors.New(apperrors.ErrCodeInvalidParams, "书名至少3个字符，最多200个字符")
	ErrInvalidPlaceOfEdition = apperrors.New(apperrors.ErrCodeInvalidParams, "出版地至少3个字符，最多200个字符")
	ErrInvalidYearOfEdition  = apperrors.New(apperrors.ErrCodeInvalidParams, "出版年份不合法")
	ErrInvalidNumPages       = apperrors.New(apperrors.ErrCodeInvalidParams, "页数必须大于0")
	ErrInvalidStatus         = apperrors.New(apperrors.ErrCodeInvalidEnumValue, "图书状态只能是available、loaned或unavailable")

	// ErrMissingReference 作者、分类、出版社都必须指定
	ErrMissingReference = apperrors.New(apperrors.ErrCodeMissingField, "必须指定作者、分类和出版社")
)

// NotFound 带ID的不存在错误
func NotFound(id uint) error {
	return ErrBookNotFound.WithMessage("图书 %d 不存在", id)
}
