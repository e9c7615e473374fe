package author

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 作者领域错误定义
var (
	ErrAuthorNotFound   = apperrors.New(apperrors.ErrCodeAuthorNotFound, "作者不存在")
	ErrInvalidFirstName = apperrors.New(apperrors.ErrCodeInvalidParams, "名字至少3个字符，最多100个字符")
	ErrInvalidLastName  = apperrors.New(apperrors.ErrCodeInvalidParams, "姓氏至少3个字符，最多100个字符")
	ErrInvalidEmail     = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
)

// NotFound 带ID的不存在错误
func NotFound(id uint) error {
	return ErrAuthorNotFound.WithMessage("作者 %d 不存在", id)
}
