package member

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 读者领域错误定义
var (
	ErrMemberNotFound          = apperrors.New(apperrors.ErrCodeMemberNotFound, "读者不存在")
	ErrMemberInactive          = apperrors.New(apperrors.ErrCodeMemberInactive, "读者已停用，不能借书")
	ErrIdentificationDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "证件号已存在")
	ErrEmailDuplicate          = apperrors.New(apperrors.ErrCodeDuplicateEntry, "邮箱已存在")
	ErrInvalidFirstName        = apperrors.New(apperrors.ErrCodeInvalidParams, "名字至少3个字符，最多100个字符")
	ErrInvalidLastName         = apperrors.New(apperrors.ErrCodeInvalidParams, "姓氏至少3个字符，最多100个字符")
	ErrInvalidIdentification   = apperrors.New(apperrors.ErrCodeInvalidParams, "证件号至少6个字符，最多30个字符")
	ErrInvalidEmail            = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	ErrInvalidStatus           = apperrors.New(apperrors.ErrCodeInvalidEnumValue, "读者状态只能是active或inactive")
)

// NotFound 带ID的不存在错误
func NotFound(id uint) error {
	return ErrMemberNotFound.WithMessage("读者 %d 不存在", id)
}
