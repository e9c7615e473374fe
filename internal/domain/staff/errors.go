package staff

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

var (
	ErrStaffNotFound   = apperrors.New(apperrors.ErrCodeStaffNotFound, "管理员不存在")
	ErrEmailDuplicate  = apperrors.ErrEmailDuplicate
	ErrInvalidEmail    = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	ErrInvalidNickname = apperrors.New(apperrors.ErrCodeInvalidParams, "昵称长度应为2-50个字符")
)
