package loan

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	ErrLoanNotFound        = apperrors.New(apperrors.ErrCodeLoanNotFound, "借阅记录不存在")
	ErrLoanAlreadyReturned = apperrors.New(apperrors.ErrCodeLoanAlreadyReturned, "该借阅已归还")

	// ErrDuplicateLoan 同一读者对同一本书、同一应还日期只能有一条借出中的记录
	ErrDuplicateLoan = apperrors.New(apperrors.ErrCodeDuplicateLoan, "该读者已借阅此书，请勿重复提交")

	ErrInvalidDueDate   = apperrors.New(apperrors.ErrCodeInvalidParams, "应还日期不能早于今天")
	ErrInvalidQuantity  = apperrors.New(apperrors.ErrCodeInvalidParams, "借阅数量必须大于0")
	ErrInvalidState     = apperrors.New(apperrors.ErrCodeInvalidEnumValue, "借阅状态只能是lent或returned")
	ErrMissingReference = apperrors.New(apperrors.ErrCodeMissingField, "必须指定读者和图书")
)

// NotFound 带ID的不存在错误
func NotFound(id uint) error {
	return ErrLoanNotFound.WithMessage("借阅记录 %d 不存在", id)
}
