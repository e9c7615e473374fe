package inventory

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 库存领域错误定义
var (
	ErrInventoryNotFound = apperrors.New(apperrors.ErrCodeInventoryNotFound, "库存不存在")

	// ErrInventoryExists 一本书只能有一条库存
	ErrInventoryExists = apperrors.New(apperrors.ErrCodeInventoryExists, "该图书已有库存记录")

	ErrNoUnitsAvailable       = apperrors.New(apperrors.ErrCodeNoUnitsAvailable, "没有可借的库存")
	ErrLoanedExceedsPurchased = apperrors.New(apperrors.ErrCodeInventoryInvariant, "借出数量不能超过采购数量")
	ErrNegativeUnits          = apperrors.New(apperrors.ErrCodeInventoryInvariant, "库存数量不能为负数")
	ErrReturnExceedsLoaned    = apperrors.New(apperrors.ErrCodeInventoryInvariant, "归还数量不能超过借出数量")
	ErrInventoryInUse         = apperrors.New(apperrors.ErrCodeInventoryInUse, "仍有借出的图书，不能删除库存")

	ErrInvalidUnits  = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")
	ErrInvalidBookID = apperrors.New(apperrors.ErrCodeInvalidParams, "必须指定图书")
)

// NotFound 带ID的不存在错误
func NotFound(id uint) error {
	return ErrInventoryNotFound.WithMessage("库存 %d 不存在", id)
}

// NotFoundForBook 图书没有库存记录
func NotFoundForBook(bookID uint) error {
	return ErrInventoryNotFound.WithMessage("图书 %d 没有库存记录", bookID)
}
