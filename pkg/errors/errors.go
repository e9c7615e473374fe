package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型，前三位同时决定HTTP状态码（40404 → 404）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，预定义错误被WithMessage派生后仍能匹配
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// HTTPStatus 由错误码推导HTTP状态码
func (e *AppError) HTTPStatus() int {
	switch e.Code / 100 {
	case 400:
		return http.StatusBadRequest
	case 401:
		return http.StatusUnauthorized
	case 403:
		return http.StatusForbidden
	case 404:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WithMessage 复制错误并替换提示信息（错误码不变）
func (e *AppError) WithMessage(format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
		Err:     e.Err,
	}
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// WrapCode 用指定错误码包装底层错误
func WrapCode(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：错误码 / 100 即HTTP状态码
// - 400xx: 参数错误、业务规则校验失败
// - 401xx: 未认证
// - 403xx: 无权限
// - 404xx: 资源不存在
// - 500xx: 服务端错误

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
	ErrCodeMQError       = 50003 // 消息队列错误

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized    = 40100 // 未登录
	ErrCodeInvalidToken    = 40101 // Token无效
	ErrCodeTokenExpired    = 40102 // Token过期
	ErrCodeInvalidPassword = 40103 // 密码错误

	// 权限错误（40300-40399）
	ErrCodeForbidden = 40300 // 无权限

	// 资源错误（40400-40499）
	ErrCodeNotFound          = 40400 // 资源不存在(通用)
	ErrCodeAuthorNotFound    = 40401 // 作者不存在
	ErrCodeCategoryNotFound  = 40402 // 分类不存在
	ErrCodeEditorialNotFound = 40403 // 出版社不存在
	ErrCodeBookNotFound      = 40404 // 图书不存在
	ErrCodeInventoryNotFound = 40405 // 库存不存在
	ErrCodeMemberNotFound    = 40406 // 读者不存在
	ErrCodeLoanNotFound      = 40407 // 借阅记录不存在
	ErrCodeStaffNotFound     = 40408 // 管理员不存在

	// 业务规则错误（40000-40019）
	ErrCodeBusinessError       = 40000 // 业务错误(通用)
	ErrCodeNoUnitsAvailable    = 40001 // 无可借库存
	ErrCodeInventoryInvariant  = 40002 // 库存数量不一致
	ErrCodeLoanAlreadyReturned = 40003 // 借阅已归还
	ErrCodeDuplicateLoan       = 40004 // 重复借阅
	ErrCodeWeakPassword        = 40005 // 密码强度不足
	ErrCodeMemberInactive      = 40006 // 读者已停用
	ErrCodeInventoryInUse      = 40007 // 仍有借出的库存
	ErrCodeInventoryExists     = 40008 // 图书已有库存记录
	ErrCodeDuplicateEntry      = 40009 // 重复记录(通用, MySQL 1062)
	ErrCodeInvalidEnumValue    = 40010 // 枚举值非法(MySQL 1265)
	ErrCodeMissingField        = 40011 // 缺少必填字段(MySQL 1364)
	ErrCodeReferencedRow       = 40012 // 记录仍被引用(MySQL 1451)
	ErrCodeUnknownReference    = 40013 // 引用的记录不存在(MySQL 1452)
	ErrCodeEmailDuplicate      = 40014 // 邮箱已存在

	// 参数错误（40020-40099）
	ErrCodeInvalidParams = 40020 // 参数错误
	ErrCodeBindError     = 40021 // 参数绑定失败
)

// =========================================
// 预定义错误
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")

	// 认证授权
	ErrUnauthorized    = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken    = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired    = New(ErrCodeTokenExpired, "Token已过期")
	ErrInvalidPassword = New(ErrCodeInvalidPassword, "邮箱或密码错误")
	ErrForbidden       = New(ErrCodeForbidden, "无权限访问")

	// 资源
	ErrNotFound = New(ErrCodeNotFound, "资源不存在")

	// 数据库约束
	ErrDuplicateEntry   = New(ErrCodeDuplicateEntry, "记录已存在")
	ErrInvalidEnumValue = New(ErrCodeInvalidEnumValue, "枚举值不合法")
	ErrMissingField     = New(ErrCodeMissingField, "缺少必填字段")
	ErrReferencedRow    = New(ErrCodeReferencedRow, "记录仍被其他数据引用，无法删除")
	ErrUnknownReference = New(ErrCodeUnknownReference, "引用的记录不存在")

	// 业务规则
	ErrEmailDuplicate = New(ErrCodeEmailDuplicate, "邮箱已被注册")
	ErrWeakPassword   = New(ErrCodeWeakPassword, "密码强度不足（需8-20位，包含字母和数字）")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// HasCode 判断错误链中是否包含指定错误码
func HasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// InvalidParams 参数错误的快捷构造
func InvalidParams(format string, args ...interface{}) *AppError {
	return ErrInvalidParams.WithMessage(format, args...)
}
