// Package validator 领域层共用的字段校验函数
//
// HTTP层的binding tag负责格式校验，领域实体在构造和修改时再校验一次，
// 保证绕过HTTP层（如后台任务、测试）写入的数据同样合法。
package validator

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsEmail 邮箱格式校验
func IsEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// MinLen 去除首尾空白后按字符数（非字节数）判断最小长度
func MinLen(s string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= n
}

// MaxLen 按字符数判断最大长度
func MaxLen(s string, n int) bool {
	return utf8.RuneCountInString(s) <= n
}

// StartOfDay 返回t所在日期的零点（保留时区）
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
