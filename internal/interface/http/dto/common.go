package dto

import (
	"time"
)

// TimeLayout 响应中的时间格式
const TimeLayout = "2006-01-02 15:04:05"

// DateLayout 应还日期格式
const DateLayout = "2006-01-02"

// PageQuery 通用分页参数
type PageQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100"`
}

// StatusQuery 带状态过滤的分页参数
type StatusQuery struct {
	PageQuery
	Status string `form:"status" binding:"omitempty,oneof=active inactive" example:"active"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}
