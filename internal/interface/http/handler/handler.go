// Package handler HTTP处理器
// 每个处理器只做三件事：绑定参数 → 调用领域服务或应用层用例 → 转换为dto响应
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/pagination"
	"github.com/xiebiao/library/pkg/response"
)

// pathID 解析路径中的正整数ID，失败时直接写400响应并返回false
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, apperrors.InvalidParams("%s必须是正整数", name))
		return 0, false
	}
	return uint(id), true
}

// bindError 参数绑定失败统一返回400
func bindError(c *gin.Context, err error) {
	response.Error(c, apperrors.ErrBindError.WithMessage("参数错误: %s", err.Error()))
}

// page 响应中回显的分页参数与仓储实际使用的一致
func page(p, size int) (int, int) {
	p, size, _ = pagination.Normalize(p, size)
	return p, size
}
