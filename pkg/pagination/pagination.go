// Package pagination 分页参数规范化
package pagination

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize 页码从1开始，每页数量限制在[1, MaxPageSize]，返回规范化后的页码、每页数量和偏移量
func Normalize(page, pageSize int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize, (page - 1) * pageSize
}

// Window 对已加载的切片做内存分页，返回[start, end)区间
func Window(total, page, pageSize int) (int, int) {
	_, size, offset := Normalize(page, pageSize)
	if offset >= total {
		return total, total
	}
	end := offset + size
	if end > total {
		end = total
	}
	return offset, end
}
