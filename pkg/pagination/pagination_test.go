package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name               string
		page, pageSize     int
		wantPage, wantSize int
		wantOffset         int
	}{
		{"默认值", 0, 0, 1, DefaultPageSize, 0},
		{"第三页", 3, 10, 3, 10, 20},
		{"超过上限", 1, 1000, 1, MaxPageSize, 0},
		{"负数页码", -2, 5, 1, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size, offset := Normalize(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestWindow(t *testing.T) {
	start, end := Window(25, 2, 10)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	start, end = Window(25, 3, 10)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = Window(5, 4, 10)
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)
}
