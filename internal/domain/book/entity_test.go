package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() NewBookParams {
	return NewBookParams{
		Name:           "Fundamentos de programación",
		PlaceOfEdition: "Barranquilla - Colombia",
		YearOfEdition:  2022,
		NumPages:       300,
		AuthorID:       1,
		CategoryID:     2,
		EditorialID:    3,
	}
}

func TestNewBook(t *testing.T) {
	b, err := NewBook(validParams())
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, b.Status)
	assert.Equal(t, DefaultDescription, b.Description)

	tests := []struct {
		name    string
		mutate  func(p *NewBookParams)
		wantErr error
	}{
		{"书名太短", func(p *NewBookParams) { p.Name = "Go" }, ErrInvalidName},
		{"出版地太短", func(p *NewBookParams) { p.PlaceOfEdition = "BQ" }, ErrInvalidPlaceOfEdition},
		{"页数为0", func(p *NewBookParams) { p.NumPages = 0 }, ErrInvalidNumPages},
		{"年份为负", func(p *NewBookParams) { p.YearOfEdition = -1 }, ErrInvalidYearOfEdition},
		{"非法状态", func(p *NewBookParams) { p.Status = "lost" }, ErrInvalidStatus},
		{"缺少作者", func(p *NewBookParams) { p.AuthorID = 0 }, ErrMissingReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			_, err := NewBook(p)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApply(t *testing.T) {
	b, err := NewBook(validParams())
	require.NoError(t, err)

	pages := 320
	status := StatusUnavailable
	require.NoError(t, b.Apply(UpdateFields{NumPages: &pages, Status: &status}))
	assert.Equal(t, 320, b.NumPages)
	assert.Equal(t, StatusUnavailable, b.Status)

	zero := 0
	assert.ErrorIs(t, b.Apply(UpdateFields{NumPages: &zero}), ErrInvalidNumPages)
	assert.Equal(t, 320, b.NumPages, "校验失败时不修改")
}
