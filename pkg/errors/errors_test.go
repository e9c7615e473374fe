package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_HTTPStatus(t *testing.T) {
	cases := []struct {
		code int
		want int
	}{
		{ErrCodeInvalidParams, http.StatusBadRequest},
		{ErrCodeDuplicateEntry, http.StatusBadRequest},
		{ErrCodeNoUnitsAvailable, http.StatusBadRequest},
		{ErrCodeInvalidToken, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeBookNotFound, http.StatusNotFound},
		{ErrCodeDatabaseError, http.StatusInternalServerError},
		{12345, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("错误码%d", tc.code), func(t *testing.T) {
			assert.Equal(t, tc.want, New(tc.code, "x").HTTPStatus())
		})
	}
}

func TestAppError_Is(t *testing.T) {
	derived := ErrNotFound.WithMessage("作者(id=%d)不存在", 3)

	assert.True(t, errors.Is(derived, ErrNotFound), "同错误码应匹配")
	assert.False(t, errors.Is(derived, ErrInvalidParams))
	assert.Equal(t, "作者(id=3)不存在", derived.Message)

	wrapped := fmt.Errorf("repo: %w", derived)
	assert.True(t, errors.Is(wrapped, ErrNotFound), "fmt包装后仍能匹配")
}

func TestGetAppError(t *testing.T) {
	t.Run("AppError原样返回", func(t *testing.T) {
		appErr := GetAppError(fmt.Errorf("ctx: %w", ErrUnauthorized))
		assert.Equal(t, ErrCodeUnauthorized, appErr.Code)
	})

	t.Run("普通错误包装成内部错误", func(t *testing.T) {
		cause := errors.New("connection refused")
		appErr := GetAppError(cause)
		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.ErrorIs(t, appErr, cause)
	})
}

func TestHasCode(t *testing.T) {
	err := WrapCode(errors.New("dup"), ErrCodeDuplicateEntry, "记录已存在")
	assert.True(t, HasCode(err, ErrCodeDuplicateEntry))
	assert.False(t, HasCode(err, ErrCodeInternal))
	assert.False(t, HasCode(errors.New("plain"), ErrCodeInternal))
	assert.Contains(t, err.Error(), "dup")
}
