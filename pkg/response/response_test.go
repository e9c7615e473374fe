package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(handler gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)

	var resp Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestSuccess(t *testing.T) {
	w, resp := perform(func(c *gin.Context) { Success(c, gin.H{"id": 1}) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "success", resp.Message)
}

func TestCreated(t *testing.T) {
	w, resp := perform(func(c *gin.Context) { Created(c, gin.H{"id": 1}) })
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 0, resp.Code)
}

func TestError(t *testing.T) {
	t.Run("业务错误码决定HTTP状态", func(t *testing.T) {
		w, resp := perform(func(c *gin.Context) {
			Error(c, apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在"))
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperrors.ErrCodeBookNotFound, resp.Code)
		assert.Equal(t, "图书不存在", resp.Message)
	})

	t.Run("内部错误不泄露细节", func(t *testing.T) {
		w, resp := perform(func(c *gin.Context) {
			Error(c, errors.New("dial tcp 10.0.0.3:3306: connection refused"))
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, apperrors.ErrCodeInternal, resp.Code)
		assert.NotContains(t, resp.Message, "10.0.0.3")
	})

	t.Run("ErrorWithCode", func(t *testing.T) {
		w, resp := perform(func(c *gin.Context) {
			ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误")
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, resp.Code)
	})
}

func TestNewPageData(t *testing.T) {
	p := NewPageData([]int{1, 2}, 21, 2, 10)
	assert.Equal(t, 3, p.TotalPages)

	p = NewPageData([]int{}, 20, 1, 10)
	assert.Equal(t, 2, p.TotalPages)

	p = NewPageData(nil, 0, 1, 0)
	assert.Equal(t, 0, p.TotalPages)
}

func TestSuccessWithPage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	SuccessWithPage(c, []string{"a"}, 1, 1, 20)

	var body struct {
		Data PageData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Data.Total)
	assert.Equal(t, 20, body.Data.PageSize)
	assert.Equal(t, 1, body.Data.TotalPages)
}
