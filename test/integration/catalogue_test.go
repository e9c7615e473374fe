//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogue(t *testing.T) {
	_, token := RegisterTestStaff(t, "catalogue")
	c := SeedCatalogue(t, token, 2)

	t.Run("分类重名", func(t *testing.T) {
		name := "Poesía " + Unique()
		MustCreate(t, "/categories", map[string]string{"name": name}, token)
		resp := PostJSON(t, BaseURL+"/categories", map[string]string{"name": name}, token)
		assert.Equal(t, http.StatusBadRequest, resp.Status)
	})

	t.Run("非法状态", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/editorials", map[string]string{
			"name": "Planeta " + Unique(), "status": "archived",
		}, token)
		assert.Equal(t, http.StatusBadRequest, resp.Status)
	})

	t.Run("图书引用不存在的作者", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"name": "Ficciones", "place_of_edition": "Buenos Aires",
			"year_of_edition": 1944, "num_pages": 200,
			"author_id": 999999999, "category_id": c.CategoryID, "editorial_id": c.EditorialID,
		}, token)
		assert.Equal(t, http.StatusBadRequest, resp.Status)
	})

	t.Run("图书详情", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, c.BookID))
		require.Equal(t, http.StatusOK, resp.Status, resp.Message)

		var detail struct {
			Book   IDData `json:"book"`
			Author IDData `json:"author"`
		}
		resp.Decode(t, &detail)
		assert.Equal(t, c.BookID, detail.Book.ID)
		assert.Equal(t, c.AuthorID, detail.Author.ID)
	})

	t.Run("读者按证件号查询", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/users/%d", BaseURL, c.MemberID))
		require.Equal(t, http.StatusOK, resp.Status)

		var member struct {
			Identification string `json:"identification"`
		}
		resp.Decode(t, &member)
		resp = GetJSON(t, BaseURL+"/users/identification/"+member.Identification)
		assert.Equal(t, http.StatusOK, resp.Status)
	})

	t.Run("不存在的作者", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/authors/999999999")
		assert.Equal(t, http.StatusNotFound, resp.Status)
	})

	t.Run("有库存的图书不能删除", func(t *testing.T) {
		resp := Delete(t, fmt.Sprintf("%s/books/%d", BaseURL, c.BookID), token)
		assert.Equal(t, http.StatusBadRequest, resp.Status)
	})
}
