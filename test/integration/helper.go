//go:build integration

// Package integration 黑盒HTTP测试，需要先启动API服务(MySQL、Redis就绪)：
//
//	go run ./cmd/api
//	go test -tags=integration ./test/integration/...
//
// 服务地址可通过LIBRARY_TEST_BASE_URL覆盖
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
	// DueDateLayout 借阅到期日格式
	DueDateLayout = "2006-01-02"
)

// BaseURL API基础URL
var BaseURL = baseURL()

func baseURL() string {
	if u := os.Getenv("LIBRARY_TEST_BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:3002/api/v1"
}

// Response 统一响应结构
type Response struct {
	Status  int             `json:"-"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Decode 解析data字段
func (r *Response) Decode(t *testing.T, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, dest), "解析data失败: %s", string(r.Data))
}

// IDData 只关心id的响应
type IDData struct {
	ID uint `json:"id"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// InventoryData 库存响应数据
type InventoryData struct {
	ID             uint `json:"id"`
	BookID         uint `json:"book_id"`
	UnitsPurchased int  `json:"units_purchased"`
	LoanedUnits    int  `json:"loaned_units"`
	UnitsAvailable int  `json:"units_available"`
}

// LoanData 借阅响应数据
type LoanData struct {
	ID       uint   `json:"id"`
	MemberID uint   `json:"member_id"`
	BookID   uint   `json:"book_id"`
	Quantity int    `json:"quantity"`
	State    string `json:"state"`
}

// DoJSON 发送请求并解析统一响应
func DoJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		raw, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	require.NoError(t, json.Unmarshal(raw, &result), "解析JSON响应失败: %s", string(raw))
	result.Status = resp.StatusCode
	return &result
}

func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	t.Helper()
	return DoJSON(t, http.MethodPost, url, data, token)
}

func PatchJSON(t *testing.T, url string, data interface{}, token string) *Response {
	t.Helper()
	return DoJSON(t, http.MethodPatch, url, data, token)
}

func GetJSON(t *testing.T, url string) *Response {
	t.Helper()
	return DoJSON(t, http.MethodGet, url, nil, "")
}

func Delete(t *testing.T, url string, token string) *Response {
	t.Helper()
	return DoJSON(t, http.MethodDelete, url, nil, token)
}

// Unique 生成唯一后缀，避免重复运行时唯一键冲突
func Unique() string {
	return fmt.Sprintf("%d", time.Now().UnixNano()%1_000_000_000_000)
}

// DueDate n天后的到期日
func DueDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(DueDateLayout)
}

// RegisterTestStaff 注册馆员并登录，返回access token
func RegisterTestStaff(t *testing.T, nickname string) (email string, token string) {
	t.Helper()

	email = fmt.Sprintf("%s_%s@test.library.org", nickname, Unique())
	resp := PostJSON(t, BaseURL+"/auth/register", map[string]string{
		"email":    email,
		"password": "Library123",
		"nickname": nickname,
	}, "")
	require.Equal(t, 0, resp.Code, "注册失败: %s", resp.Message)

	resp = PostJSON(t, BaseURL+"/auth/login", map[string]string{
		"email":    email,
		"password": "Library123",
	}, "")
	require.Equal(t, 0, resp.Code, "登录失败: %s", resp.Message)

	var login LoginData
	resp.Decode(t, &login)
	return email, login.AccessToken
}

// MustCreate 创建资源并返回ID
func MustCreate(t *testing.T, path string, data interface{}, token string) uint {
	t.Helper()
	resp := PostJSON(t, BaseURL+path, data, token)
	require.Equal(t, http.StatusCreated, resp.Status, "创建%s失败: %s", path, resp.Message)

	var created IDData
	resp.Decode(t, &created)
	require.NotZero(t, created.ID)
	return created.ID
}

// Catalogue 一本带库存的图书
type Catalogue struct {
	AuthorID    uint
	CategoryID  uint
	EditorialID uint
	BookID      uint
	InventoryID uint
	MemberID    uint
}

// SeedCatalogue 创建作者、分类、出版社、图书、库存和一个读者
func SeedCatalogue(t *testing.T, token string, units int) Catalogue {
	t.Helper()
	suffix := Unique()

	var c Catalogue
	c.AuthorID = MustCreate(t, "/authors", map[string]interface{}{
		"first_name": "Gabriel", "last_name": "García Márquez",
	}, token)
	c.CategoryID = MustCreate(t, "/categories", map[string]interface{}{
		"name": "Novela " + suffix,
	}, token)
	c.EditorialID = MustCreate(t, "/editorials", map[string]interface{}{
		"name": "Sudamericana " + suffix,
	}, token)
	resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"name":             "Cien años de soledad",
		"place_of_edition": "Buenos Aires",
		"year_of_edition":  1967,
		"num_pages":        471,
		"author_id":        c.AuthorID,
		"category_id":      c.CategoryID,
		"editorial_id":     c.EditorialID,
	}, token)
	require.Equal(t, http.StatusCreated, resp.Status, "创建图书失败: %s", resp.Message)
	// 创建图书返回详情{book, author, category, editorial}
	var detail struct {
		Book IDData `json:"book"`
	}
	resp.Decode(t, &detail)
	c.BookID = detail.Book.ID
	require.NotZero(t, c.BookID)
	c.InventoryID = MustCreate(t, "/inventories", map[string]interface{}{
		"book_id": c.BookID, "units_purchased": units,
	}, token)
	c.MemberID = MustCreate(t, "/users", map[string]interface{}{
		"first_name":     "Clara",
		"last_name":      "del Valle",
		"identification": "ID" + suffix,
		"email":          "clara_" + suffix + "@test.library.org",
	}, token)
	return c
}
