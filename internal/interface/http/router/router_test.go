package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	appauth "github.com/xiebiao/library/internal/application/auth"
	appbook "github.com/xiebiao/library/internal/application/book"
	appinventory "github.com/xiebiao/library/internal/application/inventory"
	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/category"
	"github.com/xiebiao/library/internal/domain/editorial"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/domain/staff"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/internal/interface/http/router"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/mq"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type server struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

// newServer 用内存仓储组装完整的路由
func newServer(t *testing.T) *server {
	t.Helper()

	store := memory.NewStore()
	txManager := memory.NewTxManager(store)
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	sessions := redis.NewSessionStore(client, "router-test")
	publisher := mq.NewNoopPublisher(zap.NewNop())
	jwtManager := jwt.NewManager("router-test-secret", time.Hour, 24*time.Hour)

	authorRepo := memory.NewAuthorRepository(store)
	categoryRepo := memory.NewCategoryRepository(store)
	editorialRepo := memory.NewEditorialRepository(store)
	bookRepo := memory.NewBookRepository(store)
	inventoryRepo := memory.NewInventoryRepository(store)
	memberRepo := memory.NewMemberRepository(store)
	loanRepo := memory.NewLoanRepository(store)

	staffService := staff.NewServiceWithCost(memory.NewStaffRepository(store), bcrypt.MinCost)
	bookService := book.NewService(bookRepo)
	refs := appbook.NewReferences(authorRepo, categoryRepo, editorialRepo)
	cache := redis.NewJSONCache(client)
	cacheOpts := appbook.CacheOptions{KeyPrefix: "test", TTL: time.Minute}

	handlers := &router.Handlers{
		Auth: handler.NewAuthHandler(
			appauth.NewRegisterUseCase(staffService),
			appauth.NewLoginUseCase(staffService, jwtManager, sessions),
			appauth.NewLogoutUseCase(jwtManager, sessions),
			appauth.NewRefreshTokenUseCase(jwtManager, sessions),
		),
		Author:    handler.NewAuthorHandler(author.NewService(authorRepo)),
		Category:  handler.NewCategoryHandler(category.NewService(categoryRepo)),
		Editorial: handler.NewEditorialHandler(editorial.NewService(editorialRepo)),
		Member:    handler.NewMemberHandler(member.NewService(memberRepo)),
		Book: handler.NewBookHandler(
			appbook.NewCreateBookUseCase(bookService, refs),
			appbook.NewGetBookUseCase(bookService, refs, cache, cacheOpts),
			appbook.NewListBooksUseCase(bookService),
			appbook.NewUpdateBookUseCase(bookService, refs, cache, cacheOpts),
			appbook.NewDeleteBookUseCase(bookService, cache, cacheOpts),
		),
		Inventory: handler.NewInventoryHandler(
			appinventory.NewCreateInventoryUseCase(inventoryRepo, bookRepo),
			appinventory.NewGetInventoryUseCase(inventoryRepo),
			appinventory.NewListInventoriesUseCase(inventoryRepo),
			appinventory.NewAdjustUnitsUseCase(inventoryRepo, txManager, publisher),
			appinventory.NewDeleteInventoryUseCase(inventoryRepo, txManager),
		),
		Loan: handler.NewLoanHandler(
			apploan.NewLendBookUseCase(loanRepo, inventoryRepo, memberRepo, bookRepo, txManager, publisher),
			apploan.NewReturnBookUseCase(loanRepo, inventoryRepo, txManager, publisher),
			apploan.NewGetLoanUseCase(loanRepo, memberRepo, bookRepo, inventoryRepo),
			apploan.NewListLoansUseCase(loanRepo, memberRepo, bookRepo, inventoryRepo),
		),
	}

	cfg := &config.Config{Server: config.ServerConfig{Mode: "test"}}
	engine := router.New(cfg, zap.NewNop(), handlers, middleware.NewAuthMiddleware(jwtManager, sessions))
	return &server{t: t, engine: engine}
}

func (s *server) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

// mustCreate 创建资源并返回ID
func (s *server) mustCreate(path string, body interface{}) uint {
	s.t.Helper()
	w, env := s.do(http.MethodPost, path, body)
	require.Equal(s.t, http.StatusCreated, w.Code, env.Message)
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &created))
	require.NotZero(s.t, created.ID)
	return created.ID
}

func (s *server) login() {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "ana@library.org", "password": "Prestamo2024", "nickname": "Ana",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, env.Message)

	w, env = s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "ana@library.org", "password": "Prestamo2024",
	})
	require.Equal(s.t, http.StatusOK, w.Code, env.Message)

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &resp))
	s.token = resp.AccessToken
}

// seedCatalogue 创建作者、分类、出版社和一本书，返回图书ID
func (s *server) seedCatalogue() uint {
	s.t.Helper()
	authorID := s.mustCreate("/api/v1/authors", map[string]string{
		"first_name": "Gabriel", "last_name": "García Márquez",
	})
	categoryID := s.mustCreate("/api/v1/categories", map[string]string{"name": "Novela"})
	editorialID := s.mustCreate("/api/v1/editorials", map[string]string{"name": "Sudamericana"})

	w, env := s.do(http.MethodPost, "/api/v1/books", map[string]interface{}{
		"name": "Cien años de soledad", "place_of_edition": "Buenos Aires",
		"year_of_edition": 1967, "num_pages": 471,
		"author_id": authorID, "category_id": categoryID, "editorial_id": editorialID,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, env.Message)
	var detail struct {
		Book struct {
			ID uint `json:"id"`
		} `json:"book"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &detail))
	return detail.Book.ID
}

func TestPingAndMetrics(t *testing.T) {
	s := newServer(t)

	w, env := s.do(http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	w, _ = s.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestRequestIDPropagated(t *testing.T) {
	s := newServer(t)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-42")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(middleware.HeaderRequestID))
}

func TestMutationsRequireAuth(t *testing.T) {
	s := newServer(t)

	w, env := s.do(http.MethodPost, "/api/v1/authors", map[string]string{"first_name": "Jorge", "last_name": "Borges"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 40100, env.Code)

	// 查询接口公开
	w, _ = s.do(http.MethodGet, "/api/v1/authors", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	s.token = "not-a-jwt"
	w, _ = s.do(http.MethodDelete, "/api/v1/authors/1", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPathIDValidation(t *testing.T) {
	s := newServer(t)
	for _, path := range []string{"/api/v1/authors/abc", "/api/v1/books/0", "/api/v1/loans/-3", "/api/v1/inventories/book/x"} {
		w, env := s.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, 40020, env.Code, path)
	}
}

func TestAuthorCRUD(t *testing.T) {
	s := newServer(t)
	s.login()

	id := s.mustCreate("/api/v1/authors", map[string]string{
		"first_name": "Isabel", "last_name": "Allende", "email": "isabel@allende.cl",
	})
	path := fmt.Sprintf("/api/v1/authors/%d", id)

	w, env := s.do(http.MethodPatch, path, map[string]string{"last_name": "Allende Llona"})
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	assert.Contains(t, string(env.Data), "Allende Llona")

	w, env = s.do(http.MethodGet, "/api/v1/authors?keyword=llona", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
		Size  int   `json:"page_size"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Size)

	t.Run("校验失败返回400", func(t *testing.T) {
		w, _ := s.do(http.MethodPost, "/api/v1/authors", map[string]string{"first_name": "Al", "last_name": "Allende"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	w, _ = s.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 40401, env.Code)
}

func TestCategoryDuplicateAndInvalidStatus(t *testing.T) {
	s := newServer(t)
	s.login()

	s.mustCreate("/api/v1/categories", map[string]string{"name": "Poesía"})
	w, _ := s.do(http.MethodPost, "/api/v1/categories", map[string]string{"name": "Poesía"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodPost, "/api/v1/editorials", map[string]string{"name": "Planeta", "status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMembers(t *testing.T) {
	s := newServer(t)
	s.login()

	id := s.mustCreate("/api/v1/users", map[string]string{
		"first_name": "Clara", "last_name": "del Valle", "identification": "1020304050", "email": "clara@library.org",
	})

	w, env := s.do(http.MethodGet, "/api/v1/users/identification/1020304050", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var m struct {
		ID           uint   `json:"id"`
		Observations string `json:"observations"`
		Status       string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &m))
	assert.Equal(t, id, m.ID)
	assert.Equal(t, member.DefaultObservations, m.Observations)
	assert.Equal(t, "active", m.Status)

	w, _ = s.do(http.MethodPost, "/api/v1/users", map[string]string{
		"first_name": "Blanca", "last_name": "del Valle", "identification": "1020304050", "email": "blanca@library.org",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/users/identification/999999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookWithUnknownReference(t *testing.T) {
	s := newServer(t)
	s.login()

	w, env := s.do(http.MethodPost, "/api/v1/books", map[string]interface{}{
		"name": "Rayuela", "place_of_edition": "Buenos Aires", "year_of_edition": 1963, "num_pages": 600,
		"author_id": 9, "category_id": 9, "editorial_id": 9,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 40013, env.Code)
}

func TestCirculation(t *testing.T) {
	s := newServer(t)
	s.login()
	bookID := s.seedCatalogue()

	invID := s.mustCreate("/api/v1/inventories", map[string]interface{}{"book_id": bookID, "units_purchased": 2})
	memberID := s.mustCreate("/api/v1/users", map[string]string{
		"first_name": "Clara", "last_name": "del Valle", "identification": "1020304050", "email": "clara@library.org",
	})

	w, _ := s.do(http.MethodPost, "/api/v1/inventories", map[string]interface{}{"book_id": bookID})
	assert.Equal(t, http.StatusBadRequest, w.Code, "一本书只能有一条库存")

	due := time.Now().AddDate(0, 0, 14).Format("2006-01-02")
	w, env := s.do(http.MethodPost, "/api/v1/loans", map[string]interface{}{
		"member_id": memberID, "book_id": bookID, "due_date": due,
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var lent struct {
		Loan struct {
			ID    uint   `json:"id"`
			State string `json:"state"`
		} `json:"loan"`
		Inventory struct {
			LoanedUnits    int `json:"loaned_units"`
			UnitsAvailable int `json:"units_available"`
		} `json:"inventory"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &lent))
	assert.Equal(t, "lent", lent.Loan.State)
	assert.Equal(t, 1, lent.Inventory.LoanedUnits)
	assert.Equal(t, 1, lent.Inventory.UnitsAvailable)

	t.Run("同一天重复借阅", func(t *testing.T) {
		w, env := s.do(http.MethodPost, "/api/v1/loans", map[string]interface{}{
			"member_id": memberID, "book_id": bookID, "due_date": due,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 40004, env.Code)
	})

	t.Run("应还日期格式错误", func(t *testing.T) {
		w, _ := s.do(http.MethodPost, "/api/v1/loans", map[string]interface{}{
			"member_id": memberID, "book_id": bookID, "due_date": "15/02/2030",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("有借出时不能删除库存", func(t *testing.T) {
		w, _ := s.do(http.MethodDelete, fmt.Sprintf("/api/v1/inventories/%d", invID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	w, env = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/loans/%d/return", lent.Loan.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	assert.Contains(t, string(env.Data), `"state":"returned"`)

	w, _ = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/loans/%d/return", lent.Loan.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/inventories/book/%d", bookID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"units_available":2`)

	w, env = s.do(http.MethodGet, "/api/v1/loans?state=returned", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"total":1`)

	w, _ = s.do(http.MethodGet, "/api/v1/loans?state=lost", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInventoryUnits(t *testing.T) {
	s := newServer(t)
	s.login()
	bookID := s.seedCatalogue()
	invID := s.mustCreate("/api/v1/inventories", map[string]interface{}{"book_id": bookID, "units_purchased": 1})
	base := fmt.Sprintf("/api/v1/inventories/%d", invID)

	w, env := s.do(http.MethodPatch, base+"/lend", map[string]int{"units": 1})
	require.Equal(t, http.StatusOK, w.Code, env.Message)

	w, env = s.do(http.MethodPatch, base+"/lend", map[string]int{"units": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 40001, env.Code)

	w, _ = s.do(http.MethodPatch, base+"/add-units", map[string]int{"units": 3})
	require.Equal(t, http.StatusOK, w.Code)

	// 归还最后一本是允许的
	w, env = s.do(http.MethodPatch, base+"/return", map[string]int{"units": 1})
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	assert.Contains(t, string(env.Data), `"units_available":4`)

	w, _ = s.do(http.MethodPatch, base+"/return", map[string]int{"units": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodPatch, base+"/add-units", map[string]int{"units": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodGet, "/api/v1/inventories?only_available=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"total":1`)
}

func TestBookListAndDetail(t *testing.T) {
	s := newServer(t)
	s.login()
	bookID := s.seedCatalogue()

	w, env := s.do(http.MethodGet, "/api/v1/books?keyword=soledad", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"category_name":"Novela"`)
	assert.Contains(t, string(env.Data), `"editorial_name":"Sudamericana"`)

	path := fmt.Sprintf("/api/v1/books/%d", bookID)
	w, env = s.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"first_name":"Gabriel"`)

	w, env = s.do(http.MethodPatch, path, map[string]interface{}{"num_pages": 500})
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	assert.Contains(t, string(env.Data), `"num_pages":500`)

	w, _ = s.do(http.MethodPatch, path, map[string]interface{}{"editorial_id": 77})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	s := newServer(t)
	s.login()

	w, _ := s.do(http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := s.do(http.MethodPost, "/api/v1/categories", map[string]string{"name": "Ensayo"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 40102, env.Code)
}
