package api_test

import (
	"encoding/json"     // Decode response bodies
	"net/http"          // Status codes and requests
	"net/http/httptest" // Recorder-based handler tests
	"net/url"           // Form encoding
	"strings"           // Request bodies
	"testing"           // Testing framework
	"time"              // Expired token issuance

	"amine_web/internal/api"              // Package under test
	"amine_web/internal/domain"           // Domain models
	"amine_web/internal/middleware"       // Auth middleware
	"amine_web/internal/repository"       // Storage errors
	"amine_web/internal/repository/mocks" // Mocked user repository
	"amine_web/internal/service"          // Real service over the mock
	"amine_web/internal/utils"            // Hash and token helpers

	"github.com/gin-gonic/gin"            // Gin web framework
	"github.com/redis/go-redis/v9"        // Redis client (unreachable in tests)
	"github.com/stretchr/testify/assert"  // Assertion library
	"github.com/stretchr/testify/mock"    // Mock library
	"github.com/stretchr/testify/require" // Require assertion library
)

const testSecret = "handler-test-secret"

// newTestRouter wires the real routes over a mocked repository.
// The redis client points at a closed port, so every cache call misses
// and the handlers fall through to the repository.
func newTestRouter(repo *mocks.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := service.NewAuthService(repo, testSecret, "HS256", 30)
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.POST("/login/access-token", api.LoginHandler(auth))
	v1.POST("/users/", api.CreateUserHandler(auth))
	v1.GET("/users/username/:username", api.ReadUserByUsernameHandler(repo, rdb))
	v1.GET("/users/me", middleware.JWTAuthMiddleware(testSecret, repo), api.ReadMeHandler())
	return r
}

// postForm performs a form-encoded POST against the router
func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// postJSON performs a JSON POST against the router
func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// detailOf extracts the detail field from an error response
func detailOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	detail, _ := body["detail"].(string)
	return detail
}

func seedUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &domain.User{ID: 1, Email: "alice@x.com", Username: "alice", HashedPassword: hash, IsActive: true}
}

func TestLogin_Success(t *testing.T) {
	repo := new(mocks.UserRepository)
	stored := seedUser(t, "secret123")
	repo.On("FindByEmail", mock.Anything, "alice@x.com").Return(stored, nil).Once()
	r := newTestRouter(repo)

	w := postForm(r, "/api/v1/login/access-token", url.Values{
		"username": {"alice@x.com"}, // The username field carries the identifier
		"password": {"secret123"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp api.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)
	// The issued token's subject is the user id
	subject, err := utils.ParseToken(resp.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "1", subject)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("FindByEmail", mock.Anything, "alice@x.com").Return(seedUser(t, "secret123"), nil).Once()
	r := newTestRouter(repo)

	w := postForm(r, "/api/v1/login/access-token", url.Values{
		"username": {"alice@x.com"},
		"password": {"wrongpass"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Incorrect email/username or password", detailOf(t, w))
}

func TestLogin_UnknownIdentifier(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("FindByEmail", mock.Anything, "nouser@x.com").Return(nil, repository.ErrNotFound).Once()
	repo.On("FindByUsername", mock.Anything, "nouser@x.com").Return(nil, repository.ErrNotFound).Once()
	r := newTestRouter(repo)

	w := postForm(r, "/api/v1/login/access-token", url.Values{
		"username": {"nouser@x.com"},
		"password": {"anything"},
	})

	// Same response as a wrong password; the miss is not revealed
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Incorrect email/username or password", detailOf(t, w))
}

func TestLogin_InactiveUser(t *testing.T) {
	repo := new(mocks.UserRepository)
	stored := seedUser(t, "secret123")
	stored.IsActive = false
	repo.On("FindByEmail", mock.Anything, "alice@x.com").Return(stored, nil).Once()
	r := newTestRouter(repo)

	w := postForm(r, "/api/v1/login/access-token", url.Values{
		"username": {"alice@x.com"},
		"password": {"secret123"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Inactive user", detailOf(t, w))
}

func TestCreateUser_Success(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("FindByEmail", mock.Anything, "a@b.com").Return(nil, repository.ErrNotFound).Once()
	repo.On("FindByUsername", mock.Anything, "alice").Return(nil, repository.ErrNotFound).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 9
	}).Return(nil).Once()
	r := newTestRouter(repo)

	// The request even tries to claim superuser; the field does not exist
	// on the input shape, so it is silently ignored
	w := postJSON(r, "/api/v1/users/", `{"email":"a@b.com","username":"alice","password":"secret123","is_superuser":true}`)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(9), body["id"])
	assert.Equal(t, "a@b.com", body["email"])
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, true, body["is_active"])
	assert.Equal(t, false, body["is_superuser"])
	// The password hash must never be serialized
	assert.NotContains(t, body, "hashed_password")
	assert.NotContains(t, w.Body.String(), "secret123")
}

func TestCreateUser_EmailTaken(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("FindByEmail", mock.Anything, "a@b.com").Return(&domain.User{ID: 1, Email: "a@b.com"}, nil).Once()
	r := newTestRouter(repo)

	w := postJSON(r, "/api/v1/users/", `{"email":"a@b.com","username":"newname","password":"secret123"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "该邮箱已被注册", detailOf(t, w))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUser_UsernameTaken(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("FindByEmail", mock.Anything, "new@b.com").Return(nil, repository.ErrNotFound).Once()
	repo.On("FindByUsername", mock.Anything, "alice").Return(&domain.User{ID: 2, Username: "alice"}, nil).Once()
	r := newTestRouter(repo)

	w := postJSON(r, "/api/v1/users/", `{"email":"new@b.com","username":"alice","password":"secret123"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "该用户名已被占用", detailOf(t, w))
}

func TestCreateUser_InvalidEmail(t *testing.T) {
	repo := new(mocks.UserRepository)
	r := newTestRouter(repo)

	w := postJSON(r, "/api/v1/users/", `{"email":"not-an-email","username":"alice","password":"secret123"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestCreateUser_ShortPassword(t *testing.T) {
	repo := new(mocks.UserRepository)
	r := newTestRouter(repo)

	w := postJSON(r, "/api/v1/users/", `{"email":"a@b.com","username":"alice","password":"short"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestReadUserByUsername_Found(t *testing.T) {
	repo := new(mocks.UserRepository)
	stored := seedUser(t, "secret123")
	repo.On("FindByUsername", mock.Anything, "alice").Return(stored, nil).Once()
	r := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/username/alice", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "alice", body["username"])
	assert.NotContains(t, body, "hashed_password")
}

func TestReadUserByUsername_NotFound(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, repository.ErrNotFound).Once()
	r := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/username/ghost", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "该用户名不存在", detailOf(t, w))
}

func TestReadMe_WithValidToken(t *testing.T) {
	repo := new(mocks.UserRepository)
	stored := seedUser(t, "secret123")
	repo.On("FindByID", mock.Anything, uint(1)).Return(stored, nil).Once()
	r := newTestRouter(repo)

	token, err := utils.GenerateToken("1", 30*time.Minute, testSecret, "HS256")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "alice", body["username"])
}

func TestReadMe_WithoutToken(t *testing.T) {
	repo := new(mocks.UserRepository)
	r := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReadMe_WithExpiredToken(t *testing.T) {
	repo := new(mocks.UserRepository)
	r := newTestRouter(repo)

	token, err := utils.GenerateToken("1", -time.Minute, testSecret, "HS256")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestReadMe_InactiveUser(t *testing.T) {
	repo := new(mocks.UserRepository)
	stored := seedUser(t, "secret123")
	stored.IsActive = false
	repo.On("FindByID", mock.Anything, uint(1)).Return(stored, nil).Once()
	r := newTestRouter(repo)

	token, err := utils.GenerateToken("1", 30*time.Minute, testSecret, "HS256")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// A valid token for a disabled account is intentionally distinguishable
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Inactive user", detailOf(t, w))
}
