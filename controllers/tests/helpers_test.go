package controllers_test

import (
	models "Meeple/models/postgres"
	"Meeple/routes"
	"Meeple/services/catalog"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory sqlite database, named after the test
// so parallel tests never share state, and migrates the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Error opening test database: %v", err)
	}

	err = db.AutoMigrate(
		models.User{},
		models.Category{},
		models.Like{},
		models.Review{})
	if err != nil {
		t.Fatalf("Error migrating test database: %v", err)
	}
	return db
}

// fakeCatalog is a stand-in for the Board Game Atlas API. Handlers can be
// swapped per test; unset endpoints answer an empty payload.
type fakeCatalog struct {
	server *httptest.Server

	searchFunc func(q url.Values) (interface{}, int)
}

func newFakeCatalog(t *testing.T) (*fakeCatalog, *catalog.Client) {
	t.Helper()

	fc := &fakeCatalog{}
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if fc.searchFunc != nil {
			body, status := fc.searchFunc(r.URL.Query())
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(body)
			return
		}
		json.NewEncoder(w).Encode(gin.H{"games": []gin.H{}, "count": 0})
	})
	mux.HandleFunc("/game/categories", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(gin.H{"categories": []gin.H{}})
	})
	mux.HandleFunc("/game/videos", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(gin.H{"videos": []gin.H{}})
	})
	mux.HandleFunc("/game/images", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(gin.H{"images": []gin.H{}})
	})

	fc.server = httptest.NewServer(mux)
	t.Cleanup(fc.server.Close)

	client := catalog.NewClient("test-client-id")
	client.BaseURL = fc.server.URL
	return fc, client
}

// setupRouter builds the full route table against the given database and a
// fake catalog, with the same session middleware as production.
func setupRouter(t *testing.T, db *gorm.DB) (*gin.Engine, *fakeCatalog) {
	t.Helper()

	t.Setenv("JWT_SECRET", "test-secret-do-not-use-in-prod")
	gin.SetMode(gin.TestMode)

	fc, client := newFakeCatalog(t)

	r := gin.New()
	store := cookie.NewStore([]byte("test-session-key"))
	r.Use(sessions.Sessions("meeplesession", store))
	routes.SetupRoutes(r, db, client, nil)
	return r, fc
}

// doForm performs a form-encoded request. token and sessionCookie are both
// optional ways of authenticating the request.
func doForm(r *gin.Engine, method, path string, form url.Values, token, sessionCookie string) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if sessionCookie != "" {
		req.Header.Set("Cookie", sessionCookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	return doForm(r, http.MethodGet, path, nil, token, "")
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &body)
	assert.NoError(t, err)
	return body
}

// registerUser creates an account through the API.
func registerUser(t *testing.T, r *gin.Engine, username, email, password string) {
	t.Helper()

	w := doForm(r, http.MethodPost, "/signup", url.Values{
		"username": {username},
		"email":    {email},
		"password": {password},
	}, "", "")
	assert.Equal(t, http.StatusCreated, w.Code)
}

// loginUser logs in and returns the bearer token plus the session cookie.
func loginUser(t *testing.T, r *gin.Engine, username, password string) (string, string) {
	t.Helper()

	w := doForm(r, http.MethodPost, "/login", url.Values{
		"username": {username},
		"password": {password},
	}, "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)

	sessionCookie := ""
	for _, c := range w.Result().Cookies() {
		if c.Name == "meeplesession" {
			sessionCookie = c.Name + "=" + c.Value
		}
	}
	return token, sessionCookie
}
