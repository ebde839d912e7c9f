package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DillanMilo/angus-biltong-sub000/auth"
	"github.com/DillanMilo/angus-biltong-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidateAPIKey(t *testing.T) {
	r := gin.New()
	r.GET("/admin", ValidateAPIKey("k3y"), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req.Header.Set("X-API-KEY", "wrong")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req.Header.Set("X-API-KEY", "k3y")
	assert.Equal(t, http.StatusNoContent, serve(r, req).Code)

	locked := gin.New()
	locked.GET("/admin", ValidateAPIKey(""), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	req.Header.Set("X-API-KEY", "")
	assert.Equal(t, http.StatusUnauthorized, serve(locked, req).Code)
}

func TestValidateToken(t *testing.T) {
	secret := []byte("jwt-secret")
	r := gin.New()
	r.GET("/account", ValidateToken(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetInt(CustomerIDKey), "email": c.GetString(EmailKey)})
	})

	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req.Header.Set("Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	tok, _, err := auth.IssueToken(secret, models.Customer{ID: 42, Email: "a@b.co"}, time.Now(), time.Hour)
	require.NoError(t, err)

	req.Header.Set("Authorization", "Bearer "+tok)
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42,"email":"a@b.co"}`, w.Body.String())

	req.Header.Set("Authorization", tok)
	assert.Equal(t, http.StatusOK, serve(r, req).Code)
}

func TestCartSessionIssuesAndKeepsCookie(t *testing.T) {
	r := gin.New()
	r.GET("/cart", CartSession(false), func(c *gin.Context) { c.String(http.StatusOK, SessionID(c)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/cart", nil))
	id := w.Body.String()
	require.NoError(t, uuid.Validate(id))

	var cookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == CartCookie {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, id, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: CartCookie, Value: id})
	assert.Equal(t, id, serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: CartCookie, Value: "../../etc/passwd"})
	assert.NotEqual(t, "../../etc/passwd", serve(r, req).Body.String())
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	serve(r, httptest.NewRequest(http.MethodGet, "/ok", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.EqualValues(t, http.StatusBadGateway, entries[1].ContextMap()["status"])
}
