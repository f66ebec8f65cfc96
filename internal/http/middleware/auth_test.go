package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"trailbook/internal/infra"
)

type fakeVerifier struct {
	uid   string
	role  string
	fail  bool
	calls int
}

func (f *fakeVerifier) VerifyIDToken(_ context.Context, _ string) (*infra.FirebaseToken, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("verification failed")
	}
	claims := map[string]interface{}{}
	if f.role != "" {
		claims["role"] = f.role
	}
	return &infra.FirebaseToken{UID: f.uid, Claims: claims}, nil
}

func newAuthedRouter(v infra.TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", Auth(v), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": CallerUID(c), "role": CallerRole(c)})
	})
	return r
}

func TestAuth_MissingHeader(t *testing.T) {
	v := &fakeVerifier{uid: "u1"}
	r := newAuthedRouter(v)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, v.calls)
}

func TestAuth_InvalidToken(t *testing.T) {
	v := &fakeVerifier{fail: true}
	r := newAuthedRouter(v)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 1, v.calls)
}

func TestAuth_SetsCallerIdentity(t *testing.T) {
	v := &fakeVerifier{uid: "user-42", role: "admin"}
	r := newAuthedRouter(v)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":"user-42","role":"admin"}`, w.Body.String())
}
