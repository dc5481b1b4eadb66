// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/teeloom/teeloom-backend/internal/utils"
)

type AuthMiddlewareSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *AuthMiddlewareSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("middleware-test-secret")

	s.router = gin.New()

	echo := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
		})
	}

	s.router.GET("/protected", AuthRequired(), echo)
	s.router.GET("/admin", AuthRequired(), AdminRequired(), echo)
	s.router.GET("/designer", AuthRequired(), DesignerRequired(), echo)
	s.router.GET("/optional", OptionalAuth(), echo)
}

func (s *AuthMiddlewareSuite) request(path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthMiddlewareSuite) token(role string) string {
	token, err := utils.GenerateJWT(uuid.New(), role+"@example.com", role, 1)
	require.NoError(s.T(), err)
	return token
}

func (s *AuthMiddlewareSuite) TestMissingToken() {
	w := s.request("/protected", "")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthMiddlewareSuite) TestMalformedHeader() {
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthMiddlewareSuite) TestInvalidToken() {
	w := s.request("/protected", "definitely-not-a-jwt")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthMiddlewareSuite) TestValidToken() {
	w := s.request("/protected", s.token("client"))
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), `"role":"client"`)
}

func (s *AuthMiddlewareSuite) TestAdminGate() {
	w := s.request("/admin", s.token("client"))
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.request("/admin", s.token("designer"))
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.request("/admin", s.token("admin"))
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *AuthMiddlewareSuite) TestDesignerGate() {
	w := s.request("/designer", s.token("client"))
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.request("/designer", s.token("designer"))
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *AuthMiddlewareSuite) TestOptionalAuth() {
	// No token still passes, just without identity
	w := s.request("/optional", "")
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), `"user_id":""`)

	// Valid token attaches identity
	w = s.request("/optional", s.token("client"))
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), `"role":"client"`)

	// Garbage token is ignored rather than rejected
	w = s.request("/optional", "garbage")
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}
