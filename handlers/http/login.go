package httpHandler

import (
	"net/http"

	"irrigation-server/auth"
	"irrigation-server/usecases"

	"github.com/gin-gonic/gin"
)

type LoginHandler struct {
	users    *usecases.UserUseCase
	sessions *auth.SessionStore
}

func NewLoginHandler(users *usecases.UserUseCase, sessions *auth.SessionStore) *LoginHandler {
	return &LoginHandler{users: users, sessions: sessions}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /login. On success it sets the session cookie.
func (h *LoginHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.users.Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	session := h.sessions.Create(user.ID, user.Username, user.Role.Name)
	c.SetCookie(SessionCookieName, session.Token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"username": user.Username,
		"role":     user.Role.Name,
	})
}

// Logout handles POST /logout.
func (h *LoginHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
		h.sessions.Delete(token)
	}
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusOK)
}

// CurrentUser handles GET /api/current-user.
func (h *LoginHandler) CurrentUser(c *gin.Context) {
	session, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"username": session.Username,
		"role":     session.RoleName,
	})
}
