package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eliteshop/storefront/internal/models"
)

// Demo credentials. Identity here is an opaque claim the order workflow
// receives; there is no real trust boundary.
const (
	demoEmail    = "demo@eliteshop.com"
	demoPassword = "demo123"
	demoUserID   = "demo-user-123"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Login accepts only the demo credentials.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if req.Email != demoEmail || req.Password != demoPassword {
		c.JSON(http.StatusUnauthorized, models.AuthResponse{
			Success: false,
			Message: "Invalid credentials. Use demo@eliteshop.com / demo123",
		})
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Success: true,
		User: &models.User{
			ID:     demoUserID,
			Email:  req.Email,
			Name:   "Demo User",
			Avatar: avatarURL("Demo User"),
		},
		Message: "Login successful",
	})
}

// Register issues an opaque user id; nothing is stored.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{
		Success: true,
		User: &models.User{
			ID:     "user-" + uuid.NewString(),
			Email:  req.Email,
			Name:   req.Name,
			Avatar: avatarURL(req.Name),
		},
		Message: "Registration successful",
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, models.AuthResponse{
		Success: true,
		Message: "Logout successful",
	})
}

func avatarURL(name string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=0ea5e9&color=fff", url.QueryEscape(name))
}
