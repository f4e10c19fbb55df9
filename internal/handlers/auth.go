// internal/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avpetrescu/catalog-admin/internal/services"
	"github.com/avpetrescu/catalog-admin/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /login/
//
// Accepts url-encoded (or multipart) form fields. Every credential
// failure maps to the same 401 body; the caller is handed the user id
// and an access token it may ignore.
func (h *AuthHandler) Login(c *gin.Context) {
	req := services.LoginRequest{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}

	result, err := h.authService.Authenticate(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.UnauthorizedResponse(c)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful!",
		"user_id": result.User.ID,
		"token":   result.AccessToken,
	})
}
