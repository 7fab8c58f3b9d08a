package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maplepath/api/internal/services"
)

type AuthHandler struct {
	auth  services.AuthService
	users services.UserService
}

func NewAuthHandler(auth services.AuthService, users services.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if !bindJSON(c, "AuthHandler.Register", &req) {
		return
	}

	u, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, "AuthHandler.Login", &req) {
		return
	}

	tok, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tok)
}

type googleAuthRequest struct {
	FirebaseToken string `json:"firebase_token" binding:"required"`
}

func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	var req googleAuthRequest
	if !bindJSON(c, "AuthHandler.GoogleAuth", &req) {
		return
	}

	tok, err := h.auth.GoogleSignIn(c.Request.Context(), req.FirebaseToken)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tok)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	u, err := h.users.Me(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
