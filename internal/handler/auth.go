package handler

import (
	"net/http"
	"time"

	"budgetbook/internal/service"
	"budgetbook/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	Users     *service.UserService
	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration
}

func NewAuthHandler(users *service.UserService, secret, issuer string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		Users:     users,
		JWTSecret: secret,
		JWTIssuer: issuer,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}
}

type registerReq struct {
	FirstName   string `json:"first_name" binding:"required,max=64"`
	LastName    string `json:"last_name" binding:"required,max=64"`
	Email       string `json:"email" binding:"required,max=128"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
	Password    string `json:"password" binding:"required,min=8,max=64"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	var dob time.Time
	if req.DateOfBirth != "" {
		t, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "date_of_birth must be YYYY-MM-DD")
			return
		}
		dob = t
	}

	user, err := h.Users.Register(service.Registration{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		DateOfBirth: dob,
		Password:    req.Password,
	})
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"user": userView(user),
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	user, err := h.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid email or password")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, h.JWTIssuer, user.ID, h.TokenTTL)
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"token": token,
		"user":  userView(user),
	})
}
