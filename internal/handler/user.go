package handler

import (
	"net/http"
	"time"

	"budgetbook/internal/models"
	"budgetbook/internal/service"
	"budgetbook/internal/util"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the authenticated user's own profile.
type UserHandler struct {
	Users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

func userView(u *models.User) gin.H {
	view := gin.H{
		"id":         u.ID,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
	}
	if !u.DateOfBirth.IsZero() {
		view["date_of_birth"] = u.DateOfBirth.Format("2006-01-02")
	}
	return view
}

// GetMe returns the current user.
func (h *UserHandler) GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	util.Success(c, util.Response{"user": userView(user)})
}

type modifyUserReq struct {
	FirstName   string `json:"first_name" binding:"max=64"`
	LastName    string `json:"last_name" binding:"max=64"`
	Email       string `json:"email" binding:"max=128"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD, empty keeps stored value
	Password    string `json:"password" binding:"omitempty,min=8,max=64"`
}

// Modify applies a sparse update: only provided fields change.
func (h *UserHandler) Modify(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req modifyUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	upd := service.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}
	if req.DateOfBirth != "" {
		t, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "date_of_birth must be YYYY-MM-DD")
			return
		}
		upd.DateOfBirth = &t
	}

	updated, err := h.Users.Modify(user.ID, upd)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"user": userView(updated)})
}

// Remove soft-deletes the current user.
func (h *UserHandler) Remove(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Users.Remove(user.ID); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "account deactivated"})
}
