package handler

import (
	"net/http"
	"strconv"

	"budgetbook/internal/service"
	"budgetbook/internal/util"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves account CRUD with derived balances.
type AccountHandler struct {
	Accounts *service.AccountService
}

func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{Accounts: accounts}
}

type accountResp struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	IsAsset  bool   `json:"is_asset"`
	IsActive bool   `json:"is_active"`
	Balance  string `json:"balance"`
}

func accountView(a *service.AccountWithBalance) accountResp {
	return accountResp{
		ID:       a.Account.ID,
		Name:     a.Account.Name,
		IsAsset:  a.Account.IsAsset,
		IsActive: a.Account.IsActive,
		Balance:  a.Balance.StringFixed(2),
	}
}

func (h *AccountHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	accounts, err := h.Accounts.List(user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	items := make([]accountResp, 0, len(accounts))
	for i := range accounts {
		items = append(items, accountView(&accounts[i]))
	}
	util.Success(c, util.Response{"items": items})
}

type accountReq struct {
	ID       uint   `json:"id"` // required on PUT, ignored on POST
	Name     string `json:"name" binding:"required,max=64"`
	IsAsset  bool   `json:"is_asset"`
	IsActive bool   `json:"is_active"`
}

func (h *AccountHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req accountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	account, err := h.Accounts.Add(user.ID, req.Name, req.IsAsset, req.IsActive)
	if err != nil {
		fail(c, err)
		return
	}

	view, err := h.Accounts.Get(user.ID, account.ID)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"account": accountView(view)})
}

func (h *AccountHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req accountReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	if _, err := h.Accounts.Modify(user.ID, req.ID, req.Name, req.IsAsset, req.IsActive); err != nil {
		fail(c, err)
		return
	}

	view, err := h.Accounts.Get(user.ID, req.ID)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"account": accountView(view)})
}

func (h *AccountHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	if err := h.Accounts.Delete(user.ID, uint(id)); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "account deleted"})
}
