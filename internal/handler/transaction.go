package handler

import (
	"net/http"
	"strconv"
	"time"

	"budgetbook/internal/models"
	"budgetbook/internal/service"
	"budgetbook/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionHandler serves transaction CRUD and filtered listing.
type TransactionHandler struct {
	Transactions *service.TransactionService
}

func NewTransactionHandler(transactions *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{Transactions: transactions}
}

type transactionResp struct {
	ID          uint   `json:"id"`
	Date        string `json:"date"`
	AccountID   uint   `json:"account_id"`
	CategoryID  uint   `json:"category_id"`
	VendorID    uint   `json:"vendor_id"`
	IsDebit     bool   `json:"is_debit"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

func transactionView(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:          t.ID,
		Date:        t.Date.Format("2006-01-02"),
		AccountID:   t.AccountID,
		CategoryID:  t.CategoryID,
		VendorID:    t.VendorID,
		IsDebit:     t.IsDebit,
		Amount:      t.Amount.StringFixed(2),
		Description: t.Description,
	}
}

type transactionReq struct {
	ID          uint   `json:"id"` // required on PUT, ignored on POST
	Date        string `json:"date" binding:"required"`
	AccountID   uint   `json:"account_id" binding:"required"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	VendorID    uint   `json:"vendor_id" binding:"required"`
	IsDebit     bool   `json:"is_debit"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description" binding:"max=255"`
}

func (r *transactionReq) toModel(c *gin.Context) (*models.Transaction, bool) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "date must be YYYY-MM-DD")
		return nil, false
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return nil, false
	}

	return &models.Transaction{
		ID:          r.ID,
		Date:        date,
		AccountID:   r.AccountID,
		CategoryID:  r.CategoryID,
		VendorID:    r.VendorID,
		IsDebit:     r.IsDebit,
		Amount:      amount,
		Description: r.Description,
	}, true
}

func (h *TransactionHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	tx, ok := req.toModel(c)
	if !ok {
		return
	}
	tx.ID = 0 // ignore any client-supplied id on create

	if err := h.Transactions.Add(user.ID, tx); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": transactionView(tx)})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	tx, ok := req.toModel(c)
	if !ok {
		return
	}

	if err := h.Transactions.Modify(user.ID, tx); err != nil {
		fail(c, err)
		return
	}

	updated, err := h.Transactions.Get(user.ID, req.ID)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": transactionView(updated)})
}

// List supports date range, reference filters, sorting and pagination:
// ?start=YYYY-MM-DD&end=YYYY-MM-DD&account_id=&category_id=&vendor_id=
// &sort=date_desc&page=1&page_size=20
func (h *TransactionHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var f service.TransactionFilter

	if s := c.Query("start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "start must be YYYY-MM-DD")
			return
		}
		f.Start, f.HasStart = t, true
	}
	if s := c.Query("end"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "end must be YYYY-MM-DD")
			return
		}
		// end is inclusive: filter below the next day
		f.End, f.HasEnd = t.Add(24*time.Hour), true
	}

	f.AccountID = uintQuery(c, "account_id")
	f.CategoryID = uintQuery(c, "category_id")
	f.VendorID = uintQuery(c, "vendor_id")
	f.Sort = c.DefaultQuery("sort", "date_desc")
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	txs, total, err := h.Transactions.List(user.ID, f)
	if err != nil {
		fail(c, err)
		return
	}

	items := make([]transactionResp, 0, len(txs))
	for i := range txs {
		items = append(items, transactionView(&txs[i]))
	}
	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  f.Page,
		"size":  f.PageSize,
	})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	if err := h.Transactions.Delete(user.ID, uint(id)); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "transaction deleted"})
}

func uintQuery(c *gin.Context, key string) uint {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 0 {
		return 0
	}
	return uint(n)
}
