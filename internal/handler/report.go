package handler

import (
	"net/http"
	"time"

	"budgetbook/internal/models"
	"budgetbook/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportHandler serves aggregated views over the transaction history.
type ReportHandler struct {
	DB *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db}
}

type groupTotal struct {
	Name   string `json:"name"`
	Debit  string `json:"debit"`
	Credit string `json:"credit"`
	Net    string `json:"net"` // credit - debit
}

// Monthly returns per-category and per-vendor debit/credit totals for
// one month: ?month=YYYY-MM (defaults to the current month).
func (h *ReportHandler) Monthly(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	monthStr := c.Query("month")
	if monthStr == "" {
		monthStr = time.Now().Format("2006-01")
	}
	t, err := time.Parse("2006-01", monthStr)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "month must be YYYY-MM")
		return
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0)

	var txs []models.Transaction
	if err := h.DB.Where("user_id = ? AND date >= ? AND date < ?", user.ID, start, end).
		Order("date ASC").
		Find(&txs).Error; err != nil {
		fail(c, err)
		return
	}

	categories, vendors, _, err := ownedNames(h.DB, user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	type bucket struct {
		debit  decimal.Decimal
		credit decimal.Decimal
	}
	byCategory := make(map[string]*bucket)
	byVendor := make(map[string]*bucket)
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	add := func(m map[string]*bucket, name string, tx *models.Transaction) {
		b, ok := m[name]
		if !ok {
			b = &bucket{debit: decimal.Zero, credit: decimal.Zero}
			m[name] = b
		}
		if tx.IsDebit {
			b.debit = b.debit.Add(tx.Amount)
		} else {
			b.credit = b.credit.Add(tx.Amount)
		}
	}

	for i := range txs {
		tx := &txs[i]
		add(byCategory, categories[tx.CategoryID], tx)
		add(byVendor, vendors[tx.VendorID], tx)
		if tx.IsDebit {
			totalDebit = totalDebit.Add(tx.Amount)
		} else {
			totalCredit = totalCredit.Add(tx.Amount)
		}
	}

	toList := func(m map[string]*bucket) []groupTotal {
		out := make([]groupTotal, 0, len(m))
		for name, b := range m {
			out = append(out, groupTotal{
				Name:   name,
				Debit:  b.debit.StringFixed(2),
				Credit: b.credit.StringFixed(2),
				Net:    b.credit.Sub(b.debit).StringFixed(2),
			})
		}
		return out
	}

	util.Success(c, util.Response{
		"month":        monthStr,
		"by_category":  toList(byCategory),
		"by_vendor":    toList(byVendor),
		"total_debit":  totalDebit.StringFixed(2),
		"total_credit": totalCredit.StringFixed(2),
	})
}

// ownedNames loads id→name maps for the user's categories, vendors and
// accounts in one pass each.
func ownedNames(db *gorm.DB, userID uint) (categories, vendors, accounts map[uint]string, err error) {
	var cats []models.Category
	if err = db.Where("user_id = ?", userID).Find(&cats).Error; err != nil {
		return nil, nil, nil, err
	}
	var vends []models.Vendor
	if err = db.Where("user_id = ?", userID).Find(&vends).Error; err != nil {
		return nil, nil, nil, err
	}
	var accts []models.Account
	if err = db.Where("user_id = ?", userID).Find(&accts).Error; err != nil {
		return nil, nil, nil, err
	}

	categories = make(map[uint]string, len(cats))
	for i := range cats {
		categories[cats[i].ID] = cats[i].Name
	}
	vendors = make(map[uint]string, len(vends))
	for i := range vends {
		vendors[vends[i].ID] = vends[i].Name
	}
	accounts = make(map[uint]string, len(accts))
	for i := range accts {
		accounts[accts[i].ID] = accts[i].Name
	}
	return categories, vendors, accounts, nil
}
