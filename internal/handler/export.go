package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"budgetbook/internal/models"
	"budgetbook/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler streams the caller's transactions as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeaders = []string{"Date", "Account", "Category", "Vendor", "Direction", "Amount", "Description"}

func (h *ExportHandler) rows(userID uint) ([][]string, error) {
	var txs []models.Transaction
	if err := h.DB.Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&txs).Error; err != nil {
		return nil, err
	}

	categories, vendors, accounts, err := ownedNames(h.DB, userID)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(txs))
	for i := range txs {
		tx := &txs[i]
		direction := "credit"
		if tx.IsDebit {
			direction = "debit"
		}
		rows = append(rows, []string{
			tx.Date.Format("2006-01-02"),
			accounts[tx.AccountID],
			categories[tx.CategoryID],
			vendors[tx.VendorID],
			direction,
			tx.Amount.StringFixed(2),
			tx.Description,
		})
	}
	return rows, nil
}

// CSV exports all transactions as a CSV download.
func (h *ExportHandler) CSV(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	rows, err := h.rows(user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	_ = writer.Write(exportHeaders)
	for _, row := range rows {
		_ = writer.Write(row)
	}
}

// XLSX exports all transactions as a spreadsheet download.
func (h *ExportHandler) XLSX(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	rows, err := h.rows(user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error")
		return
	}
	f.SetActiveSheet(index)
	// drop the default sheet excelize creates alongside ours
	_ = f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}
	for idx, row := range rows {
		for col, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+col, idx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "D", 16)
	f.SetColWidth(sheetName, "E", "F", 10)
	f.SetColWidth(sheetName, "G", "G", 30)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error")
	}
}
