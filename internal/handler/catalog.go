package handler

import (
	"net/http"

	"budgetbook/internal/service"
	"budgetbook/internal/util"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves category or vendor endpoints; the two share
// every rule, so one handler is instantiated per catalog type.
type CatalogHandler[T service.CatalogModel] struct {
	Svc *service.CatalogService[T]
}

func NewCatalogHandler[T service.CatalogModel](svc *service.CatalogService[T]) *CatalogHandler[T] {
	return &CatalogHandler[T]{Svc: svc}
}

func (h *CatalogHandler[T]) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.Svc.List(user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	views := make([]service.ItemView, 0, len(items))
	for i := range items {
		views = append(views, h.Svc.View(&items[i]))
	}
	util.Success(c, util.Response{"items": views})
}

type catalogReq struct {
	ID          uint   `json:"id"` // required on PUT, ignored on POST
	Name        string `json:"name" binding:"required,max=64"`
	IsDisplayed bool   `json:"is_displayed"`
}

func (h *CatalogHandler[T]) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req catalogReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	item, err := h.Svc.Add(user.ID, req.Name, req.IsDisplayed)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"item": h.Svc.View(item)})
}

func (h *CatalogHandler[T]) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req catalogReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	item, err := h.Svc.Modify(user.ID, req.ID, req.Name, req.IsDisplayed)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"item": h.Svc.View(item)})
}

type absorbReq struct {
	AbsorbedID  uint `json:"absorbed_id" binding:"required"`
	AbsorbingID uint `json:"absorbing_id" binding:"required"`
}

// Delete removes a catalog entry by absorption: every transaction
// referencing absorbed_id is re-pointed at absorbing_id first.
func (h *CatalogHandler[T]) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req absorbReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	if err := h.Svc.Absorb(user.ID, req.AbsorbedID, req.AbsorbingID); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "deleted"})
}
