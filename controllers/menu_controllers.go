package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/storedb"
	"github.com/yeremiapane/restaurant-floor/utils"
)

type MenuController struct {
	Reg *storedb.Registry
}

func NewMenuController(reg *storedb.Registry) *MenuController {
	return &MenuController{Reg: reg}
}

type menuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
	Category    string  `json:"category"`
	Ingredients string  `json:"ingredients"` // comma-joined
}

// ListMenu -> the full menu.
func (mc *MenuController) ListMenu(c *gin.Context) {
	var items []models.MenuItem
	for _, rec := range mc.Reg.MenuItems.Find() {
		items = append(items, models.MenuItemFromRecord(rec))
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// CreateMenuItem -> add a dish to the menu (admin only).
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	rec, err := mc.Reg.MenuItems.InsertOne(models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Ingredients: req.Ingredients,
	}.Record())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu item created: %s (price=%.2f)", req.Name, req.Price)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", models.MenuItemFromRecord(rec))
}

// UpdateMenuItem -> edit a dish (admin only). Orders keep the prices they
// copied at order time; edits never rewrite them.
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	itemID := c.Param("item_id")

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updated, err := mc.Reg.MenuItems.UpdateOne(byID(itemID), storedb.NewRecord().
		Set("name", storedb.String(req.Name)).
		Set("description", storedb.String(req.Description)).
		Set("price", storedb.Number(req.Price)).
		Set("category", storedb.String(req.Category)).
		Set("ingredients", storedb.String(req.Ingredients)))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if updated == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	utils.InfoLogger.Printf("Menu item %s updated", itemID)
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", models.MenuItemFromRecord(updated))
}

// DeleteMenuItem -> remove a dish from the menu (admin only).
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	itemID := c.Param("item_id")

	rec, err := mc.Reg.MenuItems.DeleteOne(byID(itemID))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if rec == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	utils.InfoLogger.Printf("Menu item %s deleted", itemID)
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", nil)
}
