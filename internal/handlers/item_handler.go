package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stockroom/internal/authz"
	"stockroom/internal/models"
	"stockroom/internal/services"
)

type ItemHandler struct {
	items services.ItemService
}

func NewItemHandler(items services.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// @Summary      Create item
// @Tags         Items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        item  body      models.ItemRequest  true  "Item"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req models.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, ok := requesterID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized. No user information found."})
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	item := &models.Item{
		ItemName:    req.ItemName,
		Description: req.Description,
		Quantity:    quantity,
		UserID:      userID,
	}
	if err := h.items.CreateItem(item); err != nil {
		log.Printf("[items][create] db error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item created successfully.",
		"item":    item,
	})
}

// @Summary      List items
// @Tags         Items
// @Produce      json
// @Success      200  {array}  models.Item
// @Router       /api/items [get]
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.items.ListItems()
	if err != nil {
		log.Printf("[items][list] db error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error while retrieving items."})
		return
	}
	if items == nil {
		items = []*models.Item{}
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      List my items
// @Tags         Items
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Item
// @Router       /api/items/mine [get]
func (h *ItemHandler) Mine(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized. No user information found."})
		return
	}
	items, err := h.items.ListItemsByUser(userID)
	if err != nil {
		log.Printf("[items][mine] db error for userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching your items."})
		return
	}
	if items == nil {
		items = []*models.Item{}
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Get item
// @Tags         Items
// @Produce      json
// @Param        id   path      int  true  "Item ID"
// @Success      200  {object}  models.Item
// @Failure      404  {object}  map[string]string
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}
	item, err := h.items.GetItemByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found."})
			return
		}
		log.Printf("[items][get] db error for id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error while retrieving item."})
		return
	}
	c.JSON(http.StatusOK, item)
}

// @Summary      Update item
// @Tags         Items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Item ID"
// @Param        item  body      models.ItemRequest  true  "Item"
// @Success      200   {object}  map[string]interface{}
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}
	var req models.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// порядок: существует -> владелец -> мутация
	item, err := h.items.GetItemByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found."})
			return
		}
		log.Printf("[items][update] db error for id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error while updating item."})
		return
	}
	userID, ok := requesterID(c)
	if !authz.CanModify(item.UserID, userID, ok) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this item."})
		return
	}

	item.ItemName = req.ItemName
	item.Description = req.Description
	if req.Quantity != 0 {
		item.Quantity = req.Quantity
	}
	if err := h.items.UpdateItem(item); err != nil {
		log.Printf("[items][update] db error for id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error while updating item."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item updated successfully.",
		"item":    item,
	})
}

// @Summary      Delete item
// @Tags         Items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Item ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	item, err := h.items.GetItemByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found."})
			return
		}
		log.Printf("[items][delete] db error for id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error while deleting item."})
		return
	}
	userID, ok := requesterID(c)
	if !authz.CanModify(item.UserID, userID, ok) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this item."})
		return
	}

	if err := h.items.DeleteItem(id); err != nil {
		log.Printf("[items][delete] db error for id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error while deleting item."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
