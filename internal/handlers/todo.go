package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/database"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/models"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/errors"
)

// todoListFor fetches the pair's shared list, creating it lazily. The pair
// is normalized so both users resolve to the same row.
func todoListFor(a, b string) (models.TodoList, error) {
	lo, hi := models.OrderPair(a, b)
	list := models.TodoList{UserAID: lo, UserBID: hi}
	err := database.DB.Where(models.TodoList{UserAID: lo, UserBID: hi}).
		FirstOrCreate(&list).Error
	return list, err
}

// GetTodoList handles GET /todo/:partnerId
func GetTodoList(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	partnerID := c.Param("partnerId")

	if !areCompanions(userID, partnerID) {
		fail(c, errors.Forbidden("Shared todo lists are for companions only"))
		return
	}

	list, err := todoListFor(userID, partnerID)
	if err != nil {
		fail(c, errors.Internal("Failed to load todo list"))
		return
	}

	var items []models.TodoItem
	if err := database.DB.Where("list_id = ?", list.ID).
		Order("created_at asc").Find(&items).Error; err != nil {
		fail(c, errors.Internal("Failed to load todo items"))
		return
	}
	list.Items = items

	c.JSON(http.StatusOK, gin.H{"list": list})
}

type addTodoInput struct {
	Text string `json:"text" binding:"required"`
}

// AddTodoItem handles POST /todo/:partnerId/items
func AddTodoItem(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	partnerID := c.Param("partnerId")

	if !areCompanions(userID, partnerID) {
		fail(c, errors.Forbidden("Shared todo lists are for companions only"))
		return
	}

	var input addTodoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, errors.BadRequest("Item text required"))
		return
	}

	list, err := todoListFor(userID, partnerID)
	if err != nil {
		fail(c, errors.Internal("Failed to load todo list"))
		return
	}

	item := models.TodoItem{
		ListID:  list.ID,
		Text:    input.Text,
		AddedBy: userID,
	}
	if err := database.DB.Create(&item).Error; err != nil {
		fail(c, errors.Internal("Failed to add item"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// ToggleTodoItem handles POST /todo/:partnerId/items/:itemId/toggle
func ToggleTodoItem(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	partnerID := c.Param("partnerId")
	itemID := c.Param("itemId")

	if !areCompanions(userID, partnerID) {
		fail(c, errors.Forbidden("Shared todo lists are for companions only"))
		return
	}

	list, err := todoListFor(userID, partnerID)
	if err != nil {
		fail(c, errors.Internal("Failed to load todo list"))
		return
	}

	var item models.TodoItem
	if err := database.DB.Where("id = ? AND list_id = ?", itemID, list.ID).First(&item).Error; err != nil {
		fail(c, errors.NotFound("Item not found"))
		return
	}

	// Update writes the toggled value back into item.Done.
	if err := database.DB.Model(&item).Update("done", !item.Done).Error; err != nil {
		fail(c, errors.Internal("Failed to update item"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteTodoItem handles DELETE /todo/:partnerId/items/:itemId
func DeleteTodoItem(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	partnerID := c.Param("partnerId")
	itemID := c.Param("itemId")

	if !areCompanions(userID, partnerID) {
		fail(c, errors.Forbidden("Shared todo lists are for companions only"))
		return
	}

	list, err := todoListFor(userID, partnerID)
	if err != nil {
		fail(c, errors.Internal("Failed to load todo list"))
		return
	}

	result := database.DB.Where("id = ? AND list_id = ?", itemID, list.ID).Delete(&models.TodoItem{})
	if result.RowsAffected == 0 {
		fail(c, errors.NotFound("Item not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}
