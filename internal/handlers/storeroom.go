package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/database"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/models"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/errors"
)

// storeroomFor fetches the pair's shared storeroom, creating it lazily,
// same singleton-per-unordered-pair scheme as the todo list.
func storeroomFor(a, b string) (models.Storeroom, error) {
	lo, hi := models.OrderPair(a, b)
	room := models.Storeroom{UserAID: lo, UserBID: hi}
	err := database.DB.Where(models.Storeroom{UserAID: lo, UserBID: hi}).
		FirstOrCreate(&room).Error
	return room, err
}

// GetStoreroom handles GET /storeroom/:partnerId
func GetStoreroom(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	partnerID := c.Param("partnerId")

	if !areCompanions(userID, partnerID) {
		fail(c, errors.Forbidden("Storerooms are for companions only"))
		return
	}

	room, err := storeroomFor(userID, partnerID)
	if err != nil {
		fail(c, errors.Internal("Failed to load storeroom"))
		return
	}

	var files []models.StoreroomFile
	if err := database.DB.Where("room_id = ?", room.ID).
		Order("created_at desc").Find(&files).Error; err != nil {
		fail(c, errors.Internal("Failed to load files"))
		return
	}
	room.Files = files

	c.JSON(http.StatusOK, gin.H{"storeroom": room})
}

type addFileInput struct {
	Name     string `json:"name" binding:"required"`
	URL      string `json:"url" binding:"required"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// AddStoreroomFile handles POST /storeroom/:partnerId/files. The file
// itself is already in object storage (see UploadFile); this records it.
func AddStoreroomFile(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	partnerID := c.Param("partnerId")

	if !areCompanions(userID, partnerID) {
		fail(c, errors.Forbidden("Storerooms are for companions only"))
		return
	}

	var input addFileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, errors.BadRequest("File name and url required"))
		return
	}

	room, err := storeroomFor(userID, partnerID)
	if err != nil {
		fail(c, errors.Internal("Failed to load storeroom"))
		return
	}

	file := models.StoreroomFile{
		RoomID:     room.ID,
		Name:       input.Name,
		URL:        input.URL,
		MimeType:   input.MimeType,
		Size:       input.Size,
		UploadedBy: userID,
	}
	if err := database.DB.Create(&file).Error; err != nil {
		fail(c, errors.Internal("Failed to save file"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"file": file})
}

// DeleteStoreroomFile handles DELETE /storeroom/:partnerId/files/:fileId.
// Only the uploader may remove a file.
func DeleteStoreroomFile(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	partnerID := c.Param("partnerId")
	fileID := c.Param("fileId")

	if !areCompanions(userID, partnerID) {
		fail(c, errors.Forbidden("Storerooms are for companions only"))
		return
	}

	room, err := storeroomFor(userID, partnerID)
	if err != nil {
		fail(c, errors.Internal("Failed to load storeroom"))
		return
	}

	var file models.StoreroomFile
	if err := database.DB.Where("id = ? AND room_id = ?", fileID, room.ID).First(&file).Error; err != nil {
		fail(c, errors.NotFound("File not found"))
		return
	}
	if file.UploadedBy != userID {
		fail(c, errors.Forbidden("You can only delete files you uploaded"))
		return
	}

	database.DB.Delete(&file)
	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}
