package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/errors"
)

// fail records err on the context for the error and logging middleware, then
// writes the mapped response. Non-AppError values map to a plain 500.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	if appErr, ok := err.(*errors.AppError); ok {
		c.AbortWithStatusJSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
