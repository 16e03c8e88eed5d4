package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/api/models"

	"github.com/gin-gonic/gin"
)

// parsePagination reads page/page_size query params with the shared defaults.
func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// parseIDParam parses a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// denyRequest answers 401 for anonymous callers and 403 for authenticated
// ones, mirroring the middleware gates for object-level checks.
func denyRequest(c *gin.Context, principal *models.User) {
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	} else {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
	c.Abort()
}
