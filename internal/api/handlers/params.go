package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sportsevents/sports-events-api/internal/repository"
)

// pathID parses a positive integer id from a path segment
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: fmt.Sprintf("%s must be a positive integer", name),
			Code:    "INVALID_REQUEST",
		})
		return 0, false
	}
	return uint(id), true
}

// pageRequest builds a clamped page request from the standard query
// parameters: page, size, sortBy, sortDir
func pageRequest(c *gin.Context) repository.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "12"))
	return repository.NewPageRequest(page, size, c.Query("sortBy"), c.Query("sortDir"))
}
