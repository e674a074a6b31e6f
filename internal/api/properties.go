package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"propertyhub/server/internal/database"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListProperties returns a page of properties in the requested city, newest
// first. The city filter is mandatory.
func (h *Handler) ListProperties(c *gin.Context) {
	city := strings.TrimSpace(c.Query("city"))
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city query parameter is required"})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil {
		pageSize = defaultPageSize
	}

	if page < 1 {
		page = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if pageSize < 1 {
		pageSize = 1
	}
	offset := (page - 1) * pageSize

	conn := database.FromContext(c.Request.Context())
	properties, err := conn.ListProperties(c.Request.Context(), city, pageSize, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"page":       page,
		"page_size":  pageSize,
	})
}

func (h *Handler) GetProperty(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}

	conn := database.FromContext(c.Request.Context())
	property, err := conn.GetProperty(c.Request.Context(), id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": property})
}

// CreateProperty inserts a property owned by the caller and returns the
// freshly fetched joined representation.
func (h *Handler) CreateProperty(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "X-User-Id header is required"})
		return
	}

	payload := map[string]json.RawMessage{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		payload = map[string]json.RawMessage{}
	}

	fields, errMsg := extractPropertyPayload(payload, false)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	conn := database.FromContext(c.Request.Context())
	id, err := conn.CreateProperty(c.Request.Context(), userID, fields)
	if err == database.ErrOwnerNotFound {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner user not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to create property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	property, err := conn.GetProperty(c.Request.Context(), id)
	if err != nil || property == nil {
		h.logger.WithError(err).Error("Failed to fetch created property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"property": property})
}

// UpdateProperty applies a partial update to a property owned by the caller.
func (h *Handler) UpdateProperty(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "X-User-Id header is required"})
		return
	}

	conn := database.FromContext(c.Request.Context())
	property, err := conn.GetProperty(c.Request.Context(), id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	if property.Owner.ID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only edit your own properties"})
		return
	}

	payload := map[string]json.RawMessage{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		payload = map[string]json.RawMessage{}
	}

	fields, errMsg := extractPropertyPayload(payload, true)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	if err := conn.UpdateProperty(c.Request.Context(), id, fields); err != nil {
		h.logger.WithError(err).Error("Failed to update property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	property, err = conn.GetProperty(c.Request.Context(), id)
	if err != nil || property == nil {
		h.logger.WithError(err).Error("Failed to fetch updated property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": property})
}

// DeleteProperty removes a property owned by the caller.
func (h *Handler) DeleteProperty(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "X-User-Id header is required"})
		return
	}

	conn := database.FromContext(c.Request.Context())
	property, err := conn.GetProperty(c.Request.Context(), id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	if property.Owner.ID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only delete your own properties"})
		return
	}

	if err := conn.DeleteProperty(c.Request.Context(), id); err != nil {
		h.logger.WithError(err).Error("Failed to delete property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "property deleted"})
}
