package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"propertyhub/server/internal/database"
)

// validDate reports whether s is a real calendar date in YYYY-MM-DD form.
func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

type createUserRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = createUserRequest{}
	}

	if req.FirstName == "" || req.LastName == "" || req.DateOfBirth == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "first_name, last_name and date_of_birth are required"})
		return
	}

	if !validDate(req.DateOfBirth) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_of_birth must be YYYY-MM-DD"})
		return
	}

	conn := database.FromContext(c.Request.Context())
	id, err := conn.CreateUser(c.Request.Context(), req.FirstName, req.LastName, req.DateOfBirth)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) ListUsers(c *gin.Context) {
	conn := database.FromContext(c.Request.Context())
	users, err := conn.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	conn := database.FromContext(c.Request.Context())
	user, err := conn.GetUser(c.Request.Context(), id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser applies a partial update. Only the user itself may change its
// own row, asserted through the identity header.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "X-User-Id header is required"})
		return
	}
	if userID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: you can only update your own user"})
		return
	}

	conn := database.FromContext(c.Request.Context())
	user, err := conn.GetUser(c.Request.Context(), id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	payload := map[string]json.RawMessage{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		payload = map[string]json.RawMessage{}
	}

	fields := map[string]interface{}{}
	for _, field := range []string{"first_name", "last_name"} {
		raw, ok := payload[field]
		if !ok {
			continue
		}
		var value *string
		if err := json.Unmarshal(raw, &value); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bad request"})
			return
		}
		fields[field] = value
	}

	if raw, ok := payload["date_of_birth"]; ok {
		var value *string
		if err := json.Unmarshal(raw, &value); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_of_birth must be YYYY-MM-DD"})
			return
		}
		if value != nil && !validDate(*value) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_of_birth must be YYYY-MM-DD"})
			return
		}
		fields["date_of_birth"] = value
	}

	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no supported fields to update"})
		return
	}

	if err := conn.UpdateUser(c.Request.Context(), id, fields); err != nil {
		h.logger.WithError(err).Error("Failed to update user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}
