package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"propertyhub/server/internal/database"
)

// identityHeader carries the caller's claimed user id. Dev-only trust
// boundary: the value is accepted without any cryptographic proof.
const identityHeader = "X-User-Id"

// RequestConnection attaches a lazily opened database connection to every
// request and releases it unconditionally at teardown.
func RequestConnection(db *database.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn := db.NewConn()
		defer conn.Release()

		c.Request = c.Request.WithContext(database.WithConn(c.Request.Context(), conn))
		c.Next()
	}
}

// currentUserID reads the caller identity from the request header. A missing
// header and a value that is not a positive integer both collapse to "no
// identity".
func currentUserID(c *gin.Context) (int64, bool) {
	raw := c.GetHeader(identityHeader)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
