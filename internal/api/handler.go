package api

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	logger *logrus.Logger
}

func NewHandler(logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{logger: logger}
}

func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "property-management",
		"status":  "ok",
	})
}

// Recovery translates an escaped panic into a generic 500 body without
// leaking internal detail.
func (h *Handler) Recovery(c *gin.Context, recovered interface{}) {
	h.logger.WithField("panic", recovered).Error("Unhandled fault in request handler")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
