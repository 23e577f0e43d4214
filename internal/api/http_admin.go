package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Stats returns marketplace account totals for the admin dashboard.
func (h *HTTPHandler) Stats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	count, err := h.repo.CountAccounts(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to count accounts")
		InternalError(c, "failed to load stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": count})
}
