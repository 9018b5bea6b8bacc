// internal/server/render.go
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kettleops/bulkrest/internal/bulk"
	"github.com/kettleops/bulkrest/internal/utils"
	"go.uber.org/zap"
)

// renderResult writes a coordinator result: the plain success payload
// with the operation's status, or the per-position multi-status array.
func renderResult(c *gin.Context, result *bulk.Result, successStatus int) {
	if result.MultiStatus {
		c.JSON(http.StatusMultiStatus, result.Statuses)
		return
	}
	c.JSON(successStatus, result.Records)
}

// renderFatal maps a whole-request failure to its HTTP shape: a single
// error-detail object, never a multi-status array. The scope-guard
// violation intentionally carries no body.
func renderFatal(c *gin.Context, err error) {
	var fatal *bulk.FatalError
	if errors.As(err, &fatal) {
		if fatal.Kind == bulk.KindDestructiveScope {
			c.Status(http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusBadRequest, fatal.Detail)
		return
	}

	utils.Logger.Error("Request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// resultCounts derives webhook summary counts from a result.
func resultCounts(result *bulk.Result) (total, succeeded, failed int) {
	if !result.MultiStatus {
		return len(result.Records), len(result.Records), 0
	}
	total = len(result.Statuses)
	for _, status := range result.Statuses {
		if status.Successful {
			succeeded++
		}
	}
	return total, succeeded, total - succeeded
}
