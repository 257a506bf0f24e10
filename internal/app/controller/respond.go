package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/ikkim/vibecommerce-backend/internal/errors"
	"github.com/ikkim/vibecommerce-backend/pkg/logger"
)

// respondError writes err as a JSON error response and logs it at a level
// matching the outcome: caller mistakes at warn, failures at error.
func respondError(c *gin.Context, log *logger.Logger, err error, operation string, fields map[string]interface{}) {
	info := apperrors.ParseAndRespond(c, err, operation)

	if fields == nil {
		fields = map[string]interface{}{}
	}
	fields["status"] = info.Status
	fields["code"] = info.Code

	if info.Status >= http.StatusInternalServerError {
		log.Error("Failed to "+operation, err, fields)
		return
	}
	fields["error"] = err.Error()
	log.Warn("Rejected request to "+operation, fields)
}
