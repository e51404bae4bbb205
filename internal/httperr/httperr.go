package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

var messages = map[string]string{
	"worker_not_found":        "Worker not found.",
	"job_not_found":           "Job not found.",
	"time_entry_not_found":    "Time entry not found.",
	"active_entry_not_found":  "Active time entry not found.",
	"material_not_found":      "Material not found.",
	"quote_not_found":         "Quote not found.",
	"photo_not_found":         "Photo not found.",
	"already_clocked_in":      "Worker already clocked in. Must clock out first.",
	"invalid_credentials":     "Invalid admin credentials.",
	"invalid_interval":        "Clock out must not be before clock in.",
	"invalid_date":            "Invalid date.",
	"invalid_state":           "Operation not allowed in the current state.",
	"photo_storage_disabled":  "Photo storage is not configured.",
	"unsupported_image":       "Unsupported image format.",
	"too_many_login_attempts": "Too many login attempts, try again later.",
	"client_name_required":    "Client name is required.",
	"invalid_estimated_hours": "Estimated hours must be greater than zero.",
	"invalid_hourly_rate":     "Hourly rate must not be negative.",
	"invalid_item_quantity":   "Item quantity must be greater than zero.",
	"invalid_item_price":      "Item unit price must not be negative.",
	"invalid_response":        "Response must be accepted or declined.",
	"quote_expired":           "Quote has expired.",
	"invalid_status":          "Invalid status.",
	"quote_number_taken":      "Quote number already exists.",
	"invalid_email":           "Invalid email address.",
	"invalid_request":         "Invalid request body.",
	"photo_too_large":         "Photo exceeds the maximum upload size.",
	"photo_required":          "A photo file is required.",
	"unauthorized":            "Authentication required.",
}

func message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return code
}

// Handle writes err using the status that matches its kind. Errors that are
// not business errors become a 500 and are logged.
func Handle(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		Internal(c, "internal_error", "Internal server error.")
		return
	}

	switch be.Kind {
	case KindNotFound:
		NotFound(c, be.Code, message(be.Code))
	case KindConflict:
		Conflict(c, be.Code, message(be.Code))
	case KindUnauthorized:
		Unauthorized(c, be.Code, message(be.Code))
	default:
		BadRequest(c, be.Code, message(be.Code))
	}
}
