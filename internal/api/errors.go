package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/mmynk/hospital-billing/internal/auth"
	"github.com/mmynk/hospital-billing/internal/service"
	"github.com/mmynk/hospital-billing/internal/storage"
)

// Error codes carried in the error envelope.
const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeDatabaseError = "DATABASE_ERROR"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError maps err to a status code and error envelope.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		abort(c, http.StatusBadRequest, CodeInvalidInput, verr.Error())
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		abort(c, http.StatusUnauthorized, CodeUnauthorized, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		abort(c, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, storage.ErrConflict):
		abort(c, http.StatusConflict, CodeConflict, err.Error())
	case errors.Is(err, storage.ErrNotConnected):
		abort(c, http.StatusInternalServerError, CodeDatabaseError, "database is not connected")
	default:
		abort(c, http.StatusInternalServerError, CodeDatabaseError, "database operation failed")
	}
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Error: code, Message: message})
}

// invalidBody reports a request body that is not valid JSON for the endpoint.
func invalidBody(c *gin.Context, err error) {
	_ = c.Error(err)
	abort(c, http.StatusBadRequest, CodeInvalidInput, "request body is missing or malformed")
}

// bindJSON decodes the request body into obj and runs gin's struct validation.
// Numbers decode as json.Number so prices and totals keep their literal.
func bindJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil {
		return errors.New("missing request body")
	}
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(obj); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return binding.Validator.ValidateStruct(obj)
}
