package store

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard/internal/errors"
	"taskboard/internal/logging"
	"taskboard/internal/validation"
)

// envelope is the response shape of every endpoint
type envelope struct {
	Err    bool   `json:"err"`
	Result any    `json:"result"`
	Count  *int   `json:"count,omitempty"`
	Token  string `json:"token"`
}

func respond(c *gin.Context, status int, result any) {
	c.JSON(status, envelope{Result: result, Token: uuid.NewString()})
}

func respondList(c *gin.Context, result any, count int) {
	c.JSON(http.StatusOK, envelope{Result: result, Count: &count, Token: uuid.NewString()})
}

// respondError writes an error envelope whose result is a plain message
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := errors.GetUserMessage(err)

	var ve *validation.ValidationError
	switch {
	case stderrors.As(err, &ve):
		status = http.StatusBadRequest
		message = ve.GetUserFriendlyMessage()
	case errors.IsErrorType(err, errors.ErrorTypeNotFound):
		status = http.StatusNotFound
	case errors.IsErrorType(err, errors.ErrorTypeInvalidInput), errors.IsErrorType(err, errors.ErrorTypeDateParse):
		status = http.StatusBadRequest
	}

	if errors.ShouldLogError(err) && status == http.StatusInternalServerError {
		operation := "request"
		if appErr, ok := errors.AsAppError(err); ok {
			if op, found := appErr.GetContext("operation"); found {
				operation = fmt.Sprint(op)
			}
		}
		logging.Errorf("%s %s (%s): %v", c.Request.Method, c.Request.URL.Path, operation, err)
	}

	c.JSON(status, envelope{Err: true, Result: message, Token: uuid.NewString()})
}
