package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var (
	errNotAuthorized = errors.New("user is not authorized")
	errInvalidPostID = errors.New("invalid post ID")
)

// bindForm binds and validates a form submission. A validation failure
// re-renders the form: field-level messages under a success status.
func bindForm(c *gin.Context, input interface{}) bool {
	err := c.ShouldBind(input)
	if err == nil {
		return true
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		c.JSON(http.StatusOK, dto.NewFormErrorResponse(fieldErrors(vErrs)))
		return false
	}

	c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
	return false
}

func fieldErrors(vErrs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(vErrs))
	for _, fe := range vErrs {
		fields[strings.ToLower(fe.Field())] = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}

	return fields
}
