package handlers

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/dto"
	"github.com/vidtube/vidtube_backend/internal/middleware"
)

// respondSuccess writes the uniform success envelope.
func respondSuccess(c *gin.Context, statusCode int, data any, message string) {
	c.JSON(statusCode, dto.NewAPIResponse(statusCode, data, message))
}

// respondError maps an error to its HTTP status and writes the uniform error
// envelope. Unexpected errors are logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	status := apperrors.StatusCode(err)

	resp := dto.APIErrorResponse{
		StatusCode: status,
		Message:    err.Error(),
		Success:    false,
		Errors:     []string{},
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Errors != nil {
		resp.Errors = appErr.Errors
	}

	if status >= 500 {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Request failed", slog.String("error", err.Error()))
		resp.Message = "Internal server error"
	}

	c.JSON(status, resp)
}

// respondBindingError translates request binding failures into the error
// envelope, expanding field-level validation failures into the errors list.
func respondBindingError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fieldErrors := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			switch fe.Tag() {
			case "required":
				fieldErrors = append(fieldErrors, fe.Field()+" is required")
			case "email":
				fieldErrors = append(fieldErrors, fe.Field()+" must be a valid email address")
			default:
				fieldErrors = append(fieldErrors, fe.Field()+" is invalid")
			}
		}
		respondError(c, &apperrors.AppError{
			Code:    400,
			Message: "Invalid request payload",
			Errors:  fieldErrors,
		})
		return
	}
	respondError(c, apperrors.NewBadRequestError("Invalid request payload: "+err.Error()))
}
