package middleware

import (
	"net/http"

	"github.com/osa911/landing/internal/api/constants"
	"github.com/osa911/landing/internal/api/dto/common"
	"github.com/osa911/landing/internal/api/dto/v1/contact"
	"github.com/osa911/landing/internal/api/validation"
	"github.com/osa911/landing/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	msgInvalidBody = "Solicitud inválida"
	msgTooLong     = "Algún campo supera la longitud máxima"
)

// ValidationMiddleware handles request validation
type ValidationMiddleware struct {
	validate *validator.Validate
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validate: validation.New(),
	}
}

// ValidateContactRequest binds and checks a contact submission before any
// external call is made. A missing captcha token is reported first.
func (m *ValidationMiddleware) ValidateContactRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contact.ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortInvalid(c, msgInvalidBody)
			return
		}

		if err := m.validate.Struct(&req); err != nil {
			errs := validation.FormatValidationError(err)
			switch {
			case validation.HasField(errs, "captchaToken"):
				abortInvalid(c, service.MsgCaptchaRequired)
			case validation.HasTag(errs, "notblank"):
				abortInvalid(c, service.MsgMissingFields)
			case validation.HasTag(errs, "emailshape"):
				abortInvalid(c, service.MsgInvalidEmail)
			default:
				abortInvalid(c, msgTooLong)
			}
			return
		}

		c.Set(constants.ContextKeyContact, &req)
		c.Next()
	}
}

func abortInvalid(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, message, ""))
}
