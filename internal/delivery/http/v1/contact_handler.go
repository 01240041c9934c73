package v1

import (
	"errors"
	"net/http"

	"go-contact-relay/internal/delivery/http/response"
	"go-contact-relay/internal/domain"
	"go-contact-relay/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const (
	msgSent            = "Email sent successfully"
	msgInvalidBody     = "Invalid request body"
	msgConfiguration   = "Server configuration error. Please contact the administrator."
	msgDeliveryFailure = "Failed to send email. Please try again later."
)

type ContactHandler struct {
	contactUC     domain.ContactUsecase
	exposeDetails bool
}

// NewContactHandler registers the contact routes (public, no auth required).
// Extra handlers, such as the rate limiter, run before the submission.
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, exposeDetails bool, extra ...gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC:     contactUC,
		exposeDetails: exposeDetails,
	}

	public.POST("/contact", append(extra, handler.SubmitContact)...)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validates an inquiry, emails it to the business and acknowledges the submitter. Public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      405      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	// Decoded loosely so wrong types reach the validator instead of failing the bind
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.Error(apperror.New(http.StatusBadRequest, msgInvalidBody, err))
		return
	}

	result, err := h.contactUC.SubmitContact(c.Request.Context(), payload)
	if err != nil {
		c.Error(h.toAppError(err))
		return
	}

	response.Success(c, http.StatusOK, msgSent, result.CustomerEmail)
}

func (h *ContactHandler) toAppError(err error) *apperror.AppError {
	var ce *domain.ContactError
	if !errors.As(err, &ce) {
		return apperror.Internal(err)
	}

	switch ce.Kind {
	case domain.FailureValidation:
		return apperror.Validation(ce.Message, ce.Fields, nil)
	case domain.FailureConfiguration:
		// Credential names and values never reach the caller
		return apperror.New(http.StatusInternalServerError, msgConfiguration, err)
	default:
		appErr := apperror.New(http.StatusInternalServerError, msgDeliveryFailure, err)
		if h.exposeDetails && ce.Err != nil {
			appErr.WithDetails(ce.Err.Error())
		}
		return appErr
	}
}
