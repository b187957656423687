package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio/internal/api/dto/common"
	"github.com/osa911/portfolio/internal/api/dto/v1/contact"
	"github.com/osa911/portfolio/internal/api/middleware"
	"github.com/osa911/portfolio/internal/api/sanitization"
	"github.com/osa911/portfolio/internal/api/validation"
	"github.com/osa911/portfolio/internal/fanout"
	"github.com/osa911/portfolio/internal/logging"
	"github.com/osa911/portfolio/internal/models"
	"github.com/osa911/portfolio/internal/service"
	"github.com/osa911/portfolio/internal/utils"
)

var errMalformedBody = errors.New("malformed JSON body")

// ContactDeliverer hands a sanitized submission to its sinks.
type ContactDeliverer interface {
	Deliver(ctx context.Context, contact *models.Contact) (bool, fanout.Results)
}

type ContactHandler struct {
	validator *validation.Validator
	captcha   service.CaptchaVerifier
	contacts  ContactDeliverer
	logger    *logging.Logger
}

// NewContactHandler creates the contact endpoint handler. A nil captcha
// verifier disables the CAPTCHA step.
func NewContactHandler(validator *validation.Validator, captcha service.CaptchaVerifier, contacts ContactDeliverer, logger *logging.Logger) *ContactHandler {
	return &ContactHandler{
		validator: validator,
		captcha:   captcha,
		contacts:  contacts,
		logger:    logger,
	}
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	raw, err := middleware.RawBody(c)
	if err != nil {
		utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError, common.MessageInternalError)
		return
	}

	trimmed := bytes.TrimSpace(raw)
	if !json.Valid(trimmed) {
		utils.HandleAPIError(c, h.logger, errMalformedBody, http.StatusInternalServerError, common.MessageInternalError)
		return
	}

	var req contact.ContactRequest
	switch trimmed[0] {
	case '{':
		if err := json.Unmarshal(trimmed, &req); err != nil {
			utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError, common.MessageInternalError)
			return
		}
	case '[':
		// An array carries no named fields; it validates as an empty form.
	default:
		utils.HandleFieldErrors(c, contact.MessageInvalidFormat, validation.FieldErrors{
			validation.FieldDescription: contact.MessageInvalidFormat,
		})
		return
	}

	fieldErrors, err := h.validator.Struct(&req)
	if err != nil {
		utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError, common.MessageInternalError)
		return
	}
	if len(fieldErrors) > 0 {
		utils.HandleFieldErrors(c, contact.MessageValidationFailed, fieldErrors)
		return
	}

	clientIP := utils.GetRealIP(c)

	if h.captcha != nil {
		if err := h.captcha.Verify(c.Request.Context(), req.TurnstileToken.String(), clientIP); err != nil {
			message := service.CaptchaMessage(err)
			h.logger.Warn("CAPTCHA verification failed for %s: %v", clientIP, err)
			utils.HandleFieldErrors(c, message, validation.FieldErrors{
				validation.FieldTurnstileToken: message,
			})
			return
		}
	}

	submission := &models.Contact{
		Name:        sanitization.SanitizeName(req.Name.String()),
		Email:       sanitization.SanitizeEmail(req.Email.String()),
		Phone:       sanitization.SanitizePhone(req.Phone.String()),
		Description: sanitization.SanitizeDescription(req.Description.String()),
		RemoteIP:    clientIP,
	}

	// Sinks finish even if the client disconnects.
	delivered, _ := h.contacts.Deliver(context.WithoutCancel(c.Request.Context()), submission)

	if delivered {
		utils.HandleMessage(c, contact.MessageSent)
		return
	}
	utils.HandleMessage(c, contact.MessageReceived)
}

// MethodNotAllowed handles every non-POST request to /api/contact
func (h *ContactHandler) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, common.NewErrorResponse(contact.MessagePostOnly, nil))
}
