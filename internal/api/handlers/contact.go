package handlers

import (
	"context"
	"net/http"

	"github.com/osa911/landing/internal/api/constants"
	"github.com/osa911/landing/internal/api/dto/common"
	"github.com/osa911/landing/internal/api/dto/v1/contact"
	"github.com/osa911/landing/internal/logging"
	"github.com/osa911/landing/internal/service"
	"github.com/osa911/landing/internal/utils"

	"github.com/gin-gonic/gin"
)

// ContactRelayer verifies and delivers a contact submission
type ContactRelayer interface {
	Relay(ctx context.Context, sub service.ContactSubmission) error
}

type ContactHandler struct {
	relay  ContactRelayer
	logger *logging.Logger
}

func NewContactHandler(relay ContactRelayer, logger *logging.Logger) *ContactHandler {
	return &ContactHandler{
		relay:  relay,
		logger: logger,
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	// Get contact data from context (set by validation middleware)
	contactData, exists := c.Get(constants.ContextKeyContact)
	if !exists {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, service.MsgInternal)
		return
	}

	req, ok := contactData.(*contact.ContactRequest)
	if !ok {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, service.MsgInternal)
		return
	}

	h.logger.Info("contact submission from %s (ua=%q, referrer=%q, request=%s)",
		utils.GetRealIP(c),
		c.Request.UserAgent(),
		c.Request.Referer(),
		c.GetString(constants.ContextKeyRequestID),
	)

	// A visitor closing the tab must not abort a send that is already under way
	ctx := context.WithoutCancel(c.Request.Context())

	err := h.relay.Relay(ctx, service.ContactSubmission{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Message:      req.Message,
		CaptchaToken: req.CaptchaToken,
	})
	if err != nil {
		utils.HandleRelayError(c, err)
		return
	}

	utils.HandleSuccess(c, service.MsgSuccess)
}
