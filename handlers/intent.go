package handlers

import (
	"net/http"

	"bobbystable/models"
	"bobbystable/services/conversation"
	"bobbystable/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConversationHandler bridges the voice platform's tool invocations to the
// conversation engine: one POST per dialogue turn.
type ConversationHandler struct {
	Svc    conversation.ConversationService
	Hub    *EventHub
	Logger *zap.Logger
}

func NewConversationHandler(svc conversation.ConversationService, hub *EventHub, logger *zap.Logger) *ConversationHandler {
	return &ConversationHandler{Svc: svc, Hub: hub, Logger: logger}
}

// HandleTurnHandler processes one intent. A missing sessionId starts a new
// call session.
func (h *ConversationHandler) HandleTurnHandler(c *gin.Context) {
	var input struct {
		SessionID string            `json:"sessionId"`
		Intent    string            `json:"intent" binding:"required"`
		Args      models.IntentArgs `json:"args"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	result, err := h.Svc.HandleIntent(c.Request.Context(), sessionID, models.Intent(input.Intent), input.Args)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to process turn", err.Error())
		return
	}

	if h.Hub != nil && len(result.Events) > 0 {
		h.Hub.Publish(result.Events...)
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
		"response":  result.Response,
		"context":   result.NextContext,
		"step":      result.NextStep,
		"events":    result.Events,
	})
}
