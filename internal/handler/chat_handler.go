package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"campushub/internal/services"
	"campushub/internal/transport/httpdto"
	campus_errors "campushub/pkg/errors"
)

type ChatHandler struct {
	service *services.ChatService
}

func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) Send(c *gin.Context) {
	var req httpdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	receiverID, err := parseOptionalUUID(req.ReceiverID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid receiver_id", "INVALID_REQUEST"))
		return
	}
	groupID, err := parseOptionalUUID(req.GroupID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid group_id", "INVALID_REQUEST"))
		return
	}
	replyTo, err := parseOptionalUUID(req.ReplyToMessageID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid reply_to_message_id", "INVALID_REQUEST"))
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), services.SendMessageInput{
		SenderID:         userID,
		ReceiverID:       receiverID,
		GroupID:          groupID,
		Content:          req.Content,
		FileURL:          req.FileURL,
		ImageURL:         req.ImageURL,
		AudioURL:         req.AudioURL,
		PollOptions:      req.PollOptions,
		ReplyToMessageID: replyTo,
	})
	if err != nil {
		writeChatError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(msg))
}

func (h *ChatHandler) List(c *gin.Context) {
	key, err := services.ResolveConversationKey(c.Query("user_id"), c.Query("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("supply exactly one of user_id or group_id", "INVALID_REQUEST"))
		return
	}

	items, err := h.service.ListMessages(c.Request.Context(), key)
	if err != nil {
		writeChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"messages": items}))
}

func (h *ChatHandler) React(c *gin.Context) {
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id", "INVALID_REQUEST"))
		return
	}

	var req httpdto.ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	msg, err := h.service.React(c.Request.Context(), messageID, userID, req.Reaction)
	if err != nil {
		writeChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(msg))
}

func (h *ChatHandler) Vote(c *gin.Context) {
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id", "INVALID_REQUEST"))
		return
	}

	var req httpdto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	msg, err := h.service.Vote(c.Request.Context(), messageID, userID, req.SelectedOption)
	if err != nil {
		writeChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(msg))
}

func writeChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, campus_errors.ErrNotFound):
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("message not found", "NOT_FOUND"))
	case errors.Is(err, campus_errors.ErrNotAPoll):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("this message is not a poll", "NOT_A_POLL"))
	case errors.Is(err, campus_errors.ErrAlreadyVoted):
		c.JSON(http.StatusConflict, httpdto.NewErrorResponse("user has already voted", "ALREADY_VOTED"))
	case errors.Is(err, campus_errors.ErrInvalidOption):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid poll option", "INVALID_OPTION"))
	case errors.Is(err, campus_errors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid input", "INVALID_REQUEST"))
	case errors.Is(err, campus_errors.ErrStorage):
		c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse("storage unavailable", "STORAGE_ERROR"))
	default:
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(err.Error(), "REQUEST_FAILED"))
	}
}

func parseOptionalUUID(value string) (uuid.NullUUID, error) {
	if value == "" {
		return uuid.NullUUID{}, nil
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		return uuid.NullUUID{}, err
	}
	return uuid.NullUUID{UUID: parsed, Valid: true}, nil
}
