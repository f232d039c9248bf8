package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"dialog/internal/common"
	"dialog/internal/server/models"
)

// One explicit response type per endpoint; no loosely-typed payloads.

type statusResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	ID          string    `json:"id"`
	LoginHandle string    `json:"loginHandle"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

type directoryEntryResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type messageResponse struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"senderId"`
	RecipientID string    `json:"recipientId"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}

type conversationResponse struct {
	ID              string    `json:"id"`
	DisplayName     string    `json:"displayName"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageTime time.Time `json:"lastMessageTime"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID,
		LoginHandle: u.LoginHandle,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func newMessageResponse(m *models.Message) messageResponse {
	return messageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		CreatedAt:   m.CreatedAt,
	}
}

// writeError translates service errors into status codes at the request
// boundary. Unknown errors are logged and answered with a generic 500.
func (s *Server) writeError(c *gin.Context, err error) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, statusResponse{Message: ve.Reason})
	case errors.Is(err, common.ErrorConflict):
		c.JSON(http.StatusBadRequest, statusResponse{Message: "login handle already taken"})
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, statusResponse{Message: "authentication required"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, statusResponse{Message: "user not found"})
	default:
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err.Error())
		c.JSON(http.StatusInternalServerError, statusResponse{Message: "internal error"})
	}
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{Message: "dialog API"})
}

type registerRequest struct {
	LoginHandle string `json:"loginHandle"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, statusResponse{Message: "invalid request body"})
		return
	}

	user, err := s.auth.Register(c.Request.Context(), req.LoginHandle, req.DisplayName, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

type loginRequest struct {
	LoginHandle string `json:"loginHandle"`
	Password    string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, statusResponse{Message: "invalid request body"})
		return
	}

	token, expiresAt, _, err := s.auth.Login(c.Request.Context(), req.LoginHandle, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.setSessionCookie(c, token, int(time.Until(expiresAt).Seconds()))
	c.JSON(http.StatusOK, statusResponse{Message: "logged in"})
}

func (s *Server) handleLogout(c *gin.Context) {
	token, _ := c.Cookie(sessionCookieName)

	if err := s.auth.Logout(c.Request.Context(), token); err != nil {
		s.writeError(c, err)
		return
	}

	s.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, statusResponse{Message: "logged out"})
}

func (s *Server) handleMe(c *gin.Context) {
	user, err := s.auth.GetByID(c.Request.Context(), MustUserID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

func (s *Server) handleSearch(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, statusResponse{Message: "limit must be an integer"})
			return
		}
		limit = n
	}

	entries, err := s.directory.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]directoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, directoryEntryResponse{ID: e.ID, DisplayName: e.DisplayName})
	}
	c.JSON(http.StatusOK, out)
}

type sendMessageRequest struct {
	RecipientID string `json:"recipientId"`
	Content     string `json:"content"`
}

func (s *Server) handleSendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, statusResponse{Message: "invalid request body"})
		return
	}

	msg, err := s.messaging.Send(c.Request.Context(), MustUserID(c), req.RecipientID, req.Content)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newMessageResponse(msg))
}

func (s *Server) handleListConversations(c *gin.Context) {
	convs, err := s.messaging.ListConversations(c.Request.Context(), MustUserID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]conversationResponse, 0, len(convs))
	for _, conv := range convs {
		out = append(out, conversationResponse{
			ID:              conv.CounterpartID,
			DisplayName:     conv.CounterpartDisplayName,
			LastMessage:     conv.LastMessageContent,
			LastMessageTime: conv.LastMessageTime,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleHistory(c *gin.Context) {
	limit, offset := 0, 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, statusResponse{Message: "limit must be an integer"})
			return
		}
		limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, statusResponse{Message: "offset must be an integer"})
			return
		}
		offset = n
	}

	msgs, err := s.messaging.History(c.Request.Context(), MustUserID(c), c.Param("counterpartId"), limit, offset)
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]messageResponse, 0, len(msgs))
	for i := range msgs {
		out = append(out, newMessageResponse(&msgs[i]))
	}
	c.JSON(http.StatusOK, out)
}
