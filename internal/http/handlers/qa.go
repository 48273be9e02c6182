package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jinwoohan/insuragraph/internal/http/response"
	"github.com/jinwoohan/insuragraph/internal/modules/qa"
	"github.com/jinwoohan/insuragraph/internal/session"
)

type QAHandler struct {
	svc              *qa.Service
	sessions         *session.Store
	defaultProductID string
}

func NewQAHandler(svc *qa.Service, sessions *session.Store, defaultProductID string) *QAHandler {
	return &QAHandler{svc: svc, sessions: sessions, defaultProductID: defaultProductID}
}

type createSessionReq struct {
	ProductID string `json:"product_id"`
}

// POST /api/sessions
func (h *QAHandler) CreateSession(c *gin.Context) {
	var req createSessionReq
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		productID = h.defaultProductID
	}
	if productID == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_product_id", errors.New("product_id required"))
		return
	}
	sess := h.sessions.Create(productID)
	response.RespondOK(c, gin.H{"session": sess})
}

// GET /api/sessions/:id
func (h *QAHandler) GetSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	sess, err := h.sessions.Get(sessionID)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "session_not_found", err)
		return
	}
	response.RespondOK(c, gin.H{"session": sess})
}

type askReq struct {
	Question string `json:"question"`
}

// POST /api/sessions/:id/ask
//
// A pipeline fault is reported in the turn's fault field, with the HTTP
// status distinguishing the failure class; it is never folded into answer
// text.
func (h *QAHandler) Ask(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	sess, err := h.sessions.Get(sessionID)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "session_not_found", err)
		return
	}

	var req askReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_question", errors.New("question required"))
		return
	}

	turn, askErr := h.svc.Ask(c.Request.Context(), sess.ProductID, question)
	if err := h.sessions.Append(sessionID, turn); err != nil {
		response.RespondError(c, http.StatusInternalServerError, "session_append_failed", err)
		return
	}

	if askErr != nil {
		c.JSON(statusForFault(askErr), gin.H{"turn": turn})
		return
	}
	response.RespondOK(c, gin.H{"turn": turn})
}

func statusForFault(err error) int {
	var rejected *qa.WriteRejectedError
	if errors.As(err, &rejected) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}
