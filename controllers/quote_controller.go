package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Azeezfasasi/lasu-mba-cloth/middleware"
	"github.com/Azeezfasasi/lasu-mba-cloth/services"
)

// QuoteController exposes the quote request workflow
type QuoteController struct {
	quotes *services.QuoteService
}

func NewQuoteController(quotes *services.QuoteService) *QuoteController {
	return &QuoteController{quotes: quotes}
}

// StatusRequest is the body of PUT /api/quote/:id/status
type StatusRequest struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

// ReplyRequest is the body of POST /api/quote/:id/reply.
// SenderID is only read when no staff session is present.
type ReplyRequest struct {
	Message  string `json:"message"`
	SenderID string `json:"senderId"`
}

// AssignRequest is the body of PUT /api/quote/:id/assign
type AssignRequest struct {
	AssignedTo string `json:"assignedTo"`
}

// Create handles POST /api/quote - public quote submission
func (h *QuoteController) Create(c *gin.Context) {
	var input services.CreateQuoteInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}

	quote, err := h.quotes.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{
		"message": "Quote request submitted successfully",
		"quote":   quote,
	})
}

// List handles GET /api/quote
func (h *QuoteController) List(c *gin.Context) {
	quotes, err := h.quotes.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"quotes": quotes})
}

// Get handles GET /api/quote/:id
func (h *QuoteController) Get(c *gin.Context) {
	quote, err := h.quotes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"quote": quote})
}

// Update handles PUT /api/quote/:id
func (h *QuoteController) Update(c *gin.Context) {
	var patch services.QuotePatch
	if err := bindJSON(c, &patch); err != nil {
		respondError(c, err)
		return
	}

	quote, err := h.quotes.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"message": "Quote updated successfully",
		"quote":   quote,
	})
}

// ChangeStatus handles PUT /api/quote/:id/status
func (h *QuoteController) ChangeStatus(c *gin.Context) {
	var req StatusRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	quote, err := h.quotes.ChangeStatus(c.Request.Context(), c.Param("id"), req.Status, req.Details)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"message": "Quote status updated successfully",
		"quote":   quote,
	})
}

// Reply handles POST /api/quote/:id/reply
func (h *QuoteController) Reply(c *gin.Context) {
	var req ReplyRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	senderID := req.SenderID
	if user, ok := middleware.CurrentUser(c); ok {
		senderID = user.ID.String()
	}

	quote, err := h.quotes.Reply(c.Request.Context(), c.Param("id"), senderID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"message": "Reply sent successfully",
		"quote":   quote,
	})
}

// Assign handles PUT /api/quote/:id/assign
func (h *QuoteController) Assign(c *gin.Context) {
	var req AssignRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	quote, err := h.quotes.Assign(c.Request.Context(), c.Param("id"), req.AssignedTo)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"message": "Quote assigned successfully",
		"quote":   quote,
	})
}

// Delete handles DELETE /api/quote/:id
func (h *QuoteController) Delete(c *gin.Context) {
	if err := h.quotes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Quote deleted successfully"})
}
