package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Azeezfasasi/lasu-mba-cloth/middleware"
	"github.com/Azeezfasasi/lasu-mba-cloth/services"
	"github.com/Azeezfasasi/lasu-mba-cloth/utils"
)

const (
	actionUpdateStatus = "updateStatus"
	actionAddNote      = "addNote"
)

// VolunteerController exposes the volunteer application workflow
type VolunteerController struct {
	volunteers *services.VolunteerService
}

func NewVolunteerController(volunteers *services.VolunteerService) *VolunteerController {
	return &VolunteerController{volunteers: volunteers}
}

// VolunteerActionRequest is the body of PUT /api/volunteer/:id
type VolunteerActionRequest struct {
	Action  string `json:"action"`
	Status  string `json:"status"`
	Message string `json:"message"`
	AdminID string `json:"adminId"`
}

// Create handles POST /api/volunteer - public application form
func (h *VolunteerController) Create(c *gin.Context) {
	var input services.CreateVolunteerInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}

	volunteer, err := h.volunteers.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{
		"message":   "Volunteer application submitted successfully",
		"volunteer": volunteer,
	})
}

// List handles GET /api/volunteer?status=
func (h *VolunteerController) List(c *gin.Context) {
	volunteers, err := h.volunteers.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"volunteers": volunteers,
		"count":      len(volunteers),
	})
}

// Get handles GET /api/volunteer/:id; the id "stats" returns status counts
func (h *VolunteerController) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if id == "stats" {
		stats, err := h.volunteers.Stats(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"stats": stats})
		return
	}

	volunteer, err := h.volunteers.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"volunteer": volunteer})
}

// Update handles PUT /api/volunteer/:id, dispatching on the action field
func (h *VolunteerController) Update(c *gin.Context) {
	var req VolunteerActionRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")

	switch req.Action {
	case actionUpdateStatus:
		volunteer, err := h.volunteers.ChangeStatus(ctx, id, req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{
			"message":   "Volunteer status updated successfully",
			"volunteer": volunteer,
		})

	case actionAddNote:
		creatorID := req.AdminID
		if user, ok := middleware.CurrentUser(c); ok {
			creatorID = user.ID.String()
		}
		volunteer, err := h.volunteers.AddNote(ctx, id, req.Message, creatorID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{
			"message":   "Note added successfully",
			"volunteer": volunteer,
		})

	default:
		respondError(c, utils.NewValidationError("Invalid action"))
	}
}

// Delete handles DELETE /api/volunteer/:id
func (h *VolunteerController) Delete(c *gin.Context) {
	if err := h.volunteers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Volunteer application deleted successfully"})
}
