package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Azeezfasasi/lasu-mba-cloth/middleware"
	"github.com/Azeezfasasi/lasu-mba-cloth/services"
	"github.com/Azeezfasasi/lasu-mba-cloth/utils"
)

// ClothController exposes the cloth catalog
type ClothController struct {
	cloths *services.ClothService
}

func NewClothController(cloths *services.ClothService) *ClothController {
	return &ClothController{cloths: cloths}
}

// StockRequest is the body of PUT /api/cloth/stock
type StockRequest struct {
	Sizes []services.SizeUpdate `json:"sizes"`
}

// List handles GET /api/cloth. ?id= or ?name= return a single cloth,
// otherwise the filtered, paginated catalog is returned.
func (h *ClothController) List(c *gin.Context) {
	ctx := c.Request.Context()

	if id := c.Query("id"); id != "" {
		cloth, err := h.cloths.GetByID(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"cloth": cloth})
		return
	}
	if name := c.Query("name"); name != "" {
		cloth, err := h.cloths.GetByName(ctx, name)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"cloth": cloth})
		return
	}

	query := services.ClothQuery{
		Status: c.Query("status"),
		Search: c.Query("search"),
		SortBy: c.Query("sortBy"),
		Page:   utils.ParsePagination(c.Query("page"), c.Query("limit")),
	}
	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, utils.NewValidationError("featured must be true or false"))
			return
		}
		query.Featured = &featured
	}

	page, err := h.cloths.List(ctx, query)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"cloths":     page.Cloths,
		"pagination": page.Pagination,
	})
}

// Featured handles GET /api/cloth/featured
func (h *ClothController) Featured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	cloths, err := h.cloths.Featured(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"cloths": cloths})
}

// Create handles POST /api/cloth
func (h *ClothController) Create(c *gin.Context) {
	var input services.CreateClothInput
	if err := bindJSON(c, &input); err != nil {
		respondError(c, err)
		return
	}

	cloth, err := h.cloths.Create(c.Request.Context(), input, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{
		"message": "Cloth design created successfully",
		"cloth":   cloth,
	})
}

// Update handles PUT /api/cloth?id=
func (h *ClothController) Update(c *gin.Context) {
	id, ok := requireQueryID(c)
	if !ok {
		return
	}
	var patch services.ClothPatch
	if err := bindJSON(c, &patch); err != nil {
		respondError(c, err)
		return
	}

	cloth, err := h.cloths.Update(c.Request.Context(), id, patch, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"message": "Cloth updated successfully",
		"cloth":   cloth,
	})
}

// UpdateStock handles PUT /api/cloth/stock?id=
func (h *ClothController) UpdateStock(c *gin.Context) {
	id, ok := requireQueryID(c)
	if !ok {
		return
	}
	var req StockRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	cloth, err := h.cloths.UpdateStock(c.Request.Context(), id, req.Sizes)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"message": "Cloth stock updated successfully",
		"cloth":   cloth,
	})
}

// Delete handles DELETE /api/cloth?id=
func (h *ClothController) Delete(c *gin.Context) {
	id, ok := requireQueryID(c)
	if !ok {
		return
	}
	if err := h.cloths.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Cloth deleted successfully"})
}

func requireQueryID(c *gin.Context) (string, bool) {
	id := c.Query("id")
	if id == "" {
		respondError(c, utils.NewValidationError("Cloth ID is required"))
		return "", false
	}
	return id, true
}

// actorID is the signed-in staff user's id, when the route is guarded
func actorID(c *gin.Context) *uuid.UUID {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil
	}
	id := user.ID
	return &id
}
