package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Azeezfasasi/lasu-mba-cloth/services"
	"github.com/Azeezfasasi/lasu-mba-cloth/utils"
)

// UploadController moves cloth images in and out of the media host
type UploadController struct {
	images services.ImageService
}

func NewUploadController(images services.ImageService) *UploadController {
	return &UploadController{images: images}
}

// SignRequest is the body of POST /api/upload/sign
type SignRequest struct {
	ContentType string `json:"contentType"`
}

// Upload handles POST /api/upload - multipart field "image"
func (h *UploadController) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, &utils.FileUploadError{Code: "NO_FILE", Message: "No image file provided"})
		return
	}

	image, err := h.images.UploadImage(c.Request.Context(), fileHeader)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"url":      image.URL,
		"publicId": image.PublicID,
	})
}

// Sign handles POST /api/upload/sign - pre-authorizes a direct browser upload
func (h *UploadController) Sign(c *gin.Context) {
	var req SignRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if req.ContentType == "" {
		respondError(c, utils.NewValidationError("contentType is required"))
		return
	}

	signed, err := h.images.SignUpload(c.Request.Context(), strings.ToLower(req.ContentType))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"upload": signed})
}

// Delete handles DELETE /api/upload?publicId=
func (h *UploadController) Delete(c *gin.Context) {
	publicID := strings.TrimSpace(c.Query("publicId"))
	if publicID == "" {
		respondError(c, utils.NewValidationError("publicId is required"))
		return
	}
	if strings.Contains(publicID, "..") {
		respondError(c, utils.NewValidationError("Invalid publicId"))
		return
	}

	if err := h.images.DeleteImages(c.Request.Context(), []string{publicID}); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Image deleted successfully"})
}
