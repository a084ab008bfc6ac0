package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Azeezfasasi/lasu-mba-cloth/utils"
)

// respond writes a success envelope: {"success": true, ...payload}
func respond(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// respondError writes the failure envelope for err; unknown errors become 500s
func respondError(c *gin.Context, err error) {
	appErr := utils.AsAppError(err)
	if appErr.Status() >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(appErr.Status(), appErr.Response())
}

// bindJSON decodes the request body into dst. An empty body leaves dst untouched.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return utils.NewValidationError("Invalid request data").WithDetails(err.Error())
	}
	return nil
}
