package handlers

import (
	"github.com/gin-gonic/gin"

	"tradingai-demo/internal/api/models"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
