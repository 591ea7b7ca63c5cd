package task

import (
	"net/http"

	"exale/controller"
	"exale/dto"
	"exale/services"

	"github.com/gin-gonic/gin"
)

// IntakeController takes requests from the public site; no session needed.
func IntakeController(router *gin.Engine, intake *services.IntakeService) {
	router.POST("/intake", func(c *gin.Context) {
		SubmitIntake(c, intake)
	})
}

func SubmitIntake(c *gin.Context, intake *services.IntakeService) {
	var req dto.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.InvalidInput(c)
		return
	}
	id, err := intake.Submit(c.Request.Context(), services.IntakeRequest{
		Title:        req.Title,
		Company:      req.Company,
		Email:        req.Email,
		Phone:        req.Phone,
		Message:      req.Message,
		Priority:     req.Priority,
		CaptchaToken: req.CaptchaToken,
		UserIP:       c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})
	if err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Request received", "id": id})
}
