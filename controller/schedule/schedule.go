package schedule

import (
	"net/http"

	"exale/controller"
	"exale/dto"
	"exale/middleware"
	"exale/services"

	"github.com/gin-gonic/gin"
)

func ScheduleController(router *gin.Engine, sc *services.ScheduleService) {
	routes := router.Group("/schedule", middleware.RequireSignedIn())
	{
		routes.POST("", func(c *gin.Context) {
			CreateEvent(c, sc)
		})
		routes.PUT("/:id/move", func(c *gin.Context) {
			MoveEvent(c, sc)
		})
		routes.PUT("/:id/resize", func(c *gin.Context) {
			ResizeEvent(c, sc)
		})
		routes.PUT("/:id/title", func(c *gin.Context) {
			RetitleEvent(c, sc)
		})
	}
}

func CreateEvent(c *gin.Context, sc *services.ScheduleService) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.InvalidInput(c)
		return
	}
	ev, err := sc.Create(c.Request.Context(), middleware.CurrentSession(c), req.Title, req.Date, req.IsDeadline)
	if err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, ev)
}

func MoveEvent(c *gin.Context, sc *services.ScheduleService) {
	var req dto.MoveEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.InvalidInput(c)
		return
	}
	if err := sc.Move(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), req.Start, req.End); err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event moved"})
}

func ResizeEvent(c *gin.Context, sc *services.ScheduleService) {
	var req dto.ResizeEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.InvalidInput(c)
		return
	}
	if err := sc.Resize(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), req.End); err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event resized"})
}

func RetitleEvent(c *gin.Context, sc *services.ScheduleService) {
	var req dto.RetitleEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.InvalidInput(c)
		return
	}
	if err := sc.Retitle(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), req.Title); err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event updated"})
}
