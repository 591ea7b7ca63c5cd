package task

import (
	"net/http"

	"exale/controller"
	"exale/dto"
	"exale/middleware"
	"exale/services"
	"exale/views"

	"github.com/gin-gonic/gin"
)

func TaskController(router *gin.Engine, tasks *services.TaskService) {
	routes := router.Group("/tasks", middleware.RequireSignedIn())
	{
		routes.GET("/:id", func(c *gin.Context) {
			GetTask(c, tasks)
		})
		routes.PUT("/:id/status", func(c *gin.Context) {
			UpdateStatus(c, tasks)
		})
		routes.POST("/:id/comments", func(c *gin.Context) {
			AddComment(c, tasks)
		})
		routes.POST("/:id/assign", func(c *gin.Context) {
			AssignToSelf(c, tasks)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			DeleteTask(c, tasks)
		})
		routes.POST("/seed", func(c *gin.Context) {
			SeedTasks(c, tasks)
		})
	}
}

func GetTask(c *gin.Context, tasks *services.TaskService) {
	t, err := tasks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, views.NewTaskDetail(t, middleware.CurrentSession(c)))
}

func UpdateStatus(c *gin.Context, tasks *services.TaskService) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.InvalidInput(c)
		return
	}
	if err := tasks.SetStatus(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), req.Status); err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "status": req.Status})
}

func AddComment(c *gin.Context, tasks *services.TaskService) {
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.InvalidInput(c)
		return
	}
	comment, err := tasks.AddComment(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), req.Text)
	if err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func AssignToSelf(c *gin.Context, tasks *services.TaskService) {
	assignee, err := tasks.AssignToSelf(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignee": assignee})
}

func DeleteTask(c *gin.Context, tasks *services.TaskService) {
	if err := tasks.Delete(c.Request.Context(), middleware.CurrentSession(c), c.Param("id")); err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

func SeedTasks(c *gin.Context, tasks *services.TaskService) {
	n, err := tasks.Seed(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Seeded demo tasks", "count": n})
}
