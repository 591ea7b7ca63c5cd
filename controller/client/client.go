package client

import (
	"net/http"

	"exale/controller"
	"exale/dto"
	"exale/middleware"
	"exale/model"
	"exale/services"

	"github.com/gin-gonic/gin"
)

// DirectoryController serves the partner and internal contact directories.
func DirectoryController(router *gin.Engine, dir *services.DirectoryService) {
	clients := router.Group("/clients", middleware.RequireSignedIn())
	{
		clients.POST("", func(c *gin.Context) {
			CreateClient(c, dir)
		})
		clients.DELETE("/:id", func(c *gin.Context) {
			DeleteClient(c, dir)
		})
	}
	contacts := router.Group("/contacts", middleware.RequireSignedIn())
	{
		contacts.POST("", func(c *gin.Context) {
			CreateContact(c, dir)
		})
		contacts.DELETE("/:id", func(c *gin.Context) {
			DeleteContact(c, dir)
		})
	}
}

func CreateClient(c *gin.Context, dir *services.DirectoryService) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.InvalidInput(c)
		return
	}
	id, err := dir.CreateClient(c.Request.Context(), middleware.CurrentSession(c), model.Client{
		Name:     req.Name,
		Email:    req.Email,
		Industry: req.Industry,
	})
	if err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Client added", "id": id})
}

func DeleteClient(c *gin.Context, dir *services.DirectoryService) {
	if err := dir.DeleteClient(c.Request.Context(), middleware.CurrentSession(c), c.Param("id")); err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client removed"})
}

func CreateContact(c *gin.Context, dir *services.DirectoryService) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.InvalidInput(c)
		return
	}
	id, err := dir.CreateContact(c.Request.Context(), middleware.CurrentSession(c), model.Contact{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Tag:   req.Tag,
	})
	if err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Contact added", "id": id})
}

func DeleteContact(c *gin.Context, dir *services.DirectoryService) {
	if err := dir.DeleteContact(c.Request.Context(), middleware.CurrentSession(c), c.Param("id")); err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contact removed"})
}
