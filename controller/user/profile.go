package user

import (
	"net/http"

	"exale/controller"
	"exale/dto"
	"exale/middleware"
	"exale/services"

	"github.com/gin-gonic/gin"
)

func ProfileController(router *gin.Engine, profiles *services.ProfileService) {
	routes := router.Group("/profile", middleware.RequireSignedIn())
	{
		routes.PUT("", func(c *gin.Context) {
			UpdateProfile(c, profiles)
		})
		routes.PUT("/password", func(c *gin.Context) {
			UpdatePassword(c, profiles)
		})
	}
}

func UpdateProfile(c *gin.Context, profiles *services.ProfileService) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.InvalidInput(c)
		return
	}
	emp, err := profiles.UpdateProfile(c.Request.Context(), middleware.CurrentSession(c), req.Nickname, req.Bio, req.PhotoURL)
	if err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

func UpdatePassword(c *gin.Context, profiles *services.ProfileService) {
	var req dto.PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.InvalidInput(c)
		return
	}
	if err := profiles.UpdatePassword(c.Request.Context(), middleware.CurrentSession(c), req.Password); err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
