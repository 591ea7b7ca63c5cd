package auth

import (
	"net/http"

	"exale/controller"
	"exale/dto"
	"exale/middleware"
	"exale/model"
	"exale/services"

	"github.com/gin-gonic/gin"
)

func SessionController(router *gin.Engine, users *services.UserService) {
	router.GET("/me", func(c *gin.Context) {
		Me(c, users)
	})
	router.PUT("/me/activity", func(c *gin.Context) {
		SetActivity(c, users)
	})
}

// Me reports who is signed in and what the dashboard should offer them.
func Me(c *gin.Context, users *services.UserService) {
	s := middleware.CurrentSession(c)
	c.JSON(http.StatusOK, dto.MeResponse{
		UserID:         s.UserID,
		Email:          s.Email,
		Name:           s.Name,
		Role:           string(s.Role),
		Badge:          s.Role.Badge(),
		Activity:       users.Activity(c.Request.Context(), s.UserID),
		SignedIn:       s.Role.SignedIn(),
		CanSeedTasks:   s.Role.IsManager(),
		CanManageUsers: s.Role == model.RoleOwner,
	})
}

func SetActivity(c *gin.Context, users *services.UserService) {
	var req dto.ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.InvalidInput(c)
		return
	}
	activity, err := users.SetActivity(c.Request.Context(), middleware.CurrentSession(c), req.Activity)
	if err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity})
}
