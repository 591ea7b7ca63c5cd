package user

import (
	"net/http"

	"exale/controller"
	"exale/dto"
	"exale/middleware"
	"exale/services"

	"github.com/gin-gonic/gin"
)

func UserController(router *gin.Engine, users *services.UserService) {
	routes := router.Group("/users", middleware.RequireSignedIn())
	{
		routes.POST("", func(c *gin.Context) {
			CreateUser(c, users)
		})
		routes.PUT("/:id/role", func(c *gin.Context) {
			ChangeRole(c, users)
		})
		routes.POST("/seed", func(c *gin.Context) {
			SeedUsers(c, users)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			DeleteUser(c, users)
		})
	}
}

func CreateUser(c *gin.Context, users *services.UserService) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.InvalidInput(c)
		return
	}
	if req.Role == "" {
		req.Role = "agent"
	}
	id, err := users.Create(c.Request.Context(), middleware.CurrentSession(c), req.Name, req.Email, req.Role)
	if err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created", "id": id})
}

func ChangeRole(c *gin.Context, users *services.UserService) {
	var req dto.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.InvalidInput(c)
		return
	}
	if err := users.ChangeRole(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), req.Role); err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

func SeedUsers(c *gin.Context, users *services.UserService) {
	n, err := users.Seed(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Seeded users", "count": n})
}

func DeleteUser(c *gin.Context, users *services.UserService) {
	if err := users.Delete(c.Request.Context(), middleware.CurrentSession(c), c.Param("id")); err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
