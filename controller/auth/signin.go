package auth

import (
	"net/http"

	"exale/controller"
	"exale/dto"
	"exale/services"

	"github.com/gin-gonic/gin"
)

func SignInController(router *gin.Engine, signIn *services.PasswordSignIn, users *services.UserService) {
	router.POST("/auth/signin", func(c *gin.Context) {
		Signin(c, signIn, users)
	})
}

func Signin(c *gin.Context, signIn *services.PasswordSignIn, users *services.UserService) {
	var request dto.SigninRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		controller.InvalidInput(c)
		return
	}

	ctx := c.Request.Context()
	token, user, err := signIn.SignIn(ctx, request.Email, request.Password)
	if err != nil {
		controller.ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SigninResponse{
		Message:     "Login Successfully",
		AccessToken: token,
		Role:        string(users.ResolveRole(ctx, user.ID)),
	})
}
