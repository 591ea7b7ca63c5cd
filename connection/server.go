package connection

import (
	"context"
	"log"
	"net/http"
	"time"

	"exale/chat"
	"exale/config"
	authController "exale/controller/auth"
	chatController "exale/controller/chat"
	"exale/controller/client"
	"exale/controller/live"
	"exale/controller/schedule"
	"exale/controller/task"
	"exale/controller/user"
	"exale/middleware"
	"exale/services"
	"exale/store"
	"exale/views"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps is everything the router needs from the outside world.
type Deps struct {
	Store     store.Store
	Verifier  services.TokenVerifier
	Passwords services.PasswordSetter
	// SignIn is nil when an identity service handles sign-in.
	SignIn *services.PasswordSignIn
	// Assessor is nil when captcha checks are off.
	Assessor   services.Assessor
	ChatDelay  time.Duration
	ChatJitter time.Duration
}

func NewRouter(d Deps) (*gin.Engine, error) {
	tasks := services.NewTaskService(d.Store)
	users := services.NewUserService(d.Store)
	streamer, err := views.NewStreamer(d.Store, tasks)
	if err != nil {
		return nil, err
	}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("Authorization", "X-Chat-Session")
	corsConfig.AddExposeHeaders("X-Chat-Session")
	router.Use(cors.New(corsConfig))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Api is running!"})
	})

	router.Use(middleware.SessionMiddleware(services.NewSessionGate(d.Verifier, users)))

	authController.SessionController(router, users)
	if d.SignIn != nil {
		authController.SignInController(router, d.SignIn, users)
	}
	live.ViewController(router, streamer)
	task.TaskController(router, tasks)
	task.IntakeController(router, services.NewIntakeService(tasks, d.Assessor))
	user.UserController(router, users)
	user.ProfileController(router, services.NewProfileService(d.Store, d.Passwords))
	client.DirectoryController(router, services.NewDirectoryService(d.Store))
	schedule.ScheduleController(router, services.NewScheduleService(d.Store))
	chatController.ChatController(router, chat.NewAssistant(chat.NewTranscripts(), d.ChatDelay, d.ChatJitter))

	return router, nil
}

func StartServer(cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	backend, err := OpenBackend(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer backend.Store.Close()

	deps := Deps{
		Store:      backend.Store,
		ChatDelay:  cfg.ChatDelay,
		ChatJitter: cfg.ChatJitter,
	}
	switch cfg.AuthMode {
	case config.AuthFirebase:
		deps.Verifier = services.NewFirebaseVerifier(backend.Auth)
		deps.Passwords = services.NewFirebasePasswords(backend.Auth)
	default:
		deps.Verifier = services.NewJWTVerifier(cfg.JWTSecret)
		deps.Passwords = services.NewStoredPasswords(backend.Store)
		deps.SignIn = services.NewPasswordSignIn(backend.Store, cfg.JWTSecret)
	}
	if cfg.RecaptchaEnabled() {
		deps.Assessor = services.NewRecaptchaAssessor(cfg.ProjectID, cfg.RecaptchaSiteKey, cfg.RecaptchaCredentials)
	}

	router, err := NewRouter(deps)
	if err != nil {
		return err
	}
	log.Printf("Exale API listening on :%s (backend=%s, auth=%s)", cfg.Port, cfg.Backend, cfg.AuthMode)
	return router.Run(":" + cfg.Port)
}
