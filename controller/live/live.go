package live

import (
	"net/http"

	"exale/controller"
	"exale/middleware"
	"exale/services"
	"exale/views"

	"github.com/gin-gonic/gin"
)

// ViewController registers GET /<view> for a JSON snapshot of every view
// and GET /live/<view> for its SSE stream.
func ViewController(router *gin.Engine, streamer *views.Streamer) {
	for _, name := range views.Names {
		v, _ := views.Lookup(name)
		router.GET("/"+name, middleware.RequireSignedIn(), func(c *gin.Context) {
			Snapshot(c, streamer, v)
		})
	}
	router.GET("/live/:view", middleware.RequireSignedIn(), func(c *gin.Context) {
		Live(c, streamer)
	})
}

func Snapshot(c *gin.Context, streamer *views.Streamer, v views.View) {
	vm, err := streamer.Snapshot(c.Request.Context(), v, viewRequest(c))
	if err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, vm)
}

func Live(c *gin.Context, streamer *views.Streamer) {
	v, ok := views.Lookup(c.Param("view"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown view"})
		return
	}
	streamer.Stream(c.Writer, c.Request, v, viewRequest(c))
}

func viewRequest(c *gin.Context) views.Request {
	return views.Request{
		Session: middleware.CurrentSession(c),
		Scope:   services.ParseScope(c.Query("scope")),
	}
}
