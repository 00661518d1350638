package bapps

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dirwatcher/dirwatcher/common"
	"github.com/dirwatcher/dirwatcher/directory"
	"github.com/dirwatcher/dirwatcher/framework"
)

const commandTimeout = time.Second * 10

// WebServerApp serves directory commands over HTTP.
type WebServerApp struct {
	port   int
	dir    *directory.Directory
	logger *zap.Logger
}

// CommandRequest is the body of POST /command.
type CommandRequest struct {
	Line string `json:"line" binding:"required"`
}

// Run serves until the listener fails. The interactive state is not used over HTTP.
func (app *WebServerApp) Run(framework.State) {
	r := app.Router()
	if err := r.Run(fmt.Sprintf(":%d", app.port)); err != nil {
		app.logger.Error("web server stopped", zap.Error(err))
		fmt.Println(err.Error())
	}
}

// Router returns the gin engine with all routes registered.
func (app *WebServerApp) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": common.Version.String()})
	})
	r.POST("/command", app.handleCommand)
	return r
}

func (app *WebServerApp) handleCommand(c *gin.Context) {
	req := &CommandRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := framework.ParseLine(req.Line)
	app.logger.Debug("http command", zap.String("kind", cmd.Kind()), zap.String("line", req.Line))

	ctx, cancel := context.WithTimeout(c.Request.Context(), commandTimeout)
	defer cancel()

	switch cmd := cmd.(type) {
	case framework.Directory:
		rs, err := app.dir.Execute(ctx, cmd.Cmd)
		if err != nil {
			app.logger.Warn("http command failed", zap.String("kind", cmd.Kind()), zap.Error(err))
			c.JSON(statusOf(err), gin.H{"kind": cmd.Kind(), "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"kind": cmd.Kind(), "result": rs.Entities()})
	case framework.Flush:
		if err := app.dir.Flush(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"kind": cmd.Kind(), "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"kind": cmd.Kind(), "result": "flushed"})
	case framework.InvalidArgs:
		c.JSON(http.StatusBadRequest, gin.H{"kind": cmd.Kind(), "error": cmd.Message})
	case framework.Unknown:
		c.JSON(http.StatusBadRequest, gin.H{"kind": cmd.Kind(), "error": fmt.Sprintf("Unknown command: %s", cmd.Text)})
	default:
		// exit, help and info only make sense in the shell
		c.JSON(http.StatusOK, gin.H{"kind": cmd.Kind()})
	}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, directory.ErrUserNotFound), errors.Is(err, directory.ErrEpochNotFound):
		return http.StatusNotFound
	case errors.Is(err, directory.ErrInvalidEpochRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func NewWebServerApp(port int, dir *directory.Directory, opts ...AppOption) *WebServerApp {
	opt := defaultAppOption()
	for _, o := range opts {
		o(opt)
	}
	return &WebServerApp{
		port:   port,
		dir:    dir,
		logger: opt.logger,
	}
}
