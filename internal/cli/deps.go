package cli

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/xolan/jot/internal/config"
	"github.com/xolan/jot/internal/export"
	"github.com/xolan/jot/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	Services *service.Services
	Config   config.Config
	Log      *zap.Logger
}

// NewDeps creates Deps bound to the process streams
func NewDeps(services *service.Services, cfg config.Config, log *zap.Logger) *Deps {
	if log == nil {
		log = zap.NewNop()
	}
	return &Deps{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		Exit:     os.Exit,
		Services: services,
		Config:   cfg,
		Log:      log,
	}
}

// Renderer returns an HTML renderer for the journal syntax
func (d *Deps) Renderer() *export.Renderer {
	return export.NewRenderer(d.Services.Journal.Syntax())
}
