package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/domain"
	"taskboard/internal/engine"
	"taskboard/internal/errors"
	"taskboard/internal/gateway"
	"taskboard/internal/validation"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// GatewayFactory builds the remote gateway for a configuration
type GatewayFactory func(cfg *config.Config) engine.Gateway

// NewHTTPGateway is the default GatewayFactory
func NewHTTPGateway(cfg *config.Config) engine.Gateway {
	return gateway.New(gateway.NewHTTPTransport(cfg.Remote.BaseURL, cfg.Remote.Timeout), cfg.Remote.Collection)
}

// App carries what every task command needs
type App struct {
	config   *config.Config
	engine   *engine.Engine
	notifier *BannerNotifier
	renderer *Renderer
	out      io.Writer
}

// NewApp creates the engine for cfg and waits for its initial load
func NewApp(ctx context.Context, cfg *config.Config, gw engine.Gateway, out, errOut io.Writer) (*App, error) {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}

	notifier := NewBannerNotifier(errOut)
	settle := cfg.Engine.SettleDelay
	if settle == 0 {
		settle = -1 // configured as no delay
	}

	e := engine.New(ctx, gw, engine.Options{
		SettleDelay: settle,
		Locale:      cfg.Engine.Locale,
		Notifier:    notifier,
		Validator:   validation.NewTaskValidatorWithConfig(cfg),
		Now:         timeNow,
	})
	if err := e.WaitReady(ctx); err != nil {
		return nil, errors.NewTransportError("load tasks", err)
	}

	return &App{
		config:   cfg,
		engine:   e,
		notifier: notifier,
		renderer: NewRenderer(out, cfg.Display),
		out:      out,
	}, nil
}

// Engine exposes the task state engine
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// failed reports an error if any failure notice was shown while running a command
func (a *App) failed(operation string) error {
	if n := a.notifier.Count(); n > 0 {
		return fmt.Errorf("%s: %d failure(s) reported", operation, n)
	}
	return nil
}

// parseTaskID parses a positive task id argument
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError("id", arg, "must be a positive integer")
	}
	return id, nil
}

// findTask returns the task with id from the current collection
func (a *App) findTask(id int64) (domain.Task, error) {
	for _, task := range a.engine.Snapshot() {
		if task.ID == id {
			return task, nil
		}
	}
	return domain.Task{}, errors.NewNotFoundError("task", strconv.FormatInt(id, 10))
}
