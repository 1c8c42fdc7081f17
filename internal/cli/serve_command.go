package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"taskboard/internal/config"
	"taskboard/internal/store"
)

// ServeCommand runs the reference task store
type ServeCommand struct {
	config *config.Config
	out    io.Writer
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(cfg *config.Config, out io.Writer) *ServeCommand {
	return &ServeCommand{config: cfg, out: out}
}

// Execute serves until ctx is cancelled
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	if err := os.MkdirAll(c.config.Store.Dir, os.FileMode(c.config.Store.DirPermissions)); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	lock, err := store.LockDatabase(c.config.GetDatabasePath())
	if err != nil {
		return err
	}
	defer lock.Unlock()

	repo, err := config.CreateRepository(c.config)
	if err != nil {
		return err
	}
	defer repo.Close()

	fmt.Fprintf(c.out, "Serving /%s on %s (database %s)\n",
		c.config.Remote.Collection, c.config.Store.Addr, c.config.GetDatabasePath())
	return store.New(c.config, repo).Run(ctx)
}
