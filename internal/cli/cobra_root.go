package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"taskboard/internal/config"
	"taskboard/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd        *cobra.Command
	config     *config.Config
	configPath string
	newGateway GatewayFactory

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// NewRootCommand creates the root cobra command with global flags.
// A nil factory talks to the configured remote store over HTTP.
func NewRootCommand(newGateway GatewayFactory) *RootCommand {
	if newGateway == nil {
		newGateway = NewHTTPGateway
	}
	root := &RootCommand{
		newGateway: newGateway,
		in:         os.Stdin,
		out:        os.Stdout,
		errOut:     os.Stderr,
	}

	root.cmd = &cobra.Command{
		Use:   "taskboard",
		Short: "Manage tasks held by a remote task store",
		Long: `taskboard creates, lists, filters, edits, completes and deletes tasks
held by a remote task store. It can also run the store itself.

EXAMPLES:
  taskboard serve                                  # Run the task store on :8080
  taskboard add "Buy milk" -p low -c shopping --due 2024-03-20
  taskboard list                                   # Newest first
  taskboard list milk --status active --sort title # Search and filter
  taskboard complete 3
  taskboard edit 3 --priority high --due "Mar 22, 2024"
  taskboard delete 3 --yes
  taskboard stats

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  The config file is YAML, read from --config, TASKBOARD_CONFIG or
  ~/.taskboard/config.yaml.

  Remote Configuration:
    TASKBOARD_REMOTE_URL                 Store base URL (default: http://localhost:8080)
    TASKBOARD_REMOTE_COLLECTION          Collection path (default: tasks)
    TASKBOARD_REMOTE_TIMEOUT             Request timeout (default: 10s)

  Engine Configuration:
    TASKBOARD_SETTLE_DELAY               Pause after create before refetching (default: 300ms)
    TASKBOARD_LOCALE                     Title collation locale (default: en)

  Store Configuration:
    TASKBOARD_STORE_ADDR                 Listen address (default: :8080)
    TASKBOARD_STORE_DIR                  Database directory (default: ~/.taskboard)
    TASKBOARD_STORE_FILENAME             Database filename (default: tasks.db)
    TASKBOARD_STORE_ALLOWED_ORIGINS      Comma-separated CORS origins (default: *)

  Display Configuration:
    TASKBOARD_DISPLAY_DATE_FORMAT        Due date layout (default: Jan 2, 2006)
    TASKBOARD_DISPLAY_ICONS              Show category icons (default: true)

  Set TASKBOARD_DEBUG=1 or pass --verbose for debug output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// SetIO replaces standard input and output, e.g. in tests
func (r *RootCommand) SetIO(in io.Reader, out, errOut io.Writer) {
	r.in, r.out, r.errOut = in, out, errOut
	r.cmd.SetIn(in)
	r.cmd.SetOut(out)
	r.cmd.SetErr(errOut)
}

// SetArgs sets the arguments, e.g. in tests
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Config returns the configuration resolved for the last run
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.cmd.ExecuteContext(ctx)
}

// ExecuteContext runs the root command with ctx
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVar(&r.configPath, "config", "", "Config file (overrides TASKBOARD_CONFIG)")

	// Remote configuration
	flags.String("remote-url", "", "Store base URL (overrides TASKBOARD_REMOTE_URL)")
	flags.String("collection", "", "Collection path (overrides TASKBOARD_REMOTE_COLLECTION)")
	flags.Duration("remote-timeout", 0, "Request timeout (overrides TASKBOARD_REMOTE_TIMEOUT)")

	// Engine configuration
	flags.Duration("settle-delay", 0, "Pause after create before refetching (overrides TASKBOARD_SETTLE_DELAY)")
	flags.String("locale", "", "Title collation locale (overrides TASKBOARD_LOCALE)")

	// Store configuration
	flags.String("store-addr", "", "Store listen address (overrides TASKBOARD_STORE_ADDR)")
	flags.String("store-dir", "", "Store database directory (overrides TASKBOARD_STORE_DIR)")
	flags.String("store-filename", "", "Store database filename (overrides TASKBOARD_STORE_FILENAME)")

	// Validation configuration
	flags.Int("title-max-length", 0, "Maximum title length (overrides TASKBOARD_VALIDATION_TITLE_MAX)")

	// Display configuration
	flags.String("date-format", "", "Due date layout (overrides TASKBOARD_DISPLAY_DATE_FORMAT)")
	flags.Bool("icons", true, "Show category icons (overrides TASKBOARD_DISPLAY_ICONS)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides TASKBOARD_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TASKBOARD_APP_VERBOSE)")
}

// overridesFromFlags collects the flags the user actually set
func (r *RootCommand) overridesFromFlags(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	o := &config.ConfigOverrides{}

	stringFlag := func(name string, dst **string) {
		if flags.Changed(name) {
			v, _ := flags.GetString(name)
			*dst = &v
		}
	}
	durationFlag := func(name string, dst **time.Duration) {
		if flags.Changed(name) {
			v, _ := flags.GetDuration(name)
			*dst = &v
		}
	}
	boolFlag := func(name string, dst **bool) {
		if flags.Changed(name) {
			v, _ := flags.GetBool(name)
			*dst = &v
		}
	}

	stringFlag("remote-url", &o.RemoteURL)
	stringFlag("collection", &o.RemoteCollection)
	durationFlag("remote-timeout", &o.RemoteTimeout)
	durationFlag("settle-delay", &o.SettleDelay)
	stringFlag("locale", &o.Locale)
	stringFlag("store-addr", &o.StoreAddr)
	stringFlag("store-dir", &o.StoreDir)
	stringFlag("store-filename", &o.StoreFilename)
	if flags.Changed("title-max-length") {
		v, _ := flags.GetInt("title-max-length")
		o.TitleMaxLength = &v
	}
	stringFlag("date-format", &o.DateFormat)
	boolFlag("icons", &o.ShowIcons)
	durationFlag("app-timeout", &o.Timeout)
	boolFlag("verbose", &o.Verbose)

	return o
}

// loadConfig resolves defaults, file, environment and flags into r.config
func (r *RootCommand) loadConfig(cmd *cobra.Command) error {
	loader := config.NewLoader()
	if r.configPath != "" {
		loader = config.NewLoaderWithFile(r.configPath)
	}

	cfg, err := loader.LoadWithOverrides(r.overridesFromFlags(cmd))
	if err != nil {
		return err
	}
	r.config = cfg
	logging.SetVerbose(cfg.Application.Verbose)
	return nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// runTask builds the App and runs a task command within the application timeout
func (r *RootCommand) runTask(cmd *cobra.Command, args []string, build func(app *App) Command) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
	defer cancel()

	app, err := NewApp(ctx, r.config, r.newGateway(r.config), r.out, r.errOut)
	if err != nil {
		return err
	}
	return build(app).Execute(ctx, args)
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	var listOpts ListOptions
	listCmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List tasks",
		Long: `List tasks, newest first by default.

The query matches titles case-insensitively.

Examples:
  taskboard list
  taskboard list milk
  taskboard list --status active --category work --sort priority`,
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runTask(cmd, args, func(app *App) Command { return NewListCommand(app, listOpts) })
		},
	}
	listCmd.Flags().StringVarP(&listOpts.Status, "status", "s", "", "all, active or completed")
	listCmd.Flags().StringVarP(&listOpts.Category, "category", "c", "", "all or work, personal, shopping, health, other")
	listCmd.Flags().StringVar(&listOpts.Sort, "sort", "", "date, priority or title")

	var addOpts AddOptions
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Long: `Add a task. Priority defaults to medium and category to personal.

The due date accepts 2024-03-20, 03/20/2024, "Mar 20, 2024" and RFC 3339
timestamps. A due date that cannot be read is dropped with a warning.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runTask(cmd, args, func(app *App) Command { return NewAddCommand(app, addOpts) })
		},
	}
	addCmd.Flags().StringVarP(&addOpts.Priority, "priority", "p", "", "high, medium or low")
	addCmd.Flags().StringVarP(&addOpts.Category, "category", "c", "", "work, personal, shopping, health or other")
	addCmd.Flags().StringVarP(&addOpts.DueDate, "due", "d", "", "Due date")

	completeCmd := &cobra.Command{
		Use:     "complete <id>...",
		Short:   "Mark tasks completed",
		Aliases: []string{"done"},
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runTask(cmd, args, func(app *App) Command { return NewCompleteCommand(app) })
		},
	}

	var force bool
	deleteCmd := &cobra.Command{
		Use:     "delete <id>...",
		Short:   "Delete tasks",
		Long:    "Delete tasks by id. You are asked to confirm each one unless --yes is given.",
		Aliases: []string{"rm"},
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runTask(cmd, args, func(app *App) Command { return NewDeleteCommand(app, r.in, force) })
		},
	}
	deleteCmd.Flags().BoolVarP(&force, "yes", "y", false, "Do not ask for confirmation")

	var (
		editTitle, editPriority, editCategory, editDue string
		editClearDue, editCompleted                    bool
	)
	editCmd := &cobra.Command{
		Use:   "edit <id> [new title]",
		Short: "Edit a task",
		Long: `Edit a task's title, priority, category, due date or completion.

Examples:
  taskboard edit 3 "Buy oat milk"
  taskboard edit 3 --priority high --due 2024-03-22
  taskboard edit 3 --clear-due`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := EditOptions{ClearDue: editClearDue}
			flags := cmd.Flags()
			if flags.Changed("title") {
				opts.Title = &editTitle
			}
			if flags.Changed("priority") {
				opts.Priority = &editPriority
			}
			if flags.Changed("category") {
				opts.Category = &editCategory
			}
			if flags.Changed("due") {
				opts.DueDate = &editDue
			}
			if flags.Changed("completed") {
				opts.Completed = &editCompleted
			}
			return r.runTask(cmd, args, func(app *App) Command { return NewEditCommand(app, opts) })
		},
	}
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "high, medium or low")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "work, personal, shopping, health or other")
	editCmd.Flags().StringVarP(&editDue, "due", "d", "", "Due date")
	editCmd.Flags().BoolVar(&editClearDue, "clear-due", false, "Remove the due date")
	editCmd.Flags().BoolVar(&editCompleted, "completed", false, "Set completion state")

	var statsJSON bool
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runTask(cmd, args, func(app *App) Command { return NewStatsCommand(app, statsJSON) })
		},
	}
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print as JSON")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the task store",
		Long:  "Run the reference task store backed by a local SQLite database until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewServeCommand(r.config, r.out).Execute(cmd.Context(), args)
		},
	}

	r.cmd.AddCommand(
		listCmd,
		addCmd,
		completeCmd,
		deleteCmd,
		editCmd,
		statsCmd,
		serveCmd,
	)
}
