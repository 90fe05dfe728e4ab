package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/amacleod/pulse/internal/checkin"
	"github.com/amacleod/pulse/internal/cli"
	"github.com/amacleod/pulse/internal/cli/checkins"
	"github.com/amacleod/pulse/internal/cli/reminders"
	"github.com/amacleod/pulse/internal/cli/system"
	"github.com/amacleod/pulse/internal/constants"
	"github.com/amacleod/pulse/internal/errors"
	"github.com/amacleod/pulse/internal/keyring"
	"github.com/amacleod/pulse/internal/logger"
	"github.com/amacleod/pulse/internal/notify"
	"github.com/amacleod/pulse/internal/reminder"
	"github.com/amacleod/pulse/internal/storage"
	"github.com/amacleod/pulse/internal/storage/jsonfile"
	"github.com/amacleod/pulse/internal/storage/postgres"
	"github.com/amacleod/pulse/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage path, PostgreSQL connection string, or 'keyring' to use the stored connection string. Connection strings must NOT embed credentials." default:"~/.config/pulse/pulse.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init   system.InitCmd   `cmd:"" help:"Initialize pulse storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Agent  system.AgentCmd  `cmd:"" help:"Run the notification agent in the foreground."`

	Add    checkins.AddCmd    `cmd:"" help:"Record today's energy/mood/focus check-in."`
	Today  checkins.TodayCmd  `cmd:"" help:"Show today's check-in." default:"1"`
	List   checkins.ListCmd   `cmd:"" help:"List recorded check-ins."`
	Trends checkins.TrendsCmd `cmd:"" help:"Browse check-in history with averages."`
	Purge  checkins.PurgeCmd  `cmd:"" help:"Remove check-ins outside the retention window."`
	Clear  checkins.ClearCmd  `cmd:"" help:"Delete all recorded check-ins."`

	Reminder struct {
		Status reminders.StatusCmd `cmd:"" help:"Show reminder settings and schedule state." default:"1"`
		Set    reminders.SetCmd    `cmd:"" help:"Enable, disable, or retime the daily reminder."`
		Sync   reminders.SyncCmd   `cmd:"" help:"Reconcile settings against the agent's schedule list."`
	} `cmd:"" help:"Manage the daily reminder."`

	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily energy/mood/focus tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	config := expandHome(CLI.Config)

	store, configDir, err := selectStore(config)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		errors.Fatalf("failed to initialize logging: %v", err)
	}

	appCtx := &cli.Context{
		Store:     store,
		Checkins:  checkin.NewStore(store),
		Reminders: reminder.NewService(store, notify.NewClient()),
		Debug:     CLI.Debug,
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
	store.Close()
}

// selectStore picks a storage backend from the config value: a PostgreSQL
// connection string (directly or via the keyring), a .json file path, or the
// default SQLite database. It also returns the directory used for logs.
func selectStore(config string) (storage.Provider, string, error) {
	defaultDir := filepath.Dir(expandHome(constants.DefaultConfigPath))

	if config == "keyring" {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return nil, "", fmt.Errorf("no connection string in keyring: %w", err)
		}
		config = connStr
	}

	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		if valid, err := postgres.ValidateConnString(config); !valid {
			return nil, "", err
		}
		return postgres.New(config), defaultDir, nil
	}

	if strings.HasSuffix(config, ".json") {
		return jsonfile.NewStore(config), filepath.Dir(config), nil
	}
	return sqlite.NewStore(config), filepath.Dir(config), nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
