package system

import (
	"fmt"
	"os"

	"github.com/amacleod/pulse/internal/agent"
	"github.com/amacleod/pulse/internal/cli"
	"github.com/amacleod/pulse/internal/keyring"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("pulse doctor")
	fmt.Println()

	// Storage
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("  [x] storage: %v\n", err)
	} else {
		fmt.Printf("  [ok] storage: %s\n", ctx.Store.GetConfigPath())
		checkins, err := ctx.Checkins.LoadAll()
		if err != nil {
			fmt.Printf("  [x] check-ins: %v\n", err)
		} else {
			fmt.Printf("  [ok] check-ins: %d record(s)\n", len(checkins))
		}
	}

	// Keyring
	if keyring.IsAvailable() {
		fmt.Println("  [ok] OS keyring available")
	} else {
		fmt.Println("  [!] OS keyring unavailable (postgres storage and agent secret fallback disabled)")
	}

	// Agent
	dir, err := agent.ConfigDir()
	if err != nil {
		fmt.Printf("  [x] agent config dir: %v\n", err)
		return nil
	}
	if _, err := os.Stat(agent.LockfilePath(dir)); err != nil {
		fmt.Println("  [!] agent not running (no lockfile); reminders will not fire")
		return nil
	}

	if granted := ctx.Reminders.HasPermissions(); granted {
		fmt.Println("  [ok] agent reachable, notifications permitted")
	} else {
		fmt.Println("  [!] agent lockfile present but agent unreachable or permission not granted")
	}

	settings := ctx.Reminders.LoadSettings()
	if settings.Enabled {
		fmt.Printf("  [ok] daily reminder enabled at %02d:%02d\n", settings.Hour, settings.Minute)
	} else {
		fmt.Println("  [ ] daily reminder disabled")
	}

	return nil
}
