package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/routinely/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone             *string  `help:"IANA timezone used to decide what 'today' is, or 'Local'."`
	DefaultCategory      *string  `help:"Category given to new items when none is set."`
	NotificationsEnabled *bool    `help:"Enable or disable the daily reminder."`
	SleepTargetHours     *float64 `help:"Nightly sleep target in hours."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	settings, err := svc.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Printf("  Default Category:      %s\n", settings.DefaultCategory)
		fmt.Printf("  Sleep Target:          %.1f h\n", settings.SleepTargetHours)
		fmt.Println("\nNotification Settings:")
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		settings.Timezone = strings.TrimSpace(*c.Timezone)
		updated = true
	}
	if c.DefaultCategory != nil {
		category := strings.TrimSpace(*c.DefaultCategory)
		registry, err := svc.Registry()
		if err != nil {
			return err
		}
		if !registry.Contains(category) {
			return fmt.Errorf("unknown category %q, add it first with 'routinely category add'", category)
		}
		settings.DefaultCategory = category
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.SleepTargetHours != nil {
		settings.SleepTargetHours = *c.SleepTargetHours
		updated = true
	}

	if updated {
		if err := svc.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
