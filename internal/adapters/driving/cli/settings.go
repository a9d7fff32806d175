package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wordbook/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change where words are stored and how changes made by other
wordbook processes are followed.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting.

Keys:
  storage.backend                sqlite or memory
  storage.data_dir               directory holding words.db (empty = default)
  watch.enabled                  follow commits made by other processes
  watch.debounce                 quiet period before refreshing, e.g. 250ms
  watch.max_refresh_per_second   refresh rate limit (0 = unlimited)`,
	Args:              cobra.ExactArgs(2),
	RunE:              runSettingsSet,
	ValidArgsFunction: completeSettingKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	if settings.Storage.Backend.IsDurable() {
		cmd.Printf("  Data dir: %s\n", dataDirLabel(settings.Storage.DataDir))
	}
	cmd.Println()

	cmd.Println("[Watch]")
	cmd.Printf("  Enabled: %s\n", yesNo(settings.Watch.Enabled))
	cmd.Printf("  Debounce: %s\n", settings.Watch.Debounce)
	cmd.Printf("  Max refreshes per second: %s\n", rateLabel(settings.Watch.MaxRefreshPerSecond))
	if settings.Watch.Enabled && !settings.WatchActive() {
		cmd.Println("  (inactive: the storage backend is not durable)")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("%w (valid keys: %s)", err, strings.Join(settingsService.Keys(), ", "))
		}
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func completeSettingKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || settingsService == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return settingsService.Keys(), cobra.ShellCompDirectiveNoFileComp
}

func dataDirLabel(dir string) string {
	if dir == "" {
		return "(default ~/.wordbook/data)"
	}
	return dir
}

func rateLabel(perSecond int) string {
	if perSecond == 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%d", perSecond)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
