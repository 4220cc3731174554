package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/renato0307/tutor/internal/config"
	"github.com/renato0307/tutor/internal/logging"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Path SettingsPathCmd `cmd:"path" help:"Print the settings file location"`
	Set  SettingsSetCmd  `cmd:"set" help:"Set or clear one setting"`
	Show SettingsShowCmd `cmd:"show" help:"Show current settings and available options" default:"1"`
}

// SettingsShowCmd displays the current settings
type SettingsShowCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the show command
func (s *SettingsShowCmd) Run(cli *CLI) error {
	settingsFile := config.GetSettingsPath()
	current := cli.Container.Settings()

	if s.Format == "json" {
		output := map[string]any{
			"settings_file": settingsFile,
			"settings":      current,
			"format":        config.GetSettingsExample(),
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	values, err := settingsValues(current)
	if err != nil {
		return err
	}
	example := config.GetSettingsExample()

	fmt.Printf("Settings file: %s\n\n", settingsFile)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE\tEXAMPLE")
	for _, key := range config.GetSettingsKeys() {
		value, ok := values[key]
		valueStr := "-"
		if ok {
			valueStr = formatSettingValue(value)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", key, valueStr, formatSettingValue(example[key]))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Use 'tutor settings set <key> <value>' to change a setting.")
	fmt.Println("All settings are optional and have sensible defaults.")
	return nil
}

// SettingsPathCmd prints the settings file path
type SettingsPathCmd struct{}

// Run executes the path command
func (s *SettingsPathCmd) Run() error {
	fmt.Println(config.GetSettingsPath())
	return nil
}

// SettingsSetCmd writes one setting to settings.json
type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting key (see 'tutor settings show')"`
	Value string `arg:"" optional:"" help:"New value; omit to clear the setting"`
}

// Run executes the set command
func (s *SettingsSetCmd) Run() error {
	err := config.UpdateSettings(func(settings *config.Settings) error {
		return settings.SetValue(s.Key, s.Value)
	})
	if err != nil {
		return err
	}

	logging.Logger.Info("Setting updated", "key", s.Key, "cleared", s.Value == "")
	if s.Value == "" {
		fmt.Printf("%s cleared\n", s.Key)
	} else {
		fmt.Printf("%s = %s\n", s.Key, s.Value)
	}
	return nil
}

// settingsValues returns the fields that are set, keyed by JSON name
func settingsValues(settings *config.Settings) (map[string]any, error) {
	data, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	values := make(map[string]any)
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return values, nil
}

func formatSettingValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "-"
	case string:
		return v
	case []string, []any:
		data, _ := json.Marshal(v)
		return string(data)
	default:
		return fmt.Sprintf("%v", v)
	}
}
