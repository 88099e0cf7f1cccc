package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sse-journal/model"
	"sse-journal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect or reset the settings file",
	Long:  "Inspect or reset the settings file",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the settings and build the fonts they describe",
	Long:  "Print the settings and build the fonts they describe",
	RunE:  runSettingsShow,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Write the default settings",
	Long:  "Write the default settings",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	RootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	if err := check(session.LoadSettings()); err != nil {
		return err
	}
	st := session.Settings
	fmt.Printf("settings: %s\n", cfg.SettingsPath())
	fmt.Printf("background: %s\ntitlebar: %v\n", st.Background, st.Titlebar)
	for _, role := range model.FontRoles {
		c := st.Fonts[role]
		if c == nil {
			continue
		}
		file := c.File
		if file == "" {
			file = "(bundled)"
		}
		fmt.Printf("%-8s scale %.2f  color %s  size %.0f  glyphs %s  file %s\n",
			role, c.Scale, model.HexColor(c.Color), c.Size, c.Glyphs, file)
	}
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	session.Settings = settings.Default()
	return check(session.SaveSettings())
}
