package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sse-journal/config"
	"sse-journal/journal"
	"sse-journal/variables"
)

var RootCmd = &cobra.Command{
	Use:           "sse-journal",
	Short:         "Manage journal books, settings and variables",
	Long:          "Manage journal books, settings and variables",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return openSession(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeSession()
	},
}

type rootArgs struct {
	dataDir  string
	gameDays float32
}

var (
	rArgs   rootArgs
	cfg     *config.Config
	session *journal.Session
	logFile *os.File
)

func init() {
	RootCmd.PersistentFlags().StringVar(&rArgs.dataDir, "data-dir", "", "data directory (overrides JOURNAL_DATA_DIR)")
	RootCmd.PersistentFlags().Float32Var(&rArgs.gameDays, "game-days", 0, "game clock reading in days for the game time variable")
}

func openSession(cmd *cobra.Command) error {
	var err error
	cfg, err = config.ParseEnv()
	if err != nil {
		return err
	}
	if rArgs.dataDir != "" {
		cfg.DataDir = rArgs.dataDir
	}
	logger, f, err := cfg.OpenLog()
	if err != nil {
		return err
	}
	logFile = f

	var clock variables.GameClock
	if cmd.Flags().Changed("game-days") {
		clock = variables.StaticClock(rArgs.gameDays)
	}
	session = journal.New(journal.Options{
		MinPages:      cfg.MinPages,
		LogPath:       cfg.LogPath(),
		SettingsPath:  cfg.SettingsPath(),
		VariablesPath: cfg.VariablesPath(),
		Logger:        logger,
		Clock:         clock,
	})
	if !session.LoadVariables() {
		return sessionError()
	}
	return nil
}

func closeSession() {
	if session != nil {
		session.Close()
	}
	if logFile != nil {
		logFile.Close()
	}
}

// sessionError turns the pending session failure into a command error.
func sessionError() error {
	msg := session.Failure()
	session.DismissFailure()
	if msg == "" {
		msg = "operation failed"
	}
	return fmt.Errorf("%s", msg)
}

func check(ok bool) error {
	if ok {
		return nil
	}
	return sessionError()
}
