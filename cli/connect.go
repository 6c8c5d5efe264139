package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/friend95/Cerosoft.AirPoint.Client/commands"
	"github.com/friend95/Cerosoft.AirPoint.Client/config"
	"github.com/friend95/Cerosoft.AirPoint.Client/utils"
)

var connectCmd = &cobra.Command{
	Use:   "connect [target]",
	Short: "Hold an input session to a receiver",
	Long: `Connects to a receiver and keeps the session open until interrupted or
the connection is lost. The session applies the sensitivity and gesture
settings from the settings file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if settingsPath == "" {
			settingsPath = config.DefaultPath()
		}
		settings, err := config.Load(settingsPath)
		if err != nil {
			return err
		}

		lost := make(chan string, 1)
		tr, err := commands.NewTransport(transportKind, func(reason string) {
			lost <- reason
		})
		if err != nil {
			return err
		}

		ctrl := commands.NewController(tr, settings)
		if err := ctrl.Connect(args[0]); err != nil {
			return err
		}

		utils.Info("connected to %s, press ctrl-c to disconnect", args[0])

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		select {
		case reason := <-lost:
			return fmt.Errorf("connection lost: %s", reason)
		case <-sigChan:
			ctrl.Disconnect("user interrupt", true)
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)

	connectCmd.Flags().StringVar(&transportKind, "transport", "tcp", "transport to use: 'tcp' or 'bluetooth'")
	connectCmd.Flags().StringVar(&settingsPath, "settings", "", "path to the settings file")
}
