package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/friend95/Cerosoft.AirPoint.Client/commands"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one-shot commands to a receiver",
	Long:  `Send text, key presses, URLs, shortcuts and power commands to the specified receiver.`,
}

// run prints the response and converts errors into a non-zero exit.
func run(response *commands.CommandResponse) error {
	printJson(response)
	if response.Status == "error" {
		return fmt.Errorf("%s", response.Error)
	}
	return nil
}

func targetRequest() commands.TargetRequest {
	return commands.TargetRequest{Target: target, Transport: transportKind}
}

var sendTextCmd = &cobra.Command{
	Use:   "text [text]",
	Short: "Type text on the receiver",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(commands.TextCommand(commands.TextRequest{
			TargetRequest: targetRequest(),
			Text:          args[0],
		}))
	},
}

var sendKeyCmd = &cobra.Command{
	Use:   "key [key]",
	Short: "Press a key on the receiver",
	Long:  `Presses a key on the receiver. Accepts "backspace", "enter", or a numeric key code.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(commands.KeyCommand(commands.KeyRequest{
			TargetRequest: targetRequest(),
			Key:           args[0],
		}))
	},
}

var sendUrlCmd = &cobra.Command{
	Use:   "url [url]",
	Short: "Open a URL on the receiver",
	Long:  `Opens a URL in the default browser on the receiver machine`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(commands.URLCommand(commands.URLRequest{
			TargetRequest: targetRequest(),
			URL:           args[0],
		}))
	},
}

var sendShortcutCmd = &cobra.Command{
	Use:   "shortcut [id]",
	Short: "Trigger a window-management shortcut on the receiver",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 8)
		if err != nil {
			response := commands.NewErrorResponse(fmt.Errorf("invalid shortcut id %q", args[0]))
			return run(response)
		}
		return run(commands.ShortcutCommand(commands.ShortcutRequest{
			TargetRequest: targetRequest(),
			ID:            byte(id),
		}))
	},
}

var sendPowerCmd = &cobra.Command{
	Use:       "power [lock|restart|shutdown]",
	Short:     "Lock, restart or shut down the receiver machine",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"lock", "restart", "shutdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(commands.PowerCommand(commands.PowerRequest{
			TargetRequest: targetRequest(),
			Action:        args[0],
		}))
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.AddCommand(sendTextCmd)
	sendCmd.AddCommand(sendKeyCmd)
	sendCmd.AddCommand(sendUrlCmd)
	sendCmd.AddCommand(sendShortcutCmd)
	sendCmd.AddCommand(sendPowerCmd)

	sendCmd.PersistentFlags().StringVar(&target, "target", "", "receiver address ('host:port' or bluetooth device address)")
	sendCmd.PersistentFlags().StringVar(&transportKind, "transport", "tcp", "transport to use: 'tcp' or 'bluetooth'")
}
