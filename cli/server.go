package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/friend95/Cerosoft.AirPoint.Client/daemon"
	"github.com/friend95/Cerosoft.AirPoint.Client/server"
)

const (
	defaultPacketAddress = ":17865"
	defaultHTTPAddress   = "localhost:17866"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Receiver management commands",
	Long:  `Commands for running and stopping the reference receiver.`,
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reference receiver",
	Long:  `Starts a receiver that decodes incoming input frames and mirrors them over a WebSocket feed.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		listenAddr := cmd.Flag("listen").Value.String()
		if listenAddr == "" {
			listenAddr = defaultPacketAddress
		}
		httpAddr := cmd.Flag("http").Value.String()
		if httpAddr == "" {
			httpAddr = defaultHTTPAddress
		}

		// GetBool cannot fail for defined flags
		advertise, _ := cmd.Flags().GetBool("advertise")
		isDaemon, _ := cmd.Flags().GetBool("daemon")

		if isDaemon && !daemon.IsChild() {
			_, err := daemon.Daemonize()
			if err != nil {
				return fmt.Errorf("failed to start daemon: %w", err)
			}

			fmt.Printf("Receiver daemon spawned, attempting to listen on %s\n", listenAddr)
			return nil
		}

		return server.StartServer(server.Config{
			PacketAddr: listenAddr,
			HTTPAddr:   httpAddr,
			Advertise:  advertise,
		})
	},
}

var serverKillCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop a daemonized receiver",
	Long:  `Connects to the receiver's HTTP endpoint and asks it to shut down.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// GetString cannot fail for defined flags
		addr, _ := cmd.Flags().GetString("http")
		if addr == "" {
			addr = defaultHTTPAddress
		}

		err := daemon.KillServer(addr)
		if err != nil {
			return err
		}

		fmt.Printf("Receiver shutdown command sent successfully\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// add server subcommands
	serverCmd.AddCommand(serverStartCmd)
	serverCmd.AddCommand(serverKillCmd)

	// server start flags
	serverStartCmd.Flags().String("listen", "", fmt.Sprintf("packet listen address (default: %s)", defaultPacketAddress))
	serverStartCmd.Flags().String("http", "", fmt.Sprintf("http listen address (default: %s)", defaultHTTPAddress))
	serverStartCmd.Flags().Bool("advertise", true, "advertise the receiver over mDNS")
	serverStartCmd.Flags().BoolP("daemon", "d", false, "run the receiver in daemon mode (background)")

	// server kill flags
	serverKillCmd.Flags().String("http", "", fmt.Sprintf("http address of the receiver to kill (default: %s)", defaultHTTPAddress))
}
