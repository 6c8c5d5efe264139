package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/friend95/Cerosoft.AirPoint.Client/commands"
	"github.com/friend95/Cerosoft.AirPoint.Client/transport"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find AirPoint receivers",
	Long:  `Browses the local network over mDNS for receivers, or lists paired Bluetooth devices advertising the AirPoint serial service.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		discovery, err := transport.NewDiscovery(16)
		if err != nil {
			return err
		}

		var targets []transport.Target
		if discoverBluetooth {
			targets, err = discovery.PairedSerialDevices()
		} else {
			targets, err = discovery.Browse(time.Duration(discoverTimeout) * time.Second)
		}
		if err != nil {
			return run(commands.NewErrorResponse(err))
		}

		return run(commands.NewSuccessResponse(map[string]interface{}{
			"targets": targets,
		}))
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().BoolVar(&discoverBluetooth, "bluetooth", false, "scan paired bluetooth devices instead of mDNS")
	discoverCmd.Flags().IntVar(&discoverTimeout, "timeout", 3, "mDNS browse timeout in seconds")
}
