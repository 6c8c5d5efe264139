package cli

var (
	verbose bool

	// all commands that talk to a receiver
	target        string
	transportKind string

	// for connect command
	settingsPath string

	// for discover command
	discoverBluetooth bool
	discoverTimeout   int
)
