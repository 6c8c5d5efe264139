package main

import (
	"fmt"
	"os"

	"github.com/friend95/Cerosoft.AirPoint.Client/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
