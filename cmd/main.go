package main

import (
	"fmt"
	"os"

	invarchbridge "github.com/InvArch/invarch-bridge-service"
	"github.com/urfave/cli/v2"
)

const (
	flagCfg     = "cfg"
	flagNetwork = "network"
)

const (
	// App name
	appName = "invarch-bridge"
)

func main() {
	app := cli.NewApp()
	app.Name = appName
	app.Version = invarchbridge.Version
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     flagCfg,
			Aliases:  []string{"c"},
			Usage:    "Configuration `FILE`",
			Required: false,
		},
		&cli.StringFlag{
			Name:     flagNetwork,
			Aliases:  []string{"n"},
			Usage:    "Network: invarch, tinkernet, local. Required unless the config file has a [NetworkConfig] section",
			Required: false,
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:    "version",
			Aliases: []string{},
			Usage:   "Application version and build",
			Action:  versionCmd,
		},
		{
			Name:    "run",
			Aliases: []string{},
			Usage:   "Run the InvArch bridge service",
			Action:  start,
			Flags:   flags,
		},
		{
			Name:      "validate",
			Aliases:   []string{},
			Usage:     "Check a bridge amount offline",
			ArgsUsage: "AMOUNT",
			Action:    validateCmd,
			Flags:     validateFlags,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		os.Exit(1)
	}
}
