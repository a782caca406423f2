package main

import (
	"os"

	invarchbridge "github.com/InvArch/invarch-bridge-service"
	"github.com/urfave/cli/v2"
)

func versionCmd(*cli.Context) error {
	invarchbridge.PrintVersion(os.Stdout)
	return nil
}
