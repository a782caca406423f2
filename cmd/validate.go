package main

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"

	"github.com/InvArch/invarch-bridge-service/amount"
	"github.com/InvArch/invarch-bridge-service/bridgectrl"
	"github.com/urfave/cli/v2"
)

const (
	flagDecimals           = "decimals"
	flagExistentialDeposit = "ed"
	flagBalance            = "balance"
	flagMinAmount          = "min"
	flagRounding           = "rounding"
)

var validateFlags = []cli.Flag{
	&cli.UintFlag{
		Name:     flagDecimals,
		Usage:    "Decimals of the asset",
		Required: true,
	},
	&cli.StringFlag{
		Name:  flagExistentialDeposit,
		Usage: "Existential deposit in minor units",
	},
	&cli.StringFlag{
		Name:  flagBalance,
		Usage: "Balance of the payer in minor units",
	},
	&cli.StringFlag{
		Name:  flagMinAmount,
		Usage: "Minimum amount in minor units",
	},
	&cli.StringFlag{
		Name:  flagRounding,
		Usage: "Rounding of the amount: floor or half-up",
		Value: string(amount.RoundFloor),
	},
}

// validateCmd runs the amount checks of a bridge transfer without any chain
// access and prints the verdict as JSON.
func validateCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one AMOUNT argument, got %d", ctx.NArg())
	}
	decimals := ctx.Uint(flagDecimals)
	if decimals > math.MaxUint8 {
		return fmt.Errorf("decimals must be at most %d", math.MaxUint8)
	}
	mode, err := amount.ParseRoundingMode(ctx.String(flagRounding))
	if err != nil {
		return err
	}
	params := bridgectrl.ValidateAmountParams{
		Amount:        ctx.Args().First(),
		AssetDecimals: uint8(decimals),
	}
	if params.ExistentialDeposit, err = minorUnits(ctx, flagExistentialDeposit); err != nil {
		return err
	}
	if params.CurrentBalance, err = minorUnits(ctx, flagBalance); err != nil {
		return err
	}
	if params.MinAmount, err = minorUnits(ctx, flagMinAmount); err != nil {
		return err
	}

	result := bridgectrl.ValidateBridgeAmountWith(mode, params)
	out, err := json.Marshal(result)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, string(out))
	if !result.IsValid {
		return cli.Exit("", 2) //nolint:gomnd
	}
	return nil
}

func minorUnits(ctx *cli.Context, flag string) (*big.Int, error) {
	s := ctx.String(flag)
	if s == "" {
		return nil, nil
	}
	v, ok := new(big.Int).SetString(s, 10) //nolint:gomnd
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("--%s must be a non negative integer, got %q", flag, s)
	}
	return v, nil
}
