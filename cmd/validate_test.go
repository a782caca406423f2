package main

import (
	"bytes"
	"testing"

	"github.com/InvArch/invarch-bridge-service/bridgectrl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runValidate(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app := cli.NewApp()
	app.Writer = &buf
	app.ExitErrHandler = func(*cli.Context, error) {}
	app.Commands = []*cli.Command{{Name: "validate", Action: validateCmd, Flags: validateFlags}}
	err := app.Run(append([]string{appName, "validate"}, args...))
	return buf.String(), err
}

func TestValidateCmd(t *testing.T) {
	out, err := runValidate(t, "--decimals", "6", "--ed", "700", "1.5")
	require.NoError(t, err)
	assert.JSONEq(t, `{"isValid":true}`, out)

	out, err = runValidate(t, "--decimals", "6", "--ed", "700", "0.0001")
	require.Error(t, err)
	assert.JSONEq(t, `{"isValid":false,"error":"`+bridgectrl.MsgBelowExistentialDeposit+`"}`, out)

	out, err = runValidate(t, "--decimals", "6", "--balance", "1000000", "2")
	require.Error(t, err)
	assert.Contains(t, out, bridgectrl.MsgExceedsBalance)
}

func TestValidateCmdArgs(t *testing.T) {
	_, err := runValidate(t, "--decimals", "6")
	assert.Error(t, err)

	_, err = runValidate(t, "--decimals", "6", "--ed", "-1", "1")
	assert.Error(t, err)

	_, err = runValidate(t, "--decimals", "6", "--rounding", "ceil", "1")
	assert.Error(t, err)
}
