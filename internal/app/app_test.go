package app_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kubesetctx/internal/app"
	"kubesetctx/internal/commands"
	"kubesetctx/internal/config"
	"kubesetctx/internal/logging"
)

func TestNewApp_Defaults(t *testing.T) {
	a, err := app.NewApp(context.Background())
	require.NoError(t, err)

	assert.Equal(t, logging.LevelInfo, a.Config.LogLevel)
	assert.Equal(t, logging.FormatText, a.Config.LogFormat)
	assert.False(t, a.Config.Verbose)
	assert.NotNil(t, a.FileSystem)
	assert.NotNil(t, a.Environment)
	assert.NotNil(t, a.Locator)
	assert.NotNil(t, a.Runner)
	assert.NotNil(t, a.Starter)
	assert.NotNil(t, a.Waiter)
	assert.NotNil(t, a.Secrets)
	assert.NotNil(t, a.Prober)
	assert.NotNil(t, a.Logger)
}

func TestNewApp_Options(t *testing.T) {
	a, err := app.NewApp(context.Background(),
		app.WithLogLevel(logging.LevelWarn),
		app.WithLogFormat(logging.FormatJSON),
		app.WithToolOutput(io.Discard),
	)
	require.NoError(t, err)

	assert.Equal(t, logging.LevelWarn, a.Config.LogLevel)
	assert.Equal(t, logging.FormatJSON, a.Config.LogFormat)
	assert.Equal(t, io.Discard, a.Config.ToolOutput)
}

func TestWithVerbose_ForcesDebug(t *testing.T) {
	a, err := app.NewApp(context.Background(), app.WithVerbose(true), app.WithLogLevel(logging.LevelError))
	require.NoError(t, err)

	assert.True(t, a.Config.Verbose)
	assert.Equal(t, logging.LevelDebug, a.Config.LogLevel)
}

func TestApp_CommandFactories(t *testing.T) {
	a, err := app.NewApp(context.Background())
	require.NoError(t, err)

	in := &config.Inputs{ClusterType: "generic", Method: "kubeconfig"}

	assert.NotNil(t, a.NewResolver(in))
	assert.NotNil(t, a.NewNegotiator())
	assert.NotNil(t, a.NewPublisher())
	assert.NotNil(t, a.NewSetContextCommand(in))
	assert.NotNil(t, a.NewPrintCommand(in))
}

func TestApp_PrintGenericKubeconfig(t *testing.T) {
	a, err := app.NewApp(context.Background(), app.WithLogLevel(logging.LevelError))
	require.NoError(t, err)

	raw := "apiVersion: v1\nkind: Config\ncurrent-context: a\n"
	in := &config.Inputs{ClusterType: "generic", Method: "kubeconfig", Kubeconfig: raw}

	out, err := a.NewPrintCommand(in).Execute(context.Background(), commands.PrintRequest{ClusterType: "generic"})
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}
