package arc_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kubesetctx/internal/cluster"
	apperrors "kubesetctx/internal/errors"
	"kubesetctx/internal/mocks"
	"kubesetctx/internal/services/arc"
	"kubesetctx/internal/testutil"
)

const (
	azPath    = "/usr/bin/az"
	proxyPath = "/runner/temp/arc_kubeconfig_1700000000000"

	proxyKubeconfig = `apiVersion: v1
kind: Config
clusters:
- name: arc
  cluster:
    server: https://127.0.0.1:47011
contexts:
- name: arc
  context:
    cluster: arc
current-context: arc
`
)

type deps struct {
	locator *mocks.MockToolLocator
	runner  *mocks.MockCommandRunner
	starter *mocks.MockProcessStarter
	waiter  *mocks.MockFileWaiter
	fs      *mocks.MockFileSystemAdapter
	prober  *mocks.MockReadinessProber
	secrets *mocks.MockSecretReader
}

func newDeps(t *testing.T) deps {
	t.Helper()
	return deps{
		locator: mocks.NewMockToolLocator(t),
		runner:  mocks.NewMockCommandRunner(t),
		starter: mocks.NewMockProcessStarter(t),
		waiter:  mocks.NewMockFileWaiter(t),
		fs:      mocks.NewMockFileSystemAdapter(t),
		prober:  mocks.NewMockReadinessProber(t),
		secrets: mocks.NewMockSecretReader(t),
	}
}

func (d deps) fetcher(opts arc.Options, logger *slog.Logger) *arc.Fetcher {
	opts.Now = func() time.Time { return time.UnixMilli(1700000000000) }
	return arc.NewFetcher(opts, arc.Dependencies{
		Locator: d.locator,
		Runner:  d.runner,
		Starter: d.starter,
		Waiter:  d.waiter,
		FS:      d.fs,
		Prober:  d.prober,
		Secrets: d.secrets,
	}, logger)
}

func baseOptions() arc.Options {
	return arc.Options{
		ResourceGroup: "arc-rg",
		ClusterName:   "arc-cluster",
		TempDir:       "/runner/temp",
		Timeout:       5 * time.Second,
	}
}

func TestFetcher_ServiceAccountProxy(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)

	d.locator.On("Locate", ctx, "az", false).Return(azPath, nil)
	d.runner.On("Run", ctx, azPath, []string{"extension", "add", "-n", "connectedk8s"}).Return(0, nil).Once()
	d.starter.On("Start", ctx, azPath, []string{
		"connectedk8s", "proxy", "-n", "arc-cluster", "-g", "arc-rg", "--token", "sa-token", "-f", proxyPath,
	}).Return(nil).Once()
	d.waiter.On("WaitForFile", ctx, proxyPath, 5*time.Second).Return(nil).Once()
	d.fs.On("ReadFile", proxyPath).Return([]byte(proxyKubeconfig), nil).Once()
	d.prober.On("Probe", ctx, "https://127.0.0.1:47011").Return(nil).Once()

	opts := baseOptions()
	opts.Method = cluster.MethodServiceAccount
	opts.Token = "sa-token"

	got, err := d.fetcher(opts, testutil.Logger()).Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, proxyKubeconfig, got)
}

func TestFetcher_ServicePrincipalProxyHasNoToken(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)

	d.locator.On("Locate", ctx, "az", false).Return(azPath, nil)
	d.runner.On("Run", ctx, azPath, []string{"extension", "add", "-n", "connectedk8s"}).Return(0, nil)
	d.starter.On("Start", ctx, azPath, []string{
		"connectedk8s", "proxy", "-n", "arc-cluster", "-g", "arc-rg", "-f", proxyPath,
	}).Return(nil).Once()
	d.waiter.On("WaitForFile", ctx, proxyPath, 5*time.Second).Return(nil)
	d.fs.On("ReadFile", proxyPath).Return([]byte(proxyKubeconfig), nil)
	d.prober.On("Probe", ctx, "https://127.0.0.1:47011").Return(nil)

	opts := baseOptions()
	opts.Method = cluster.MethodServicePrincipal

	_, err := d.fetcher(opts, testutil.Logger()).Fetch(ctx)
	require.NoError(t, err)
}

func TestFetcher_PromptsForToken(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)

	d.secrets.On("IsInteractive").Return(true)
	d.secrets.On("ReadSecret", ctx, "Service account token: ").Return("typed-token", nil).Once()
	d.locator.On("Locate", ctx, "az", false).Return(azPath, nil)
	d.runner.On("Run", ctx, azPath, []string{"extension", "add", "-n", "connectedk8s"}).Return(0, nil)
	d.starter.On("Start", ctx, azPath, []string{
		"connectedk8s", "proxy", "-n", "arc-cluster", "-g", "arc-rg", "--token", "typed-token", "-f", proxyPath,
	}).Return(nil).Once()
	d.waiter.On("WaitForFile", ctx, proxyPath, 5*time.Second).Return(nil)
	d.fs.On("ReadFile", proxyPath).Return([]byte(proxyKubeconfig), nil)
	d.prober.On("Probe", ctx, "https://127.0.0.1:47011").Return(nil)

	opts := baseOptions()
	opts.Method = cluster.MethodServiceAccount

	_, err := d.fetcher(opts, testutil.Logger()).Fetch(ctx)
	require.NoError(t, err)
}

func TestFetcher_MissingTokenNonInteractive(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)
	d.secrets.On("IsInteractive").Return(false)

	opts := baseOptions()
	opts.Method = cluster.MethodServiceAccount

	_, err := d.fetcher(opts, testutil.Logger()).Fetch(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsMissingInput(err))
	d.locator.AssertNumberOfCalls(t, "Locate", 0)
}

func TestFetcher_RejectsKubeconfigMethod(t *testing.T) {
	tests := []struct {
		method   cluster.Method
		wantWarn int
	}{
		{method: cluster.MethodKubeconfig, wantWarn: 0},
		{method: cluster.MethodUnspecified, wantWarn: 1},
	}

	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			d := newDeps(t)
			rec, logger := testutil.NewRecorder()

			opts := baseOptions()
			opts.Method = tt.method

			_, err := d.fetcher(opts, logger).Fetch(context.Background())
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.wantWarn, rec.Count(slog.LevelWarn))
			d.starter.AssertNumberOfCalls(t, "Start", 0)
		})
	}
}

func TestFetcher_RequiresClusterInputs(t *testing.T) {
	d := newDeps(t)

	opts := baseOptions()
	opts.ClusterName = ""
	_, err := d.fetcher(opts, testutil.Logger()).Fetch(context.Background())
	assert.True(t, apperrors.IsMissingInput(err))

	opts = baseOptions()
	opts.ResourceGroup = ""
	_, err = d.fetcher(opts, testutil.Logger()).Fetch(context.Background())
	assert.True(t, apperrors.IsMissingInput(err))
}

func TestFetcher_ExtensionInstallFails(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)

	d.locator.On("Locate", ctx, "az", false).Return(azPath, nil)
	d.runner.On("Run", ctx, azPath, []string{"extension", "add", "-n", "connectedk8s"}).Return(1, nil)

	opts := baseOptions()
	opts.Method = cluster.MethodServicePrincipal

	_, err := d.fetcher(opts, testutil.Logger()).Fetch(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsExternalCommand(err))
	d.starter.AssertNumberOfCalls(t, "Start", 0)
}

func TestFetcher_ProxyTimeout(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)

	waitErr := errors.New("timed out waiting for file")
	d.locator.On("Locate", ctx, "az", false).Return(azPath, nil)
	d.runner.On("Run", ctx, azPath, []string{"extension", "add", "-n", "connectedk8s"}).Return(0, nil)
	d.starter.On("Start", ctx, azPath, []string{
		"connectedk8s", "proxy", "-n", "arc-cluster", "-g", "arc-rg", "-f", proxyPath,
	}).Return(nil)
	d.waiter.On("WaitForFile", ctx, proxyPath, 5*time.Second).Return(waitErr)

	opts := baseOptions()
	opts.Method = cluster.MethodServicePrincipal

	_, err := d.fetcher(opts, testutil.Logger()).Fetch(ctx)
	require.ErrorIs(t, err, waitErr)
	d.fs.AssertNumberOfCalls(t, "ReadFile", 0)
}

func TestFetcher_DefaultTimeout(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)

	d.locator.On("Locate", ctx, "az", false).Return(azPath, nil)
	d.runner.On("Run", ctx, azPath, []string{"extension", "add", "-n", "connectedk8s"}).Return(0, nil)
	d.starter.On("Start", ctx, azPath, []string{
		"connectedk8s", "proxy", "-n", "arc-cluster", "-g", "arc-rg", "-f", proxyPath,
	}).Return(nil)
	d.waiter.On("WaitForFile", ctx, proxyPath, arc.DefaultTimeout).Return(errors.New("stop"))

	opts := baseOptions()
	opts.Method = cluster.MethodServicePrincipal
	opts.Timeout = 0

	_, err := d.fetcher(opts, testutil.Logger()).Fetch(ctx)
	require.Error(t, err)
}
