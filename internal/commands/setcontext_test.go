package commands_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kubesetctx/internal/cluster"
	"kubesetctx/internal/commands"
	apperrors "kubesetctx/internal/errors"
	"kubesetctx/internal/kubeconfig"
	"kubesetctx/internal/mocks"
	"kubesetctx/internal/services/azure"
	"kubesetctx/internal/testutil"
)

const (
	tempRoot     = "/runner/temp"
	expectedPath = "/runner/temp/kubeconfig_1700000000123"

	sampleKubeconfig = `apiVersion: v1
kind: Config
clusters:
- name: c
  cluster:
    server: https://example.com
contexts:
- name: one
  context:
    cluster: c
- name: two
  context:
    cluster: c
current-context: one
`
)

func fixedClock() time.Time {
	return time.UnixMilli(1700000000123)
}

type setContextDeps struct {
	resolver   *mocks.MockKubeconfigResolver
	negotiator *mocks.MockCredentialNegotiator
	fs         *mocks.MockFileSystemAdapter
	publisher  *mocks.MockKubeconfigPublisher
}

func newSetContextCommand(t *testing.T) (*commands.SetContextCommand, setContextDeps) {
	t.Helper()
	deps := setContextDeps{
		resolver:   mocks.NewMockKubeconfigResolver(t),
		negotiator: mocks.NewMockCredentialNegotiator(t),
		fs:         mocks.NewMockFileSystemAdapter(t),
		publisher:  mocks.NewMockKubeconfigPublisher(t),
	}
	logger := testutil.Logger()
	cmd := commands.NewSetContextCommand(
		deps.resolver,
		deps.negotiator,
		kubeconfig.NewEditor(logger),
		deps.fs,
		deps.publisher,
		fixedClock,
		logger,
	)
	return cmd, deps
}

func TestSetContextCommand_GenericWithContext(t *testing.T) {
	ctx := context.Background()
	cmd, deps := newSetContextCommand(t)

	deps.resolver.On("Resolve", ctx, cluster.Generic).Return(sampleKubeconfig, nil).Once()
	deps.fs.On("WriteFile", expectedPath, mock.MatchedBy(func(data []byte) bool {
		doc, err := kubeconfig.Parse(string(data))
		return err == nil && doc.CurrentContext() == "two"
	}), os.FileMode(0o600)).Return(nil).Once()
	deps.publisher.On("Publish", ctx, expectedPath).Return(nil).Once()

	path, err := cmd.Execute(ctx, commands.SetContextRequest{
		ClusterType: "generic",
		Context:     "two",
		TempDir:     tempRoot,
	})
	require.NoError(t, err)
	assert.Equal(t, expectedPath, path)
}

func TestSetContextCommand_WithoutContextKeepsDocument(t *testing.T) {
	ctx := context.Background()
	cmd, deps := newSetContextCommand(t)

	deps.resolver.On("Resolve", ctx, cluster.Arc).Return(sampleKubeconfig, nil)
	deps.fs.On("WriteFile", expectedPath, []byte(sampleKubeconfig), os.FileMode(0o600)).Return(nil).Once()
	deps.publisher.On("Publish", ctx, expectedPath).Return(nil)

	_, err := cmd.Execute(ctx, commands.SetContextRequest{ClusterType: "arc", TempDir: tempRoot})
	require.NoError(t, err)
}

func TestSetContextCommand_UnrecognizedTypeResolvesUnspecified(t *testing.T) {
	ctx := context.Background()
	cmd, deps := newSetContextCommand(t)

	deps.resolver.On("Resolve", ctx, cluster.Unspecified).Return(sampleKubeconfig, nil)
	deps.fs.On("WriteFile", expectedPath, mock.Anything, os.FileMode(0o600)).Return(nil)
	deps.publisher.On("Publish", ctx, expectedPath).Return(nil)

	_, err := cmd.Execute(ctx, commands.SetContextRequest{ClusterType: "default", TempDir: tempRoot})
	require.NoError(t, err)
}

func TestSetContextCommand_UsesOSTempDir(t *testing.T) {
	ctx := context.Background()
	cmd, deps := newSetContextCommand(t)

	deps.fs.On("TempDir").Return("/tmp")
	deps.resolver.On("Resolve", ctx, cluster.Generic).Return(sampleKubeconfig, nil)
	deps.fs.On("WriteFile", "/tmp/kubeconfig_1700000000123", mock.Anything, os.FileMode(0o600)).Return(nil)
	deps.publisher.On("Publish", ctx, "/tmp/kubeconfig_1700000000123").Return(nil)

	path, err := cmd.Execute(ctx, commands.SetContextRequest{ClusterType: "generic"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/kubeconfig_1700000000123", path)
}

func TestSetContextCommand_MissingClusterType(t *testing.T) {
	cmd, deps := newSetContextCommand(t)

	_, err := cmd.Execute(context.Background(), commands.SetContextRequest{TempDir: tempRoot})
	require.Error(t, err)
	assert.True(t, apperrors.IsMissingInput(err))
	deps.resolver.AssertNumberOfCalls(t, "Resolve", 0)
}

func TestSetContextCommand_FetchErrorPropagates(t *testing.T) {
	ctx := context.Background()
	cmd, deps := newSetContextCommand(t)

	fetchErr := errors.New("kubeconfig input required")
	deps.resolver.On("Resolve", ctx, cluster.Generic).Return("", fetchErr)

	_, err := cmd.Execute(ctx, commands.SetContextRequest{ClusterType: "generic", TempDir: tempRoot})
	require.ErrorIs(t, err, fetchErr)
	deps.fs.AssertNumberOfCalls(t, "WriteFile", 0)
}

func TestSetContextCommand_MalformedKubeconfigWithContext(t *testing.T) {
	ctx := context.Background()
	cmd, deps := newSetContextCommand(t)

	deps.resolver.On("Resolve", ctx, cluster.Generic).Return("", nil)

	_, err := cmd.Execute(ctx, commands.SetContextRequest{ClusterType: "generic", Context: "x", TempDir: tempRoot})
	require.Error(t, err)
	assert.True(t, apperrors.IsParse(err))
}

func TestSetContextCommand_WriteFailure(t *testing.T) {
	ctx := context.Background()
	cmd, deps := newSetContextCommand(t)

	deps.resolver.On("Resolve", ctx, cluster.Generic).Return(sampleKubeconfig, nil)
	deps.fs.On("WriteFile", expectedPath, mock.Anything, os.FileMode(0o600)).Return(os.ErrPermission)

	_, err := cmd.Execute(ctx, commands.SetContextRequest{ClusterType: "generic", TempDir: tempRoot})
	require.Error(t, err)
	assert.True(t, apperrors.IsFilesystem(err))
	deps.publisher.AssertNumberOfCalls(t, "Publish", 0)
}

func TestSetContextCommand_AKSUsesNegotiator(t *testing.T) {
	ctx := context.Background()
	cmd, deps := newSetContextCommand(t)

	want := azure.Request{
		Target: azure.Target{
			ResourceGroup: "sample-rg",
			ClusterName:   "sample-cluster",
			Subscription:  "sub-x",
			Admin:         true,
		},
		DelegateContext: true,
		TokenPlugin:     true,
		ContextName:     "ignored-when-delegated",
		DestinationPath: expectedPath,
	}
	deps.negotiator.On("Negotiate", ctx, want).Return(&azure.Result{State: azure.StateDone}, nil).Once()

	path, err := cmd.Execute(ctx, commands.SetContextRequest{
		ClusterType:     "AKS",
		ResourceGroup:   "sample-rg",
		ClusterName:     "sample-cluster",
		Subscription:    "sub-x",
		Admin:           true,
		Context:         "ignored-when-delegated",
		UseAzSetContext: true,
		UseKubelogin:    true,
		TempDir:         tempRoot,
	})
	require.NoError(t, err)
	assert.Equal(t, expectedPath, path)
	deps.resolver.AssertNumberOfCalls(t, "Resolve", 0)
	deps.publisher.AssertNumberOfCalls(t, "Publish", 0)
}

func TestSetContextCommand_AKSRequiresClusterCoordinates(t *testing.T) {
	cmd, deps := newSetContextCommand(t)

	_, err := cmd.Execute(context.Background(), commands.SetContextRequest{
		ClusterType: "aks",
		ClusterName: "sample-cluster",
		TempDir:     tempRoot,
	})

	var missing *apperrors.MissingInputError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "resource-group", missing.Input)
	deps.negotiator.AssertNumberOfCalls(t, "Negotiate", 0)
}

func TestSetContextCommand_AKSFailure(t *testing.T) {
	ctx := context.Background()
	cmd, deps := newSetContextCommand(t)

	negErr := apperrors.NewToolNotFoundError("az", nil)
	deps.negotiator.On("Negotiate", ctx, mock.Anything).Return(&azure.Result{State: azure.StateFailed}, negErr)

	_, err := cmd.Execute(ctx, commands.SetContextRequest{
		ClusterType:   "aks",
		ResourceGroup: "sample-rg",
		ClusterName:   "sample-cluster",
		TempDir:       tempRoot,
	})
	assert.True(t, apperrors.IsToolNotFound(err))
}
