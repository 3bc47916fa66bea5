// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"
	"os"
	"time"

	"github.com/stretchr/testify/mock"
)

// TestingT is the subset of *testing.T the mock constructors need.
type TestingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(t TestingT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// MockKubeconfigFetcher mocks domain.KubeconfigFetcher.
type MockKubeconfigFetcher struct {
	mock.Mock
}

// NewMockKubeconfigFetcher creates a fetcher mock that asserts its expectations on cleanup.
func NewMockKubeconfigFetcher(t TestingT) *MockKubeconfigFetcher {
	m := &MockKubeconfigFetcher{}
	register(t, &m.Mock)
	return m
}

func (m *MockKubeconfigFetcher) Fetch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockToolLocator mocks domain.ToolLocator.
type MockToolLocator struct {
	mock.Mock
}

// NewMockToolLocator creates a locator mock that asserts its expectations on cleanup.
func NewMockToolLocator(t TestingT) *MockToolLocator {
	m := &MockToolLocator{}
	register(t, &m.Mock)
	return m
}

func (m *MockToolLocator) Locate(ctx context.Context, name string, requireElevated bool) (string, error) {
	args := m.Called(ctx, name, requireElevated)
	return args.String(0), args.Error(1)
}

// MockCommandRunner mocks domain.CommandRunner.
type MockCommandRunner struct {
	mock.Mock
}

// NewMockCommandRunner creates a runner mock that asserts its expectations on cleanup.
func NewMockCommandRunner(t TestingT) *MockCommandRunner {
	m := &MockCommandRunner{}
	register(t, &m.Mock)
	return m
}

func (m *MockCommandRunner) Run(ctx context.Context, toolPath string, args []string) (int, error) {
	ret := m.Called(ctx, toolPath, args)
	return ret.Int(0), ret.Error(1)
}

// MockProcessStarter mocks domain.ProcessStarter.
type MockProcessStarter struct {
	mock.Mock
}

// NewMockProcessStarter creates a starter mock that asserts its expectations on cleanup.
func NewMockProcessStarter(t TestingT) *MockProcessStarter {
	m := &MockProcessStarter{}
	register(t, &m.Mock)
	return m
}

func (m *MockProcessStarter) Start(ctx context.Context, toolPath string, args []string) error {
	return m.Called(ctx, toolPath, args).Error(0)
}

// MockContextSetter mocks domain.ContextSetter.
type MockContextSetter struct {
	mock.Mock
}

// NewMockContextSetter creates a context setter mock that asserts its expectations on cleanup.
func NewMockContextSetter(t TestingT) *MockContextSetter {
	m := &MockContextSetter{}
	register(t, &m.Mock)
	return m
}

func (m *MockContextSetter) SetContext(
	ctx context.Context,
	admin bool,
	kubeconfigPath, resourceGroup, clusterName, subscription string,
) (int, error) {
	args := m.Called(ctx, admin, kubeconfigPath, resourceGroup, clusterName, subscription)
	return args.Int(0), args.Error(1)
}

// MockTokenPluginLogin mocks domain.TokenPluginLogin.
type MockTokenPluginLogin struct {
	mock.Mock
}

// NewMockTokenPluginLogin creates a login mock that asserts its expectations on cleanup.
func NewMockTokenPluginLogin(t TestingT) *MockTokenPluginLogin {
	m := &MockTokenPluginLogin{}
	register(t, &m.Mock)
	return m
}

func (m *MockTokenPluginLogin) Login(ctx context.Context, kubeconfigPath string, priorExitCode int) error {
	return m.Called(ctx, kubeconfigPath, priorExitCode).Error(0)
}

// MockKubeconfigPublisher mocks domain.KubeconfigPublisher.
type MockKubeconfigPublisher struct {
	mock.Mock
}

// NewMockKubeconfigPublisher creates a publisher mock that asserts its expectations on cleanup.
func NewMockKubeconfigPublisher(t TestingT) *MockKubeconfigPublisher {
	m := &MockKubeconfigPublisher{}
	register(t, &m.Mock)
	return m
}

func (m *MockKubeconfigPublisher) Publish(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

// MockEnvironmentSetter mocks domain.EnvironmentSetter.
type MockEnvironmentSetter struct {
	mock.Mock
}

// NewMockEnvironmentSetter creates an environment mock that asserts its expectations on cleanup.
func NewMockEnvironmentSetter(t TestingT) *MockEnvironmentSetter {
	m := &MockEnvironmentSetter{}
	register(t, &m.Mock)
	return m
}

func (m *MockEnvironmentSetter) SetEnv(key, value string) error {
	return m.Called(key, value).Error(0)
}

// MockFileSystemAdapter mocks domain.FileSystemAdapter.
type MockFileSystemAdapter struct {
	mock.Mock
}

// NewMockFileSystemAdapter creates a filesystem mock that asserts its expectations on cleanup.
func NewMockFileSystemAdapter(t TestingT) *MockFileSystemAdapter {
	m := &MockFileSystemAdapter{}
	register(t, &m.Mock)
	return m
}

func (m *MockFileSystemAdapter) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockFileSystemAdapter) WriteFile(path string, data []byte, perm os.FileMode) error {
	return m.Called(path, data, perm).Error(0)
}

func (m *MockFileSystemAdapter) MkdirAll(path string, perm os.FileMode) error {
	return m.Called(path, perm).Error(0)
}

func (m *MockFileSystemAdapter) Stat(path string) (os.FileInfo, error) {
	args := m.Called(path)
	info, _ := args.Get(0).(os.FileInfo)
	return info, args.Error(1)
}

func (m *MockFileSystemAdapter) Chmod(path string, perm os.FileMode) error {
	return m.Called(path, perm).Error(0)
}

func (m *MockFileSystemAdapter) TempDir() string {
	return m.Called().String(0)
}

// MockFileWaiter mocks domain.FileWaiter.
type MockFileWaiter struct {
	mock.Mock
}

// NewMockFileWaiter creates a waiter mock that asserts its expectations on cleanup.
func NewMockFileWaiter(t TestingT) *MockFileWaiter {
	m := &MockFileWaiter{}
	register(t, &m.Mock)
	return m
}

func (m *MockFileWaiter) WaitForFile(ctx context.Context, path string, timeout time.Duration) error {
	return m.Called(ctx, path, timeout).Error(0)
}

// MockReadinessProber mocks domain.ReadinessProber.
type MockReadinessProber struct {
	mock.Mock
}

// NewMockReadinessProber creates a prober mock that asserts its expectations on cleanup.
func NewMockReadinessProber(t TestingT) *MockReadinessProber {
	m := &MockReadinessProber{}
	register(t, &m.Mock)
	return m
}

func (m *MockReadinessProber) Probe(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

// MockSecretReader mocks domain.SecretReader.
type MockSecretReader struct {
	mock.Mock
}

// NewMockSecretReader creates a secret reader mock that asserts its expectations on cleanup.
func NewMockSecretReader(t TestingT) *MockSecretReader {
	m := &MockSecretReader{}
	register(t, &m.Mock)
	return m
}

func (m *MockSecretReader) ReadSecret(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockSecretReader) IsInteractive() bool {
	return m.Called().Bool(0)
}
