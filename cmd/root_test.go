package cmd

import (
	"bytes"
	"strings"
	"testing"

	"kubesetctx/internal/config"
)

func TestRootCommand_Structure(t *testing.T) {
	if rootCmd.Use != "kubesetctx" {
		t.Errorf("Expected Use to be 'kubesetctx', got: %s", rootCmd.Use)
	}

	if rootCmd.Short == "" || rootCmd.Long == "" {
		t.Error("Expected Short and Long descriptions to be set")
	}

	if rootCmd.Runnable() {
		t.Error("Expected root command to not be directly runnable (should only have subcommands)")
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	found := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		found[cmd.Use] = true
	}

	for _, expected := range []string{"run", "print", "config", "version"} {
		if !found[expected] {
			t.Errorf("Expected command '%s' to be registered", expected)
		}
	}
}

func TestRootCommand_InputFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	for _, f := range inputFlags {
		flag := flags.Lookup(f.name)
		if flag == nil {
			t.Errorf("Expected persistent flag --%s", f.name)
			continue
		}
		if f.boolean && flag.Value.Type() != "bool" {
			t.Errorf("Expected --%s to be a bool flag, got %s", f.name, flag.Value.Type())
		}
	}

	for _, name := range []string{"config", "verbose", "no-color", config.KeyLogLevel, config.KeyLogFormat} {
		if flags.Lookup(name) == nil {
			t.Errorf("Expected persistent flag --%s", name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-01-01", "ci")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown", "unknown") })

	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	got := out.String()
	if !strings.HasPrefix(got, "kubesetctx 1.2.3 (") {
		t.Errorf("Unexpected version output: %q", got)
	}
	if !strings.Contains(got, "commit: abc123") {
		t.Errorf("Expected commit in output, got %q", got)
	}
}

func TestNewColors_DisabledForBuffers(t *testing.T) {
	c := newColors(&bytes.Buffer{}, false)
	if got := c.Success("ok %d", 1); got != "ok 1" {
		t.Errorf("Expected plain output for non-TTY writer, got %q", got)
	}
}
