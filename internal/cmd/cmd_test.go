//go:build integration

package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/texsnip/texsnip/internal/testutil"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd is nil")
	}

	if rootCmd.Use != "texsnip" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "texsnip")
	}

	// Check for expected subcommands (compare by Name(), not Use which includes args)
	expectedCmds := []string{"exec", "config", "logs"}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}

	for _, expected := range expectedCmds {
		if !cmdMap[expected] {
			t.Errorf("expected subcommand %q not found", expected)
		}
	}
}

func TestConfigPathCommand(t *testing.T) {
	testutil.SetupConfigDir(t)

	if _, err := executeCommand(rootCmd, "config", "path"); err != nil {
		t.Fatalf("config path failed: %v", err)
	}
}

func TestConfigSetRejectsUnknownKey(t *testing.T) {
	testutil.SetupConfigDir(t)

	_, err := executeCommand(rootCmd, "config", "set", "renderer.bogus", "x")
	if err == nil || !strings.Contains(err.Error(), "unknown config key") {
		t.Errorf("err = %v, want unknown key rejection", err)
	}
}

func TestExecCommand(t *testing.T) {
	testutil.SkipIfNoSh(t)
	testutil.SetupConfigDir(t)

	script := testutil.WriteScript(t, t.TempDir(), "fake-renderer", "rendered ok", 0)

	_, err := executeCommand(rootCmd, "exec", "--", script)
	if err != nil {
		t.Fatalf("exec failed: %v", err)
	}
}

func TestCommandsRejectInvalidConfig(t *testing.T) {
	testutil.SetupConfigDir(t)
	t.Setenv("TEXSNIP_LOGGING_LEVEL", "verbose")

	_, err := executeCommand(rootCmd, "config", "show")
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("err = %v, want the bad env override surfaced", err)
	}
}

func TestExecCommandFailure(t *testing.T) {
	testutil.SkipIfNoSh(t)
	testutil.SetupConfigDir(t)

	script := testutil.WriteScript(t, t.TempDir(), "failing-renderer", "! error", 1)

	if _, err := executeCommand(rootCmd, "exec", "--", script); err == nil {
		t.Fatal("expected exec to report the failure")
	}
}
