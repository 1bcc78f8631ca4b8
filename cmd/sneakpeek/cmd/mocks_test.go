package cmd

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/mock"
)

type ExitMocks struct {
	mock.Mock
	exitStatuses []int
	messages     []string
}

func (m *ExitMocks) Fatalf(format string, v ...interface{}) {
	m.messages = append(m.messages, fmt.Sprintf(format, v...))
	m.exitStatuses = append(m.exitStatuses, 1)
}

func (m *ExitMocks) Fatalln(v ...interface{}) {
	m.messages = append(m.messages, fmt.Sprint(v...))
	m.exitStatuses = append(m.exitStatuses, 1)
}

func (m *ExitMocks) Exit(code int) {
	m.exitStatuses = append(m.exitStatuses, code)
}

func (m *ExitMocks) fatalCalls() int {
	return len(m.messages)
}

func NewExitMocks() *ExitMocks {
	return &ExitMocks{
		exitStatuses: make([]int, 0),
		messages:     make([]string, 0),
	}
}

func MakeFatalfMock(m *ExitMocks) func(string, ...interface{}) {
	return func(format string, v ...interface{}) {
		m.Fatalf(format, v...)
	}
}

func MakeFatallnMock(m *ExitMocks) func(...interface{}) {
	return func(v ...interface{}) {
		m.Fatalln(v...)
	}
}

func MakeExitMock(m *ExitMocks) func(int) {
	return func(code int) {
		m.Exit(code)
	}
}

// isolatedEnv lists the environment variables the CLI reads
var isolatedEnv = []string{
	"CI", "CI_BUILD_REF", "CI_BUILD_TAG", "CI_BUILD_REF_NAME",
	"CI_COMMIT_SHA", "CI_COMMIT_TAG", "CI_COMMIT_REF_NAME",
	"SNEAKPEEK_API_URL", "SNEAKPEEK_API_KEY", "SNEAKPEEK_CONFIG",
}

type testOutput struct {
	exitMocks *ExitMocks
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	tmpDir    string
}

// setupTests patches exits, isolates the environment and captures the command outputs
func setupTests(t *testing.T) testOutput {
	exitMocks := NewExitMocks()
	origFatalln, origFatalf, origExit := logFatalln, logFatalf, osExit
	logFatalln = MakeFatallnMock(exitMocks)
	logFatalf = MakeFatalfMock(exitMocks)
	osExit = MakeExitMock(exitMocks)

	for _, key := range isolatedEnv {
		t.Setenv(key, "")
	}
	t.Setenv("HOME", t.TempDir())
	tmpDir := t.TempDir()
	t.Setenv("TMPDIR", tmpDir)

	resetFlags()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)

	t.Cleanup(func() {
		logFatalln, logFatalf, osExit = origFatalln, origFatalf, origExit
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags()
	})
	return testOutput{exitMocks: exitMocks, stdout: &stdout, stderr: &stderr, tmpDir: tmpDir}
}

// resetFlags restores flag defaults between executions of the same command tree
func resetFlags() {
	sneakpeekFlags = flagsT{}
	reset := func(f *pflag.Flag) {
		if slice, ok := f.Value.(pflag.SliceValue); ok {
			_ = slice.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	for _, c := range []*cobra.Command{rootCmd, uploadCmd, versionCmd, docCmd} {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}
}
