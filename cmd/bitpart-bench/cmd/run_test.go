package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCmd_SyntheticSequential(t *testing.T) {
	cmd := newRunCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--dataset", "synthetic", "--n", "200", "--dim", "8", "--tau", "3"})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "matches brute-force linear scan")
}

func TestRunCmd_SyntheticParallel(t *testing.T) {
	cmd := newRunCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--dataset", "synthetic", "--n", "200", "--dim", "8", "--tau", "3", "--parallel", "--job-size", "8"})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "matches brute-force linear scan")
}

func TestRunCmd_NASADataset(t *testing.T) {
	cmd := newRunCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--dataset", "nasa", "--ref-points", "3", "--tau", "1.5"})

	err := cmd.Execute()
	require.NoError(t, err)
}

func TestRunCmd_UnknownDataset(t *testing.T) {
	cmd := newRunCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--dataset", "bogus"})

	err := cmd.Execute()
	assert.Error(t, err)
}

func TestRootCmd_RunIsRegistered(t *testing.T) {
	root := NewRootCmd()
	runCmd, _, err := root.Find([]string{"run"})
	require.NoError(t, err)
	assert.Equal(t, "run", runCmd.Name())
}
