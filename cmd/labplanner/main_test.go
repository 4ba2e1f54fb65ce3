package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-labplanner/internal/blob"
	"github.com/askiada/go-labplanner/internal/config"
)

const firstPlan = `name: exp
id: A
constructionFiles:
  - steps:
      - {operation: PCR, output: P, forwardOligo: F, reverseOligo: R, template: T, productSize: 1000}
    sequences:
      T: {sequence: ACGT}
`

const secondPlan = `name: next
prior: exp/inventory/inventory.json
constructionFiles:
  - steps:
      - {operation: PCR, output: P2, forwardOligo: F, reverseOligo: R2, template: T}
`

func setup(t *testing.T) (*config.Config, string) {
	t.Helper()

	cfg := &config.Config{UploadConcurrency: 2}
	cfg.Blob.Driver = string(blob.DriverFilesystem)
	cfg.Blob.Root = t.TempDir()

	return cfg, cfg.Blob.Root
}

func writePlan(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRun(t *testing.T) {
	t.Parallel()

	cfg, root := setup(t)
	logger, hook := test.NewNullLogger()
	dot := filepath.Join(t.TempDir(), "constructs.dot")

	var report bytes.Buffer
	err := run(context.Background(), cfg, logger, []string{"-plan", writePlan(t, firstPlan), "-dot", dot}, &report)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, "exp", "metadata.txt"))
	assert.FileExists(t, filepath.Join(root, "exp", "inventory", "inventory.json"))
	assert.FileExists(t, filepath.Join(root, "exp", "labpacket", "0_exp: PCR.txt"))
	assert.Contains(t, report.String(), "expBox0")

	graph, err := os.ReadFile(dot)
	require.NoError(t, err)
	assert.Contains(t, string(graph), `"F" -> "P" [ label="PCR",`)

	var messages []string
	for _, entry := range hook.AllEntries() {
		messages = append(messages, entry.Message)
	}
	assert.Contains(t, messages, "experiment planned")
	assert.Contains(t, messages, "experiment saved")

	// the second run reuses F from the first box and gets a generated id
	report.Reset()
	err = run(context.Background(), cfg, logger, []string{"-plan", writePlan(t, secondPlan)}, &report)
	require.NoError(t, err)
	assert.Contains(t, report.String(), "nextBox0")
	assert.FileExists(t, filepath.Join(root, "next", "inventory", "1_Box.txt"))

	metadata, err := os.ReadFile(filepath.Join(root, "next", "metadata.txt"))
	require.NoError(t, err)

	lines := strings.Split(string(metadata), "\n")
	require.True(t, strings.HasPrefix(lines[1], "Experiment ID: "))

	id := strings.TrimPrefix(lines[1], "Experiment ID: ")
	assert.Regexp(t, "^[0-9a-f]{8}$", id)

	var logged interface{}
	for _, entry := range hook.AllEntries() {
		if entry.Message == "experiment id generated" {
			logged = entry.Data["id"]
		}
	}
	assert.Equal(t, id, logged)
}

func TestRunFlagOverridesPlan(t *testing.T) {
	t.Parallel()

	cfg, root := setup(t)
	logger, _ := test.NewNullLogger()

	var report bytes.Buffer
	err := run(context.Background(), cfg, logger, []string{"-plan", writePlan(t, firstPlan), "-id", "Z"}, &report)
	require.NoError(t, err)

	metadata, err := os.ReadFile(filepath.Join(root, "exp", "metadata.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(metadata), "Experiment ID: Z\n")
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args func(t *testing.T) []string
	}{
		"no plan": {
			args: func(*testing.T) []string { return nil },
		},
		"unknown flag": {
			args: func(*testing.T) []string { return []string{"-loud"} },
		},
		"missing plan file": {
			args: func(t *testing.T) []string { return []string{"-plan", filepath.Join(t.TempDir(), "none.yaml")} },
		},
		"unknown operation": {
			args: func(t *testing.T) []string {
				return []string{"-plan", writePlan(t, "name: exp\nconstructionFiles:\n  - steps:\n      - {operation: Boil, output: X}\n")}
			},
		},
		"no name": {
			args: func(t *testing.T) []string {
				return []string{"-plan", writePlan(t, "id: A\nconstructionFiles: []\n")}
			},
		},
		"missing prior": {
			args: func(t *testing.T) []string {
				return []string{"-plan", writePlan(t, firstPlan), "-prior", "old/inventory/inventory.json"}
			},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg, _ := setup(t)
			logger, _ := test.NewNullLogger()

			var report bytes.Buffer
			err := run(context.Background(), cfg, logger, tc.args(t), &report)
			require.Error(t, err)
			assert.Zero(t, report.Len())
		})
	}
}
