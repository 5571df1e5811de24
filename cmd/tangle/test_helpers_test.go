package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	dataRoot   string
	outputDir  string
	logDir     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:   base,
		dataRoot:  filepath.Join(base, "data"),
		outputDir: filepath.Join(base, "outputs"),
		logDir:    filepath.Join(base, "logs"),
	}

	for _, dir := range []string{env.dataRoot, env.outputDir, env.logDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	env.configPath = filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
data_root = %q
output_dir = %q
log_dir = %q
external_dir = %q

[run]
simulate_if_missing = true
tool_timeout = 5
threshold = 0.5
locale = "en"

[logging]
format = "json"
level = "info"
`, env.dataRoot, env.outputDir, env.logDir, filepath.Join(base, "external"))
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

// populateDataRoot lays down the five expected input folders so every
// pipeline can synthesize successfully.
func (e *cliTestEnv) populateDataRoot(t *testing.T) {
	t.Helper()
	dirs := []string{
		filepath.Join(e.dataRoot, "MRI_PET_ADNI"),
		filepath.Join(e.dataRoot, "EEG_LEAD"),
		filepath.Join(e.dataRoot, "ADNI_full"),
		filepath.Join(e.dataRoot, "ADNI_full", "TADPOLE_raw"),
		filepath.Join(e.dataRoot, "Proteomics"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	raw := filepath.Join(e.dataRoot, "Proteomics", "proteomics_raw.csv")
	if err := os.WriteFile(raw, []byte("id,value\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", raw, err)
	}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
