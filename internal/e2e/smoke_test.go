package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeLegacyFixture(home))

	stdout, stderr, err := runAsnap(t, binaryPath, home, "migrate", "--quiet")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "migrated Aria: 1 files, 1 game paths, 0 missing")
	assert.Contains(t, stdout, "backup: ")

	stdout, stderr, err = runAsnap(t, binaryPath, home, "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "records: 1")
	assert.Contains(t, stdout, "Aria")

	stdout, stderr, err = runAsnap(t, binaryPath, home, "migrate", "--quiet")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "all snapshot records are up to date")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "asnap-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/asnap")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build asnap binary: %s", string(output))
	return binaryPath
}

func runAsnap(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"XDG_CONFIG_HOME="+filepath.Join(home, ".config"),
		"ASNAP_WORKING_DIR="+workingDir(home),
		"ASNAP_BRIDGE_URL=http://127.0.0.1:1",
		"ASNAP_LOG_LEVEL=error",
	)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func workingDir(home string) string {
	return filepath.Join(home, "snapshots")
}

func writeLegacyFixture(home string) error {
	recordDir := filepath.Join(workingDir(home), "Aria")
	if err := os.MkdirAll(recordDir, 0o755); err != nil {
		return err
	}

	record := `{
  "SourceActor": "Aria",
  "FileReplacements": {"tex1.tex": ["chara/human/c0101/obj/body/b0001/texture/skin.tex"]},
  "GlamourerString": "glamour-legacy",
  "CustomizeData": "",
  "ManipulationString": "manip-legacy"
}`
	if err := os.WriteFile(filepath.Join(recordDir, "snapshot.json"), []byte(record), 0o644); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(recordDir, "tex1.tex"), []byte("legacy texture"), 0o644)
}
