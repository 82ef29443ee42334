package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// fakeBridge is a host bridge with one local actor, "Aria", in every ordinary slot.
type fakeBridge struct {
	mu       sync.Mutex
	skinPath string
	calls    map[string]int
}

func newFakeBridge(t *testing.T) (*fakeBridge, string) {
	t.Helper()

	skin := filepath.Join(t.TempDir(), "mods", "skin.tex")
	require.NoError(t, os.MkdirAll(filepath.Dir(skin), 0o755))
	require.NoError(t, os.WriteFile(skin, []byte("texture bytes"), 0o644))

	bridge := &fakeBridge{skinPath: skin, calls: map[string]int{}}
	server := httptest.NewServer(bridge)
	t.Cleanup(server.Close)
	return bridge, server.URL
}

func (b *fakeBridge) count(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[path]
}

func (b *fakeBridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.calls[r.URL.Path]++
	b.mu.Unlock()

	var req struct {
		Slot int `json:"slot"`
	}
	if r.Method == http.MethodPost {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	reply := func(body any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}

	switch r.URL.Path {
	case "/capabilities":
		reply(map[string]bool{"fileRedirection": true, "equipment": true, "boneScaling": true})
	case "/actors/slot":
		if req.Slot >= 200 {
			reply(map[string]any{"found": false})
			return
		}
		reply(map[string]any{"found": true, "actor": map[string]any{"slot": req.Slot, "address": 100 + req.Slot, "name": "Aria", "kind": "player"}})
	case "/actors/primary":
		reply(map[string]any{"found": true, "actor": map[string]any{"slot": 0, "address": 100, "name": "Aria", "kind": "player"}})
	case "/redirection/resource-paths":
		reply(map[string]any{"paths": map[string][]string{
			b.skinPath:               {"chara/human/c0101/skin.tex"},
			"chara/vanilla/body.mdl": {"chara/vanilla/body.mdl"},
		}})
	case "/redirection/meta":
		reply(map[string]any{"manipulations": "manip-1"})
	case "/equipment/state":
		reply(map[string]any{"state": "glamour-1"})
	case "/scaling/profile":
		reply(map[string]any{"profile": `{"Bones":{"n_root":1.1}}`})
	case "/scaling/apply":
		reply(map[string]any{"sessionId": "scale-1"})
	case "/events/poll":
		reply(map[string]any{"events": []any{}})
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func TestVersionCommand(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestListEmptyLibrary(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "records: 0")
}

func TestListRejectsUnknownOutput(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "", "list", "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestCaptureThenListAndShow(t *testing.T) {
	home := t.TempDir()
	_, url := newFakeBridge(t)

	stdout, _, err := executeCLI(t, home, url, "capture", "--slot", "0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "created Aria: 1 files stored")

	stdout, _, err = executeCLI(t, home, url, "capture", "--slot", "0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "updated Aria")
	assert.Contains(t, stdout, "equipment unchanged, scale unchanged")

	stdout, _, err = executeCLI(t, home, url, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "records: 1")
	assert.Contains(t, stdout, "history: 1 equipment, 1 scale")

	stdout, _, err = executeCLI(t, home, url, "show", "Aria", "--output", "json")
	require.NoError(t, err)
	var view recordView
	require.NoError(t, json.Unmarshal([]byte(stdout), &view))
	assert.Equal(t, "Aria", view.Name)
	assert.Len(t, view.FileReplacements, 1)
	require.Len(t, view.Equipment, 1)
	assert.Equal(t, "Initial snapshot", view.Equipment[0].Description)
	require.Len(t, view.Scale, 1)
	assert.True(t, view.Scale[0].HasTemplate)
}

func TestHistoryEditShowsInYAML(t *testing.T) {
	home := t.TempDir()
	_, url := newFakeBridge(t)

	_, _, err := executeCLI(t, home, url, "capture")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, url, "history", "edit", "Aria", "equipment", "0", "beach day")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, url, "show", "Aria", "-o", "yaml")
	require.NoError(t, err)
	var view recordView
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &view))
	assert.Equal(t, "beach day", view.Equipment[0].Description)

	_, _, err = executeCLI(t, home, url, "history", "delete", "Aria", "hairstyle", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown history")
}

func TestApplyThenRevert(t *testing.T) {
	home := t.TempDir()
	bridge, url := newFakeBridge(t)

	_, _, err := executeCLI(t, home, url, "capture")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, url, "apply", "Aria", "--slot", "3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "applied Aria to slot 3: 1 files (0 missing), equipment entry 0, scale entry 0")
	assert.Equal(t, 1, bridge.count("/redirection/overrides/set"))
	assert.Equal(t, 1, bridge.count("/equipment/apply"))
	assert.Equal(t, 1, bridge.count("/scaling/apply"))

	stdout, _, err = executeCLI(t, home, url, "revert", "3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "reverted slot 3")
	assert.Equal(t, 1, bridge.count("/equipment/revert"))
}

func TestApplyUnknownRecord(t *testing.T) {
	home := t.TempDir()
	_, url := newFakeBridge(t)

	_, _, err := executeCLI(t, home, url, "apply", "Nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot record not found")
}

func TestRenameAndDelete(t *testing.T) {
	home := t.TempDir()
	_, url := newFakeBridge(t)

	_, _, err := executeCLI(t, home, url, "capture")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, url, "rename", "Aria", "Aria-old")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, url, "list", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"name": "Aria-old"`)
	assert.Contains(t, stdout, `"source_actor": "Aria"`)

	_, _, err = executeCLI(t, home, url, "delete", "Aria-old")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, url, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "records: 0")
}

func TestExportImportRoundTrip(t *testing.T) {
	home := t.TempDir()
	_, url := newFakeBridge(t)

	_, _, err := executeCLI(t, home, url, "capture")
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "aria.asnap")
	_, _, err = executeCLI(t, home, url, "export", "Aria", out)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, url, "import", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "imported aria (1 game paths)")

	_, _, err = executeCLI(t, home, url, "import", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	modpack := filepath.Join(t.TempDir(), "aria.pmp")
	_, _, err = executeCLI(t, home, url, "export-modpack", "Aria", modpack)
	require.NoError(t, err)
	info, err := os.Stat(modpack)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExportMissingRecordLeavesNoFile(t *testing.T) {
	home := t.TempDir()

	out := filepath.Join(t.TempDir(), "nobody.asnap")
	_, _, err := executeCLI(t, home, "", "export", "Nobody", out)
	require.Error(t, err)

	_, statErr := os.Stat(out)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestMigrateWithNothingToDo(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "", "migrate", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, stdout, "all snapshot records are up to date")
}

func TestWatchHoldsAndReleasesSessions(t *testing.T) {
	home := t.TempDir()
	bridge, url := newFakeBridge(t)

	_, _, err := executeCLI(t, home, url, "capture")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, url, "watch", "--ticks", "2", "--skip-migrate", "--apply", "Aria:3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sessions: 1")
	assert.Contains(t, stdout, "released 1 sessions")
	assert.Equal(t, 2, bridge.count("/events/poll"))
	assert.Equal(t, 1, bridge.count("/scaling/revert"))
	assert.Equal(t, 1, bridge.count("/equipment/revert"))
}

func TestWatchRejectsBadApplySpec(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "", "watch", "--apply", "Aria")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want <record>:<slot>")
}

func TestConfigSetThenShow(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "", "config", "set", "merge_collection", "Base")
	require.NoError(t, err)
	assert.Contains(t, stdout, "set merge_collection")

	stdout, _, err = executeCLI(t, home, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "merge_collection = 'Base'")
	assert.Contains(t, stdout, "[bridge]")
}

func TestMetricsFileIsWritten(t *testing.T) {
	home := t.TempDir()
	_, url := newFakeBridge(t)

	metrics := filepath.Join(t.TempDir(), "asnap.prom")
	_, _, err := executeCLI(t, home, url, "capture", "--metrics-file", metrics)
	require.NoError(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `asnap_captures_total{result="success"} 1`)
}

// executeCLI runs the root command against an isolated home. An empty bridgeURL
// points at a closed port so every collaborator is absent.
func executeCLI(t *testing.T, home, bridgeURL string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("ASNAP_CONFIG", "")
	t.Setenv("ASNAP_WORKING_DIR", filepath.Join(home, "snapshots"))
	t.Setenv("ASNAP_LOG_LEVEL", "error")
	t.Setenv("ASNAP_BRIDGE_TICK", "5ms")
	if bridgeURL == "" {
		bridgeURL = "http://127.0.0.1:1"
	}
	t.Setenv("ASNAP_BRIDGE_URL", bridgeURL)

	root := newRootCmd()
	stdout := &strings.Builder{}
	stderr := &strings.Builder{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
