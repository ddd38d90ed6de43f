package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/addressbook/internal/logging"
	"github.com/mesh-intelligence/addressbook/internal/paths"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// testEnv holds isolated config and data directories for one test.
type testEnv struct {
	t         *testing.T
	configDir string
	dataDir   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv(logging.EnvLevel, "")
	t.Setenv(logging.EnvFormat, "")
	t.Setenv(paths.EnvDataDir, "")
	t.Setenv(paths.EnvConfigDir, "")
	root := t.TempDir()
	return &testEnv{
		t:         t,
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

// run executes the CLI with the env's directories and returns stdout.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))
	err := root.Execute()
	return stdout.String(), err
}

// mustRun executes the CLI and fails the test on error.
func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, "addressbook %v", args)
	return out
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun("version")
	assert.Contains(t, out, "addressbook v")
	assert.Contains(t, out, "github.com/mesh-intelligence/addressbook")
}

func TestInit(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("init")
	assert.Contains(t, out, "Address book initialized")

	data, err := os.ReadFile(filepath.Join(env.configDir, paths.ConfigFileName))
	require.NoError(t, err)
	var cfg configFile
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, types.BackendSQLite, cfg.Backend)
	assert.Equal(t, env.dataDir, cfg.DataDir)

	_, err = os.Stat(filepath.Join(env.dataDir, "contacts.jsonl"))
	assert.NoError(t, err)

	// Idempotent.
	env.mustRun("init")
}

func TestConfigDataDirUsedWithoutFlag(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	configured := filepath.Join(t.TempDir(), "from-config")
	require.NoError(t, os.WriteFile(
		filepath.Join(env.configDir, paths.ConfigFileName),
		[]byte("backend: sqlite\ndata_dir: "+configured+"\n"), 0o644))

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--config-dir", env.configDir, "add", "John", "1234567890"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(configured, "contacts.jsonl"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":"John"`)
}

func TestUnknownBackendIsUserError(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(env.configDir, paths.ConfigFileName),
		[]byte("backend: postgres\n"), 0o644))

	_, err := env.run("show")
	require.ErrorIs(t, err, types.ErrBackendUnknown)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestContactScenario(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun("add", "John", "1234567890", "5555555555")
	env.mustRun("add", "Jane", "9876543210")

	out := env.mustRun("show")
	assert.Equal(t,
		"Contact [John] has phones:\n => 1234567890\n => 5555555555\n"+
			"Contact [Jane] has phones:\n => 9876543210\n",
		out)

	out = env.mustRun("phone", "edit", "John", "1234567890", "1112223333")
	assert.Equal(t, "Contact name: John, phones: 1112223333; 5555555555\n", out)

	out = env.mustRun("phone", "find", "John", "5555555555")
	assert.Equal(t, "John: 5555555555\n", out)

	env.mustRun("delete", "Jane")
	_, err := env.run("delete", "Jane")
	require.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, exitUserError, exitCode(err))

	out = env.mustRun("show")
	assert.Equal(t, "Contact [John] has phones:\n => 1112223333\n => 5555555555\n", out)
}

func TestAddDuplicateNameUnchanged(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("add", "John", "1234567890")

	out := env.mustRun("add", "John", "5555555555")
	assert.Contains(t, out, "already exists")

	out = env.mustRun("show", "John")
	assert.Equal(t, "Contact name: John, phones: 1234567890\n", out)
}

func TestAddValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("add", "")
	require.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, exitUserError, exitCode(err))

	_, err = env.run("add", "John", "12345")
	require.ErrorIs(t, err, types.ErrValidation)

	out := env.mustRun("show")
	assert.Empty(t, out, "failed adds must not create records")
}

func TestPhoneCommands(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("add", "John")

	out := env.mustRun("phone", "add", "John", "1234567890")
	assert.Equal(t, "Contact name: John, phones: 1234567890\n", out)
	env.mustRun("phone", "add", "John", "1234567890")

	out = env.mustRun("phone", "remove", "John", "0000000000")
	assert.Equal(t, "Contact name: John, phones: 1234567890\n", out, "removing a missing phone is a no-op")

	out = env.mustRun("phone", "remove", "John", "1234567890")
	assert.Equal(t, "Contact name: John, phones: []\n", out)

	out = env.mustRun("phone", "find", "John", "1234567890")
	assert.Equal(t, "John: not found\n", out)

	_, err := env.run("phone", "edit", "John", "0000000000", "1112223333")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = env.run("phone", "edit", "John", "0000000000", "bad")
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = env.run("phone", "add", "Nobody", "1234567890")
	assert.ErrorIs(t, err, types.ErrRecordNotFound)

	_, err = env.run("phone", "add", "John")
	assert.Error(t, err)
}

func TestShowJSON(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("add", "John", "1234567890")
	env.mustRun("add", "Empty")

	out := env.mustRun("--json", "show")
	var contacts []contactJSON
	require.NoError(t, json.Unmarshal([]byte(out), &contacts))
	require.Len(t, contacts, 2)
	assert.Equal(t, "John", contacts[0].Name)
	assert.Equal(t, []string{"1234567890"}, contacts[0].Phones)
	assert.NotEmpty(t, contacts[0].ContactID)
	assert.Equal(t, []string{}, contacts[1].Phones)

	out = env.mustRun("--json", "show", "John")
	var one contactJSON
	require.NoError(t, json.Unmarshal([]byte(out), &one))
	assert.Equal(t, contacts[0], one)
}

func TestLookup(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("add", "John", "1234567890", "5555555555")
	env.mustRun("add", "Jane", "5555555555")

	out := env.mustRun("lookup", "5555555555")
	assert.Equal(t, "John\nJane\n", out)

	out = env.mustRun("lookup", "0000000000")
	assert.Contains(t, out, "No contact")

	out = env.mustRun("--json", "lookup", "0000000000")
	assert.JSONEq(t, "[]", out)

	_, err := env.run("lookup", "123")
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitUserError, exitCode(types.ErrRecordNotFound))
	assert.Equal(t, exitUserError, exitCode(errors.New("unknown command")))
	assert.Equal(t, exitSysError, exitCode(systemError("save contacts", errors.New("disk full"))))
}
