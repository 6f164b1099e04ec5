// filepath: internal/cli/cli_test.go
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gallerysaver/internal/config"
	"gallerysaver/internal/models"
	"gallerysaver/internal/registry"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newServeTestCommand returns a serve command with global flags registered
// and args parsed, without running it.
func newServeTestCommand(t *testing.T, args ...string) (*cobra.Command, *GlobalOptions) {
	t.Helper()
	opts := &GlobalOptions{}
	cmd := NewServeCommand(opts)
	opts.registerFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, opts
}

func TestConfigPrecedence(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nonexistent.toml")

	t.Run("Defaults", func(t *testing.T) {
		cmd, opts := newServeTestCommand(t, "--config_path", missing)
		require.NoError(t, opts.loadConfig(cmd))

		assert.Equal(t, 8080, opts.Conf.Server.Port)
		assert.Equal(t, "info", opts.Conf.Logging.Level)
		assert.Equal(t, "auto", opts.Conf.Storage.Model)
	})

	t.Run("Environment Overrides Defaults", func(t *testing.T) {
		t.Setenv("GALLERY_SERVER_PORT", "9090")
		t.Setenv("GALLERY_LOGGING_LEVEL", "warn")
		t.Setenv("GALLERY_STORAGE_PENDING_DELETE", "false")

		cmd, opts := newServeTestCommand(t, "--config_path", missing)
		require.NoError(t, opts.loadConfig(cmd))

		assert.Equal(t, 9090, opts.Conf.Server.Port)
		assert.Equal(t, "warn", opts.Conf.Logging.Level)
		require.NotNil(t, opts.Conf.Storage.PendingDelete)
		assert.False(t, *opts.Conf.Storage.PendingDelete)
	})

	t.Run("Flags Override Environment", func(t *testing.T) {
		t.Setenv("GALLERY_SERVER_PORT", "9090")

		cmd, opts := newServeTestCommand(t, "--config_path", missing, "--port", "7070", "--model", "direct")
		require.NoError(t, opts.loadConfig(cmd))

		assert.Equal(t, 7070, opts.Conf.Server.Port)
		assert.Equal(t, "direct", opts.Conf.Storage.Model)
	})

	t.Run("Config File Loading", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := []byte(`
[server]
port = 6060
[logging]
level = "error"
[registry]
pending_ttl = "2h"
`)
		require.NoError(t, os.WriteFile(path, content, 0644))

		cmd, opts := newServeTestCommand(t, "--config_path", path)
		require.NoError(t, opts.loadConfig(cmd))

		assert.Equal(t, 6060, opts.Conf.Server.Port)
		assert.Equal(t, "error", opts.Conf.Logging.Level)
		assert.Equal(t, "2h0m0s", opts.Conf.PendingTTLDuration.String())
		assert.Equal(t, "0.0.0.0", opts.Conf.Server.Host, "unset keys keep their defaults")
	})

	t.Run("Config path from environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "env.toml")
		require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 5050\n"), 0644))
		t.Setenv("GALLERY_CONFIG_PATH", path)

		cmd, opts := newServeTestCommand(t)
		require.NoError(t, opts.loadConfig(cmd))
		assert.Equal(t, 5050, opts.Conf.Server.Port)
	})

	t.Run("Invalid model", func(t *testing.T) {
		cmd, opts := newServeTestCommand(t, "--config_path", missing, "--model", "cloud")
		assert.Error(t, opts.loadConfig(cmd))
	})
}

// runRoot executes the root command with args and returns stdout.
func runRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCMD()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--config_path", filepath.Join(t.TempDir(), "none.toml")))
	err := root.Execute()
	return out.String(), err
}

func TestSaveFileCommand_Direct(t *testing.T) {
	mediaRoot := filepath.Join(t.TempDir(), "media")
	src := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(src, []byte("not really a video"), 0644))

	out, err := runRoot(t, "", "save-file", src, "--model", "direct", "--media-root", mediaRoot, "--video", "--name", "holiday", "--folder", "Trips")
	require.NoError(t, err)

	var res models.SaveResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.IsSuccess)
	require.NotNil(t, res.FilePath)
	assert.True(t, strings.HasPrefix(*res.FilePath, "file://"))

	data, err := os.ReadFile(filepath.Join(mediaRoot, "Movies", "Trips", "holiday.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "not really a video", string(data))
}

func TestSaveFileCommand_RegistryMissingSource(t *testing.T) {
	dir := t.TempDir()
	out, err := runRoot(t, "", "save-file", "/nonexistent/x.jpg",
		"--model", "registry", "--media-root", filepath.Join(dir, "media"), "--registry-path", filepath.Join(dir, "gallery.db"))
	require.NoError(t, err, "a failed save is reported in the result")

	var res models.SaveResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.IsSuccess)
	require.NotNil(t, res.ErrorMessage)
	assert.Equal(t, "/nonexistent/x.jpg does not exist", *res.ErrorMessage)
}

func TestSaveImageCommand_UnreadableInput(t *testing.T) {
	_, err := runRoot(t, "", "save-image", filepath.Join(t.TempDir(), "missing.png"), "--model", "direct")
	assert.Error(t, err)
}

func TestRecoveryCommand_EmptyRegistry(t *testing.T) {
	dir := t.TempDir()
	out, err := runRoot(t, "", "recovery", "--dryrun",
		"--media-root", filepath.Join(dir, "media"), "--registry-path", filepath.Join(dir, "gallery.db"))
	require.NoError(t, err)

	var report models.HousekeepingReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.DryRun)
	assert.Zero(t, report.EntriesFound)
}

func TestRecoveryCommand_UnexpiredNeedsForce(t *testing.T) {
	dir := t.TempDir()
	mediaRoot, dbPath := filepath.Join(dir, "media"), filepath.Join(dir, "gallery.db")

	cfg := config.Default()
	cfg.Storage.MediaRoot = mediaRoot
	cfg.Registry.Path = dbPath
	require.NoError(t, cfg.ParseAndValidate())
	reg, err := openRegistry(context.Background(), cfg)
	require.NoError(t, err)
	now := time.Now()
	expires := now.Add(time.Hour)
	locator, err := reg.Insert(context.Background(), models.EntryValues{
		Collection:   models.CollectionImages,
		DisplayName:  "inflight.png",
		RelativePath: "Pictures",
		DateAdded:    now,
		DateModified: now,
		DateExpires:  &expires,
		IsPending:    true,
	})
	require.NoError(t, err)
	require.NoError(t, reg.Close())

	flags := []string{"--media-root", mediaRoot, "--registry-path", dbPath}
	decode := func(out string) models.HousekeepingReport {
		var report models.HousekeepingReport
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		return report
	}

	out, err := runRoot(t, "", append([]string{"recovery"}, flags...)...)
	require.NoError(t, err)
	assert.Zero(t, decode(out).EntriesFound, "unexpired entries are left alone without --force")

	out, err = runRoot(t, "", append([]string{"recovery", "--dryrun"}, flags...)...)
	require.NoError(t, err)
	assert.Equal(t, 1, decode(out).EntriesFound)

	out, err = runRoot(t, "", append([]string{"recovery", "--force"}, flags...)...)
	require.NoError(t, err)
	report := decode(out)
	assert.Equal(t, 1, report.EntriesFound)
	assert.Equal(t, 1, report.EntriesDeleted)

	reg, err = openRegistry(context.Background(), cfg)
	require.NoError(t, err)
	defer reg.Close()
	_, err = reg.Get(context.Background(), locator)
	assert.ErrorIs(t, err, registry.ErrNotFound)
}

func TestMigrateCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "gallery.db")
	_, err := runRoot(t, "", "migrate", "up", "--registry-path", dbPath)
	require.NoError(t, err)
	_, err = runRoot(t, "", "migrate", "status", "--registry-path", dbPath)
	require.NoError(t, err)
}

func TestTokenCommand(t *testing.T) {
	t.Run("Requires a secret", func(t *testing.T) {
		_, err := runRoot(t, "", "token")
		assert.Error(t, err)
	})

	t.Run("Issues a token", func(t *testing.T) {
		t.Setenv("GALLERY_AUTH_SECRET", "test-secret")
		out, err := runRoot(t, "", "token", "--subject", "camera-app")
		require.NoError(t, err)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.NotEmpty(t, resp["access_token"])
		assert.NotEmpty(t, resp["expires_at"])
	})
}

func TestHashPasswordCommand(t *testing.T) {
	out, err := runRoot(t, "s3cret\n", "hash-password")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))

	_, err = runRoot(t, "\n", "hash-password")
	assert.Error(t, err)
}

func TestGetPassword_Terminal(t *testing.T) {
	origRead, origTerm := readPassword, isTerminal
	defer func() { readPassword, isTerminal = origRead, origTerm }()

	readPassword = func(int) ([]byte, error) { return []byte("typed"), nil }
	isTerminal = func(int) bool { return true }

	prompt := new(bytes.Buffer)
	pw, err := getPassword(os.Stdin, prompt)
	require.NoError(t, err)
	assert.Equal(t, "typed", string(pw))
	assert.Equal(t, "Enter password: \n", prompt.String())
}
