package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/mindwell/internal/config"
	"github.com/jonathan/mindwell/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"serve", "migrate", "seed", "token", "validate"} {
		assert.Contains(t, names, want)
	}
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		doc     string
		wantErr bool
		wantOut string
	}{
		{"scene passes", "scene", `{"elements":[{"type":"text","text":"hi"}]}`, false, "Validation passed"},
		{"full schema name", "scene.schema.json", `{"elements":[]}`, false, "Validation passed"},
		{"scene missing elements", "scene", `{"appState":{}}`, true, "Validation failed"},
		{"quiz questions pass", "quiz_questions", `[{"id":"q1","text":"How?","type":"scale","maxValue":3}]`, false, "Validation passed"},
		{"quiz choice without options", "quiz_questions", `[{"id":"q1","text":"Pick","type":"checkbox"}]`, true, "Validation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "validate", "--schema", tt.schema, "--json", writeJSON(t, tt.doc))
			if tt.wantErr {
				assert.ErrorIs(t, err, errValidationFailed)
			} else {
				assert.NoError(t, err)
			}
			assert.Contains(t, out, tt.wantOut)
		})
	}
}

func TestValidateCommand_Errors(t *testing.T) {
	_, err := execute(t, "validate", "--json", "doc.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")

	_, err = execute(t, "validate", "--schema", "scene", "--json", "nonexistent.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = execute(t, "validate", "--schema", "job_profile", "--json", writeJSON(t, `{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("JWT_PUBLIC_KEY", "")
	t.Setenv("JWT_ISSUER", "")

	out, err := execute(t, "token", "--user", "user_42", "--email", "sam@example.com", "--hours", "2")
	require.NoError(t, err)

	jwtService, err := server.NewJWTService(&config.AuthConfig{Secret: testSecret})
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "user_42", claims.GetUserID())
	assert.Equal(t, "sam@example.com", claims.GetEmail())
}

func TestTokenCommand_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_PUBLIC_KEY", "")

	_, err := execute(t, "token")
	assert.Error(t, err)
}

func TestMigrateCommand_Print(t *testing.T) {
	out, err := execute(t, "migrate", "--print")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS user_profiles")
}

func TestMigrateCommand_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := execute(t, "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestSeedCatalog(t *testing.T) {
	books, videos := seedBooks(), seedVideos()
	assert.Len(t, books, 5)
	assert.Len(t, videos, 5)

	seen := make(map[string]bool)
	for _, v := range videos {
		assert.Len(t, v.YouTubeID, 11, v.Title)
		assert.False(t, seen[v.YouTubeID], "duplicate video %s", v.YouTubeID)
		seen[v.YouTubeID] = true
		require.NotNil(t, v.ThumbnailURL)
		assert.Contains(t, *v.ThumbnailURL, v.YouTubeID)
	}
	for _, b := range books {
		assert.NotEmpty(t, b.Title)
		assert.NotEmpty(t, b.Author)
	}
}

func TestLoadServerConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/mindwell")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("JWT_PUBLIC_KEY", "")
	t.Setenv("PORT", "5050")
	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := loadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, 5050, cfg.Server.Port)
	assert.False(t, cfg.AI.Enabled())
	assert.NotNil(t, cfg.Content)
}
