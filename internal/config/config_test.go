package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/cosmofactory/internal/foundation/errors"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
}

func TestLoad_Valid(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{
  "files": {"package.json": "./", "README.md": "docs/README.md", "LICENSE": "./"},
  "tailwind": false,
  "exclude": {"extensions": [".stories.tsx"]}
}`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.False(t, cfg.Tailwind)
	require.False(t, cfg.Strict)
	require.Equal(t, AliasFallbackFirstExisting, cfg.AliasFallback)
	require.Equal(t, []string{".stories.tsx"}, cfg.Exclude.Extensions)
	require.Equal(t, FileMap{
		{Source: "package.json", Destination: "./"},
		{Source: "README.md", Destination: "docs/README.md"},
		{Source: "LICENSE", Destination: "./"},
	}, cfg.Files)
}

func TestLoad_OptionalFields(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{
  "files": {},
  "tailwind": true,
  "exclude": {"extensions": [], "patterns": ["**/__tests__/**"]},
  "strict": true,
  "aliasFallback": "First"
}`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.True(t, cfg.Strict)
	require.Equal(t, AliasFallbackFirst, cfg.AliasFallback)
	require.Equal(t, []string{"**/__tests__/**"}, cfg.Exclude.Patterns)
	require.Equal(t, 0, cfg.Files.Len())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrConfigNotFound))
	require.True(t, ferrors.HasSeverity(err, ferrors.SeverityInfo))
	require.Contains(t, err.Error(), "run 'init' command to create it")
}

func TestParse_ShapeErrors(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want string
	}{
		"missing files":      {`{"tailwind": true, "exclude": {"extensions": []}}`, "files: required"},
		"missing tailwind":   {`{"files": {}, "exclude": {"extensions": []}}`, "tailwind: required"},
		"missing exclude":    {`{"files": {}, "tailwind": true}`, "exclude: required"},
		"missing extensions": {`{"files": {}, "tailwind": true, "exclude": {}}`, "exclude.extensions: required"},
		"wrong tailwind":     {`{"files": {}, "tailwind": "yes", "exclude": {"extensions": []}}`, "tailwind"},
		"non-string dest":    {`{"files": {"a": 1}, "tailwind": true, "exclude": {"extensions": []}}`, `destination for "a" must be a string`},
		"files array":        {`{"files": [], "tailwind": true, "exclude": {"extensions": []}}`, "expected an object"},
		"unknown field":      {`{"files": {}, "tailwind": true, "exclude": {"extensions": []}, "bundle": true}`, "unknown field"},
		"bad fallback":       {`{"files": {}, "tailwind": true, "exclude": {"extensions": []}, "aliasFallback": "last"}`, "invalid aliasFallback"},
		"malformed":          {`{"files": `, "unexpected EOF"},
		"trailing data":      {`{"files": {}, "tailwind": true, "exclude": {"extensions": []}} {}`, "unexpected data"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.Error(t, err)
			require.ErrorIs(t, err, ErrInvalidConfig)
			require.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParse_ReportsAllProblems(t *testing.T) {
	_, err := Parse([]byte(`{}`))
	require.Error(t, err)
	classified, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	problems, _ := classified.Context().Get("problems")
	require.Equal(t, []string{"files: required", "tailwind: required", "exclude: required"}, problems)
}

func TestLoad_ExpandsEnvironmentFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("COSMOFACTORY_TEST_DOCS=guides\n"), 0o644))
	writeConfig(t, dir, `{"files": {"README.md": "${COSMOFACTORY_TEST_DOCS}/"}, "tailwind": false, "exclude": {"extensions": []}}`)
	t.Cleanup(func() { _ = os.Unsetenv("COSMOFACTORY_TEST_DOCS") })

	cfg, err := Load(dir)
	require.NoError(t, err)
	dest, ok := cfg.Files.Get("README.md")
	require.True(t, ok)
	require.Equal(t, "guides/", dest)
}

func TestLoad_KeepsLiteralDollarPaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("COSMOFACTORY_TEST_SET", "out")
	writeConfig(t, dir, `{"files": {
  "assets/$icons/logo.svg": "./",
  "${COSMOFACTORY_TEST_UNSET}/a.txt": "${COSMOFACTORY_TEST_SET}/$HOME/"
}, "tailwind": false, "exclude": {"extensions": []}}`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, FileMap{
		{Source: "assets/$icons/logo.svg", Destination: "./"},
		{Source: "${COSMOFACTORY_TEST_UNSET}/a.txt", Destination: "out/$HOME/"},
	}, cfg.Files)
}

func TestFileMap_SetKeepsOrder(t *testing.T) {
	m := FileMap{}.Set("a", "1").Set("b", "2").Set("a", "3")
	require.Equal(t, FileMap{{"a", "3"}, {"b", "2"}}, m)

	data, err := m.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `{"a":"3","b":"2"}`, string(data))
	require.Equal(t, `{"a":"3","b":"2"}`, string(data))
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	path, err := Init(dir, false, nil)
	require.NoError(t, err)
	require.Equal(t, Path(dir), path)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, Default().Files, cfg.Files)
	require.True(t, cfg.Tailwind)

	t.Run("existing without confirm fails", func(t *testing.T) {
		_, err := Init(dir, false, nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "already exists")
	})

	t.Run("declined keeps file", func(t *testing.T) {
		writeConfig(t, dir, `{"files": {}, "tailwind": false, "exclude": {"extensions": []}}`)
		asked := ""
		_, err := Init(dir, false, func(q string) (bool, error) { asked = q; return false, nil })
		require.ErrorIs(t, err, ErrInitDeclined)
		require.Contains(t, asked, "do you want to override it")
		cfg, err := Load(dir)
		require.NoError(t, err)
		require.False(t, cfg.Tailwind)
	})

	t.Run("accepted overwrites", func(t *testing.T) {
		_, err := Init(dir, false, func(string) (bool, error) { return true, nil })
		require.NoError(t, err)
		cfg, err := Load(dir)
		require.NoError(t, err)
		require.True(t, cfg.Tailwind)
	})

	t.Run("force skips confirmation", func(t *testing.T) {
		_, err := Init(dir, true, func(string) (bool, error) { t.Fatal("confirm called"); return false, nil })
		require.NoError(t, err)
	})
}
