package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/cosmofactory/internal/config"
	ferrors "git.home.luguber.info/inful/cosmofactory/internal/foundation/errors"
)

func touch(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolve_FileDestination(t *testing.T) {
	project := t.TempDir()
	touch(t, filepath.Join(project, "README.md"), "# hi")
	dist := filepath.Join(project, "dist")

	ops, err := Resolver{ProjectDir: project, DistDir: dist}.Resolve(config.FileMap{{Source: "README.md", Destination: "docs/README.md"}})
	require.NoError(t, err)
	require.Equal(t, []CopyOperation{{
		Source:      filepath.Join(project, "README.md"),
		Destination: filepath.Join(dist, "docs", "README.md"),
	}}, ops)
}

func TestResolve_DirectoryDestinationKeepsBaseName(t *testing.T) {
	project := t.TempDir()
	touch(t, filepath.Join(project, "README.md"), "# hi")
	dist := filepath.Join(project, "dist")

	ops, err := Resolver{ProjectDir: project, DistDir: dist}.Resolve(config.FileMap{{Source: "README.md", Destination: "docs/"}})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dist, "docs", "README.md"), ops[0].Destination)
}

func TestResolve_RelativeDistDir(t *testing.T) {
	project := t.TempDir()
	touch(t, filepath.Join(project, "package.json"), "{}")

	ops, err := Resolver{ProjectDir: project, DistDir: "./dist"}.Resolve(config.FileMap{{Source: "package.json", Destination: "./"}})
	require.NoError(t, err)
	require.Equal(t, filepath.Join("dist", "package.json"), ops[0].Destination)
}

func TestResolve_MissingSourceAbortsBeforeCopy(t *testing.T) {
	project := t.TempDir()
	touch(t, filepath.Join(project, "a.txt"), "a")
	dist := filepath.Join(project, "dist")
	files := config.FileMap{
		{Source: "a.txt", Destination: "./"},
		{Source: "missing.txt", Destination: "./"},
	}

	ops, err := Resolver{ProjectDir: project, DistDir: dist}.Resolve(files)
	require.Error(t, err)
	require.Nil(t, ops)
	require.ErrorIs(t, err, ErrSourceNotFound)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryBuild))
	require.Contains(t, err.Error(), "Source missing.txt does not exist")

	_, statErr := os.Stat(dist)
	require.True(t, os.IsNotExist(statErr), "nothing may be copied when a source is missing")
}

func TestExecute_CopiesFilesAndDirectories(t *testing.T) {
	project := t.TempDir()
	touch(t, filepath.Join(project, "package.json"), `{"name":"lib"}`)
	touch(t, filepath.Join(project, "assets", "logo.svg"), "<svg/>")
	touch(t, filepath.Join(project, "assets", "fonts", "a.woff"), "font")
	dist := filepath.Join(project, "dist")
	touch(t, filepath.Join(dist, "package.json"), "stale")

	r := Resolver{ProjectDir: project, DistDir: dist}
	ops, err := r.Resolve(config.FileMap{
		{Source: "package.json", Destination: "./"},
		{Source: "assets", Destination: "static"},
		{Source: "package.json", Destination: "meta/pkg.json"},
	})
	require.NoError(t, err)
	require.NoError(t, Execute(ops))

	data, err := os.ReadFile(filepath.Join(dist, "package.json"))
	require.NoError(t, err)
	require.Equal(t, `{"name":"lib"}`, string(data))

	require.FileExists(t, filepath.Join(dist, "static", "assets", "logo.svg"))
	require.FileExists(t, filepath.Join(dist, "static", "assets", "fonts", "a.woff"))
	require.FileExists(t, filepath.Join(dist, "meta", "pkg.json"))
}

func TestMergeAssets(t *testing.T) {
	files := config.FileMap{{Source: "package.json", Destination: "./"}}
	merged := MergeAssets(files, []string{"src/components/button.css", "./src/theme.css"})

	require.Equal(t, config.FileMap{
		{Source: "package.json", Destination: "./"},
		{Source: "src/components/button.css", Destination: "components/button.css"},
		{Source: "./src/theme.css", Destination: "theme.css"},
	}, merged)
	require.Len(t, files, 1, "input map must not be modified")
}

func TestMergeAssets_CopiesIntoMirroredLayout(t *testing.T) {
	project := t.TempDir()
	touch(t, filepath.Join(project, "src", "components", "button.css"), ".btn{}")
	dist := filepath.Join(project, "dist")

	files := MergeAssets(nil, []string{"src/components/button.css"})
	ops, err := Resolver{ProjectDir: project, DistDir: dist}.Resolve(files)
	require.NoError(t, err)
	require.NoError(t, Execute(ops))
	require.FileExists(t, filepath.Join(dist, "components", "button.css"))
}
