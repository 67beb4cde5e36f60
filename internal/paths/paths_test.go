package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"a/.":     "a",
		"a/":      "a",
		"a":       "a",
		"a/./":    "a",
		"a//":     "a",
		"./dist/": "./dist",
		"./":      ".",
		"a/..":    "a/..",
		"":        "",
	}
	for in, want := range cases {
		require.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"a/.", "a/", "a/./", "a//./", "./", ".", "x/y.ts/", "dist/./.", "/"}
	for _, in := range inputs {
		once := Normalize(in)
		require.Equal(t, once, Normalize(once), "Normalize not idempotent for %q", in)
	}
}

func TestIsFile(t *testing.T) {
	require.True(t, IsFile("a/b.ts"))
	require.False(t, IsFile("a/b"))
	require.False(t, IsFile("a/b."))
	require.True(t, IsFile("package.json"))
	require.True(t, IsFile("docs/README.md/"))
	require.False(t, IsFile("./dist/./"))
	require.False(t, IsFile("./dist"))
	require.False(t, IsFile("."))
}

func TestStandardize(t *testing.T) {
	require.Equal(t, "./", Standardize(""))
	require.Equal(t, "./", Standardize("."))
	require.Equal(t, "x/", Standardize("x"))
	require.Equal(t, "x/", Standardize("x/"))
	require.Equal(t, "./src/", Standardize("./src"))
}

func TestEnsureRelativePrefix(t *testing.T) {
	require.Equal(t, "./utils/", EnsureRelativePrefix("utils/"))
	require.Equal(t, "./utils/", EnsureRelativePrefix("./utils/"))
	require.Equal(t, "./../x", EnsureRelativePrefix("../x"))
}

func TestToWriteDescriptor(t *testing.T) {
	require.Equal(t, WriteDescriptor{Directory: "a/b", FileName: "c.ts"}, ToWriteDescriptor("a/b/c.ts"))
	require.Equal(t, WriteDescriptor{Directory: "a/b"}, ToWriteDescriptor("a/b"))
	require.Equal(t, WriteDescriptor{Directory: "a/b"}, ToWriteDescriptor("a/b/."))
	require.Equal(t, WriteDescriptor{Directory: "", FileName: "c.ts"}, ToWriteDescriptor("c.ts"))

	d := ToWriteDescriptor("./dist/./")
	require.True(t, d.IsDirectory())
	require.Equal(t, "./dist/package.json", d.Target("package.json"))

	f := ToWriteDescriptor("dist/docs/README.md")
	require.False(t, f.IsDirectory())
	require.Equal(t, "dist/docs/README.md", f.Target("ignored.md"))
}

func TestDepth(t *testing.T) {
	root := filepath.Join("tmp", "dist")
	cases := []struct {
		file string
		want int
	}{
		{filepath.Join(root, "index.js"), 0},
		{filepath.Join(root, "a", "index.js"), 1},
		{filepath.Join(root, "a", "b", "file.js"), 2},
	}
	for _, c := range cases {
		got, err := Depth(root, c.file)
		require.NoError(t, err)
		require.Equal(t, c.want, got, c.file)
	}
	require.Equal(t, "", DepthPrefix(0))
	require.Equal(t, "../../", DepthPrefix(2))
}
