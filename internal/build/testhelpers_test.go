package build

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/cosmofactory/internal/compiler"
	"git.home.luguber.info/inful/cosmofactory/internal/config"
	"git.home.luguber.info/inful/cosmofactory/internal/console"
	"git.home.luguber.info/inful/cosmofactory/internal/metrics"
)

// project is a scratch project directory.
type project struct {
	t   *testing.T
	dir string
}

func newProject(t *testing.T, tsconfig string) *project {
	t.Helper()
	p := &project{t: t, dir: t.TempDir()}
	p.write("tsconfig.json", tsconfig)
	return p
}

func (p *project) write(rel, content string) string {
	p.t.Helper()
	path := filepath.Join(p.dir, filepath.FromSlash(rel))
	require.NoError(p.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(p.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (p *project) read(rel string) string {
	p.t.Helper()
	data, err := os.ReadFile(filepath.Join(p.dir, filepath.FromSlash(rel)))
	require.NoError(p.t, err)
	return string(data)
}

func (p *project) path(rel string) string {
	return filepath.Join(p.dir, filepath.FromSlash(rel))
}

func (p *project) config(doc string) *config.Config {
	p.t.Helper()
	cfg, err := config.Parse([]byte(doc))
	require.NoError(p.t, err)
	return cfg
}

// fakeStyles records Build calls.
type fakeStyles struct {
	err   error
	calls []string
}

func (f *fakeStyles) Build(_ context.Context, distDir string) error {
	f.calls = append(f.calls, distDir)
	return f.err
}

// countingRecorder is a metrics.Recorder for assertions.
type countingRecorder struct {
	mu           sync.Mutex
	stageResults map[string]metrics.ResultLabel
	outcomes     []metrics.BuildOutcomeLabel
	diagnostics  map[string]int
	copied       int
	rewritten    int
	builds       int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{stageResults: map[string]metrics.ResultLabel{}, diagnostics: map[string]int{}}
}

func (r *countingRecorder) ObserveStageDuration(string, time.Duration) {}
func (r *countingRecorder) ObserveBuildDuration(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builds++
}
func (r *countingRecorder) IncStageResult(stage string, result metrics.ResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stageResults[stage] = result
}
func (r *countingRecorder) IncBuildOutcome(o metrics.BuildOutcomeLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}
func (r *countingRecorder) AddDiagnostics(category string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics[category] += n
}
func (r *countingRecorder) AddFilesCopied(n int)    { r.copied += n }
func (r *countingRecorder) AddFilesRewritten(n int) { r.rewritten += n }

// harness wires a Service with fakes around a project.
type harness struct {
	svc      *Service
	compiler *compiler.Fake
	styles   *fakeStyles
	recorder *countingRecorder
	out      *bytes.Buffer
}

func newHarness(p *project) *harness {
	h := &harness{
		compiler: &compiler.Fake{SourceRoot: p.path("src")},
		styles:   &fakeStyles{},
		recorder: newCountingRecorder(),
		out:      &bytes.Buffer{},
	}
	h.svc = NewService().
		WithCompiler(h.compiler).
		WithStyleBuilder(h.styles).
		WithRecorder(h.recorder).
		WithConsole(console.NewWithColor(h.out, false))
	return h
}

func stageResult(r *Report, name StageName) metrics.ResultLabel {
	for _, s := range r.Stages {
		if s.Name == name {
			return s.Result
		}
	}
	return ""
}
