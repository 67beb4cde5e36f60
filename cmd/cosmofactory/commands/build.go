package commands

import (
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/cosmofactory/internal/build"
	"git.home.luguber.info/inful/cosmofactory/internal/config"
	"git.home.luguber.info/inful/cosmofactory/internal/console"
	"git.home.luguber.info/inful/cosmofactory/internal/logfields"
	"git.home.luguber.info/inful/cosmofactory/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Strict      bool   `help:"Fail the build on compiler diagnostics"`
	Report      string `name:"report" help:"Write a build report (.json, .yaml or .yml)" type:"path"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in textfile format" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Dir)
	if err != nil {
		return err
	}

	svc := g.service().WithConsole(console.New(g.Stdout))
	var registry *prom.Registry
	if b.MetricsFile != "" {
		registry = prom.NewRegistry()
		svc = svc.WithRecorder(metrics.NewPrometheusRecorder(registry))
	}

	report, runErr := svc.Run(g.ctx(), build.Request{
		ProjectDir: root.Dir,
		Config:     cfg,
		Strict:     b.Strict,
	})
	if report != nil {
		slog.Info("Build summary", slog.String("summary", report.Summary()))
		if b.Report != "" {
			if err := report.Persist(b.Report); err != nil {
				slog.Warn("Failed to write build report", logfields.Path(b.Report), logfields.Error(err))
			}
		}
	}
	if registry != nil {
		if err := metrics.WriteTextfile(b.MetricsFile, registry); err != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(b.MetricsFile), logfields.Error(err))
		}
	}
	return runErr
}
