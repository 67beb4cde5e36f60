package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/cosmofactory/internal/logfields"
	"git.home.luguber.info/inful/cosmofactory/internal/metrics"
)

// RunStages executes stages in order, recording timing and stopping on the first
// fatal or canceled stage.
func RunStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	if bs.Recorder == nil {
		bs.Recorder = metrics.NoopRecorder{}
	}
	rec := bs.Recorder
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.Name, ctx.Err())
			bs.Report.recordStage(st.Name, metrics.ResultCanceled, 0, se)
			rec.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return se
		default:
		}

		slog.Debug("Stage started", logfields.Stage(string(st.Name)))
		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)
		rec.ObserveStageDuration(string(st.Name), dur)

		if err == nil || errors.Is(err, errStageSkipped) {
			result := metrics.ResultSuccess
			if err != nil {
				result = metrics.ResultSkipped
			}
			bs.Report.recordStage(st.Name, result, dur, nil)
			rec.IncStageResult(string(st.Name), result)
			slog.Debug("Stage finished", logfields.Stage(string(st.Name)), logfields.Outcome(string(result)),
				logfields.DurationMS(float64(dur.Milliseconds())))
			continue
		}

		se := asStageError(st.Name, err)
		result := resultLabel(se.Kind)
		bs.Report.recordStage(st.Name, result, dur, se)
		rec.IncStageResult(string(st.Name), result)

		switch se.Kind {
		case StageErrorWarning:
			slog.Warn("Stage finished with warnings", logfields.Stage(string(st.Name)), logfields.Error(se.Err))
			continue
		case StageErrorCanceled:
			return se
		case StageErrorFatal:
			return se
		default:
			return fmt.Errorf("stage %s: unknown error kind %q: %w", st.Name, se.Kind, se)
		}
	}
	return nil
}

func resultLabel(kind StageErrorKind) metrics.ResultLabel {
	switch kind {
	case StageErrorWarning:
		return metrics.ResultWarning
	case StageErrorCanceled:
		return metrics.ResultCanceled
	default:
		return metrics.ResultFatal
	}
}
