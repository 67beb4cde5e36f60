package build

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/cosmofactory/internal/metrics"
)

func TestRunStages_Classification(t *testing.T) {
	var ran []StageName
	step := func(name StageName, err error) StageDef {
		return StageDef{Name: name, Fn: func(context.Context, *BuildState) error {
			ran = append(ran, name)
			return err
		}}
	}
	boom := errors.New("boom")
	bs := &BuildState{Report: newReport("/p", false)}

	err := RunStages(context.Background(), bs, []StageDef{
		step("a", nil),
		step("b", newWarnStageError("b", boom)),
		step("c", errStageSkipped),
		step("d", boom),
		step("e", nil),
	})
	require.Error(t, err)
	var se *StageError
	require.ErrorAs(t, err, &se)
	require.Equal(t, StageErrorFatal, se.Kind)
	require.Equal(t, StageName("d"), se.Stage)
	require.ErrorIs(t, err, boom)

	require.Equal(t, []StageName{"a", "b", "c", "d"}, ran)
	require.Len(t, bs.Report.Warnings, 1)
	require.Len(t, bs.Report.Errors, 1)
	require.Equal(t, metrics.ResultWarning, stageResult(bs.Report, "b"))
	require.Equal(t, metrics.ResultSkipped, stageResult(bs.Report, "c"))
	require.Equal(t, metrics.ResultFatal, stageResult(bs.Report, "d"))

	bs.Report.finish()
	require.Equal(t, OutcomeFailed, bs.Report.Outcome)
}

func TestRunStages_ContextErrorIsCancellation(t *testing.T) {
	bs := &BuildState{Report: newReport("/p", false)}
	err := RunStages(context.Background(), bs, []StageDef{{
		Name: "a",
		Fn:   func(context.Context, *BuildState) error { return context.DeadlineExceeded },
	}})
	var se *StageError
	require.ErrorAs(t, err, &se)
	require.Equal(t, StageErrorCanceled, se.Kind)
	bs.Report.finish()
	require.Equal(t, OutcomeCanceled, bs.Report.Outcome)
}

func TestStageError(t *testing.T) {
	se := newFatalStageError(StageCopyFiles, errors.New("disk full"))
	require.Equal(t, "fatal stage copy_files: disk full", se.Error())
	require.Same(t, se, asStageError(StageCompile, se))
}
