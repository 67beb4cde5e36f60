package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/cosmofactory/internal/alias"
	"git.home.luguber.info/inful/cosmofactory/internal/collect"
	"git.home.luguber.info/inful/cosmofactory/internal/compiler"
	ferrors "git.home.luguber.info/inful/cosmofactory/internal/foundation/errors"
	"git.home.luguber.info/inful/cosmofactory/internal/logfields"
	"git.home.luguber.info/inful/cosmofactory/internal/manifest"
	"git.home.luguber.info/inful/cosmofactory/internal/tsconfig"
)

// SourceDirName is the directory below the project root holding the sources.
const SourceDirName = "src"

var (
	sourceExtensions = []string{"ts", "tsx"}
	assetExtensions  = []string{"css"}
)

// DefaultStages returns the full build pipeline in execution order.
func DefaultStages() []StageDef {
	return []StageDef{
		{StageLoadCompilerOptions, stageLoadCompilerOptions},
		{StagePrepareOutput, stagePrepareOutput},
		{StageCollectSources, stageCollectSources},
		{StageCompile, stageCompile},
		{StageCopyFiles, stageCopyFiles},
		{StageRewriteAliases, stageRewriteAliases},
		{StageBuildStyles, stageBuildStyles},
	}
}

func stageLoadCompilerOptions(_ context.Context, bs *BuildState) error {
	opts, err := tsconfig.Load(bs.ProjectDir)
	if err != nil {
		return newFatalStageError(StageLoadCompilerOptions, err)
	}
	bs.Options = opts
	bs.SrcDir = filepath.Join(bs.ProjectDir, SourceDirName)
	bs.DistDir = opts.OutDir
	if !filepath.IsAbs(bs.DistDir) {
		bs.DistDir = filepath.Join(bs.ProjectDir, filepath.FromSlash(opts.OutDir))
	}
	slog.Debug("Compiler options loaded",
		logfields.Destination(bs.DistDir),
		logfields.Count(len(opts.Paths)))
	return nil
}

func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	if err := os.MkdirAll(bs.DistDir, 0o755); err != nil {
		return newFatalStageError(StagePrepareOutput,
			ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create output directory").
				Fatal().
				WithContext("path", bs.DistDir).
				Build())
	}
	return nil
}

func stageCollectSources(_ context.Context, bs *BuildState) error {
	sources, err := collect.New(sourceExtensions, bs.Config.Exclude.Extensions).
		WithPatterns(bs.Config.Exclude.Patterns).
		Collect(bs.SrcDir)
	if err != nil {
		return newFatalStageError(StageCollectSources,
			ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to collect sources").
				Fatal().
				WithContext("path", bs.SrcDir).
				Build())
	}
	assets, err := collect.Collect(bs.SrcDir, assetExtensions, nil)
	if err != nil {
		return newFatalStageError(StageCollectSources, err)
	}
	bs.Sources = sources
	bs.Assets = make([]string, 0, len(assets))
	for _, a := range assets {
		rel, err := filepath.Rel(bs.ProjectDir, a)
		if err != nil {
			return newFatalStageError(StageCollectSources, err)
		}
		bs.Assets = append(bs.Assets, filepath.ToSlash(rel))
	}
	bs.Report.Sources = len(sources)
	slog.Info("Sources collected", logfields.Count(len(sources)), slog.Int("assets", len(bs.Assets)))
	return nil
}

func stageCompile(ctx context.Context, bs *BuildState) error {
	res, err := bs.Compiler.Compile(ctx, compiler.Request{
		Files:      bs.Sources,
		Options:    bs.Options,
		ProjectDir: bs.ProjectDir,
	})
	if err != nil {
		if ctx.Err() != nil {
			return newCanceledStageError(StageCompile, err)
		}
		return newFatalStageError(StageCompile,
			ferrors.WrapError(err, ferrors.CategoryCompiler, "failed to run compiler").Fatal().Build())
	}
	bs.Compilation = res
	bs.Report.EmitSkipped = res.EmitSkipped
	bs.Report.Diagnostics = res.Diagnostics

	counts := map[compiler.Category]int{}
	for _, d := range res.Diagnostics {
		counts[d.Category]++
	}
	for category, n := range counts {
		bs.Recorder.AddDiagnostics(string(category), n)
	}
	compiler.Print(bs.Console, res.Diagnostics, res.EmitSkipped)

	if !res.Failed() {
		return nil
	}
	b := ferrors.WrapError(ErrCompilationFailed, ferrors.CategoryCompiler,
		fmt.Sprintf("compiler reported %d diagnostics", len(res.Diagnostics))).
		WithContext("diagnostics", len(res.Diagnostics)).
		WithContext("emit_skipped", res.EmitSkipped)
	if bs.Strict {
		return newFatalStageError(StageCompile, b.Fatal().Build())
	}
	return newWarnStageError(StageCompile, b.Warning().Build())
}

func stageCopyFiles(_ context.Context, bs *BuildState) error {
	files := manifest.MergeAssets(bs.Config.Files, bs.Assets)
	ops, err := manifest.Resolver{ProjectDir: bs.ProjectDir, DistDir: bs.DistDir}.Resolve(files)
	if err != nil {
		return newFatalStageError(StageCopyFiles, err)
	}
	if err := manifest.Execute(ops); err != nil {
		return newFatalStageError(StageCopyFiles, err)
	}
	bs.Copies = ops
	bs.Report.FilesCopied = len(ops)
	bs.Recorder.AddFilesCopied(len(ops))
	slog.Info("Manifest copied", logfields.Count(len(ops)))
	return nil
}

func stageRewriteAliases(_ context.Context, bs *BuildState) error {
	r := alias.New(bs.DistDir, bs.Options, bs.Config.AliasFallback)
	if len(r.Rules()) == 0 {
		return errStageSkipped
	}
	n, err := r.RewriteTree(bs.Config.Exclude)
	if err != nil {
		return newFatalStageError(StageRewriteAliases,
			ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to rewrite aliases").
				Fatal().
				WithContext("path", bs.DistDir).
				Build())
	}
	bs.Report.FilesRewritten = n
	bs.Recorder.AddFilesRewritten(n)
	return nil
}

func stageBuildStyles(ctx context.Context, bs *BuildState) error {
	if !bs.Config.Tailwind {
		return errStageSkipped
	}
	if err := bs.Styles.Build(ctx, bs.DistDir); err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return newCanceledStageError(StageBuildStyles, err)
		}
		return newWarnStageError(StageBuildStyles,
			ferrors.WrapError(err, ferrors.CategoryStyle, "style build failed").Warning().Build())
	}
	bs.Report.StylesBuilt = true
	return nil
}
