// Package build runs the cosmofactory build pipeline.
//
// A build is a fixed sequence of stages over one BuildState:
//
//	load_compiler_options → prepare_output → collect_sources → compile →
//	copy_files → rewrite_aliases → build_styles
//
// Stages report problems as StageErrors. Warnings are recorded in the Report and
// the pipeline continues; a fatal error stops it. Compiler diagnostics are warnings
// unless the build runs in strict mode. All execution paths (CLI, tests) go through
// Service.Run.
package build
