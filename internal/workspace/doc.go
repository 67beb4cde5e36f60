// Package workspace manages the scratch directory a build uses for generated
// tool configuration, such as the compiler project file. The directory lives
// outside the project tree and is removed when the build finishes.
package workspace
