// Package sandbox runs third-party installer commands in a scratch directory
// and folds their output into a project afterwards. Installers that write into
// the current directory unconditionally can then never clobber or reorganize
// existing project files: only new files are merged back.
package sandbox
