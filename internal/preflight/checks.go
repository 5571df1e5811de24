package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"tangle/internal/modality"
	"tangle/internal/runner"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckInputFolder verifies one pipeline's expected input folder, including
// any required file inside it.
func CheckInputFolder(dataRoot string, def runner.Definition) Result {
	name := modality.DisplayName(def.Name) + " inputs"
	expected := filepath.Join(dataRoot, def.ExpectedSubdir)

	info, err := os.Stat(expected)
	if err != nil || !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (missing)", expected)}
	}
	if def.RequiredFile != "" {
		required := filepath.Join(expected, def.RequiredFile)
		if _, err := os.Stat(required); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (missing)", required)}
		}
	}
	return Result{Name: name, Passed: true, Detail: expected}
}
