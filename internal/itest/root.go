//go:build integration

package itest

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// findRepoRoot resolves the module root through the go tool, so the CLI
// harness works no matter which package directory the tests run from.
func findRepoRoot() (string, error) {
	out, err := exec.Command("go", "env", "GOMOD").Output()
	if err != nil {
		return "", err
	}
	gomod := strings.TrimSpace(string(out))
	if gomod == "" || gomod == os.DevNull {
		return "", errors.New("not inside a go module")
	}
	return filepath.Dir(gomod), nil
}
