// Package editor provides utilities for launching the user's preferred text editor.
package editor

import (
	"os"
	"os/exec"

	"github.com/skillet-ai/skillet/internal/errors"
)

// Open launches the user's preferred editor for the given path.
// Uses $EDITOR environment variable, falling back to $VISUAL, then nano, then vi.
func Open(path string) error {
	cmd := exec.Command(Detect(), path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "running editor")
	}
	return nil
}

// Detect returns the editor command to use based on environment variables
// and available binaries. Fallback chain: $EDITOR → $VISUAL → nano → vi
func Detect() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	// $VISUAL covers full-screen editors
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	// vi is available on all Unix systems
	return "vi"
}
