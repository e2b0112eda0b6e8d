package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// Fallback file managers probed on Linux when xdg-open is unavailable
var linuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}

// OpenFolder opens dir in the system file manager
func OpenFolder(dir string) error {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command("open", absPath).Run()
	case OSWindows:
		return exec.Command("explorer", absPath).Run()
	case OSLinux:
		return openFolderLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

func openFolderLinux(dir string) error {
	if err := exec.Command("xdg-open", dir).Run(); err == nil {
		return nil
	}

	for _, fm := range linuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}
