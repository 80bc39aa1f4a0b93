package platform

import (
	"errors"
	"fmt"
	"os"
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

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// writeProbePattern names the temporary file used to test write access
const writeProbePattern = ".ytdownloader-probe-*"

// Destination errors
var (
	ErrNotDirectory = errors.New("destination is not a directory")
	ErrNotWritable  = errors.New("destination is not writable")
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// CheckDestination verifies that dir exists, is a directory, and accepts new files
func CheckDestination(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("destination %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	probe, err := os.CreateTemp(dir, writeProbePattern)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotWritable, dir, err)
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, "Downloads"), nil
}

// OpenFileInManager opens the file in the system file manager and highlights it.
// A directory path opens the directory itself.
func OpenFileInManager(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("file path is empty")
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("file does not exist: %w", err)
	}

	cmd, err := revealCommand(runtime.GOOS, absPath, info.IsDir())
	if err != nil {
		return err
	}
	return cmd.Start()
}

// revealCommand builds the OS-specific command that shows path
func revealCommand(goos, path string, isDir bool) (*exec.Cmd, error) {
	switch goos {
	case OSDarwin:
		if isDir {
			return exec.Command(OpenCommand, path), nil
		}
		return exec.Command(OpenCommand, MacOSSelectFlag, path), nil
	case OSWindows:
		if isDir {
			return exec.Command(ExplorerCommand, path), nil
		}
		return exec.Command(ExplorerCommand, WindowsSelectParam+path), nil
	case OSLinux:
		// File selection is not standardized on Linux, so open the parent directory
		dir := path
		if !isDir {
			dir = filepath.Dir(path)
		}
		if _, err := exec.LookPath(XDGOpenCommand); err == nil {
			return exec.Command(XDGOpenCommand, dir), nil
		}
		for _, fm := range LinuxFileManagers {
			if _, err := exec.LookPath(fm); err == nil {
				return exec.Command(fm, dir), nil
			}
		}
		return nil, fmt.Errorf("no suitable file manager found")
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}
