package platform

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	// Create temporary directory for testing
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	// Create directory
	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	// Directory should now exist
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestCheckDestination(t *testing.T) {
	tempDir := t.TempDir()

	if err := CheckDestination(tempDir); err != nil {
		t.Fatalf("Expected writable temp dir, got %v", err)
	}

	// probe file must not be left behind
	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty directory after probe, found %d entries", len(entries))
	}
}

func TestCheckDestination_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	if err := CheckDestination(missing); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestCheckDestination_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	err := CheckDestination(file)
	if !errors.Is(err, ErrNotDirectory) {
		t.Errorf("Expected ErrNotDirectory, got %v", err)
	}
}

func TestCheckDestination_ReadOnly(t *testing.T) {
	if runtime.GOOS == OSWindows || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	dir := filepath.Join(t.TempDir(), "ro")
	if err := os.Mkdir(dir, 0555); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

	err := CheckDestination(dir)
	if !errors.Is(err, ErrNotWritable) {
		t.Errorf("Expected ErrNotWritable, got %v", err)
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	nonExistentFile := filepath.Join(t.TempDir(), "nonexistent.txt")

	if err := OpenFileInManager(nonExistentFile); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestOpenFileInManager_EmptyPath(t *testing.T) {
	if err := OpenFileInManager(""); err == nil {
		t.Error("Expected error for empty path, got nil")
	}
}

func TestRevealCommand(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		path     string
		isDir    bool
		wantArgs []string
	}{
		{"mac file", OSDarwin, "/v/a.mp4", false, []string{OpenCommand, MacOSSelectFlag, "/v/a.mp4"}},
		{"mac dir", OSDarwin, "/v", true, []string{OpenCommand, "/v"}},
		{"windows file", OSWindows, `C:\v\a.mp4`, false, []string{ExplorerCommand, `/select,C:\v\a.mp4`}},
		{"windows dir", OSWindows, `C:\v`, true, []string{ExplorerCommand, `C:\v`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := revealCommand(tt.goos, tt.path, tt.isDir)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(cmd.Args) != len(tt.wantArgs) {
				t.Fatalf("Args = %v, want %v", cmd.Args, tt.wantArgs)
			}
			for i := range tt.wantArgs {
				if cmd.Args[i] != tt.wantArgs[i] {
					t.Errorf("Args[%d] = %q, want %q", i, cmd.Args[i], tt.wantArgs[i])
				}
			}
		})
	}
}

func TestRevealCommand_UnsupportedOS(t *testing.T) {
	if _, err := revealCommand("plan9", "/x", false); err == nil {
		t.Error("Expected error for unsupported OS")
	}
}
