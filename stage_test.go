package pyext

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestExtensionFilename(t *testing.T) {
	got := ExtensionFilename("lief", ".cpython-312-x86_64-linux-gnu.so")
	if got != "lief.cpython-312-x86_64-linux-gnu.so" {
		t.Errorf("Unexpected filename: %s", got)
	}
}

func TestDefaultExtensionSuffix(t *testing.T) {
	suffix := defaultExtensionSuffix()
	if runtime.GOOS == "windows" {
		if suffix != ".pyd" {
			t.Errorf("Expected .pyd on windows, got %s", suffix)
		}
	} else if suffix != ".so" {
		t.Errorf("Expected .so, got %s", suffix)
	}
}

func TestStageExtension(t *testing.T) {
	outputDir := t.TempDir()
	packageDir := filepath.Join(t.TempDir(), "demo")

	writeFile(t, filepath.Join(outputDir, "demo.so"), "fake shared object")

	config := &BuildConfig{
		OutputDir:   outputDir,
		PackageDir:  packageDir,
		PackageName: "demo",
	}

	staged, err := StageExtension(config, ".cpython-312-x86_64-linux-gnu.so")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := filepath.Join(packageDir, "demo.cpython-312-x86_64-linux-gnu.so")
	if staged != expected {
		t.Errorf("Expected %s, got %s", expected, staged)
	}

	content, err := os.ReadFile(staged)
	if err != nil {
		t.Fatalf("Reading staged extension: %v", err)
	}
	if string(content) != "fake shared object" {
		t.Error("Staged extension content differs from built artifact")
	}
}

func TestStageExtensionFallback(t *testing.T) {
	outputDir := t.TempDir()
	packageDir := t.TempDir()

	// Artifact under an unexpected name still gets staged
	writeFile(t, filepath.Join(outputDir, "libdemo.so"), "x")

	config := &BuildConfig{
		OutputDir:   outputDir,
		PackageDir:  packageDir,
		PackageName: "demo",
	}

	staged, err := StageExtension(config, ".so")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if filepath.Base(staged) != "demo.so" {
		t.Errorf("Expected demo.so, got %s", filepath.Base(staged))
	}
}

func TestStageExtensionMissing(t *testing.T) {
	config := &BuildConfig{
		OutputDir:   t.TempDir(),
		PackageDir:  t.TempDir(),
		PackageName: "demo",
	}

	if _, err := StageExtension(config, ".so"); err == nil {
		t.Error("Expected error when no artifact exists")
	}
}

func TestFindSharedLibraries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "one.so"), "x")
	writeFile(t, filepath.Join(root, "two.dylib"), "x")
	writeFile(t, filepath.Join(root, "ignored.txt"), "x")

	// Missing subdirectories are skipped silently
	libs, err := findSharedLibraries(root, ".", "does-not-exist")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(libs) != 2 {
		t.Errorf("Expected 2 libraries, got %d: %v", len(libs), libs)
	}
}

func TestIsNativeLibrary(t *testing.T) {
	testCases := []struct {
		path     string
		expected bool
	}{
		{"demo.so", true},
		{"demo.cpython-312-x86_64-linux-gnu.so", true},
		{"demo.pyd", true},
		{"demo.dylib", true},
		{"demo.dll", true},
		{"demo.a", false},
		{"demo.py", false},
		{"demo", false},
	}

	for _, tc := range testCases {
		if got := isNativeLibrary(tc.path); got != tc.expected {
			t.Errorf("isNativeLibrary(%q) = %v, expected %v", tc.path, got, tc.expected)
		}
	}
}
