package pyext

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// TestProjectWorkflow walks the full manifest -> detection -> build pipeline
// on a synthetic project, with an empty PATH so the pipeline must abort at
// the prerequisite check without spawning a single subprocess.
func TestProjectWorkflow(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "extension.toml"), `package = "demo"

[defines]
DEMO_C_API = "on"
`)
	writeFile(t, filepath.Join(dir, "CMakeLists.txt"), "project(demo)")

	manifest, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("Loading manifest: %v", err)
	}

	buildDir := filepath.Join(dir, "build", "temp")
	config := &BuildConfig{
		SourceDir:  dir,
		BuildDir:   buildDir,
		OutputDir:  filepath.Join(dir, "build", "lib"),
		PackageDir: filepath.Join(dir, "demo"),
	}
	manifest.ApplyTo(config)

	if config.PackageName != "demo" {
		t.Fatalf("Expected package demo, got %s", config.PackageName)
	}
	if config.Defines["DEMO_C_API"] != "on" {
		t.Error("Manifest defines not applied to config")
	}

	factory := NewBuilderFactory()
	buildFile, err := factory.DetectBuildFile(dir)
	if err != nil {
		t.Fatalf("Detecting build file: %v", err)
	}
	if buildFile != "CMakeLists.txt" {
		t.Fatalf("Expected CMakeLists.txt, got %s", buildFile)
	}

	result, err := factory.BuildProject(context.Background(), config, buildFile)
	if err == nil {
		t.Fatal("Expected prerequisite failure with an empty PATH")
	}
	if result.Success {
		t.Error("Expected unsuccessful result")
	}
	if _, statErr := os.Stat(buildDir); !os.IsNotExist(statErr) {
		t.Error("Build directory created before the prerequisite check")
	}
}

// This test demonstrates how builder selection works across build systems
func TestBuildSystemSelection(t *testing.T) {
	factory := NewBuilderFactory()

	buildFiles := []string{
		"CMakeLists.txt", // scikit-build style C/C++ extensions
		"meson.build",    // meson-python style
		"Cargo.toml",     // pyo3/maturin style Rust extensions
	}

	for _, buildFile := range buildFiles {
		t.Run(buildFile, func(t *testing.T) {
			builder, err := factory.BuilderFor(buildFile)
			if err != nil {
				t.Fatalf("Failed to find builder for %s: %v", buildFile, err)
			}

			t.Logf("Found %s builder for %s", builder.Name(), buildFile)

			if !builder.CanBuild(filepath.Base(buildFile)) {
				t.Errorf("Builder %s claims it cannot build %s", builder.Name(), buildFile)
			}
		})
	}
}

func TestCargoArgsDebugAndRelease(t *testing.T) {
	builder := &CargoBuilder{}
	dir := t.TempDir()

	config := &BuildConfig{SourceDir: dir, PackageName: "demo"}
	args := builder.CargoArgs(config)
	assertContains(t, args, "--release")

	config.Debug = true
	for _, arg := range builder.CargoArgs(config) {
		if arg == "--release" {
			t.Error("Debug build must not pass --release")
		}
	}
}

func TestCargoArgsLocked(t *testing.T) {
	builder := &CargoBuilder{}
	dir := t.TempDir()
	config := &BuildConfig{SourceDir: dir, PackageName: "demo"}

	for _, arg := range builder.CargoArgs(config) {
		if arg == "--locked" {
			t.Error("--locked must only be passed when Cargo.lock exists")
		}
	}

	writeFile(t, filepath.Join(dir, "Cargo.lock"), "")
	assertContains(t, builder.CargoArgs(config), "--locked")
}

func TestCargoArtifactSelection(t *testing.T) {
	builder := &CargoBuilder{}
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}

	// A dependency's cdylib sorts before the crate's own library
	targetDir := filepath.Join(dir, "target", "release")
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(targetDir, "libaaa.so"), "wrong library")
	writeFile(t, filepath.Join(targetDir, "libdemo.so"), "demo library")

	config := &BuildConfig{
		SourceDir:   dir,
		OutputDir:   outDir,
		PackageName: "demo",
	}
	result := &BuildResult{}
	if err := builder.processBuiltArtifacts(config, result); err != nil {
		t.Fatalf("processBuiltArtifacts failed: %v", err)
	}

	if len(result.Artifacts) != 1 {
		t.Fatalf("Expected one staged artifact, got %v", result.Artifacts)
	}
	content, err := os.ReadFile(result.Artifacts[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "demo library" {
		t.Errorf("Staged the wrong library: %s", content)
	}
}

func TestPreferredArtifact(t *testing.T) {
	libs := []string{"/t/libaaa.so", "/t/libdemo.so", "/t/demo.dll"}

	if got := preferredArtifact(libs, "demo"); got != "/t/libdemo.so" {
		t.Errorf("Expected lib prefix match, got %s", got)
	}
	if got := preferredArtifact(libs, "other"); got != "/t/libaaa.so" {
		t.Errorf("Expected fallback to first library, got %s", got)
	}
	if got := preferredArtifact([]string{"/t/demo.dll"}, "demo"); got != "/t/demo.dll" {
		t.Errorf("Expected bare prefix match, got %s", got)
	}
}
