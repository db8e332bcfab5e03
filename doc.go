// Package pyext provides native extension compilation support for Python packages.
//
// This package drives the build of compiled Python extension modules the way
// a setuptools build_ext command would, but from Go: it configures and invokes
// an external build system, then stages the produced shared library into the
// Python package layout under the platform extension-module filename.
//
// # Supported Build Systems
//
// The package includes builders for:
//   - CMakeLists.txt - CMake-based C/C++ extensions (scikit-build style)
//   - meson.build - Meson-based extensions (meson-python style)
//   - Cargo.toml - Rust-based extensions via Cargo (pyo3/maturin style)
//
// # Basic Usage
//
// Create a builder factory and use it to build a project:
//
//	factory := pyext.NewBuilderFactory()
//
//	config := &pyext.BuildConfig{
//	    SourceDir:   "/path/to/project",
//	    BuildDir:    "/path/to/project/build-temp",
//	    OutputDir:   "/path/to/project/build-lib",
//	    PackageDir:  "/path/to/project/lief",
//	    PackageName: "lief",
//	    PythonPath:  "/usr/bin/python3",
//	}
//
//	result, err := factory.BuildProject(ctx, config, "CMakeLists.txt")
//
// # Version Resolution
//
// The package also resolves a package version from version-control metadata,
// mirroring setuptools-git-version behavior:
//
//	resolver := &pyext.VersionResolver{Dir: ".", PackageName: "lief"}
//	version := resolver.Resolve()
//
// Sources are tried in order: git describe output, the PKG-INFO file from a
// previously generated egg-info directory, and finally "0.0.0".
//
// # Architecture
//
// The package uses a factory pattern with registered builders:
//
//	BuilderFactory
//	├── CMakeBuilder (CMakeLists.txt)
//	├── MesonBuilder (meson.build)
//	└── CargoBuilder (Cargo.toml)
//
// Each builder implements the Builder interface and can:
//   - Detect if it can handle a given build file
//   - Build the extension with proper error handling
//   - Clean build artifacts
//
// Builders that require external tools also implement ToolChecker so that a
// missing prerequisite (a cmake binary, say) aborts the operation before any
// build subprocess is attempted.
//
// # Requirements
//
// Requires Go 1.25 or later.
//
// # Platform Support
//
// Full support on Linux and macOS. Windows builds go through the Visual
// Studio generator with per-configuration output directories.
package pyext
