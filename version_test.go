package pyext

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatDescribe(t *testing.T) {
	testCases := []struct {
		name     string
		describe string
		tagged   bool
		expected string
		wantErr  bool
	}{
		{
			name:     "at tag and clean",
			describe: "v1.2.3-0-g9f2b4c1",
			expected: "v1.2.3",
		},
		{
			name:     "commits since tag",
			describe: "v1.2.3-5-g9f2b4c1",
			expected: "v1.2.3.dev0",
		},
		{
			name:     "at tag but dirty",
			describe: "v1.2.3-0-g9f2b4c1-dirty",
			expected: "v1.2.3.dev0",
		},
		{
			name:     "dirty but head tagged",
			describe: "v1.2.3-0-g9f2b4c1-dirty",
			tagged:   true,
			expected: "v1.2.3",
		},
		{
			name:     "commits since tag but head tagged",
			describe: "v1.2.3-2-g9f2b4c1",
			tagged:   true,
			expected: "v1.2.3",
		},
		{
			name:     "tag containing dashes",
			describe: "v1.2.3-rc1-0-gabc1234",
			expected: "v1.2.3-rc1",
		},
		{
			name:     "tag containing dashes with commits",
			describe: "v1.2.3-rc1-4-gabc1234",
			expected: "v1.2.3-rc1.dev0",
		},
		{
			name:     "no tag in output",
			describe: "9f2b4c1",
			wantErr:  true,
		},
		{
			name:     "sha without g prefix",
			describe: "v1.2.3-0-9f2b4c1",
			wantErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := formatDescribe(tc.describe, tc.tagged)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q, got %q", tc.describe, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for %q: %v", tc.describe, err)
			}
			if got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestResolveDefault(t *testing.T) {
	// No .git directory, no PKG-INFO: resolution falls to the default
	resolver := &VersionResolver{Dir: t.TempDir(), PackageName: "demo"}

	if got := resolver.Resolve(); got != "0.0.0" {
		t.Errorf("Expected 0.0.0, got %q", got)
	}
}

func TestResolvePkgInfoFallback(t *testing.T) {
	dir := t.TempDir()
	eggInfo := filepath.Join(dir, "demo.egg-info")
	if err := os.MkdirAll(eggInfo, 0o755); err != nil {
		t.Fatal(err)
	}

	pkgInfo := "Metadata-Version: 2.1\nName: demo\nVersion: 0.9.1\nSummary: A demo package\n"
	writeFile(t, filepath.Join(eggInfo, "PKG-INFO"), pkgInfo)

	resolver := &VersionResolver{Dir: dir, PackageName: "demo"}
	if got := resolver.Resolve(); got != "0.9.1" {
		t.Errorf("Expected 0.9.1, got %q", got)
	}
}

func TestReadPackageVersion(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadPackageVersion(filepath.Join(t.TempDir(), "PKG-INFO"))
		if err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("no version header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "PKG-INFO")
		writeFile(t, path, "Metadata-Version: 2.1\nName: demo\n")

		if _, err := ReadPackageVersion(path); err == nil {
			t.Error("Expected error when Version header is absent")
		}
	})

	t.Run("version after header block ignored", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "PKG-INFO")
		writeFile(t, path, "Name: demo\n\nVersion: 9.9.9 appears in the body\n")

		if _, err := ReadPackageVersion(path); err == nil {
			t.Error("Expected error when Version only appears in the body")
		}
	})

	t.Run("whitespace trimmed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "PKG-INFO")
		writeFile(t, path, "Version:   1.4.0  \n")

		got, err := ReadPackageVersion(path)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got != "1.4.0" {
			t.Errorf("Expected 1.4.0, got %q", got)
		}
	})
}
