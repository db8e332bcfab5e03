package pyext

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadPackageVersion parses the Version header out of a PKG-INFO metadata
// file, the format setuptools writes into an egg-info directory. PKG-INFO
// is a block of email-style headers followed by an optional body; only the
// header block is scanned.
func ReadPackageVersion(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			// Headers end at the first blank line
			break
		}

		if value, ok := strings.CutPrefix(line, "Version:"); ok {
			value = strings.TrimSpace(value)
			if value == "" {
				return "", fmt.Errorf("empty Version header in %s", path)
			}
			return value, nil
		}
	}

	if err := scanner.Err(); err != nil {
		return "", err
	}

	return "", fmt.Errorf("no Version header in %s", path)
}
