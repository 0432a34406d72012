package deps

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ProbeVersion runs `<binary> -version` and returns the first output line,
// e.g. "ffmpeg version 6.1.1". It is used to annotate the status table.
func ProbeVersion(ctx context.Context, binary string) (string, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return "", fmt.Errorf("probe version: empty binary")
	}
	cmd := exec.CommandContext(ctx, binary, "-version") //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s -version: %w", binary, err)
	}
	scanner := bufio.NewScanner(bytes.NewReader(output))
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}
	return "", fmt.Errorf("%s -version: empty output", binary)
}
