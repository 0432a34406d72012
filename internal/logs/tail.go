package logs

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"triagem/internal/logging"
)

// ErrNoRunLog is returned when no run log matches.
var ErrNoRunLog = errors.New("no run log found")

// FindRunLog returns the run log for runID inside dir. An empty runID selects
// the most recent log. Run logs are named triagem-<timestamp>-<id prefix>.log,
// so the timestamp order is also the name order.
func FindRunLog(dir, runID string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, logging.RunLogPattern))
	if err != nil {
		return "", fmt.Errorf("list run logs: %w", err)
	}
	sort.Strings(matches)

	runID = strings.TrimSpace(runID)
	if runID == "" {
		if len(matches) == 0 {
			return "", fmt.Errorf("%w in %s", ErrNoRunLog, dir)
		}
		return matches[len(matches)-1], nil
	}
	short := runID
	if len(short) > 8 {
		short = short[:8]
	}
	for i := len(matches) - 1; i >= 0; i-- {
		if strings.HasSuffix(filepath.Base(matches[i]), "-"+short+".log") {
			return matches[i], nil
		}
	}
	return "", fmt.Errorf("%w for run %s", ErrNoRunLog, runID)
}

// Tail returns the last limit lines of path. A limit <= 0 returns every line.
func Tail(path string, limit int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if limit <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log file: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, limit)
	count, idx := 0, 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	lines := make([]string, count)
	if count == limit {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}
