package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// FilterLevel keeps slog text records at or above threshold. Lines without a
// level attribute are continuation output and are kept.
func FilterLevel(lines []string, threshold slog.Level) []string {
	if threshold <= slog.LevelDebug {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		level, ok := lineLevel(line)
		if !ok || level >= threshold {
			out = append(out, line)
		}
	}
	return out
}

func lineLevel(line string) (slog.Level, bool) {
	idx := strings.Index(line, "level=")
	if idx < 0 {
		return 0, false
	}
	field := line[idx+len("level="):]
	if end := strings.IndexByte(field, ' '); end >= 0 {
		field = field[:end]
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(field)); err != nil {
		return 0, false
	}
	return level, true
}
