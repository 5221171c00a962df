package config

import (
	"fmt"
	"os"
	"strings"
)

// BotUserIDKey is the one key this process ever writes to the env file.
const BotUserIDKey = "SLACK_BOT_USER_ID"

// EnvStore reads and rewrites a single key in a key=value env file. All other
// lines, including comments and blank lines, are written back unchanged.
type EnvStore struct {
	path string
}

func NewEnvStore(path string) *EnvStore {
	return &EnvStore{path: path}
}

// BotUserID returns the stored bot user ID, or "" when the file or the key is
// absent. A missing file is not an error: it simply means the bootstrap
// handshake has not happened yet.
func (s *EnvStore) BotUserID() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read env file %s: %w", s.path, err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := splitEnvLine(line)
		if ok && key == BotUserIDKey {
			return value, nil
		}
	}
	return "", nil
}

// SetBotUserID rewrites the SLACK_BOT_USER_ID line in place, appending it
// when no such line exists yet.
func (s *EnvStore) SetBotUserID(userID string) error {
	data, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read env file %s: %w", s.path, err)
	}

	lines := strings.Split(string(data), "\n")
	replaced := false
	for i, line := range lines {
		key, _, ok := splitEnvLine(line)
		if ok && key == BotUserIDKey {
			lines[i] = BotUserIDKey + "=" + userID
			replaced = true
		}
	}

	if !replaced {
		// Keep the trailing newline convention: insert before a final empty line.
		entry := BotUserIDKey + "=" + userID
		if n := len(lines); n > 0 && lines[n-1] == "" {
			lines[n-1] = entry
			lines = append(lines, "")
		} else {
			lines = append(lines, entry)
		}
	}

	if err := os.WriteFile(s.path, []byte(strings.Join(lines, "\n")), 0o600); err != nil {
		return fmt.Errorf("failed to write env file %s: %w", s.path, err)
	}
	return nil
}

// splitEnvLine parses a KEY=value line. Comments and lines without "=" are
// not key/value pairs.
func splitEnvLine(line string) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}
	key, value, found := strings.Cut(trimmed, "=")
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}
