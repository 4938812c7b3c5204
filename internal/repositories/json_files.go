package repositories

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"goldantelope/internal/models"
)

// readJSONFile decodes path into out. absent is true when the file does
// not exist; a file that exists but cannot be decoded is reported as
// models.ErrCorruptData so callers can distinguish "absent" from
// "unreadable" instead of silently defaulting over real data.
func readJSONFile(path string, out interface{}) (absent bool, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", models.ErrCorruptData, path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("%w: %s: %v", models.ErrCorruptData, path, err)
	}
	return false, nil
}

// writeJSONFile persists v with two-space indentation and raw UTF-8, the
// format the legacy files were written in.
func writeJSONFile(path string, v interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
