package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// JSONStore persists each document as a pretty-printed JSON file under a
// single data directory. Saves write to a temp file and rename over the
// target so a partial write never clobbers the durable copy.
type JSONStore struct {
	dir    string
	logger *slog.Logger
}

// NewJSONStore creates the data directory if needed and returns a store
// rooted there.
func NewJSONStore(dir string, logger *slog.Logger) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %q: %w", dir, err)
	}
	return &JSONStore{dir: dir, logger: logger}, nil
}

func (s *JSONStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Load implements Store. Unreadable or unparseable content is treated the
// same as a missing file: the default payload is written out and returned.
func (s *JSONStore) Load(ctx context.Context, name string, defaultPayload, out any) error {
	path := s.path(name)

	data, err := os.ReadFile(path)
	if err == nil && len(data) > 0 {
		if jsonErr := json.Unmarshal(data, out); jsonErr == nil {
			return nil
		}
		s.logger.WarnContext(ctx, "document unparseable, resetting to default",
			slog.String("document", name),
			slog.String("path", path),
		)
	}

	if err := s.Save(ctx, name, defaultPayload); err != nil {
		return fmt.Errorf("failed to initialize document %q: %w", name, err)
	}

	// Round-trip through JSON so out gets an independent copy of the default.
	data, err = json.Marshal(defaultPayload)
	if err != nil {
		return fmt.Errorf("failed to marshal default payload for %q: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to apply default payload for %q: %w", name, err)
	}
	return nil
}

// Save implements Store via write-temp-then-rename.
func (s *JSONStore) Save(_ context.Context, name string, payload any) error {
	path := s.path(name)

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document %q: %w", name, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file for %q: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace document %q: %w", name, err)
	}
	return nil
}

var _ Store = (*JSONStore)(nil)
