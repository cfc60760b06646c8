package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// documentRow is the persisted shape of a named document in Postgres: one
// row per document, whole payload as JSONB.
type documentRow struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	Name      string          `bun:"name,pk,type:varchar(64)"`
	Payload   json.RawMessage `bun:"payload,notnull,type:jsonb"`
	UpdatedAt time.Time       `bun:"updated_at,notnull,default:current_timestamp"`
}

// BunStore persists documents in a single Postgres table through bun. Saves
// are upserts, so the previously durable row survives a failed write.
type BunStore struct {
	db     *bun.DB
	logger *slog.Logger
}

// NewBunStore connects to Postgres and ensures the documents table exists.
func NewBunStore(ctx context.Context, dsn string, logger *slog.Logger) (*BunStore, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*documentRow)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure documents table: %w", err)
	}

	return &BunStore{db: db, logger: logger}, nil
}

// Load implements Store. A missing row or an unparseable payload upserts
// and returns the default payload, mirroring the file store's self-heal.
func (s *BunStore) Load(ctx context.Context, name string, defaultPayload, out any) error {
	row := new(documentRow)
	err := s.db.NewSelect().Model(row).Where("name = ?", name).Scan(ctx)

	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(row.Payload, out); jsonErr == nil {
			return nil
		}
		s.logger.WarnContext(ctx, "document unparseable, resetting to default",
			slog.String("document", name),
		)
	case errors.Is(err, sql.ErrNoRows):
		// fall through to default initialization
	default:
		return fmt.Errorf("failed to load document %q: %w", name, err)
	}

	if err := s.Save(ctx, name, defaultPayload); err != nil {
		return fmt.Errorf("failed to initialize document %q: %w", name, err)
	}

	data, err := json.Marshal(defaultPayload)
	if err != nil {
		return fmt.Errorf("failed to marshal default payload for %q: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to apply default payload for %q: %w", name, err)
	}
	return nil
}

// Save implements Store with an upsert on the document name.
func (s *BunStore) Save(ctx context.Context, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal document %q: %w", name, err)
	}

	row := &documentRow{
		Name:      name,
		Payload:   data,
		UpdatedAt: time.Now().UTC(),
	}

	if _, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (name) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to save document %q: %w", name, err)
	}
	return nil
}

// Close releases the underlying database connection.
func (s *BunStore) Close() error {
	return s.db.Close()
}

var _ Store = (*BunStore)(nil)
