// Package sqlite persists everything powerboard keeps between runs: the
// manifest cache, the display order, the OAuth token, and the selected
// membership, in a single database under the data directory.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/oauth2"

	"powerboard/internal/domain"
	"powerboard/internal/ports"
)

const schemaVersion = "1"

// Keys in the meta table
const (
	keySchemaVersion   = "schema_version"
	keyDisplayOrder    = "display_order"
	keyOAuthToken      = "oauth_token"
	keyMembership      = "membership"
	keyManifestVersion = "manifest_version"
)

// Store implements the persistence ports over one SQLite database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Interface checks
var (
	_ ports.OrderStore      = (*Store)(nil)
	_ ports.TokenStore      = (*Store)(nil)
	_ ports.MembershipStore = (*Store)(nil)
	_ ports.ManifestStore   = (*Store)(nil)
)

// Open creates or opens the database under dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "powerboard.db")

	// WAL keeps the TUI responsive while the poller writes
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS manifest_classes (
			hash INTEGER PRIMARY KEY,
			name TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("setup database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// migrate resets the cache when the schema version moved. Everything in
// here is a cache or re-obtainable, so dropping is safe.
func (s *Store) migrate() error {
	version, err := s.getMeta(keySchemaVersion)
	if err != nil {
		return err
	}
	if version == schemaVersion {
		return nil
	}
	if version != "" {
		if _, err := s.db.Exec(`DELETE FROM meta; DELETE FROM manifest_classes;`); err != nil {
			return fmt.Errorf("reset database: %w", err)
		}
	}
	return s.setMeta(keySchemaVersion, schemaVersion)
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) getMeta(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read meta %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) setMeta(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("write meta %s: %w", key, err)
	}
	return nil
}

func (s *Store) delMeta(key string) error {
	if _, err := s.db.Exec(`DELETE FROM meta WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete meta %s: %w", key, err)
	}
	return nil
}

// --- ports.OrderStore ---

// LoadDisplayOrder returns the stored order, or nil when none is set.
func (s *Store) LoadDisplayOrder() (domain.DisplayOrder, error) {
	raw, err := s.getMeta(keyDisplayOrder)
	if err != nil || raw == "" {
		return nil, err
	}
	var order domain.DisplayOrder
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		// A corrupt value behaves like no value; the next save overwrites it.
		return nil, nil
	}
	return order, nil
}

// SaveDisplayOrder replaces the stored order.
func (s *Store) SaveDisplayOrder(order domain.DisplayOrder) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode display order: %w", err)
	}
	return s.setMeta(keyDisplayOrder, string(raw))
}

// ClearDisplayOrder removes the stored order.
func (s *Store) ClearDisplayOrder() error {
	return s.delMeta(keyDisplayOrder)
}

// --- ports.TokenStore ---

// LoadToken returns the stored token, or nil when none is set.
func (s *Store) LoadToken() (*oauth2.Token, error) {
	raw, err := s.getMeta(keyOAuthToken)
	if err != nil || raw == "" {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal([]byte(raw), &tok); err != nil {
		return nil, nil
	}
	return &tok, nil
}

// SaveToken replaces the stored token.
func (s *Store) SaveToken(tok *oauth2.Token) error {
	raw, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	return s.setMeta(keyOAuthToken, string(raw))
}

// --- ports.MembershipStore ---

// LoadMembership returns the stored membership and whether one is set.
func (s *Store) LoadMembership() (domain.Membership, bool, error) {
	raw, err := s.getMeta(keyMembership)
	if err != nil || raw == "" {
		return domain.Membership{}, false, err
	}
	var m domain.Membership
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return domain.Membership{}, false, nil
	}
	return m, true, nil
}

// SaveMembership replaces the stored membership.
func (s *Store) SaveMembership(m domain.Membership) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode membership: %w", err)
	}
	return s.setMeta(keyMembership, string(raw))
}

// --- ports.ManifestStore ---

// CachedVersion returns the version of the cached manifest, or "".
func (s *Store) CachedVersion() (string, error) {
	return s.getMeta(keyManifestVersion)
}

// Load returns the cached manifest.
func (s *Store) Load() (*domain.Manifest, error) {
	version, err := s.getMeta(keyManifestVersion)
	if err != nil {
		return nil, err
	}
	if version == "" {
		return nil, errors.New("no cached manifest")
	}

	rows, err := s.db.Query(`SELECT hash, name FROM manifest_classes`)
	if err != nil {
		return nil, fmt.Errorf("read manifest classes: %w", err)
	}
	defer rows.Close()

	m := &domain.Manifest{Version: version, ClassNames: make(map[uint32]string)}
	for rows.Next() {
		var hash uint32
		var name string
		if err := rows.Scan(&hash, &name); err != nil {
			return nil, fmt.Errorf("scan manifest class: %w", err)
		}
		m.ClassNames[hash] = name
	}
	return m, rows.Err()
}

// Save replaces the cached manifest atomically.
func (s *Store) Save(m *domain.Manifest) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin manifest save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM manifest_classes`); err != nil {
		return fmt.Errorf("clear manifest classes: %w", err)
	}
	for hash, name := range m.ClassNames {
		if _, err := tx.Exec(`INSERT INTO manifest_classes (hash, name) VALUES (?, ?)`, hash, name); err != nil {
			return fmt.Errorf("insert manifest class: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, keyManifestVersion, m.Version); err != nil {
		return fmt.Errorf("write manifest version: %w", err)
	}
	return tx.Commit()
}
