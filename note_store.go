package main

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoteNotFound is returned when a note id does not exist for the session.
var ErrNoteNotFound = errors.New("note not found")

// noteStore persists processed notes and diagnoses in sqlite. Record payloads
// are JSON encrypted with AES-GCM; clinical text never hits disk in the clear.
type noteStore struct {
	db  *sql.DB
	key []byte
}

func deriveKeyFromEnv(raw string) ([]byte, error) {
	if raw == "" {
		return nil, errors.New("NOTES_DB_KEY is required")
	}
	if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil && len(decoded) >= 16 {
		if len(decoded) == 32 {
			return decoded, nil
		}
		h := sha256.Sum256(decoded)
		return h[:], nil
	}
	h := sha256.Sum256([]byte(raw))
	return h[:], nil
}

func encryptBlob(key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	ct := gcm.Seal(nil, nonce, plaintext, nil)
	out := make([]byte, 0, len(nonce)+len(ct))
	out = append(out, nonce...)
	out = append(out, ct...)
	return out, nil
}

func decryptBlob(key, blob []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	n := gcm.NonceSize()
	if len(blob) < n {
		return nil, errors.New("ciphertext too short")
	}
	nonce := blob[:n]
	ct := blob[n:]
	pt, err := gcm.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, err
	}
	return pt, nil
}

func newNoteStore(dbPath string, key []byte) (*noteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, err
	}
	schema := []string{`CREATE TABLE IF NOT EXISTS notes(
						note_id TEXT PRIMARY KEY,
						session_id TEXT,
						data BLOB,
						created_at INTEGER
					);`, `CREATE TABLE IF NOT EXISTS diagnoses(
						diagnosis_id TEXT PRIMARY KEY,
						session_id TEXT,
						data BLOB,
						created_at INTEGER
					);`}
	for _, s := range schema {
		if _, err := db.Exec(s); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return &noteStore{db: db, key: key}, nil
}

// noteRecord is one processed note.
type noteRecord struct {
	ID         string         `json:"id"`
	SessionID  string         `json:"session_id"`
	Filename   string         `json:"filename"`
	Summary    string         `json:"summary"`
	Structured structuredNote `json:"structured"`
	CreatedAt  time.Time      `json:"created_at"`
}

// diagnosisRecord is one diagnosis suggestion with its request and parse.
type diagnosisRecord struct {
	ID        string           `json:"id"`
	SessionID string           `json:"session_id"`
	Request   diagnosisRequest `json:"request"`
	Diagnosis string           `json:"diagnosis"`
	Parsed    diagnosisFields  `json:"parsed"`
	CreatedAt time.Time        `json:"created_at"`
}

func (s *noteStore) SaveNote(ctx context.Context, rec noteRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	enc, err := encryptBlob(s.key, data)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO notes(note_id, session_id, data, created_at) VALUES (?, ?, ?, ?) ON CONFLICT(note_id) DO UPDATE SET session_id=excluded.session_id, data=excluded.data, created_at=excluded.created_at`, rec.ID, rec.SessionID, enc, rec.CreatedAt.Unix())
	return err
}

func (s *noteStore) GetNote(ctx context.Context, sessionID, noteID string) (*noteRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT data FROM notes WHERE note_id = ? AND session_id = ?`, noteID, sessionID)
	var blob []byte
	if err := row.Scan(&blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	pt, err := decryptBlob(s.key, blob)
	if err != nil {
		return nil, err
	}
	var out noteRecord
	if err := json.Unmarshal(pt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *noteStore) ListNotes(ctx context.Context, sessionID string, limit int) ([]noteRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM notes WHERE session_id = ? ORDER BY created_at DESC LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []noteRecord
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		pt, err := decryptBlob(s.key, blob)
		if err != nil {
			return nil, err
		}
		var rec noteRecord
		if err := json.Unmarshal(pt, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *noteStore) SaveDiagnosis(ctx context.Context, rec diagnosisRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	enc, err := encryptBlob(s.key, data)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO diagnoses(diagnosis_id, session_id, data, created_at) VALUES (?, ?, ?, ?) ON CONFLICT(diagnosis_id) DO UPDATE SET session_id=excluded.session_id, data=excluded.data, created_at=excluded.created_at`, rec.ID, rec.SessionID, enc, rec.CreatedAt.Unix())
	return err
}

func (s *noteStore) ListDiagnoses(ctx context.Context, sessionID string, limit int) ([]diagnosisRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM diagnoses WHERE session_id = ? ORDER BY created_at DESC LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []diagnosisRecord
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		pt, err := decryptBlob(s.key, blob)
		if err != nil {
			return nil, err
		}
		var rec diagnosisRecord
		if err := json.Unmarshal(pt, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *noteStore) Close() error {
	return s.db.Close()
}
