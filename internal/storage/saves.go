package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SaveEntry is a stored game snapshot.
type SaveEntry struct {
	ID        string
	GameID    string
	Payload   []byte
	CreatedAt time.Time
}

// SaveGame stores a snapshot payload for gameID and returns its new ID.
func (s *Store) SaveGame(gameID string, payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", errors.New("storage: cannot save game: empty payload")
	}

	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO saves (id, game_id, payload) VALUES (?, ?, ?)",
		id, gameID, payload,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}
	return id, nil
}

// LatestSave returns the most recent snapshot for gameID.
// Returns nil without error if there is none.
func (s *Store) LatestSave(gameID string) (*SaveEntry, error) {
	saves, err := s.ListSaves(gameID, 1)
	if err != nil {
		return nil, err
	}
	if len(saves) == 0 {
		return nil, nil
	}
	return &saves[0], nil
}

// LoadSave returns the snapshot with the given ID.
// Returns nil without error if it does not exist.
func (s *Store) LoadSave(id string) (*SaveEntry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("storage: invalid save id %q: %w", id, err)
	}

	var e SaveEntry
	var createdAt any
	err := s.db.QueryRow(
		"SELECT id, game_id, payload, created_at FROM saves WHERE id = ?",
		id,
	).Scan(&e.ID, &e.GameID, &e.Payload, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query save: %w", err)
	}
	e.CreatedAt = parseTime(createdAt)
	return &e, nil
}

// ListSaves returns snapshots for gameID, newest first.
// A non-positive limit means 20.
func (s *Store) ListSaves(gameID string, limit int) ([]SaveEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, payload, created_at
		 FROM saves
		 WHERE game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var saves []SaveEntry
	for rows.Next() {
		var e SaveEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Payload, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		saves = append(saves, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return saves, nil
}

// DeleteSave removes a snapshot. Deleting a missing ID is not an error.
func (s *Store) DeleteSave(id string) error {
	if _, err := s.db.Exec("DELETE FROM saves WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	return nil
}
