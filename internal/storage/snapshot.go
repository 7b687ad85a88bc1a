package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/vovakirdan/wezzle/internal/engine"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrSnapshotNotFound is returned when no snapshot has the requested ID.
var ErrSnapshotNotFound = errors.New("storage: snapshot not found")

// SnapshotInfo describes a saved board without decoding it.
type SnapshotInfo struct {
	ID        int64
	GameID    string
	Level     int
	Score     int
	Tiles     int
	Size      int // compressed bytes
	CreatedAt time.Time
}

// encodeState serialises a save state as zstd-compressed JSON.
func (s *Store) encodeState(state engine.SaveState) ([]byte, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot encode snapshot: %w", err)
	}
	return s.enc.EncodeAll(raw, make([]byte, 0, len(raw)/2)), nil
}

func (s *Store) decodeState(blob []byte) (engine.SaveState, error) {
	var state engine.SaveState
	raw, err := s.dec.DecodeAll(blob, nil)
	if err != nil {
		return state, fmt.Errorf("storage: cannot decompress snapshot: %w", err)
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		return state, fmt.Errorf("storage: cannot decode snapshot: %w", err)
	}
	return state, nil
}

// SaveSnapshot stores a saved game for gameID and returns its ID.
func (s *Store) SaveSnapshot(gameID string, state engine.SaveState) (int64, error) {
	blob, err := s.encodeState(state)
	if err != nil {
		return 0, err
	}
	result, err := s.db.Exec(
		"INSERT INTO snapshots (game_id, level, score, tiles, data) VALUES (?, ?, ?, ?, ?)",
		gameID, state.Stats.Level, state.Stats.Score, state.Board.Tiles(), blob,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save snapshot: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// LoadSnapshot returns the game a snapshot was saved for and its state.
func (s *Store) LoadSnapshot(id int64) (string, engine.SaveState, error) {
	var gameID string
	var blob []byte
	err := s.db.QueryRow("SELECT game_id, data FROM snapshots WHERE id = ?", id).Scan(&gameID, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return "", engine.SaveState{}, fmt.Errorf("storage: snapshot %d: %w", id, ErrSnapshotNotFound)
	}
	if err != nil {
		return "", engine.SaveState{}, fmt.Errorf("storage: cannot query snapshot: %w", err)
	}
	state, err := s.decodeState(blob)
	if err != nil {
		return "", engine.SaveState{}, err
	}
	return gameID, state, nil
}

// ListSnapshots returns the most recent snapshots, newest first. An empty
// gameID lists every game.
func (s *Store) ListSnapshots(gameID string, limit int) ([]SnapshotInfo, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, game_id, level, score, tiles, LENGTH(data), created_at
		 FROM snapshots
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshots: %w", err)
	}
	defer rows.Close()

	var infos []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		var createdAt any
		if err := rows.Scan(&info.ID, &info.GameID, &info.Level, &info.Score, &info.Tiles, &info.Size, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.CreatedAt = parseTime(createdAt)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return infos, nil
}

// DeleteSnapshot removes a snapshot.
func (s *Store) DeleteSnapshot(id int64) error {
	res, err := s.db.Exec("DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete snapshot: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: snapshot %d: %w", id, ErrSnapshotNotFound)
	}
	return nil
}
