// Package store persists chunk embeddings in SQLite with the sqlite-vec
// extension and answers nearest-neighbour queries over them.
package store

import (
	"database/sql"
	"fmt"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"

	"github.com/algrano/yt-grano/internal/errors"
	"github.com/algrano/yt-grano/internal/model"
)

func init() {
	sqlite_vec.Auto()
}

// Store provides persistence for indexed videos, chunks and their embeddings
type Store interface {
	// UpsertVideo replaces everything indexed for a video in one
	// transaction: metadata, chunks and vectors. Re-indexing a video
	// never leaves stale chunks behind.
	UpsertVideo(video model.Video, lang string, chunks []model.Chunk, embeddings [][]float32) error
	// HasVideo reports whether a video has been indexed.
	HasVideo(videoID string) (bool, error)
	// Search returns the top-k chunks closest to the query vector,
	// best first, with score = 1 - cosine distance. A non-empty videoID
	// restricts the search to that video's chunks.
	Search(queryEmbedding []float32, k int, videoID string) ([]model.Hit, error)
	// DeleteVideo removes a video's metadata, chunks and vectors.
	DeleteVideo(videoID string) error
	// Close closes the underlying database.
	Close() error
}

// SQLiteStore implements Store backed by SQLite + sqlite-vec
type SQLiteStore struct {
	db *sql.DB
}

// Open creates or opens the vector database at the given path and
// initializes the schema for the given embedding dimension.
func Open(dbPath string, dim int) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to open vector database")
	}
	if err := Init(db, dim); err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize vector database schema")
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) UpsertVideo(video model.Video, lang string, chunks []model.Chunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return errors.New(errors.CodeInvalidArg,
			fmt.Sprintf("mismatched chunks (%d) and embeddings (%d)", len(chunks), len(embeddings)))
	}

	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to begin transaction")
	}
	defer tx.Rollback()

	if err := deleteVideoTx(tx, video.ID); err != nil {
		return err
	}

	_, err = tx.Exec(
		"INSERT INTO videos (video_id, title, url, lang) VALUES (?, ?, ?, ?)",
		video.ID, video.Title, video.URL, lang,
	)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to insert video record")
	}

	chunkStmt, err := tx.Prepare(
		"INSERT INTO chunks (chunk_key, video_id, chunk_index, start_sec, end_sec, content) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to prepare chunk insert")
	}
	defer chunkStmt.Close()

	vecStmt, err := tx.Prepare("INSERT INTO vec_chunks (chunk_id, video_id, embedding) VALUES (?, ?, ?)")
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to prepare embedding insert")
	}
	defer vecStmt.Close()

	for i, c := range chunks {
		key := fmt.Sprintf("%s:%d", video.ID, i)
		res, err := chunkStmt.Exec(key, video.ID, i, c.StartSec, c.EndSec, c.Text)
		if err != nil {
			return errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("failed to insert chunk %s", key))
		}
		id, err := res.LastInsertId()
		if err != nil {
			return errors.Wrap(err, errors.CodeInternal, "failed to read chunk ID")
		}

		blob, err := sqlite_vec.SerializeFloat32(embeddings[i])
		if err != nil {
			return errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("failed to serialize embedding for chunk %s", key))
		}
		if _, err := vecStmt.Exec(id, video.ID, blob); err != nil {
			return errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("failed to insert embedding for chunk %s", key))
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to commit video index")
	}
	return nil
}

func (s *SQLiteStore) HasVideo(videoID string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM videos WHERE video_id = ?", videoID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, errors.CodeInternal, "failed to query video record")
	}
	return true, nil
}

func (s *SQLiteStore) Search(queryEmbedding []float32, k int, videoID string) ([]model.Hit, error) {
	blob, err := sqlite_vec.SerializeFloat32(queryEmbedding)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to serialize query embedding")
	}

	query := `
		SELECT v.distance, c.video_id, c.start_sec, c.end_sec, c.content, vid.title, vid.lang
		FROM vec_chunks v
		JOIN chunks c ON c.id = v.chunk_id
		JOIN videos vid ON vid.video_id = c.video_id
		WHERE v.embedding MATCH ?`
	args := []any{blob}
	if videoID != "" {
		query += " AND v.video_id = ?"
		args = append(args, videoID)
	}
	query += `
		AND k = ?
		ORDER BY v.distance`
	args = append(args, k)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to run vector search")
	}
	defer rows.Close()

	var hits []model.Hit
	for rows.Next() {
		var h model.Hit
		var distance float64
		if err := rows.Scan(&distance, &h.VideoID, &h.StartSec, &h.EndSec, &h.Text, &h.Title, &h.Lang); err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to scan search result")
		}
		h.Score = 1 - distance
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to iterate search results")
	}
	return hits, nil
}

func (s *SQLiteStore) DeleteVideo(videoID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to begin transaction")
	}
	defer tx.Rollback()

	if err := deleteVideoTx(tx, videoID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to commit video deletion")
	}
	return nil
}

// deleteVideoTx removes a video's vectors, chunks and record inside tx.
// The vec0 table has no foreign keys, so its rows are deleted explicitly.
func deleteVideoTx(tx *sql.Tx, videoID string) error {
	rows, err := tx.Query("SELECT id FROM chunks WHERE video_id = ?", videoID)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to list existing chunks")
	}
	var chunkIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return errors.Wrap(err, errors.CodeInternal, "failed to scan chunk ID")
		}
		chunkIDs = append(chunkIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to iterate chunk IDs")
	}

	for _, id := range chunkIDs {
		if _, err := tx.Exec("DELETE FROM vec_chunks WHERE chunk_id = ?", id); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "failed to delete embedding")
		}
	}
	if _, err := tx.Exec("DELETE FROM chunks WHERE video_id = ?", videoID); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to delete chunks")
	}
	if _, err := tx.Exec("DELETE FROM videos WHERE video_id = ?", videoID); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to delete video record")
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
