package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Weesdome/Boardhub/internal/apperr"
	"github.com/Weesdome/Boardhub/internal/models"
)

const boardColumns = `id, user_id, title, description, lists, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBoard(row rowScanner) (*models.Board, error) {
	var (
		b                    models.Board
		listsJSON            string
		createdAt, updatedAt string
	)
	if err := row.Scan(&b.ID, &b.UserID, &b.Title, &b.Description, &listsJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(listsJSON), &b.Lists); err != nil {
		return nil, fmt.Errorf("store: decode lists of board %s: %w", b.ID, err)
	}
	if b.Lists == nil {
		b.Lists = []models.List{}
	}
	for i := range b.Lists {
		if b.Lists[i].Cards == nil {
			b.Lists[i].Cards = []models.Card{}
		}
	}
	var err error
	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func encodeLists(lists []models.List) (string, error) {
	if lists == nil {
		lists = []models.List{}
	}
	data, err := json.Marshal(lists)
	if err != nil {
		return "", fmt.Errorf("store: encode lists: %w", err)
	}
	return string(data), nil
}

// ListBoards returns the owner's boards, newest first, without their lists.
func (db *DB) ListBoards(ctx context.Context, ownerID string) ([]models.BoardSummary, error) {
	return db.querySummaries(ctx, `
		SELECT id, title, description, created_at, updated_at
		FROM boards
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, ownerID)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchBoards matches query against the owner's board titles and descriptions.
func (db *DB) SearchBoards(ctx context.Context, ownerID, query string, limit int) ([]models.BoardSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + likeEscaper.Replace(query) + "%"
	return db.querySummaries(ctx, `
		SELECT id, title, description, created_at, updated_at
		FROM boards
		WHERE user_id = ? AND (title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')
		ORDER BY updated_at DESC
		LIMIT ?
	`, ownerID, like, like, limit)
}

func (db *DB) querySummaries(ctx context.Context, query string, args ...any) ([]models.BoardSummary, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query boards: %w", err)
	}
	defer rows.Close()

	out := []models.BoardSummary{}
	for rows.Next() {
		var (
			s                    models.BoardSummary
			createdAt, updatedAt string
		)
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if s.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// FindBoard returns the board with its lists, or apperr.ErrNotFound when the
// board does not exist or belongs to another user.
func (db *DB) FindBoard(ctx context.Context, ownerID, boardID string) (*models.Board, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+boardColumns+` FROM boards WHERE id = ? AND user_id = ?`, boardID, ownerID)
	b, err := scanBoard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: find board: %w", err)
	}
	return b, nil
}

// InsertBoard stores a new board. CreatedAt and UpdatedAt are set when zero.
func (db *DB) InsertBoard(ctx context.Context, b *models.Board) error {
	now := db.now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = b.CreatedAt
	}
	if b.Lists == nil {
		b.Lists = []models.List{}
	}
	listsJSON, err := encodeLists(b.Lists)
	if err != nil {
		return err
	}
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO boards (`+boardColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.UserID, b.Title, b.Description, listsJSON, formatTime(b.CreatedAt), formatTime(b.UpdatedAt))
	if isUniqueViolation(err) {
		return apperr.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("store: insert board: %w", err)
	}
	return nil
}

// UpdateBoardMeta changes a board's title and description.
func (db *DB) UpdateBoardMeta(ctx context.Context, ownerID, boardID, title, description string) (*models.Board, error) {
	return db.updateOwned(ctx, ownerID, boardID,
		`UPDATE boards SET title = ?, description = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		title, description, formatTime(db.now()), boardID, ownerID)
}

// ReplaceLists overwrites the board's whole list document.
func (db *DB) ReplaceLists(ctx context.Context, ownerID, boardID string, lists []models.List) (*models.Board, error) {
	listsJSON, err := encodeLists(lists)
	if err != nil {
		return nil, err
	}
	return db.updateOwned(ctx, ownerID, boardID,
		`UPDATE boards SET lists = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		listsJSON, formatTime(db.now()), boardID, ownerID)
}

func (db *DB) updateOwned(ctx context.Context, ownerID, boardID, stmt string, args ...any) (*models.Board, error) {
	res, err := db.conn.ExecContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("store: update board: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return nil, apperr.ErrNotFound
	}
	return db.FindBoard(ctx, ownerID, boardID)
}

// DeleteBoard removes the board and returns the document as it was.
func (db *DB) DeleteBoard(ctx context.Context, ownerID, boardID string) (*models.Board, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	row := tx.QueryRowContext(ctx,
		`SELECT `+boardColumns+` FROM boards WHERE id = ? AND user_id = ?`, boardID, ownerID)
	b, err := scanBoard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: find board: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM boards WHERE id = ? AND user_id = ?`, boardID, ownerID); err != nil {
		return nil, fmt.Errorf("store: delete board: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}
	return b, nil
}
