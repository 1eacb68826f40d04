// Package store は、データの永続化機能を提供します。
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fastrep/fastrep/model"
)

// EntryStore は作業ログの保存と取得を行うインターフェースです。
type EntryStore interface {
	// CreateEntry は新しいエントリを作成し、採番されたIDをエントリに設定します。
	CreateEntry(ctx context.Context, entry *model.Entry) error
	// GetEntry は指定されたIDのエントリを取得します。
	GetEntry(ctx context.Context, id int64) (*model.Entry, error)
	// ListEntries は指定した期間内のエントリを取得します（両端を含む）。
	ListEntries(ctx context.Context, from, to model.Date) ([]*model.Entry, error)
	// ListAllEntries はすべてのエントリを取得します。
	ListAllEntries(ctx context.Context) ([]*model.Entry, error)
	// ListProjects はすべてのプロジェクト名を重複なく取得します。
	ListProjects(ctx context.Context) ([]string, error)
	// UpdateEntry は指定されたIDのエントリに部分更新を適用します。
	UpdateEntry(ctx context.Context, id int64, update *model.EntryUpdate) (*model.Entry, error)
	// DeleteEntry は指定されたIDのエントリを削除します。
	DeleteEntry(ctx context.Context, id int64) error
	// ClearEntries はすべてのエントリを削除し、削除件数を返します。
	ClearEntries(ctx context.Context) (int, error)
	// Close はストアの接続を閉じます。
	Close() error
}

// SettingStore は設定値の保存と取得を行うインターフェースです。
type SettingStore interface {
	// GetSetting は指定されたキーの設定値を取得します。存在しない場合はdefを返します。
	GetSetting(ctx context.Context, key, def string) (string, error)
	// SetSetting は設定値を保存します。
	SetSetting(ctx context.Context, key, value string) error
}

// Store はアプリケーションが必要とするすべての永続化機能をまとめたインターフェースです。
type Store interface {
	EntryStore
	SettingStore
}

// SQLiteStore はSQLiteを使用したStoreの実装です。
type SQLiteStore struct {
	conn *sql.DB
}

// entryOrder はエントリ一覧の並び順です。
// 日付の降順、同一日付内は記録日時の降順（同日中は新しく記録したものが先）。
// idはcreated_atが同一秒の場合のタイブレークです。
const entryOrder = " ORDER BY date DESC, created_at DESC, id DESC"

// NewSQLiteStore は新しいSQLiteStoreを作成します。
func NewSQLiteStore(dataDir string, migrate func(*sql.DB) error) (*SQLiteStore, error) {
	// データディレクトリの作成（存在しない場合）
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, model.NewStorageError("create data directory", err)
	}

	// SQLiteデータベースファイルのパス
	dbPath := filepath.Join(dataDir, "fastrep.db")

	// SQLiteデータベースへの接続
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, model.NewStorageError("open database", err)
	}

	// スキーマの初期化
	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, model.NewStorageError("migrate database", err)
	}

	return &SQLiteStore{conn: conn}, nil
}

// CreateEntry は新しいエントリをデータベースに保存します。
func (s *SQLiteStore) CreateEntry(ctx context.Context, entry *model.Entry) error {
	// バリデーション
	if err := entry.Validate(); err != nil {
		return err
	}

	result, err := s.conn.ExecContext(ctx, `
		INSERT INTO logs (project, description, date, created_at)
		VALUES (?, ?, ?, ?)`,
		entry.Project,
		entry.Description,
		entry.Date.String(),
		entry.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.NewStorageError("insert entry", err)
	}

	// 採番されたIDをエントリに反映
	id, err := result.LastInsertId()
	if err != nil {
		return model.NewStorageError("get last insert id", err)
	}
	entry.ID = id

	return nil
}

// GetEntry は指定されたIDのエントリを取得します。
func (s *SQLiteStore) GetEntry(ctx context.Context, id int64) (*model.Entry, error) {
	row := s.conn.QueryRowContext(ctx, `
		SELECT id, project, description, date, created_at
		FROM logs WHERE id = ?`, id)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, model.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEntries は指定した期間内のエントリを取得します（両端を含む）。
// 日付はYYYY-MM-DD形式のTEXTで保存されており、辞書順が日付順と一致するため
// 範囲検索は文字列比較で行います。
func (s *SQLiteStore) ListEntries(ctx context.Context, from, to model.Date) ([]*model.Entry, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, project, description, date, created_at
		FROM logs WHERE date >= ? AND date <= ?`+entryOrder,
		from.String(), to.String())
	if err != nil {
		return nil, model.NewStorageError("list entries", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// ListAllEntries はすべてのエントリを取得します。
func (s *SQLiteStore) ListAllEntries(ctx context.Context) ([]*model.Entry, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, project, description, date, created_at
		FROM logs`+entryOrder)
	if err != nil {
		return nil, model.NewStorageError("list all entries", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// ListProjects はすべてのプロジェクト名をアルファベット順で重複なく取得します。
func (s *SQLiteStore) ListProjects(ctx context.Context) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT DISTINCT project FROM logs ORDER BY project`)
	if err != nil {
		return nil, model.NewStorageError("list projects", err)
	}
	defer rows.Close()

	var projects []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, model.NewStorageError("scan project", err)
		}
		projects = append(projects, name)
	}
	if err := rows.Err(); err != nil {
		return nil, model.NewStorageError("list projects", err)
	}
	return projects, nil
}

// UpdateEntry は指定されたIDのエントリに部分更新を適用し、更新後のエントリを返します。
func (s *SQLiteStore) UpdateEntry(ctx context.Context, id int64, update *model.EntryUpdate) (*model.Entry, error) {
	if update.IsEmpty() {
		return nil, model.NewValidationError("no fields to update")
	}

	// 既存エントリを取得し、更新内容を適用してからバリデーション
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := update.Apply(entry); err != nil {
		return nil, err
	}

	result, err := s.conn.ExecContext(ctx, `
		UPDATE logs SET project = ?, description = ?, date = ?
		WHERE id = ?`,
		entry.Project, entry.Description, entry.Date.String(), id)
	if err != nil {
		return nil, model.NewStorageError("update entry", err)
	}

	// 更新された行数を確認
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, model.NewStorageError("get rows affected", err)
	}
	if rowsAffected == 0 {
		return nil, model.ErrEntryNotFound
	}

	return entry, nil
}

// DeleteEntry は指定されたIDのエントリを削除します。
func (s *SQLiteStore) DeleteEntry(ctx context.Context, id int64) error {
	result, err := s.conn.ExecContext(ctx, `DELETE FROM logs WHERE id = ?`, id)
	if err != nil {
		return model.NewStorageError("delete entry", err)
	}

	// 削除された行数を確認
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return model.NewStorageError("get rows affected", err)
	}
	if rowsAffected == 0 {
		return model.ErrEntryNotFound
	}

	return nil
}

// ClearEntries はすべてのエントリを削除し、削除件数を返します。
func (s *SQLiteStore) ClearEntries(ctx context.Context) (int, error) {
	result, err := s.conn.ExecContext(ctx, `DELETE FROM logs`)
	if err != nil {
		return 0, model.NewStorageError("clear entries", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, model.NewStorageError("get rows affected", err)
	}

	return int(rowsAffected), nil
}

// GetSetting は指定されたキーの設定値を取得します。存在しない場合はdefを返します。
func (s *SQLiteStore) GetSetting(ctx context.Context, key, def string) (string, error) {
	var value string
	err := s.conn.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return def, nil
	}
	if err != nil {
		return "", model.NewStorageError("get setting", err)
	}
	return value, nil
}

// SetSetting は設定値を保存します。既存のキーは上書きされます。
func (s *SQLiteStore) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`,
		key, value)
	if err != nil {
		return model.NewStorageError("set setting", err)
	}
	return nil
}

// Close はデータベース接続を閉じます。
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// scanner は*sql.Rowと*sql.Rowsの共通部分です。
type scanner interface {
	Scan(dest ...any) error
}

// scanEntry は1行をmodel.Entryに変換します。
func scanEntry(row scanner) (*model.Entry, error) {
	var (
		id                   int64
		project, description string
		dateStr, createdStr  string
	)
	if err := row.Scan(&id, &project, &description, &dateStr, &createdStr); err != nil {
		return nil, err
	}

	// 文字列から日付に変換
	date, err := model.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse entry date: %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return model.LoadEntry(id, project, description, date, createdAt)
}

// collectEntries は結果セットのすべての行をmodel.Entryに変換します。
func collectEntries(rows *sql.Rows) ([]*model.Entry, error) {
	var entries []*model.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, model.NewStorageError("iterate entries", err)
	}
	return entries, nil
}
