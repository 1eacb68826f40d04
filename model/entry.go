// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import (
	"errors"
	"time"
)

// DefaultProject はプロジェクト未指定時に使用されるプロジェクト名です。
// デフォルトの解決は境界層（CLI・Web）で一度だけ行います。
const DefaultProject = "Misc"

// Entry は1件の作業ログを表すモデルです。
type Entry struct {
	ID          int64     `json:"id"`
	Project     string    `json:"project"`     // プロジェクト名
	Description string    `json:"description"` // 作業内容
	Date        Date      `json:"date"`        // 作業日（時刻成分なし）
	CreatedAt   time.Time `json:"created_at"`  // 記録日時（表示順のタイブレークのみに使用）
}

// NewEntry はEntryの新しいインスタンスを作成します。
// IDはデータベース側で自動採番されるため、-1を設定します。
func NewEntry(project, description string, date Date) (*Entry, error) {
	e := &Entry{
		ID:          -1, // DBのAUTOINCREMENTで自動採番
		Project:     project,
		Description: description,
		Date:        date,
		CreatedAt:   time.Now(),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// LoadEntry は既存のEntryインスタンスを作成します。
func LoadEntry(id int64, project, description string, date Date, createdAt time.Time) (*Entry, error) {
	// LoadEntryはDBから読み込んだレコード用なので、IDは必須
	if id <= 0 {
		return nil, errors.New("id is required for loaded entry")
	}

	e := &Entry{
		ID:          id,
		Project:     project,
		Description: description,
		Date:        date,
		CreatedAt:   createdAt,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate はエントリのデータバリデーションを行います。
func (e *Entry) Validate() error {
	if e.Project == "" {
		return NewValidationError("project is required")
	}
	if e.Description == "" {
		return NewValidationError("description is required")
	}
	if e.Date.IsZero() {
		return NewValidationError("date is required")
	}
	if e.CreatedAt.IsZero() {
		return NewValidationError("created_at is required")
	}
	return nil
}

// EntryUpdate は部分更新で指定可能なフィールドを表します。
// nilのフィールドは変更されません。
type EntryUpdate struct {
	Project     *string
	Description *string
	Date        *Date
}

// Apply は更新内容を既存のエントリに適用し、バリデーションを行います。
func (u *EntryUpdate) Apply(e *Entry) error {
	if u.Project != nil {
		e.Project = *u.Project
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
	return e.Validate()
}

// IsEmpty は更新対象のフィールドが一つもないことを報告します。
func (u *EntryUpdate) IsEmpty() bool {
	return u.Project == nil && u.Description == nil && u.Date == nil
}
