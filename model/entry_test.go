package model

import (
	"errors"
	"testing"
	"time"
)

func TestNewEntry(t *testing.T) {
	// テストデータ
	date := NewDate(2024, time.November, 20)
	project := "API Development"
	description := "Implemented pagination"

	// エントリを生成
	entry, err := NewEntry(project, description, date)
	if err != nil {
		t.Fatalf("Failed to create entry: %v", err)
	}

	// IDが未採番であることを確認
	if entry.ID != -1 {
		t.Errorf("Expected ID to be -1 before persistence, got %d", entry.ID)
	}

	// 各フィールドが正しく設定されていることを確認
	if entry.Project != project {
		t.Errorf("Expected project to be %s, got %s", project, entry.Project)
	}

	if entry.Description != description {
		t.Errorf("Expected description to be %s, got %s", description, entry.Description)
	}

	if !entry.Date.Equal(date) {
		t.Errorf("Expected date to be %v, got %v", date, entry.Date)
	}

	if entry.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
}

func TestEntryValidate(t *testing.T) {
	date := NewDate(2024, time.November, 20)
	createdAt := time.Date(2024, 11, 20, 9, 30, 0, 0, time.Local)

	// 有効なエントリ
	if _, err := LoadEntry(1, "Misc", "wrote docs", date, createdAt); err != nil {
		t.Fatalf("Failed to load valid entry: %v", err)
	}

	// 無効なエントリ（IDが未採番）
	if _, err := LoadEntry(0, "Misc", "wrote docs", date, createdAt); err == nil {
		t.Error("Expected error for zero ID, got nil")
	}

	// 無効なエントリ（説明が空）
	if _, err := NewEntry("Misc", "", date); err == nil {
		t.Error("Expected error for empty description, got nil")
	}

	// 無効なエントリ（プロジェクトが空）
	if _, err := NewEntry("", "wrote docs", date); err == nil {
		t.Error("Expected error for empty project, got nil")
	}

	// 無効なエントリ（日付なし）
	if _, err := NewEntry("Misc", "wrote docs", Date{}); err == nil {
		t.Error("Expected error for zero date, got nil")
	}

	// バリデーションエラーの型を確認
	_, err := NewEntry("Misc", "", date)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError, got %T", err)
	}
}

func TestEntryUpdateApply(t *testing.T) {
	date := NewDate(2024, time.November, 20)
	createdAt := time.Date(2024, 11, 20, 9, 30, 0, 0, time.Local)
	entry, err := LoadEntry(1, "Misc", "wrote docs", date, createdAt)
	if err != nil {
		t.Fatalf("Failed to load entry: %v", err)
	}

	// 部分更新（説明のみ）
	desc := "reviewed docs"
	update := &EntryUpdate{Description: &desc}
	if err := update.Apply(entry); err != nil {
		t.Fatalf("Failed to apply update: %v", err)
	}
	if entry.Description != desc {
		t.Errorf("Expected description %q, got %q", desc, entry.Description)
	}
	// 未指定のフィールドは変更されないことを確認
	if entry.Project != "Misc" {
		t.Errorf("Expected project to be unchanged, got %q", entry.Project)
	}

	// 空文字への更新はバリデーションエラー
	empty := ""
	bad := &EntryUpdate{Description: &empty}
	if err := bad.Apply(entry); err == nil {
		t.Error("Expected validation error for empty description update, got nil")
	}

	// 空の更新を判定できることを確認
	if !(&EntryUpdate{}).IsEmpty() {
		t.Error("Expected IsEmpty to be true for empty update")
	}
	if update.IsEmpty() {
		t.Error("Expected IsEmpty to be false for non-empty update")
	}
}
