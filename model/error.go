// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import (
	"errors"
	"fmt"
)

// センチネルエラー - リソースが見つからない場合
var ErrEntryNotFound = errors.New("entry not found")

// ValidationError はバリデーションエラーを表す型
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError はValidationErrorを生成するヘルパー関数
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// StorageError はストレージが利用不能・破損している場合の致命的エラーを表す型です。
// リトライせず、そのまま呼び出し元に伝播します。
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError はStorageErrorを生成するヘルパー関数
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
