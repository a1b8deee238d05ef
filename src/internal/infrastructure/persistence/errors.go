package persistence

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsUniqueConstraintError 判斷是否為唯一約束錯誤
//
// 支持的資料庫：
// - PostgreSQL: "duplicate key value violates unique constraint"
// - SQLite: "UNIQUE constraint failed"
func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	// PostgreSQL
	if strings.Contains(errMsg, "duplicate key value violates unique constraint") {
		return true
	}

	// SQLite
	if strings.Contains(errMsg, "unique constraint failed") {
		return true
	}

	return false
}

// ViolatesConstraint 唯一約束錯誤是否涉及指定的索引或欄位
//
// PostgreSQL 訊息帶索引名稱，SQLite 訊息帶欄位名稱，
// 因此索引名稱與欄位名稱應含有共同片段（例如 idempotency）。
func ViolatesConstraint(err error, fragment string) bool {
	return IsUniqueConstraintError(err) && strings.Contains(strings.ToLower(err.Error()), strings.ToLower(fragment))
}

// IsRecordNotFound 是否為查無資料
func IsRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
