package shared

import (
	"errors"
	"fmt"
)

// ===========================
// 錯誤分類
// ===========================

// ErrorKind 錯誤類別
//
// 介面層依 Kind 決定對外的呈現方式（HTTP 狀態碼、重試策略），
// 因此每個 DomainError 都必須歸類。
type ErrorKind string

const (
	// KindValidation 呼叫者輸入錯誤，直接回報，不重試
	KindValidation ErrorKind = "validation"
	// KindBusinessRule 業務規則拒絕（例如餘額不足），屬於正常結果而非故障
	KindBusinessRule ErrorKind = "business_rule"
	// KindNotFound 參照的資料不存在（呼叫者應重新整理目錄）
	KindNotFound ErrorKind = "not_found"
	// KindConflict 並發偵測到的衝突（例如重複預約）
	KindConflict ErrorKind = "conflict"
	// KindUnavailable 外部協作者（儲存、網路）不可用，核心不解讀也不重試
	KindUnavailable ErrorKind = "unavailable"
	// KindInternal 資料損壞或程式錯誤
	KindInternal ErrorKind = "internal"
)

// ErrorCode 錯誤代碼類型
type ErrorCode string

// ===========================
// DomainError 結構
// ===========================

// DomainError 領域錯誤
// 設計原則：
// 1. 包含結構化的錯誤代碼與類別（用於 HTTP 狀態碼映射）
// 2. 支持上下文信息（用於調試和日誌）
// 3. 不可變性（WithContext 回傳新實例）
type DomainError struct {
	Code    ErrorCode
	Kind    ErrorKind
	Message string
	Context map[string]any
}

// NewDomainError 建立預定義錯誤
func NewDomainError(code ErrorCode, kind ErrorKind, message string) *DomainError {
	return &DomainError{Code: code, Kind: kind, Message: message}
}

// Error 實現 error 接口
func (e *DomainError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (context: %+v)", e.Code, e.Message, e.Context)
}

// WithContext 添加上下文信息（返回新的錯誤實例，保持不可變性）
func (e *DomainError) WithContext(keyValues ...any) error {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}

	ctx := make(map[string]any, len(e.Context)+len(keyValues)/2)
	for k, v := range e.Context {
		ctx[k] = v
	}
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic(fmt.Sprintf("context key must be string, got %T", keyValues[i]))
		}
		ctx[key] = keyValues[i+1]
	}

	return &DomainError{
		Code:    e.Code,
		Kind:    e.Kind,
		Message: e.Message,
		Context: ctx,
	}
}

// Is 實現 errors.Is 接口（以錯誤代碼判斷）
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// KindOf 取出錯誤鏈中第一個 DomainError 的類別
//
// 非 DomainError 一律視為 KindInternal。
func KindOf(err error) ErrorKind {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInternal
}

// ===========================
// 共用錯誤
// ===========================

const (
	ErrCodeUnavailable ErrorCode = "UNAVAILABLE"
)

// ErrUnavailable 儲存層或外部協作者不可用
//
// Repository 將非預期的資料庫錯誤包裝為此錯誤（保留原因），
// 寫入操作中止且不留下部分狀態。
var ErrUnavailable = NewDomainError(ErrCodeUnavailable, KindUnavailable, "外部服務暫時不可用")

// unavailableError 保留底層原因的 Unavailable 錯誤
type unavailableError struct {
	op    string
	cause error
}

func (e *unavailableError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrUnavailable.Error(), e.op, e.cause)
}

func (e *unavailableError) Unwrap() []error {
	return []error{ErrUnavailable, e.cause}
}

// WrapUnavailable 將基礎設施錯誤包裝為 ErrUnavailable
//
// errors.Is(err, ErrUnavailable) 與 errors.Is(err, cause) 皆成立。
func WrapUnavailable(op string, cause error) error {
	if cause == nil {
		return nil
	}
	return &unavailableError{op: op, cause: cause}
}
