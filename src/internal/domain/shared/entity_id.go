package shared

import (
	"github.com/google/uuid"
)

// ===========================
// EntityID[T] 泛型實體 ID
// ===========================

// EntityID 是一個泛型實體 ID 值對象
//
// 設計原則：
// 1. 使用 Go 1.18+ 泛型消除重複代碼（DRY 原則）
// 2. 類型安全：不同實體的 ID 不能混用（BookingID ≠ TransactionID）
// 3. 不可變性（unexported field）
// 4. 自我驗證（建構函數檢查）
//
// 泛型參數 T 是標記類型（marker type），只用於編譯時類型區分。
//
// 使用範例：
//   type BookingMarker struct{}
//   type BookingID = shared.EntityID[BookingMarker]
//
//   id := shared.NewEntityID[BookingMarker]()
//   parsed, err := shared.EntityIDFromString[BookingMarker](s, ErrInvalidBookingID)
type EntityID[T any] struct {
	value uuid.UUID
}

// NewEntityID 生成新的實體 ID（使用 UUID v4）
func NewEntityID[T any]() EntityID[T] {
	return EntityID[T]{value: uuid.New()}
}

// EntityIDFromString 從字串解析實體 ID
//
// errTemplate 若實作 WithContext，回傳的錯誤會附帶輸入值與解析錯誤。
//
// 不同 bounded context 的 ID 解析失敗應回傳各自的錯誤（ErrInvalidBookingID、ErrInvalidMemberID），
// 因此錯誤由呼叫者提供，shared 層不依賴具體業務錯誤。
func EntityIDFromString[T any](s string, errTemplate error) (EntityID[T], error) {
	id, err := uuid.Parse(s)
	if err != nil {
		// 使用調用者提供的錯誤模板，並添加上下文
		// 假設錯誤類型支持 WithContext（如 DomainError）
		if domainErr, ok := errTemplate.(interface {
			WithContext(keyValues ...any) error
		}); ok {
			return EntityID[T]{}, domainErr.WithContext(
				"input", s,
				"parse_error", err.Error(),
			)
		}
		// 如果錯誤類型不支持 WithContext，直接返回
		return EntityID[T]{}, errTemplate
	}
	return EntityID[T]{value: id}, nil
}

// String 轉換為字串表示（小寫 UUID）
//
// 返回格式：xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx（小寫）
func (e EntityID[T]) String() string {
	return e.value.String()
}

// Equals 比較兩個 EntityID 是否相等（只能比較相同類型的 ID）
func (e EntityID[T]) Equals(other EntityID[T]) bool {
	return e.value == other.value
}

// IsEmpty 判斷是否為空 ID（零值）
//
// 空 ID 的場景：
// - 未初始化的結構體字段
// - 解析失敗後的零值返回
func (e EntityID[T]) IsEmpty() bool {
	return e.value == uuid.Nil
}

// MustEntityIDFromString 解析實體 ID，失敗時 panic（僅用於測試與靜態資料）
func MustEntityIDFromString[T any](s string) EntityID[T] {
	id, err := uuid.Parse(s)
	if err != nil {
		panic(err)
	}
	return EntityID[T]{value: id}
}
