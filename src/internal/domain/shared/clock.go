package shared

import "time"

// Clock 時間來源
//
// Use Case 透過 Clock 取得「現在」，讓排程時點成為可注入的輸入，
// 領域計算（例如訂閱期限）因此保持純函數。
type Clock interface {
	Now() time.Time
}

// SystemClock 使用系統時間
type SystemClock struct{}

// Now 回傳目前時間（UTC）
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock 固定時間（測試用）
type FixedClock struct {
	At time.Time
}

// Now 回傳固定時間
func (c FixedClock) Now() time.Time {
	return c.At
}
