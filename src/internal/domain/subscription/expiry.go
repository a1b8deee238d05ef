package subscription

// Expiry 訂閱到期日
//
// 設計原則：
// - lifetime 方案以「無期限」哨兵表示，不是一個很遠的日期
// - 不直接暴露 time.Time：呼叫者必須透過 Date() 的 ok 值或 IsUnbounded()
//   分辨兩種情況，無法把無期限當作普通日期比較
type Expiry struct {
	date      Date
	unbounded bool
}

// UnboundedExpiry 永不到期
func UnboundedExpiry() Expiry {
	return Expiry{unbounded: true}
}

// ExpiresOn 指定日期到期
func ExpiresOn(d Date) Expiry {
	return Expiry{date: d}
}

// IsUnbounded 是否永不到期
func (e Expiry) IsUnbounded() bool {
	return e.unbounded
}

// Date 取得到期日；無期限時 ok 為 false
func (e Expiry) Date() (Date, bool) {
	if e.unbounded {
		return Date{}, false
	}
	return e.date, true
}

// IsActiveOn 指定日期是否仍在期限內（到期日當天起失效）
func (e Expiry) IsActiveOn(d Date) bool {
	if e.unbounded {
		return true
	}
	return d.Before(e.date)
}

// Equal 比較兩個到期日
func (e Expiry) Equal(other Expiry) bool {
	if e.unbounded || other.unbounded {
		return e.unbounded == other.unbounded
	}
	return e.date.Equal(other.date)
}

// String 無期限回傳 "unbounded"，否則 YYYY-MM-DD
func (e Expiry) String() string {
	if e.unbounded {
		return "unbounded"
	}
	return e.date.String()
}
