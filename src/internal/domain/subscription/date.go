package subscription

import (
	"time"
)

const dateLayout = "2006-01-02"

// Date 日曆日期值對象（無時間部分）
//
// 設計原則：
// - 內部固定為 UTC 午夜，避免時區造成日期位移
// - 零值代表「未設定」，IsZero() 為 true
// - 不可變：所有運算回傳新值
type Date struct {
	t time.Time
}

// NewDate 建立日期，拒絕不存在的日期（例如 2025-02-30）
func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, ErrInvalidDate.WithContext(
			"year", year,
			"month", int(month),
			"day", day,
		)
	}
	return Date{t: t}, nil
}

// MustDate 建立日期，失敗時 panic（僅用於測試與靜態資料）
func MustDate(year int, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDate 解析 YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate.WithContext("input", s, "parse_error", err.Error())
	}
	return Date{t: t}, nil
}

// DateOf 取時間點在指定時區的日曆日期
func DateOf(instant time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := instant.In(loc).Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Year 年
func (d Date) Year() int { return d.t.Year() }

// Month 月
func (d Date) Month() time.Month { return d.t.Month() }

// Day 日
func (d Date) Day() int { return d.t.Day() }

// IsZero 是否為零值
func (d Date) IsZero() bool { return d.t.IsZero() }

// Time 回傳 UTC 午夜的 time.Time（供持久化使用）
func (d Date) Time() time.Time { return d.t }

// String 格式化為 YYYY-MM-DD
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

// Before 是否早於 other
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After 是否晚於 other
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal 是否為同一天
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// AddDays 加減天數
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// AddMonthsClamped 加減月份，日期超出目標月份天數時取該月最後一天
//
// time.AddDate 會把 1/31 + 1 個月正規化為 3/2 或 3/3，
// 這裡改為夾到目標月份月底（1/31 → 2/28 或 2/29）。
func (d Date) AddMonthsClamped(n int) Date {
	y, m, day := d.t.Date()
	firstOfTarget := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := daysIn(firstOfTarget.Year(), firstOfTarget.Month())
	if day > last {
		day = last
	}
	return Date{t: time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)}
}

// AddYearsClamped 加減年份（2/29 在非閏年夾到 2/28）
func (d Date) AddYearsClamped(n int) Date {
	return d.AddMonthsClamped(12 * n)
}

// daysIn 回傳某年某月的天數
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
