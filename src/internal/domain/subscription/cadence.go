package subscription

import "strings"

// Cadence 方案的計費／續約週期
type Cadence string

const (
	CadenceDaily    Cadence = "daily"
	CadenceWeekly   Cadence = "weekly"
	CadenceMonthly  Cadence = "monthly"
	CadenceYearly   Cadence = "yearly"
	CadenceLifetime Cadence = "lifetime"
)

// AllCadences 所有合法週期（依週期長度排序）
var AllCadences = []Cadence{
	CadenceDaily,
	CadenceWeekly,
	CadenceMonthly,
	CadenceYearly,
	CadenceLifetime,
}

// ParseCadence 解析週期字串（不分大小寫）
func ParseCadence(s string) (Cadence, error) {
	c := Cadence(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidCadence.WithContext("input", s)
	}
	return c, nil
}

// IsValid 判斷是否為合法週期
func (c Cadence) IsValid() bool {
	for _, known := range AllCadences {
		if c == known {
			return true
		}
	}
	return false
}

// String 回傳週期字串
func (c Cadence) String() string {
	return string(c)
}
