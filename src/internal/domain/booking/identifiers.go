package booking

import (
	"strconv"
	"strings"

	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

// BookingMarker 是 BookingID 的標記類型
type BookingMarker struct{}

// BookingID 預約的唯一標識符
type BookingID = shared.EntityID[BookingMarker]

// NewBookingID 生成新的預約 ID（UUID v4）
func NewBookingID() BookingID {
	return shared.NewEntityID[BookingMarker]()
}

// BookingIDFromString 從字串解析預約 ID
func BookingIDFromString(s string) (BookingID, error) {
	return shared.EntityIDFromString[BookingMarker](s, ErrInvalidBookingID)
}

// MemberMarker 是 MemberID 的標記類型
type MemberMarker struct{}

// MemberID 會員 ID
type MemberID = shared.EntityID[MemberMarker]

// MemberIDFromString 從字串解析會員 ID
func MemberIDFromString(s string) (MemberID, error) {
	return shared.EntityIDFromString[MemberMarker](s, ErrInvalidMemberID)
}

// ClassEventID 課程活動 ID（外部課表系統的正整數流水號）
type ClassEventID int64

// NewClassEventID 建立課程活動 ID
func NewClassEventID(v int64) (ClassEventID, error) {
	if v <= 0 {
		return 0, ErrInvalidClassEventID.WithContext("input", v)
	}
	return ClassEventID(v), nil
}

// ClassEventIDFromString 解析路徑參數
func ClassEventIDFromString(s string) (ClassEventID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, ErrInvalidClassEventID.WithContext("input", s, "parse_error", err.Error())
	}
	return NewClassEventID(v)
}

// Int64 回傳數值
func (id ClassEventID) Int64() int64 { return int64(id) }

// String 十進位字串
func (id ClassEventID) String() string { return strconv.FormatInt(int64(id), 10) }
