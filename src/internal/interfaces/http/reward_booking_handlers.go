package http

import (
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	bookingapp "github.com/jackyeh168/club_ledger/src/internal/application/booking"
	rewardapp "github.com/jackyeh168/club_ledger/src/internal/application/reward"
	"github.com/jackyeh168/club_ledger/src/internal/domain/booking"
)

// ===========================
// 獎品
// ===========================

type rewardResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageRef string `json:"image_ref,omitempty"`
	Cost     int    `json:"cost"`
}

// ListRewards GET /rewards
func (h *Handlers) ListRewards(c *gin.Context) {
	rewards, err := h.uc.ListRewards.Execute()
	if err != nil {
		h.respondError(c, "list_rewards", err)
		return
	}

	resp := make([]rewardResponse, 0, len(rewards))
	for _, r := range rewards {
		resp = append(resp, rewardResponse{ID: r.ID, Name: r.Name, ImageRef: r.ImageRef, Cost: r.Cost})
	}
	c.JSON(nethttp.StatusOK, gin.H{"rewards": resp})
}

// RedeemReward POST /members/:memberId/rewards/:rewardId/redeem
//
// 帶 Idempotency-Key 重送時回傳原交易（200）。
func (h *Handlers) RedeemReward(c *gin.Context) {
	result, err := h.uc.RedeemReward.Execute(rewardapp.RedeemRewardCommand{
		MemberID:       c.Param("memberId"),
		RewardID:       c.Param("rewardId"),
		IdempotencyKey: c.GetHeader(idempotencyKeyHeader),
	})
	if err != nil {
		h.respondError(c, "redeem_reward", err)
		return
	}
	c.JSON(writeStatus(result.Replayed), gin.H{
		"transaction_id": result.TransactionID,
		"reward_id":      result.RewardID,
		"reward_name":    result.RewardName,
		"cost":           result.Cost,
		"balance":        result.Balance,
		"replayed":       result.Replayed,
	})
}

// ===========================
// 預約
// ===========================

type bookingResponse struct {
	BookingID string    `json:"booking_id"`
	MemberID  string    `json:"member_id"`
	EventID   int64     `json:"event_id"`
	OccursAt  time.Time `json:"occurs_at"`
	Status    string    `json:"status"`
}

func toBookingResponse(r *bookingapp.BookingResult) bookingResponse {
	return bookingResponse{
		BookingID: r.BookingID,
		MemberID:  r.MemberID,
		EventID:   r.EventID,
		OccursAt:  r.OccursAt,
		Status:    r.Status,
	}
}

type scheduleBookingRequest struct {
	EventID  int64     `json:"event_id" binding:"required,gt=0"`
	OccursAt time.Time `json:"occurs_at" binding:"required"`
}

// ScheduleBooking POST /members/:memberId/bookings
func (h *Handlers) ScheduleBooking(c *gin.Context) {
	var req scheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.uc.ScheduleBooking.Execute(bookingapp.ScheduleBookingCommand{
		MemberID: c.Param("memberId"),
		EventID:  req.EventID,
		OccursAt: req.OccursAt,
	})
	if err != nil {
		h.respondError(c, "schedule_booking", err)
		return
	}
	c.JSON(nethttp.StatusCreated, toBookingResponse(result))
}

// IsBooked GET /members/:memberId/events/:eventId/booked
func (h *Handlers) IsBooked(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("eventId"), 10, 64)
	if err != nil {
		h.respondError(c, "is_booked", booking.ErrInvalidClassEventID.WithContext("input", c.Param("eventId")))
		return
	}

	booked, err := h.uc.IsBooked.Execute(bookingapp.IsBookedQuery{
		MemberID: c.Param("memberId"),
		EventID:  eventID,
	})
	if err != nil {
		h.respondError(c, "is_booked", err)
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{"booked": booked})
}

// ArchiveBooking POST /bookings/:bookingId/archive
func (h *Handlers) ArchiveBooking(c *gin.Context) {
	result, err := h.uc.ArchiveBooking.Execute(bookingapp.ArchiveBookingCommand{
		BookingID: c.Param("bookingId"),
	})
	if err != nil {
		h.respondError(c, "archive_booking", err)
		return
	}
	c.JSON(nethttp.StatusOK, toBookingResponse(result))
}
