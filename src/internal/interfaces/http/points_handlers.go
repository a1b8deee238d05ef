package http

import (
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	pointsapp "github.com/jackyeh168/club_ledger/src/internal/application/points"
)

// ===========================
// 積分帳本
// ===========================

const idempotencyKeyHeader = "Idempotency-Key"

type ledgerWriteResponse struct {
	TransactionID string    `json:"transaction_id"`
	MemberID      string    `json:"member_id"`
	Sequence      int64     `json:"sequence"`
	Delta         int       `json:"delta"`
	Balance       int       `json:"balance"`
	OccurredAt    time.Time `json:"occurred_at"`
	Replayed      bool      `json:"replayed"`
}

func toLedgerWriteResponse(r *pointsapp.LedgerWriteResult) ledgerWriteResponse {
	return ledgerWriteResponse{
		TransactionID: r.TransactionID,
		MemberID:      r.MemberID,
		Sequence:      r.Sequence,
		Delta:         r.Delta,
		Balance:       r.Balance,
		OccurredAt:    r.OccurredAt,
		Replayed:      r.Replayed,
	}
}

// writeStatus 冪等重送回 200，新交易回 201
func writeStatus(replayed bool) int {
	if replayed {
		return nethttp.StatusOK
	}
	return nethttp.StatusCreated
}

type earnPointsRequest struct {
	Amount         int    `json:"amount" binding:"required"`
	Source         string `json:"source" binding:"omitempty,oneof=settlement promotion manual"`
	SourceRef      string `json:"source_ref"`
	Description    string `json:"description"`
	IdempotencyKey string `json:"idempotency_key"`
}

type settlementRequest struct {
	Reference string `json:"reference" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	Currency  string `json:"currency" binding:"required,len=3"`
}

type redeemPointsRequest struct {
	Amount      int    `json:"amount" binding:"required"`
	Description string `json:"description"`
}

// EarnPoints POST /members/:memberId/points/earn
func (h *Handlers) EarnPoints(c *gin.Context) {
	var req earnPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	key := req.IdempotencyKey
	if key == "" {
		key = c.GetHeader(idempotencyKeyHeader)
	}

	result, err := h.uc.EarnPoints.Execute(pointsapp.EarnPointsCommand{
		MemberID:       c.Param("memberId"),
		Amount:         req.Amount,
		Source:         req.Source,
		SourceRef:      req.SourceRef,
		Description:    req.Description,
		IdempotencyKey: key,
	})
	if err != nil {
		h.respondError(c, "earn_points", err)
		return
	}
	c.JSON(writeStatus(result.Replayed), toLedgerWriteResponse(result))
}

// CreditSettlement POST /members/:memberId/points/settlements
//
// 金額不足一點時回 200 且 credited=false。
func (h *Handlers) CreditSettlement(c *gin.Context) {
	var req settlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.uc.CreditSettlement.Execute(pointsapp.CreditSettlementCommand{
		MemberID:  c.Param("memberId"),
		Reference: req.Reference,
		Amount:    req.Amount,
		Currency:  req.Currency,
	})
	if err != nil {
		h.respondError(c, "credit_settlement", err)
		return
	}

	if !result.Credited {
		c.JSON(nethttp.StatusOK, gin.H{"credited": false, "points": 0})
		return
	}
	c.JSON(writeStatus(result.Replayed), gin.H{
		"credited":    true,
		"points":      result.Points,
		"transaction": toLedgerWriteResponse(result.LedgerWriteResult),
	})
}

// RedeemPoints POST /members/:memberId/points/redeem
func (h *Handlers) RedeemPoints(c *gin.Context) {
	var req redeemPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.uc.RedeemPoints.Execute(pointsapp.RedeemPointsCommand{
		MemberID:       c.Param("memberId"),
		Amount:         req.Amount,
		Description:    req.Description,
		IdempotencyKey: c.GetHeader(idempotencyKeyHeader),
	})
	if err != nil {
		h.respondError(c, "redeem_points", err)
		return
	}
	c.JSON(writeStatus(result.Replayed), toLedgerWriteResponse(result))
}

// GetBalance GET /members/:memberId/points/balance
func (h *Handlers) GetBalance(c *gin.Context) {
	result, err := h.uc.GetBalance.Execute(pointsapp.GetPointsBalanceQuery{
		MemberID: c.Param("memberId"),
	})
	if err != nil {
		h.respondError(c, "get_balance", err)
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{
		"member_id":         result.MemberID,
		"balance":           result.Balance,
		"transaction_count": result.TransactionCount,
	})
}

type historyEntryResponse struct {
	TransactionID string    `json:"transaction_id"`
	Sequence      int64     `json:"sequence"`
	Delta         int       `json:"delta"`
	Source        string    `json:"source"`
	SourceRef     string    `json:"source_ref,omitempty"`
	RewardID      int64     `json:"reward_id,omitempty"`
	RewardName    string    `json:"reward_name,omitempty"`
	Description   string    `json:"description,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type redemptionResponse struct {
	TransactionID string    `json:"transaction_id"`
	Amount        int       `json:"amount"`
	RewardID      int64     `json:"reward_id,omitempty"`
	RewardName    string    `json:"reward_name,omitempty"`
	Description   string    `json:"description,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// GetHistory GET /members/:memberId/points/history[?view=redemptions]
func (h *Handlers) GetHistory(c *gin.Context) {
	view := pointsapp.HistoryView(c.DefaultQuery("view", string(pointsapp.HistoryViewAll)))
	result, err := h.uc.GetHistory.Execute(pointsapp.GetHistoryQuery{
		MemberID: c.Param("memberId"),
		View:     view,
	})
	if err != nil {
		h.respondError(c, "get_history", err)
		return
	}

	if view == pointsapp.HistoryViewRedemptions {
		items := make([]redemptionResponse, 0, len(result.Redemptions))
		for _, r := range result.Redemptions {
			items = append(items, redemptionResponse{
				TransactionID: r.TransactionID,
				Amount:        r.Amount,
				RewardID:      r.RewardID,
				RewardName:    r.RewardName,
				Description:   r.Description,
				OccurredAt:    r.OccurredAt,
			})
		}
		c.JSON(nethttp.StatusOK, gin.H{"member_id": result.MemberID, "redemptions": items})
		return
	}

	items := make([]historyEntryResponse, 0, len(result.Entries))
	for _, e := range result.Entries {
		items = append(items, historyEntryResponse{
			TransactionID: e.TransactionID,
			Sequence:      e.Sequence,
			Delta:         e.Delta,
			Source:        e.Source,
			SourceRef:     e.SourceRef,
			RewardID:      e.RewardID,
			RewardName:    e.RewardName,
			Description:   e.Description,
			OccurredAt:    e.OccurredAt,
		})
	}
	c.JSON(nethttp.StatusOK, gin.H{"member_id": result.MemberID, "entries": items})
}
