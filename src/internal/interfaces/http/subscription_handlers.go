package http

import (
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	subscriptionapp "github.com/jackyeh168/club_ledger/src/internal/application/subscription"
)

// ===========================
// 方案與訂閱
// ===========================

type planResponse struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Cadence  string `json:"cadence"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
}

type expiryResponse struct {
	Start     string `json:"start"`
	Cadence   string `json:"cadence"`
	Expiry    string `json:"expiry,omitempty"`
	Unbounded bool   `json:"unbounded"`
}

func toExpiryResponse(v subscriptionapp.ExpiryView) expiryResponse {
	return expiryResponse{
		Start:     v.Start,
		Cadence:   v.Cadence,
		Expiry:    v.Expiry,
		Unbounded: v.Unbounded,
	}
}

type subscriptionResponse struct {
	SubscriptionID string    `json:"subscription_id"`
	MemberID       string    `json:"member_id"`
	PlanCode       string    `json:"plan_code"`
	Version        int       `json:"version"`
	UpdatedAt      time.Time `json:"updated_at"`
	expiryResponse
}

func toSubscriptionResponse(r *subscriptionapp.SubscriptionResult) subscriptionResponse {
	return subscriptionResponse{
		SubscriptionID: r.SubscriptionID,
		MemberID:       r.MemberID,
		PlanCode:       r.PlanCode,
		Version:        r.Version,
		UpdatedAt:      r.UpdatedAt,
		expiryResponse: toExpiryResponse(r.ExpiryView),
	}
}

type quoteExpiryRequest struct {
	PlanCode  string `json:"plan_code" binding:"omitempty,plancode"`
	Cadence   string `json:"cadence" binding:"omitempty,cadence"`
	Start     string `json:"start" binding:"required"`
	Backdated bool   `json:"backdated"`
}

type startSubscriptionRequest struct {
	PlanCode  string `json:"plan_code" binding:"required,plancode"`
	Start     string `json:"start"`
	Backdated bool   `json:"backdated"`
}

type changeSubscriptionRequest struct {
	PlanCode  string `json:"plan_code" binding:"omitempty,plancode"`
	Start     string `json:"start"`
	Backdated bool   `json:"backdated"`
}

// ListPlans GET /plans
func (h *Handlers) ListPlans(c *gin.Context) {
	plans, err := h.uc.ListPlans.Execute()
	if err != nil {
		h.respondError(c, "list_plans", err)
		return
	}

	resp := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, planResponse{
			Code:     p.Code,
			Name:     p.Name,
			Cadence:  p.Cadence,
			Price:    p.Price,
			Currency: p.Currency,
		})
	}
	c.JSON(nethttp.StatusOK, gin.H{"plans": resp})
}

// QuoteExpiry POST /subscriptions/quote
func (h *Handlers) QuoteExpiry(c *gin.Context) {
	var req quoteExpiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := h.uc.QuoteExpiry.Execute(subscriptionapp.QuoteExpiryQuery{
		PlanCode:  req.PlanCode,
		Cadence:   req.Cadence,
		Start:     req.Start,
		Backdated: req.Backdated,
	})
	if err != nil {
		h.respondError(c, "quote_expiry", err)
		return
	}
	c.JSON(nethttp.StatusOK, toExpiryResponse(*view))
}

// StartSubscription POST /members/:memberId/subscriptions
func (h *Handlers) StartSubscription(c *gin.Context) {
	var req startSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.uc.StartSubscription.Execute(subscriptionapp.StartSubscriptionCommand{
		MemberID:  c.Param("memberId"),
		PlanCode:  req.PlanCode,
		Start:     req.Start,
		Backdated: req.Backdated,
	})
	if err != nil {
		h.respondError(c, "start_subscription", err)
		return
	}
	c.JSON(nethttp.StatusCreated, toSubscriptionResponse(result))
}

// ChangeSubscription PATCH /subscriptions/:subscriptionId
func (h *Handlers) ChangeSubscription(c *gin.Context) {
	var req changeSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.uc.ChangeSubscription.Execute(subscriptionapp.ChangeSubscriptionCommand{
		SubscriptionID: c.Param("subscriptionId"),
		PlanCode:       req.PlanCode,
		Start:          req.Start,
		Backdated:      req.Backdated,
	})
	if err != nil {
		h.respondError(c, "change_subscription", err)
		return
	}
	c.JSON(nethttp.StatusOK, toSubscriptionResponse(result))
}
