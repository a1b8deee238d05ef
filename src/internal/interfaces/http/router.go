package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter 建立 gin 路由
//
// gatherer 為 nil 時不掛 /metrics。
func NewRouter(h *Handlers, logger *slog.Logger, gatherer prometheus.Gatherer) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
	})
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	r.GET("/plans", h.ListPlans)
	r.POST("/subscriptions/quote", h.QuoteExpiry)
	r.PATCH("/subscriptions/:subscriptionId", h.ChangeSubscription)

	r.GET("/rewards", h.ListRewards)
	r.POST("/bookings/:bookingId/archive", h.ArchiveBooking)

	members := r.Group("/members/:memberId")
	{
		members.POST("/subscriptions", h.StartSubscription)

		members.POST("/points/earn", h.EarnPoints)
		members.POST("/points/settlements", h.CreditSettlement)
		members.POST("/points/redeem", h.RedeemPoints)
		members.GET("/points/balance", h.GetBalance)
		members.GET("/points/history", h.GetHistory)

		members.POST("/rewards/:rewardId/redeem", h.RedeemReward)

		members.POST("/bookings", h.ScheduleBooking)
		members.GET("/events/:eventId/booked", h.IsBooked)
	}

	return r, nil
}
