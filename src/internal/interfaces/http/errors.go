package http

import (
	"errors"
	nethttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

// ===========================
// 錯誤 → HTTP 狀態碼映射
// ===========================

const (
	codeInvalidRequest = "INVALID_REQUEST"
	codeInternal       = "INTERNAL"
)

// ErrorResponse 錯誤回應格式
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

// statusForKind 依錯誤類別決定狀態碼
func statusForKind(kind shared.ErrorKind) int {
	switch kind {
	case shared.KindValidation:
		return nethttp.StatusBadRequest
	case shared.KindBusinessRule:
		return nethttp.StatusUnprocessableEntity
	case shared.KindNotFound:
		return nethttp.StatusNotFound
	case shared.KindConflict:
		return nethttp.StatusConflict
	case shared.KindUnavailable:
		return nethttp.StatusServiceUnavailable
	default:
		return nethttp.StatusInternalServerError
	}
}

// RejectionRecorder 記錄被拒絕的操作（由 metrics.LedgerMetrics 實作）
type RejectionRecorder interface {
	RecordRejection(operation string, err error)
}

// respondError 將錯誤寫成 JSON 回應
//
// 非 DomainError 一律回 500 且不外洩原始訊息。
func (h *Handlers) respondError(c *gin.Context, operation string, err error) {
	if h.rejections != nil {
		h.rejections.RecordRejection(operation, err)
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := statusForKind(domainErr.Kind)
		if status >= nethttp.StatusInternalServerError {
			h.logger.Error("request failed", "operation", operation, "error", err)
		}
		c.AbortWithStatusJSON(status, ErrorResponse{
			Code:    string(domainErr.Code),
			Message: domainErr.Message,
			Context: domainErr.Context,
		})
		return
	}

	h.logger.Error("request failed", "operation", operation, "error", err)
	c.AbortWithStatusJSON(nethttp.StatusInternalServerError, ErrorResponse{
		Code:    codeInternal,
		Message: "internal error",
	})
}

// respondBindError 請求格式錯誤（JSON 解析或欄位驗證失敗）
func respondBindError(c *gin.Context, err error) {
	resp := ErrorResponse{Code: codeInvalidRequest, Message: "invalid request body"}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]any, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		resp.Context = fields
	} else {
		resp.Context = map[string]any{"error": err.Error()}
	}

	c.AbortWithStatusJSON(nethttp.StatusBadRequest, resp)
}
