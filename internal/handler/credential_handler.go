// Package handler はHTTPハンドラを提供する。
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"hawk-credential-service/internal/domain"
	"hawk-credential-service/internal/middleware"
	"hawk-credential-service/internal/usecase"
	"hawk-credential-service/pkg/httputil"
)

const (
	operationLogin = "LOGIN"
	basicRealm     = `Basic realm="hawk-credentials"`
)

// CredentialHandler はクレデンシャル発行のHTTPハンドラを提供する。
type CredentialHandler struct {
	service *usecase.IssuanceService
	metrics *middleware.Metrics
}

// NewCredentialHandler は新しいCredentialHandlerを生成する。
func NewCredentialHandler(service *usecase.IssuanceService, metrics *middleware.Metrics) *CredentialHandler {
	return &CredentialHandler{service: service, metrics: metrics}
}

// CredentialResponse はクレデンシャルのレスポンス形式。時刻はエポックミリ秒。
type CredentialResponse struct {
	ID         string `json:"id"`
	Key        string `json:"key"`
	Algorithm  string `json:"algorithm"`
	IssueTime  int64  `json:"issueTime"`
	ExpireTime int64  `json:"expireTime"`
}

func newCredentialResponse(c *domain.Credential) CredentialResponse {
	return CredentialResponse{
		ID:         c.ID,
		Key:        c.Key,
		Algorithm:  c.Algorithm,
		IssueTime:  c.IssueTime.UnixMilli(),
		ExpireTime: c.ExpireTime.UnixMilli(),
	}
}

// Login はBasic認証で受け取ったユーザー名・パスワードを検証し、新しいクレデンシャルを返す。
func (h *CredentialHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, password, ok := r.BasicAuth()
	if !ok {
		h.metrics.RecordIssuance(middleware.ResultRejected)
		unauthorized(w)
		return
	}

	credential, err := h.service.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrAuthenticationFailed) {
			middleware.WriteAuditLog(ctx, operationLogin, username, "", middleware.ResultRejected)
			h.metrics.RecordIssuance(middleware.ResultRejected)
			unauthorized(w)
			return
		}

		reference := chimiddleware.GetReqID(ctx)
		if reference == "" {
			reference = uuid.NewString()
		}
		slog.ErrorContext(ctx, "failed to issue credential",
			"operation", "login",
			"username", username,
			"reference", reference,
			"error", err,
		)
		middleware.WriteAuditLog(ctx, operationLogin, username, "", middleware.ResultFailed)
		h.metrics.RecordIssuance(middleware.ResultFailed)
		httputil.InternalError(w, reference)
		return
	}

	middleware.WriteAuditLog(ctx, operationLogin, username, credential.ID, middleware.ResultSuccess)
	h.metrics.RecordIssuance(middleware.ResultSuccess)
	httputil.JSON(w, http.StatusOK, newCredentialResponse(credential))
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", basicRealm)
	httputil.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
}

// Healthz は生存確認に応答する。
func Healthz(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
