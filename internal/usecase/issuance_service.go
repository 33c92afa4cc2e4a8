package usecase

import (
	"context"
	"fmt"

	"hawk-credential-service/internal/domain"
)

// CredentialStore はクレデンシャルを共有ストアに記録するインターフェース。
// 所有者セットへの追加とレコードの書き込みは別操作であり、
// 両者の間でプロセスが停止すると、レコードのないIDが所有者セットに残りうる。
type CredentialStore interface {
	Persist(ctx context.Context, username string, credential *domain.Credential) error
}

// IssuanceService は認証・発行・保存を順に実行する。
// いずれかの段階で失敗した時点で終了し、以降の段階は実行しない。
type IssuanceService struct {
	auth   *AuthService
	issuer *CredentialIssuer
	store  CredentialStore
}

// NewIssuanceService は新しいIssuanceServiceを生成する。
func NewIssuanceService(auth *AuthService, issuer *CredentialIssuer, store CredentialStore) *IssuanceService {
	return &IssuanceService{
		auth:   auth,
		issuer: issuer,
		store:  store,
	}
}

// Login はユーザーを認証し、新しいクレデンシャルを発行・保存して返す。
// 認証に失敗した場合は domain.ErrAuthenticationFailed を返し、ストアには書き込まない。
// 保存に失敗した場合は domain.ErrStore を返す。この場合、生成済みのクレデンシャルは使用できない。
func (s *IssuanceService) Login(ctx context.Context, username, password string) (*domain.Credential, error) {
	ctx, span := tracer.Start(ctx, "IssuanceService.Login")
	defer span.End()

	valid, identity, err := s.auth.Validate(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("validating user: %w", err)
	}
	if !valid {
		return nil, domain.ErrAuthenticationFailed
	}

	credential, err := s.issuer.Issue(ctx, identity)
	if err != nil {
		return nil, err
	}

	if err := s.store.Persist(ctx, identity.Name, credential); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStore, err)
	}

	return credential, nil
}
