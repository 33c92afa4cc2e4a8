package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"hawk-credential-service/internal/domain"
)

const (
	credentialIDSize  = 16 // 128 bits
	credentialKeySize = 32 // 256 bits
)

// IssuerConfig はクレデンシャル発行の設定。
type IssuerConfig struct {
	Algorithm string
	Lifespan  time.Duration

	// Entropy が nil の場合は crypto/rand.Reader を使う。
	Entropy io.Reader
	// Clock が nil の場合は time.Now を使う。
	Clock func() time.Time
}

// CredentialIssuer は認証済みユーザーに対して新しいHawkクレデンシャルを生成する。
type CredentialIssuer struct {
	algorithm string
	lifespan  time.Duration
	entropy   io.Reader
	clock     func() time.Time
}

// NewCredentialIssuer は新しいCredentialIssuerを生成する。
func NewCredentialIssuer(cfg IssuerConfig) *CredentialIssuer {
	issuer := &CredentialIssuer{
		algorithm: cfg.Algorithm,
		lifespan:  cfg.Lifespan,
		entropy:   cfg.Entropy,
		clock:     cfg.Clock,
	}
	if issuer.entropy == nil {
		issuer.entropy = rand.Reader
	}
	if issuer.clock == nil {
		issuer.clock = time.Now
	}
	return issuer
}

// randomToken は指定バイト数の乱数をbase64url（パディングなし）で返す。
func (i *CredentialIssuer) randomToken(size int) (string, error) {
	buf := make([]byte, size)
	if _, err := io.ReadFull(i.entropy, buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Issue は新しいクレデンシャルを生成する。外部状態は参照しない。
func (i *CredentialIssuer) Issue(ctx context.Context, identity *domain.Identity) (*domain.Credential, error) {
	_, span := tracer.Start(ctx, "CredentialIssuer.Issue")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", identity.ID))

	id, err := i.randomToken(credentialIDSize)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: generating id: %w", domain.ErrGeneration, err)
	}
	key, err := i.randomToken(credentialKeySize)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: generating key: %w", domain.ErrGeneration, err)
	}

	// 保存形式はミリ秒なので、往復後も ExpireTime-IssueTime が lifespan と一致するよう丸める
	issued := time.UnixMilli(i.clock().UnixMilli())

	return &domain.Credential{
		ID:         id,
		Key:        key,
		Algorithm:  i.algorithm,
		IssueTime:  issued,
		ExpireTime: issued.Add(i.lifespan),
	}, nil
}
