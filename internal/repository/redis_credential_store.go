package repository

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"

	"hawk-credential-service/internal/domain"
)

// RedisCredentialStore はRedisにクレデンシャルを記録する。
//
//	<username>      SET  クレデンシャルID
//	<credential id> HASH id, key, algorithm, issueTime, expireTime（エポックミリ秒）
//
// TTLは設定しない。expireTimeの判定は検証側が行う。
type RedisCredentialStore struct {
	client redis.Cmdable
}

// NewRedisCredentialStore は新しいRedisCredentialStoreを生成する。
func NewRedisCredentialStore(client redis.Cmdable) *RedisCredentialStore {
	return &RedisCredentialStore{client: client}
}

// credentialFields はハッシュに書き込むフィールドを返す。
func credentialFields(c *domain.Credential) map[string]any {
	return map[string]any{
		"id":         c.ID,
		"key":        c.Key,
		"algorithm":  c.Algorithm,
		"issueTime":  strconv.FormatInt(c.IssueTime.UnixMilli(), 10),
		"expireTime": strconv.FormatInt(c.ExpireTime.UnixMilli(), 10),
	}
}

// Persist は所有者セットにIDを追加した後、クレデンシャルのハッシュを書き込む。
// 2つのコマンドはトランザクションで囲まない。
func (r *RedisCredentialStore) Persist(ctx context.Context, username string, credential *domain.Credential) error {
	if err := r.client.SAdd(ctx, username, credential.ID).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to add credential to ownership set",
			"operation", "sadd",
			"username", username,
			"credential_id", credential.ID,
			"error", err,
		)
		return err
	}

	if err := r.client.HSet(ctx, credential.ID, credentialFields(credential)).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to write credential record",
			"operation", "hset",
			"username", username,
			"credential_id", credential.ID,
			"error", err,
		)
		return err
	}
	return nil
}
