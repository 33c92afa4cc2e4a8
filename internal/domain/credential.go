// Package domain はドメインモデルとビジネスルールを定義する。
package domain

import "time"

// User はユーザーディレクトリに登録されたユーザーを表す。
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcryptハッシュ
}

// Identity は認証済みユーザーを表す（パスワードハッシュを含まない）。
type Identity struct {
	ID   string
	Name string
}

// Credential はHawk署名用のクレデンシャルを表す。
// IssueTime・ExpireTimeは発行時に同時に設定され、以後変更されない。
// 有効期限の判定はクレデンシャルを検証する側の責務。
type Credential struct {
	ID         string
	Key        string
	Algorithm  string
	IssueTime  time.Time
	ExpireTime time.Time
}

// Lifespan は発行時刻から失効時刻までの期間を返す。
func (c *Credential) Lifespan() time.Duration {
	return c.ExpireTime.Sub(c.IssueTime)
}

// ToIdentity はユーザーから認証済みIDを生成する。
func (u *User) ToIdentity() *Identity {
	return &Identity{
		ID:   u.ID,
		Name: u.Username,
	}
}
