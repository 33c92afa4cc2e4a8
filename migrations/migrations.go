// Package migrations はデータベーススキーマを埋め込みで提供する。
package migrations

import "embed"

// FS は {version}_{name}.sql 形式のマイグレーションファイル。
//
//go:embed *.sql
var FS embed.FS
