package domain

import "errors"

var (
	// ErrAuthenticationFailed はユーザー名またはパスワードが一致しない場合のエラー。
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrHashCompare は保存済みハッシュが不正などの理由でパスワード比較自体が失敗した場合のエラー。
	ErrHashCompare = errors.New("password hash comparison failed")

	// ErrUserLookup はユーザーディレクトリの参照に失敗した場合のエラー。
	ErrUserLookup = errors.New("user lookup failed")

	// ErrUserAlreadyExists は指定されたユーザー名が既に登録されている場合のエラー。
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidUsername はユーザー名の形式が不正な場合のエラー。
	ErrInvalidUsername = errors.New("invalid username")

	// ErrGeneration は乱数生成に失敗しクレデンシャルを発行できない場合のエラー。
	ErrGeneration = errors.New("credential generation failed")

	// ErrStore はクレデンシャルストアへの書き込みに失敗した場合のエラー。
	ErrStore = errors.New("credential store write failed")

	// ErrMigrationFailed はマイグレーション実行時のエラー。
	ErrMigrationFailed = errors.New("migration failed")

	// ErrInvalidMigrationFile はマイグレーションファイルのフォーマットが不正な場合のエラー。
	ErrInvalidMigrationFile = errors.New("invalid migration file")
)
