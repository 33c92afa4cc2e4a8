package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"hawk-credential-service/config"
	"hawk-credential-service/internal/infra"
	"hawk-credential-service/internal/repository"
	"hawk-credential-service/internal/usecase"
)

// hashPasswordCmd はDEFAULT_USER_PASSWORD_HASH用のbcryptハッシュを出力する。
func hashPasswordCmd() *cobra.Command {
	var password string
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for DEFAULT_USER_PASSWORD_HASH",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				p, err := promptPassword(cmd)
				if err != nil {
					return err
				}
				password = p
			}
			hash, err := usecase.HashPassword(password, cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password to hash (prompted if empty)")
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}

// userCmd はデータベースのユーザーディレクトリを操作する。
func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users in the database user directory",
	}
	cmd.AddCommand(userAddCmd())
	return cmd
}

func userAddCmd() *cobra.Command {
	var username, password string
	var cost int
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL environment variable is required")
			}
			if password == "" {
				p, err := promptPassword(cmd)
				if err != nil {
					return err
				}
				password = p
			}

			db, err := infra.NewDB(cfg.DatabaseURL, cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}

			svc := usecase.NewUserService(repository.NewUserRepository(db), cost)
			user, err := svc.Register(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("failed to register user: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered user %q (id: %s)\n", user.Username, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&password, "password", os.Getenv("CREDCTL_PASSWORD"), "Password (prompted if empty)")
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	cmd.MarkFlagRequired("username")
	return cmd
}
