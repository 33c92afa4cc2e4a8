package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// credentialResponse は /login のレスポンス。
type credentialResponse struct {
	ID         string `json:"id"`
	Key        string `json:"key"`
	Algorithm  string `json:"algorithm"`
	IssueTime  int64  `json:"issueTime"`
	ExpireTime int64  `json:"expireTime"`
}

// loginCmd はクレデンシャルの発行コマンド。
func loginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and obtain a new Hawk credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiURL == "" {
				return fmt.Errorf("--api-url is required (or set CREDCTL_API_URL)")
			}
			if password == "" {
				password = os.Getenv("CREDCTL_PASSWORD")
			}
			if password == "" {
				p, err := promptPassword(cmd)
				if err != nil {
					return err
				}
				password = p
			}

			body, err := requestCredential(cmd.Context(), httpClient, apiURL, username, password)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == "json" {
				fmt.Fprintln(out, strings.TrimSpace(string(body)))
				return nil
			}

			var c credentialResponse
			if err := json.Unmarshal(body, &c); err != nil {
				return fmt.Errorf("parsing response: %w", err)
			}
			fmt.Fprintf(out, "id:         %s\n", c.ID)
			fmt.Fprintf(out, "key:        %s\n", c.Key)
			fmt.Fprintf(out, "algorithm:  %s\n", c.Algorithm)
			fmt.Fprintf(out, "issued:     %s\n", time.UnixMilli(c.IssueTime).UTC().Format(time.RFC3339))
			fmt.Fprintf(out, "expires:    %s\n", time.UnixMilli(c.ExpireTime).UTC().Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set CREDCTL_PASSWORD; prompted if empty)")
	cmd.MarkFlagRequired("username")
	return cmd
}

// requestCredential はBasic認証で /login を呼び出し、成功時のレスポンスボディを返す。
func requestCredential(ctx context.Context, client *http.Client, baseURL, username, password string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(baseURL, "/")+"/login", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(username, password)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, handleErrorResponse(resp.StatusCode, body)
	}
	return body, nil
}

func promptPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("--password is required when stdin is not a terminal")
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	p, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(p), nil
}

func handleErrorResponse(statusCode int, body []byte) error {
	var errResp struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		Reference string `json:"reference"`
	}
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&errResp); err == nil && errResp.Message != "" {
		if errResp.Reference != "" {
			return fmt.Errorf("Error: %s (reference: %s)", errResp.Message, errResp.Reference)
		}
		return fmt.Errorf("Error: %s", errResp.Message)
	}
	return fmt.Errorf("Error: server returned status %d", statusCode)
}
