package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newLoginServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" {
			http.NotFound(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		w.Header().Set("Content-Type", "application/json")
		if !ok || user != "john" || pass != "correct-password" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"code": "UNAUTHORIZED", "message": "unauthorized"})
			return
		}
		json.NewEncoder(w).Encode(credentialResponse{
			ID:         "cred-id",
			Key:        "cred-key",
			Algorithm:  "sha256",
			IssueTime:  1_760_000_000_000,
			ExpireTime: 1_760_003_600_000,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRequestCredential(t *testing.T) {
	srv := newLoginServer(t)

	body, err := requestCredential(context.Background(), srv.Client(), srv.URL+"/", "john", "correct-password")
	if err != nil {
		t.Fatalf("requestCredential failed: %v", err)
	}
	var c credentialResponse
	if err := json.Unmarshal(body, &c); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if c.ID != "cred-id" || c.ExpireTime-c.IssueTime != 3_600_000 {
		t.Errorf("unexpected credential: %+v", c)
	}

	_, err = requestCredential(context.Background(), srv.Client(), srv.URL, "john", "wrong-password")
	if err == nil || !strings.Contains(err.Error(), "unauthorized") {
		t.Errorf("want unauthorized error, got %v", err)
	}
}

func TestLoginCmd_Text(t *testing.T) {
	srv := newLoginServer(t)

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"login", "--api-url", srv.URL, "--username", "john", "--password", "correct-password"})
	if err := root.Execute(); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	for _, want := range []string{"id:         cred-id", "key:        cred-key", "expires:    2025-10-09T09:53:20Z"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestHashPasswordCmd(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"hash-password", "--password", "correct-password", "--cost", "4"})
	if err := root.Execute(); err != nil {
		t.Fatalf("hash-password failed: %v", err)
	}

	hash := strings.TrimSpace(out.String())
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct-password")); err != nil {
		t.Errorf("hash does not verify: %v", err)
	}
}

func TestHandleErrorResponse(t *testing.T) {
	err := handleErrorResponse(500, []byte(`{"code":"INTERNAL_ERROR","message":"internal server error","reference":"req-1"}`))
	if err == nil || !strings.Contains(err.Error(), "req-1") {
		t.Errorf("want reference in error, got %v", err)
	}

	err = handleErrorResponse(502, []byte("bad gateway"))
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Errorf("want status in error, got %v", err)
	}
}
