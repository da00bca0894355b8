package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// chdirTemp is a pre-Go-1.24 stand-in for t.Chdir(t.TempDir()).
func chdirTemp(t *testing.T) {
	t.Helper()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Errorf("failed to restore working directory: %v", err)
		}
	})
}

func TestNewRunCmdPreRunValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name: "valid_flags",
			args: []string{"--call-timeout", "90s", "--concurrency", "3"},
		},
		{
			name:    "invalid_call_timeout",
			args:    []string{"--call-timeout", "bad"},
			wantErr: "invalid --call-timeout duration",
		},
		{
			name:    "zero_concurrency",
			args:    []string{"--concurrency", "0"},
			wantErr: "concurrency must be >= 1",
		},
		{
			name:    "zero_rate_limit",
			args:    []string{"--arm-rate-limit", "0"},
			wantErr: "ARM rate limit must be >= 1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Run from an empty cwd so no developer .tuscaler.yaml leaks in.
			chdirTemp(t)
			t.Setenv("HOME", t.TempDir())

			cmd := NewRunCmd()
			if err := cmd.ParseFlags(tc.args); err != nil {
				t.Fatalf("failed to parse flags: %v", err)
			}

			err := cmd.PreRunE(cmd, nil)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if got := err.Error(); !strings.Contains(got, tc.wantErr) {
				t.Fatalf("expected error containing %q, got %q", tc.wantErr, got)
			}
		})
	}
}

func TestNewWatchCmdPreRunValidation(t *testing.T) {
	chdirTemp(t)
	t.Setenv("HOME", t.TempDir())

	cmd := NewWatchCmd()
	if err := cmd.ParseFlags([]string{"--interval", "5s"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	if err := cmd.PreRunE(cmd, nil); err == nil {
		t.Fatal("expected validation error for sub-10s interval")
	}
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "forbidden", err: &azcore.ResponseError{StatusCode: http.StatusForbidden}, want: ExitAuth},
		{name: "unauthorized", err: &azcore.ResponseError{StatusCode: http.StatusUnauthorized}, want: ExitAuth},
		{name: "arm_not_found", err: &azcore.ResponseError{StatusCode: http.StatusNotFound}, want: ExitNotFound},
		{name: "server_fault", err: &azcore.ResponseError{StatusCode: http.StatusBadGateway}, want: ExitNetwork},
		{name: "credential_text", err: errors.New("failed to resolve Azure credential: no providers"), want: ExitAuth},
		{name: "network_text", err: errors.New("dial tcp: connection refused"), want: ExitNetwork},
		{name: "invalid_arg_text", err: errors.New("concurrency must be >= 1, got 0"), want: ExitInvalidArg},
		{name: "missing_file", err: errors.New("no such file or directory"), want: ExitNotFound},
		{name: "other", err: errors.New("boom"), want: ExitInternal},
		{name: "canceled", err: context.Canceled, want: ExitInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyError(tc.err); got != tc.want {
				t.Fatalf("expected exit code %d, got %d", tc.want, got)
			}
		})
	}
}
