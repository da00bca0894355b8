package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/spf13/cobra"

	"github.com/ppiankov/tuscaler/internal/logging"
)

var (
	version = "1.1.0"
	verbose bool
)

// Exit codes for structured error reporting.
const (
	ExitSuccess    = 0
	ExitInternal   = 1
	ExitInvalidArg = 2
	ExitNotFound   = 3
	ExitAuth       = 4
	ExitNetwork    = 5
)

func main() {
	logging.Init(false)

	root := &cobra.Command{
		Use:   "tuscaler",
		Short: "Event Hubs throughput-unit scaledown",
		Long: `Tuscaler walks every Azure subscription its credential can see, finds
Event Hubs namespaces tagged ScaleDownTUs with auto-inflate enabled, and
lowers their provisioned throughput units back to the tagged target.

Auto-inflate only ever raises capacity; tuscaler is the other half that
brings idle namespaces back down to baseline cost.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(verbose)
		},
	}

	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.AddCommand(NewRunCmd())
	root.AddCommand(NewWatchCmd())
	root.AddCommand(NewVersionCmd())

	if err := root.Execute(); err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		os.Exit(classifyError(err))
	}
}

func classifyError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch {
		case respErr.StatusCode == http.StatusUnauthorized || respErr.StatusCode == http.StatusForbidden:
			return ExitAuth
		case respErr.StatusCode == http.StatusNotFound:
			return ExitNotFound
		case respErr.StatusCode >= http.StatusInternalServerError:
			return ExitNetwork
		}
	}

	if os.IsNotExist(err) {
		return ExitNotFound
	}

	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "credential") ||
		strings.Contains(msg, "authentication failed") ||
		strings.Contains(msg, "authorizationfailed") {
		return ExitAuth
	}

	if strings.Contains(msg, "not a directory") ||
		strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "no such file") {
		return ExitNotFound
	}

	if strings.Contains(msg, "dial") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "i/o timeout") ||
		strings.Contains(msg, "network is unreachable") {
		return ExitNetwork
	}

	if strings.Contains(msg, "required") ||
		strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "must be") ||
		strings.Contains(msg, "expected") {
		return ExitInvalidArg
	}

	return ExitInternal
}
