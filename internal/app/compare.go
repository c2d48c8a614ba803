package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/agbru/aicompare/internal/backend"
	"github.com/agbru/aicompare/internal/cli"
	apperrors "github.com/agbru/aicompare/internal/errors"
	"github.com/agbru/aicompare/internal/logging"
	"github.com/agbru/aicompare/internal/orchestration"
	"github.com/agbru/aicompare/internal/server"
	"github.com/agbru/aicompare/internal/telemetry"
)

// runCompare orchestrates the one-shot comparison command.
func (a *Application) runCompare(ctx context.Context, registry *backend.Registry, out io.Writer) int {
	if strings.TrimSpace(a.Config.Prompt) == "" {
		fmt.Fprintf(a.ErrWriter, "Error: a prompt is required. Usage: aicompare [flags] <prompt>\n")
		return apperrors.ExitErrorConfig
	}

	// Lifecycle: overall timeout plus SIGINT/SIGTERM.
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	cleanupTelemetry, err := telemetry.Init(ctx, a.Config.TraceFile)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error initializing tracing: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	defer cleanupTelemetry()

	instruments := a.startMetricsServer(ctx)

	clients, code := a.selectClients(registry)
	if code != apperrors.ExitSuccess {
		return code
	}

	if !a.Config.Quiet {
		cli.PrintRunConfig(a.Config, out)
		cli.PrintBackendLineup(clients, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	errorHandler := cli.CLIResultPresenter{}

	if instruments != nil {
		instruments.IncrementActiveRequests()
	}
	responses, err := orchestration.CompareAcrossBackends(ctx, a.Config.Prompt, clients, progressReporter, progressOut)
	if instruments != nil {
		instruments.DecrementActiveRequests()
	}
	if err != nil {
		return errorHandler.HandleError(err, a.ErrWriter)
	}

	sess := orchestration.NewSession(a.Config.Prompt)
	sess.SetResponses(responses)
	a.recordComparison(instruments, responses)

	// Analysis unavailability degrades the output, it does not fail the run.
	_ = orchestration.Analyze(sess)

	if a.Config.AddBackend != "" {
		a.runAddBackend(ctx, sess, registry, progressReporter, progressOut, out)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Mode:       a.Config.DisplayMode,
		Explain:    a.Config.Explain,
	}
	if err := cli.DisplaySessionWithConfig(out, sess, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving report: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	// A timeout or interrupt that settled the tasks as cancelled still
	// reports through the exit code.
	if ctx.Err() != nil {
		return errorHandler.HandleError(ctx.Err(), a.ErrWriter)
	}
	return apperrors.ExitSuccess
}

// runAddBackend re-queries one more backend into the settled session.
func (a *Application) runAddBackend(ctx context.Context, sess *orchestration.Session, registry *backend.Registry, reporter orchestration.ProgressReporter, progressOut, out io.Writer) {
	client, ok := registry.Get(a.Config.AddBackend)
	if !ok {
		fmt.Fprintf(a.ErrWriter, "Cannot add unknown backend %q (known: %v)\n",
			a.Config.AddBackend, registry.Names())
		return
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "\nAdding %s to the comparison...\n", client.Identify().DisplayName)
	}
	if _, err := orchestration.AddBackend(ctx, sess, client, reporter, progressOut); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error adding backend: %v\n", err)
	}
}

// startMetricsServer serves Prometheus metrics for the lifetime of the run
// when -metrics-addr is set. Returns the instruments to record into, or
// nil when the server is disabled.
func (a *Application) startMetricsServer(ctx context.Context) *server.Metrics {
	if a.Config.MetricsAddr == "" {
		return nil
	}
	srv := server.New(a.Config.MetricsAddr, server.NewMetrics(), logging.NewDefaultLogger())
	go func() {
		if err := srv.Run(ctx); err != nil {
			fmt.Fprintf(a.ErrWriter, "Metrics server error: %v\n", err)
		}
	}()
	return srv.Metrics()
}

// recordComparison feeds the settled responses into the Prometheus
// instruments.
func (a *Application) recordComparison(instruments *server.Metrics, responses []orchestration.AIResponse) {
	if instruments == nil {
		return
	}
	instruments.RecordComparison()
	for _, resp := range responses {
		if resp.Failed() {
			instruments.RecordBackendFailure(string(resp.Kind))
			continue
		}
		instruments.ObserveBackendLatency(resp.BackendID, resp.Latency)
	}
}
