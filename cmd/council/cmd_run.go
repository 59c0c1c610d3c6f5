package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/unbobounbobo/press-council/internal/catalog"
	"github.com/unbobounbobo/press-council/internal/council"
	"github.com/unbobounbobo/press-council/internal/openrouter"
	"github.com/unbobounbobo/press-council/internal/session"
)

var (
	requestPath string
	catalogPath string
	outputPath  string
	sessionDir  string
	presetID    string
	writerIDs   []string
	assignSpecs []string
	editorID    string
	severity    int
	verbose     bool
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [announcement.txt]",
		Short: "Run the press release pipeline",
		Long: `Run the full pipeline over an announcement.

The announcement is read from the given file, or from stdin when the
argument is "-" or omitted. Alternatively --request loads a run request
JSON produced by "council new".

Requires OPENROUTER_API_KEY in the environment.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCommandE,
	}

	cmd.Flags().StringVar(&requestPath, "request", "", "Run request JSON file (from 'council new')")
	cmd.Flags().StringVar(&catalogPath, "catalog", "council.yaml", "Catalog overlay file (missing file uses the builtin catalog)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output JSON file for the full run bundle")
	cmd.Flags().StringVar(&sessionDir, "session-log", "", "Directory for NDJSON run logs (disabled when empty)")
	cmd.Flags().StringVar(&presetID, "preset", "", "Preset id (simple, standard, full)")
	cmd.Flags().StringArrayVar(&writerIDs, "writer", nil, "Writer backend id (can be repeated)")
	cmd.Flags().StringArrayVar(&assignSpecs, "assign", nil, "Evaluation assignment as backend:profile (can be repeated)")
	cmd.Flags().StringVar(&editorID, "editor", "", "Editor backend id")
	cmd.Flags().IntVar(&severity, "severity", 0, "Evaluation strictness 1-5 (0 uses the preset default)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print full evaluation verdicts")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(cmd, args)
	if err != nil {
		return err
	}

	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("OPENROUTER_API_KEY is not set")
	}
	client := openrouter.New(openrouter.Config{APIKey: apiKey})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cn := council.New(cat, client)
	rep := newReporter(cmd.OutOrStdout(), cat, verbose)
	cn.OnProgress(rep.handleEvent)

	logger, logPath, err := openRunLog(sessionDir)
	if err != nil {
		return err
	}
	defer logger.Close() //nolint:errcheck
	cn.OnProgress(logListener(logger))

	start := time.Now()
	result, runErr := cn.Run(ctx, *req)
	if runErr != nil && !errors.Is(runErr, council.ErrNoDrafts) {
		return runErr
	}

	rep.printSummary(result, time.Since(start))
	if logPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Run log: %s\n", logPath) //nolint:errcheck
	}

	if outputPath != "" {
		if err := writeBundle(outputPath, result); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Results saved: %s\n", outputPath) //nolint:errcheck
	}

	if result.State == council.StateFailed {
		return &RunFailureError{Message: "run failed: no writer backend returned a draft"}
	}
	if result.Synthesis.Error {
		return &RunFailureError{Message: fmt.Sprintf("synthesis degraded: %s", result.Synthesis.Content)}
	}
	return nil
}

// buildRequest assembles the run request from --request and/or the
// announcement argument, with explicit flags taking precedence.
func buildRequest(cmd *cobra.Command, args []string) (*council.Request, error) {
	var req council.Request

	if requestPath != "" {
		data, err := os.ReadFile(requestPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read request: %w", err)
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("failed to parse request: %w", err)
		}
	}

	if len(args) == 1 || req.Input == "" {
		input, err := readAnnouncement(cmd, args)
		if err != nil {
			return nil, err
		}
		if input != "" {
			req.Input = input
		}
	}
	req.Input = strings.TrimSpace(req.Input)
	if req.Input == "" {
		return nil, fmt.Errorf("no announcement given: pass a file, pipe to stdin, or use --request")
	}

	if presetID != "" {
		req.PresetID = presetID
	}
	if len(writerIDs) > 0 {
		req.Writers = writerIDs
	}
	if editorID != "" {
		req.Editor = editorID
	}
	if severity != 0 {
		req.Severity = severity
	}
	if len(assignSpecs) > 0 {
		assignments, err := parseAssignments(assignSpecs)
		if err != nil {
			return nil, err
		}
		req.Assignments = assignments
	}

	return &req, nil
}

func readAnnouncement(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		// Only consume stdin when something is piped in.
		if f, ok := cmd.InOrStdin().(*os.File); ok {
			if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
				return "", nil
			}
		}
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read announcement: %w", err)
	}
	return string(data), nil
}

// parseAssignments parses repeated backend:profile flags.
func parseAssignments(specs []string) ([]catalog.Assignment, error) {
	var out []catalog.Assignment
	for _, spec := range specs {
		backend, profile, ok := strings.Cut(spec, ":")
		if !ok || backend == "" || profile == "" {
			return nil, fmt.Errorf("invalid --assign %q: expected backend:profile", spec)
		}
		out = append(out, catalog.Assignment{BackendID: backend, ProfileID: profile})
	}
	return out, nil
}

// openRunLog returns a session logger for dir, or a no-op logger when dir
// is empty.
func openRunLog(dir string) (session.Logger, string, error) {
	if dir == "" {
		return session.NopLogger{}, "", nil
	}
	path := session.DefaultLogPath(dir)
	logger, err := session.NewJSONLogger(path)
	if err != nil {
		return nil, "", err
	}
	return logger, path, nil
}

// logListener translates pipeline progress events into run log entries.
func logListener(logger session.Logger) council.Listener {
	stageStarts := map[council.EventType]time.Time{}
	runStart := time.Now()
	var draftCount, evalCount int

	stageOf := func(t council.EventType) council.EventType {
		switch t {
		case council.EventDraftingComplete:
			return council.EventDraftingStarted
		case council.EventEvaluatingComplete:
			return council.EventEvaluatingStarted
		case council.EventSynthesizingComplete:
			return council.EventSynthesizingStarted
		}
		return ""
	}

	return func(ev council.Event) {
		switch ev.Type {
		case council.EventRunConfigured:
			meta := ev.Metadata
			logger.Log(session.NewEvent(session.EventRunStart, //nolint:errcheck
				session.RunStartData(meta.PresetID, meta.Writers, meta.Editor, meta.Severity)))

		case council.EventDraftingStarted, council.EventEvaluatingStarted, council.EventSynthesizingStarted:
			stageStarts[ev.Type] = time.Now()
			logger.Log(session.NewEvent(session.EventStageStart, //nolint:errcheck
				session.StageStartData(stageName(ev.Type))))

		case council.EventDraftingComplete, council.EventEvaluatingComplete, council.EventSynthesizingComplete:
			startType := stageOf(ev.Type)
			dur := time.Since(stageStarts[startType]).Milliseconds()
			produced := len(ev.Drafts) + len(ev.Evaluations)
			if ev.Synthesis != nil {
				produced++
			}
			draftCount += len(ev.Drafts)
			evalCount += len(ev.Evaluations)
			logger.Log(session.NewEvent(session.EventStageComplete, //nolint:errcheck
				session.StageCompleteData(stageName(startType), produced, dur)))

		case council.EventRunComplete:
			logger.Log(session.NewEvent(session.EventRunEnd, //nolint:errcheck
				session.RunCompleteData(string(council.StateComplete), draftCount, evalCount, time.Since(runStart).Milliseconds())))

		case council.EventRunFailed:
			logger.Log(session.NewEvent(session.EventError, //nolint:errcheck
				session.ErrorData(ev.Message, nil)))
			logger.Log(session.NewEvent(session.EventRunEnd, //nolint:errcheck
				session.RunCompleteData(string(council.StateFailed), 0, 0, time.Since(runStart).Milliseconds())))
		}
	}
}

func stageName(t council.EventType) string {
	switch t {
	case council.EventDraftingStarted:
		return "drafting"
	case council.EventEvaluatingStarted:
		return "evaluating"
	case council.EventSynthesizingStarted:
		return "synthesizing"
	}
	return string(t)
}

func writeBundle(path string, result *council.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}
