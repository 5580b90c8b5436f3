package temporal

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"

	"github.com/ayusman/natya/internal/pose"
)

// ErrTimeout is returned when the analysis process does not exit within the
// configured deadline. Unlike other process failures this one fails the
// score request instead of degrading it.
var ErrTimeout = errors.New("temporal analysis timed out")

// Analyzer produces timing/rhythm sub-scores and feedback for a performance.
type Analyzer interface {
	Analyze(ctx context.Context, captured pose.CapturedSequence, reference pose.ReferenceSequence) (Result, error)
}

// Config holds configuration options for the process executor.
type Config struct {
	// Path is the analysis executable to invoke.
	Path string

	// Timeout bounds a single invocation (default: 30s).
	Timeout time.Duration

	// MaxConcurrent caps simultaneous analysis processes. Requests beyond
	// the cap queue. Default is 1: one OS process at a time.
	MaxConcurrent int
}

// Executor runs the external analysis process, one invocation per score
// request. Each invocation gets its own stdin/stdout buffers, so concurrent
// requests never share intermediate data.
type Executor struct {
	path    string
	timeout time.Duration
	slots   chan struct{}
}

// NewExecutor creates an Executor from the given config.
func NewExecutor(config Config) *Executor {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	concurrent := config.MaxConcurrent
	if concurrent <= 0 {
		concurrent = 1
	}
	return &Executor{
		path:    config.Path,
		timeout: timeout,
		slots:   make(chan struct{}, concurrent),
	}
}

// Analyze serializes both sequences to the analysis process and parses its
// result record. Process failures and malformed output degrade to a zero
// Result rather than failing the request; only a timeout is an error.
func (e *Executor) Analyze(ctx context.Context, captured pose.CapturedSequence, reference pose.ReferenceSequence) (Result, error) {
	// Queue behind in-flight invocations.
	select {
	case e.slots <- struct{}{}:
		defer func() { <-e.slots }()
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	reqJSON, err := json.Marshal(NewRequest(captured, reference))
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal analysis request: %w", err)
	}

	cmd := exec.CommandContext(runCtx, e.path)
	cmd.Stdin = bytes.NewReader(reqJSON)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if runCtx.Err() != nil {
		// The caller's own context ending is not an analyzer timeout.
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, fmt.Errorf("%w after %s", ErrTimeout, e.timeout)
	}

	// Exit state is advisory only: log it and parse whatever was emitted.
	if runErr != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			log.Printf("temporal analyzer exited with error: %v, stderr: %s", runErr, msg)
		} else {
			log.Printf("temporal analyzer exited with error: %v", runErr)
		}
	}

	result, found := parseRecord(&stdout)
	if !found {
		log.Printf("temporal analyzer emitted no result record, degrading to zero sub-scores")
		return Result{}, nil
	}

	return result, nil
}

// parseRecord scans stdout line by line and returns the first line that
// parses as a result record. The process may emit progress or debug lines
// before the record; later records are ignored.
func parseRecord(stdout *bytes.Buffer) (Result, bool) {
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "{") {
			continue
		}

		var result Result
		if err := json.Unmarshal([]byte(line), &result); err != nil {
			continue
		}
		return result, true
	}

	return Result{}, false
}
