package macromentor

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"macromentor/nutrition"
)

// AllocationLogger records allocator steps. Every implementation satisfies
// nutrition.StepObserver.
type AllocationLogger interface {
	nutrition.StepObserver
}

// NewAllocationLogFilePath returns a timestamped log path under dir, tagged
// with a cleaned up run label.
func NewAllocationLogFilePath(dir, label string) string {
	label = strings.NewReplacer(" ", "_", ":", "_", "/", "_").Replace(strings.ToLower(label))
	return filepath.Join(dir, fmt.Sprintf("%d.%s.json", time.Now().Unix(), label))
}

// StepLog is a single allocator step with the time it was observed.
type StepLog struct {
	nutrition.Step
	Timestamp time.Time `json:"timestamp"`
}

// FileAllocationLogger accumulates steps and writes them as one document on
// Flush.
type FileAllocationLogger struct {
	runID  string
	steps  []StepLog
	writer io.Writer
}

// NewFileAllocationLogger creates a new file-based allocation logger.
func NewFileAllocationLogger(runID string, writer io.Writer) *FileAllocationLogger {
	return &FileAllocationLogger{
		runID:  runID,
		steps:  make([]StepLog, 0),
		writer: writer,
	}
}

// ObserveStep buffers the step (does not flush immediately).
func (l *FileAllocationLogger) ObserveStep(step nutrition.Step) error {
	l.steps = append(l.steps, StepLog{Step: step, Timestamp: time.Now()})
	return nil
}

// Flush writes all buffered steps to the writer and clears the buffer.
func (l *FileAllocationLogger) Flush() error {
	if l.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"allocation_run": map[string]any{
			"run_id":    l.runID,
			"timestamp": time.Now(),
			"steps":     l.steps,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal allocation log: %w", err)
	}

	if _, err := l.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write allocation log: %w", err)
	}

	l.steps = l.steps[:0]
	return nil
}

// NoOpAllocationLogger discards all steps.
type NoOpAllocationLogger struct{}

func NewNoOpAllocationLogger() *NoOpAllocationLogger {
	return &NoOpAllocationLogger{}
}

func (NoOpAllocationLogger) ObserveStep(nutrition.Step) error {
	return nil
}

// StdoutAllocationLogger writes each step as a JSON line (for Lambda/CloudWatch).
type StdoutAllocationLogger struct {
	runID string
	out   io.Writer
}

func NewStdoutAllocationLogger(runID string) *StdoutAllocationLogger {
	return &StdoutAllocationLogger{runID: runID, out: os.Stdout}
}

func (l *StdoutAllocationLogger) ObserveStep(step nutrition.Step) error {
	data, err := json.Marshal(struct {
		RunID string `json:"run_id"`
		nutrition.Step
	}{RunID: l.runID, Step: step})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(l.out, string(data))
	return err
}
