// Package status provides Status
package status

// spellchecker:words rewritable

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/FAU-CDI/rdfadmin/pkg/progress"
	"github.com/dustin/go-humanize"
	"github.com/tkw1536/pkglib/perf"
)

// Status holds information about the current stage of starting up the admin.
// Updating the status writes out detailed information to an underlying io.Writer.
//
// Status is safe to access concurrently, however the caller is responsible for only logging to one stage at a time.
//
// A nil Status is valid, and discards any information written to it.
type Status struct {
	m sync.RWMutex // m protects changes to current and all

	logger     *slog.Logger
	rewritable *progress.Rewritable

	current StageStats   // current holds information about the current stage
	all     []StageStats // all hold information about the old stages
}

// NewStatus creates a new status which writes output to the given io.Writer.
// If w is nil, returns a nil Status.
func NewStatus(w io.Writer) *Status {
	if w == nil {
		return nil
	}
	return &Status{
		logger:     slog.New(slog.NewTextHandler(w, nil)),
		rewritable: &progress.Rewritable{Writer: w, FlushInterval: progress.DefaultFlushInterval},
	}
}

// Rewritable returns the rewritable associated with this status.
// It is reset at the end of each stage.
func (status *Status) Rewritable() *progress.Rewritable {
	if status == nil {
		return nil
	}
	return status.rewritable
}

// Log logs an informational message with the provided key, value field pairs.
// When status or the associated logger are nil, no logging occurs.
func (status *Status) Log(message string, fields ...any) {
	if status == nil || status.logger == nil {
		return
	}
	status.logger.Info(message, fields...)
}

// LogError logs an error message containing the provided error and the provided key, value field pairs.
func (status *Status) LogError(message string, err error, fields ...any) {
	if status == nil || status.logger == nil {
		return
	}

	status.logger.Error("FAILED "+message, append([]any{"err", err}, fields...)...)
}

// LogFatal is like LogError followed by os.Exit(1).
// When status or the associated logger are nil, os.Exit(1) is called immediately.
func (status *Status) LogFatal(message string, err error) {
	status.LogError(message, err)
	os.Exit(1)
}

// Current returns a copy of the current stage.
func (status *Status) Current() StageStats {
	if status == nil {
		return StageStats{}
	}

	status.m.RLock()
	defer status.m.RUnlock()
	return status.current
}

// Diff returns a performance diff starting at the first, and ending at the last finished stage.
// If status is nil, or no stage has finished, a zero diff is returned.
func (status *Status) Diff() perf.Diff {
	if status == nil {
		return perf.Diff{}
	}

	status.m.RLock()
	defer status.m.RUnlock()

	if len(status.all) == 0 {
		return perf.Diff{}
	}
	return status.all[len(status.all)-1].End.Sub(status.all[0].Start)
}

// Start starts a new stage, ending the previous one.
//
// If status is nil, this function has no effect.
func (status *Status) Start(stage Stage) {
	if status == nil {
		return
	}

	status.m.Lock()
	defer status.m.Unlock()

	status.end()

	status.current.Stage = stage
	status.current.Start = perf.Now()

	if status.logger != nil {
		status.logger.Info("start", "stage", stage)
	}
}

// End ends the current stage if any.
//
// If status is nil, this function has no effect.
func (status *Status) End() (prev StageStats) {
	if status == nil {
		return
	}

	status.m.Lock()
	defer status.m.Unlock()

	return status.end()
}

// end implements End.
// status.m must be held for writing.
func (status *Status) end() (prev StageStats) {
	if status.current.Stage == StageInitial {
		return
	}

	status.current.End = perf.Now()
	status.all = append(status.all, status.current)
	prev = status.current
	status.current = StageStats{}

	if status.rewritable != nil {
		status.rewritable.Close()
	}

	if status.logger != nil {
		status.logger.Info("end", "stage", prev.Stage, "took", prev.Diff(), "count", prev.Count)
	}
	return
}

// DoStage is a convenience wrapper to start a new stage, call f, and log the resulting error if any.
//
// If status is nil, immediately invokes f.
func (status *Status) DoStage(stage Stage, f func() error) error {
	if status == nil {
		return f()
	}

	status.Start(stage)
	err := f()
	status.End()

	if err != nil {
		status.LogError("stage", err, "stage", stage)
	}
	return err
}

// Add adds delta to the number of items processed in the current stage.
func (status *Status) Add(delta int) {
	if status == nil {
		return
	}

	status.m.Lock()
	defer status.m.Unlock()

	status.current.Count += delta
}

// Reader wraps r to report the number of bytes read to the rewritable of status.
// total is the expected size of r, or 0 if unknown.
// If status is nil, r is returned unchanged.
func (status *Status) Reader(r io.Reader, total int64) io.Reader {
	if status == nil || status.rewritable == nil {
		return r
	}
	return &progress.Reader{Reader: r, Total: total, Rewritable: status.rewritable}
}

// StageStats holds the stats for a specific stage
type StageStats struct {
	Stage Stage

	Start perf.Snapshot // At the start of the stage
	End   perf.Snapshot // At the end of the stage

	Count int // number of items processed
}

// Diff returns a diff of the given stage
func (ss StageStats) Diff() perf.Diff {
	return ss.End.Sub(ss.Start)
}

func (ss StageStats) String() string {
	return fmt.Sprintf("%s: %s", string(ss.Stage), humanize.Comma(int64(ss.Count)))
}

// Stage represents a stage of starting up
type Stage string

const (
	StageInitial Stage = ""
	StageOpen    Stage = "open"
	StageMigrate Stage = "migrate"
	StageLoad    Stage = "load"
	StageHandler Stage = "handler"
)
