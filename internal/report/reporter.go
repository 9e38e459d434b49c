// Package report surfaces pipeline failures to the user.
package report

import "log/slog"

// noticeTitle is the fixed heading of the failure panel.
const noticeTitle = "Failed to load accident data"

// Notice is the persistent, non-modal failure panel shown over the map. It
// has no dismiss action and does not touch anything already rendered.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Reporter turns a pipeline failure into an on-screen notice and a
// diagnostic log record. It is invoked exactly once per failed run.
type Reporter struct {
	logger *slog.Logger
}

// NewReporter creates a failure reporter.
func NewReporter(logger *slog.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Report logs the failure and returns the notice to display.
func (r *Reporter) Report(err error) Notice {
	r.logger.Error("render pipeline failed", "error", err)
	return Notice{Title: noticeTitle, Message: err.Error()}
}
