package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lgbarn/gamehub-go/internal/processing"
	"github.com/lgbarn/gamehub-go/internal/worker"
)

// ReportWriter is the interface for writing batch status results.
type ReportWriter interface {
	// WriteResult writes a single analysed position.
	WriteResult(r worker.ProcessResult) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer. Batch writers (JSON) write their pending
	// output here.
	Close() error
}

// TextReportWriter writes one line per position and a summary on Close.
type TextReportWriter struct {
	w       io.Writer
	results []worker.ProcessResult
}

// NewTextReportWriter creates a new text report writer.
func NewTextReportWriter(w io.Writer) *TextReportWriter {
	return &TextReportWriter{w: w}
}

// WriteResult writes a position line immediately.
func (tw *TextReportWriter) WriteResult(r worker.ProcessResult) error {
	tw.results = append(tw.results, r)
	_, err := fmt.Fprintln(tw.w, FormatResultLine(r))
	return err
}

// Flush is a no-op; lines are written as they arrive.
func (tw *TextReportWriter) Flush() error {
	return nil
}

// Close writes the summary line.
func (tw *TextReportWriter) Close() error {
	_, err := fmt.Fprintln(tw.w, FormatSummary(processing.Summarize(tw.results)))
	return err
}

// FormatResultLine renders one position as "source: status, side to move".
func FormatResultLine(r worker.ProcessResult) string {
	label := r.Source
	if label == "" {
		label = fmt.Sprintf("#%d", r.Index+1)
	}
	if r.Error != nil {
		return fmt.Sprintf("%s: invalid: %v", label, r.Error)
	}
	analysis, ok := r.Info.(*processing.PositionAnalysis)
	if !ok {
		return fmt.Sprintf("%s: no analysis", label)
	}
	line := fmt.Sprintf("%s: %s, %s to move, %d legal moves",
		label, analysis.Status(), analysis.Board.SideToMove, analysis.LegalMoves)
	if analysis.DuplicateOf >= 0 {
		line += fmt.Sprintf(" (duplicate of #%d)", analysis.DuplicateOf+1)
	}
	return line
}

// FormatSummary renders batch totals on one line.
func FormatSummary(s processing.Summary) string {
	return fmt.Sprintf("%d positions: %d in progress, %d check, %d checkmate, %d stalemate, %d invalid, %d duplicates",
		s.Total, s.InProgress, s.Check, s.Checkmate, s.Stalemate, s.Invalid, s.Duplicates)
}

// JSONReportWriter buffers results and writes a single JSON document on Close.
type JSONReportWriter struct {
	w       io.Writer
	results []worker.ProcessResult
	closed  bool
}

// NewJSONReportWriter creates a new JSON report writer.
func NewJSONReportWriter(w io.Writer) *JSONReportWriter {
	return &JSONReportWriter{w: w}
}

// WriteResult buffers a result for the final document.
func (jw *JSONReportWriter) WriteResult(r worker.ProcessResult) error {
	jw.results = append(jw.results, r)
	return nil
}

// Flush is a no-op; JSON is written as one document on Close.
func (jw *JSONReportWriter) Flush() error {
	return nil
}

// Close writes the buffered report. Subsequent calls do nothing.
func (jw *JSONReportWriter) Close() error {
	if jw.closed {
		return nil
	}
	jw.closed = true

	report := &JSONReport{
		Positions: make([]*JSONPosition, 0, len(jw.results)),
		Summary:   processing.Summarize(jw.results),
	}
	for _, r := range jw.results {
		report.Positions = append(report.Positions, PositionToJSON(r))
	}

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// NewReportWriter picks the JSON or text writer.
func NewReportWriter(w io.Writer, jsonFormat bool) ReportWriter {
	if jsonFormat {
		return NewJSONReportWriter(w)
	}
	return NewTextReportWriter(w)
}
