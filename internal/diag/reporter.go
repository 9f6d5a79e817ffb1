package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Level represents the severity of a diagnostic.
type Level string

const (
	Error   Level = "error"
	Warning Level = "warning"
	Note    Level = "note"
)

// Position locates a diagnostic in source text. The textual IR front end
// (internal/irtext) is the only producer of real Positions; diagnostics
// raised purely inside the core (no source file involved, e.g. during
// SSA construction on an already-parsed Module) use the zero Position,
// which Format renders without a source snippet.
type Position struct {
	Line   int
	Column int
}

// Diagnostic is a single structured message: a level, a stable code, and
// optionally a source location with a caret.
type Diagnostic struct {
	Level    Level
	Code     string
	Message  string
	Position Position
	Length   int
	Notes    []string
}

// Reporter accumulates diagnostics against one source file and renders
// them caret-style, the way the teacher's ErrorReporter renders kanso
// compile errors.
type Reporter struct {
	filename    string
	lines       []string
	diagnostics []Diagnostic
}

// NewReporter creates a reporter for a named source with its text split
// into lines for caret rendering. filename/source may be empty when the
// core itself raises a diagnostic with no associated source text.
func NewReporter(filename, source string) *Reporter {
	var lines []string
	if source != "" {
		lines = strings.Split(source, "\n")
	}
	return &Reporter{filename: filename, lines: lines}
}

// Add records a diagnostic without printing it.
func (r *Reporter) Add(d Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

// Diagnostics returns every diagnostic recorded so far, in order.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diagnostics
}

// HasErrors reports whether any recorded diagnostic is at Error level.
func (r *Reporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Level == Error {
			return true
		}
	}
	return false
}

// PrintAll formats and prints every recorded diagnostic to stdout.
func (r *Reporter) PrintAll() {
	for _, d := range r.diagnostics {
		fmt.Print(r.Format(d))
	}
}

// Format renders a single diagnostic, with a source snippet and caret
// when the reporter has source text and the diagnostic has a position.
func (r *Reporter) Format(d Diagnostic) string {
	var out strings.Builder

	levelColor := r.levelColor(d.Level)
	if d.Code != "" {
		out.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(string(d.Level)), d.Code, d.Message))
	} else {
		out.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(d.Level)), d.Message))
	}

	if d.Position.Line <= 0 || len(r.lines) == 0 {
		for _, note := range d.Notes {
			out.WriteString(fmt.Sprintf("  note: %s\n", note))
		}
		out.WriteString("\n")
		return out.String()
	}

	dim := color.New(color.Faint).SprintFunc()
	width := lineNumberWidth(d.Position.Line)
	indent := strings.Repeat(" ", width)

	out.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, d.Position.Line, d.Position.Column))
	out.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if d.Position.Line <= len(r.lines) {
		line := r.lines[d.Position.Line-1]
		out.WriteString(fmt.Sprintf("%*d %s %s\n", width, d.Position.Line, dim("│"), line))
		out.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), r.marker(d)))
	}

	for _, note := range d.Notes {
		out.WriteString(fmt.Sprintf("%s %s note: %s\n", indent, dim("│"), note))
	}

	out.WriteString("\n")
	return out.String()
}

func (r *Reporter) marker(d Diagnostic) string {
	length := d.Length
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max0(d.Position.Column-1))
	markerColor := r.levelColor(d.Level)
	return spaces + markerColor(strings.Repeat("^", length))
}

func (r *Reporter) levelColor(level Level) func(...interface{}) string {
	switch level {
	case Error:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3
	}
	return width
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// CoreError is a fatal error the core refuses to continue past: a
// malformed CFG or an unknown label reference (§7 propagation policy —
// these surface to the driver as a result value, never a panic).
type CoreError struct {
	Code     string
	Function string
	Message  string
}

func (e *CoreError) Error() string {
	if e.Function != "" {
		return fmt.Sprintf("%s [%s] in function %q", e.Message, e.Code, e.Function)
	}
	return fmt.Sprintf("%s [%s]", e.Message, e.Code)
}

// NewCoreError builds a CoreError for the given code and function name.
func NewCoreError(code, function, message string) *CoreError {
	return &CoreError{Code: code, Function: function, Message: message}
}
