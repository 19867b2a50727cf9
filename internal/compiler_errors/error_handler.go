package compiler_errors

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	default:
		return "ERROR"
	}
}

type CompilerError interface {
	GetMessage() string
}

// LocatedError is a CompilerError that knows where it happened.
type LocatedError interface {
	CompilerError
	GetFileName() string
	GetLine() int
	GetColumn() int
}

// SeverityCarrier lets an error downgrade itself. Errors that do not
// implement it are treated as SeverityError.
type SeverityCarrier interface {
	GetSeverity() Severity
}

// ErrBuildFailed is returned by Err when at least one error-severity
// diagnostic was collected.
var ErrBuildFailed = errors.New("build failed with errors")

type ErrorHandler interface {
	AddError(err CompilerError)
	HasErrors() bool
	Errors() []CompilerError
	Report() int
	Err() error
	Reset()
}

type CompilerErrorHandler struct {
	errors []CompilerError
	writer io.Writer
	color  bool

	errorStyle    lipgloss.Style
	warningStyle  lipgloss.Style
	locationStyle lipgloss.Style
}

type Option func(*CompilerErrorHandler)

// WithColor enables lipgloss styling of the report.
func WithColor(enabled bool) Option {
	return func(eh *CompilerErrorHandler) {
		eh.color = enabled
	}
}

func NewErrorHandler(outputWriter io.Writer, opts ...Option) ErrorHandler {
	eh := &CompilerErrorHandler{
		errors: make([]CompilerError, 0),
		writer: outputWriter,

		errorStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		warningStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		locationStyle: lipgloss.NewStyle().Faint(true),
	}

	for _, opt := range opts {
		opt(eh)
	}

	return eh
}

func (eh *CompilerErrorHandler) AddError(err CompilerError) {
	eh.errors = append(eh.errors, err)
}

func (eh *CompilerErrorHandler) HasErrors() bool {
	for _, err := range eh.errors {
		if SeverityOf(err) == SeverityError {
			return true
		}
	}

	return false
}

func (eh *CompilerErrorHandler) Errors() []CompilerError {
	return eh.errors
}

// Report writes every collected diagnostic and returns how many were written.
func (eh *CompilerErrorHandler) Report() int {
	if len(eh.errors) == 0 {
		return 0
	}

	if eh.HasErrors() {
		fmt.Fprintln(eh.writer, "Build failed with errors:")
	}

	for _, err := range eh.errors {
		fmt.Fprintln(eh.writer, eh.format(err))
	}

	return len(eh.errors)
}

func (eh *CompilerErrorHandler) Err() error {
	if eh.HasErrors() {
		return ErrBuildFailed
	}

	return nil
}

func (eh *CompilerErrorHandler) Reset() {
	eh.errors = eh.errors[:0]
}

func (eh *CompilerErrorHandler) format(err CompilerError) string {
	severity := SeverityOf(err)
	label := severity.String()
	location := Location(err)

	if eh.color {
		if severity == SeverityWarning {
			label = eh.warningStyle.Render(label)
		} else {
			label = eh.errorStyle.Render(label)
		}
		if location != "" {
			location = eh.locationStyle.Render(location)
		}
	}

	if location == "" {
		return fmt.Sprintf("%s: %s", label, err.GetMessage())
	}

	return fmt.Sprintf("%s: %s: %s", label, location, err.GetMessage())
}

func SeverityOf(err CompilerError) Severity {
	if carrier, ok := err.(SeverityCarrier); ok {
		return carrier.GetSeverity()
	}

	return SeverityError
}

// Location renders file:line:column for located errors, or "" otherwise.
func Location(err CompilerError) string {
	located, ok := err.(LocatedError)
	if !ok {
		return ""
	}

	if located.GetFileName() == "" {
		return fmt.Sprintf("%d:%d", located.GetLine(), located.GetColumn())
	}

	return fmt.Sprintf("%s:%d:%d", located.GetFileName(), located.GetLine(), located.GetColumn())
}
