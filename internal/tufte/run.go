package tufte

import (
	"fmt"
	"strconv"
)

// Diagnostic is a non-fatal finding reported during a run.
type Diagnostic struct {
	Pass    string
	Message string
}

func (d Diagnostic) String() string {
	if d.Pass == "" {
		return d.Message
	}
	return d.Pass + ": " + d.Message
}

// Run holds the state of one pipeline run: toggle id counters and the
// diagnostics collected so far. The zero value is ready to use.
type Run struct {
	Diagnostics []Diagnostic

	pass        string
	figures     int
	inlineNotes int
	noteIDs     map[string]int
}

// NewRun returns an empty run state.
func NewRun() *Run {
	return &Run{}
}

func (r *Run) warnf(format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Pass: r.pass, Message: fmt.Sprintf(format, args...)})
}

func (r *Run) nextFigureID() string {
	r.figures++
	return "mn-figure-" + strconv.Itoa(r.figures)
}

func (r *Run) nextInlineNoteID() string {
	r.inlineNotes++
	return "sn-inline-" + strconv.Itoa(r.inlineNotes)
}

// noteID returns the toggle id for a footnote identifier. A footnote
// referenced more than once gets a numbered suffix from its second use on,
// so every checkbox id stays unique in the page.
func (r *Run) noteID(identifier string) string {
	if r.noteIDs == nil {
		r.noteIDs = map[string]int{}
	}
	r.noteIDs[identifier]++
	id := "sn-" + identifier
	if n := r.noteIDs[identifier]; n > 1 {
		id += "-" + strconv.Itoa(n)
	}
	return id
}

func ensureRun(r *Run) *Run {
	if r == nil {
		return NewRun()
	}
	return r
}
