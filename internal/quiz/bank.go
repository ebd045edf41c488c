package quiz

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrSourceUnavailable      = errors.New("question source unavailable")
	ErrSourceEmptyOrMalformed = errors.New("question source empty or malformed")
)

// Diagnostic kinds reported by loaders.
const (
	DiagSourceUnavailable      = "source_unavailable"
	DiagSourceEmptyOrMalformed = "source_empty_or_malformed"
	DiagRecordMalformed        = "record_malformed"
	DiagTruncated              = "truncated"
)

// Diagnostic describes a problem found while loading. Record is the 1-based
// position of the offending record within its source (0 for source-level
// problems); Line is set by line-oriented formats.
type Diagnostic struct {
	Kind    string `json:"kind"`
	Record  int    `json:"record,omitempty"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	switch {
	case d.Record > 0 && d.Line > 0:
		return fmt.Sprintf("%s: record %d (line %d): %s", d.Kind, d.Record, d.Line, d.Message)
	case d.Record > 0:
		return fmt.Sprintf("%s: record %d: %s", d.Kind, d.Record, d.Message)
	case d.Line > 0:
		return fmt.Sprintf("%s: line %d: %s", d.Kind, d.Line, d.Message)
	default:
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
}

// Constraints bound what a source loads. Max <= 0 means no limit. Tier
// selects a difficulty section for formats that carry one; empty selects all.
type Constraints struct {
	Max  int
	Tier Difficulty
}

type Result struct {
	Questions   []Question
	Diagnostics []Diagnostic
}

// Source is a readable question bank encoding. Implementations recover from
// malformed records by skipping them with a diagnostic and report
// source-level failures as an error wrapping ErrSourceUnavailable or
// ErrSourceEmptyOrMalformed together with a zero-question Result.
type Source interface {
	Load(ctx context.Context, constraints Constraints) (Result, error)
}

// Bank is the immutable set of loaded questions.
type Bank struct {
	questions []Question
}

func NewBank(questions []Question) *Bank {
	owned := make([]Question, len(questions))
	copy(owned, questions)
	return &Bank{questions: owned}
}

func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.questions)
}

// Questions returns a copy of the bank in load order.
func (b *Bank) Questions() []Question {
	if b == nil {
		return nil
	}
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Load reads source into a Bank. On source-level failure the bank is empty
// and the returned error wraps one of the ErrSource sentinels; the caller
// decides whether to abort.
func Load(ctx context.Context, source Source, constraints Constraints) (*Bank, []Diagnostic, error) {
	result, err := source.Load(ctx, constraints)
	if err != nil {
		return NewBank(nil), result.Diagnostics, err
	}
	return NewBank(result.Questions), result.Diagnostics, nil
}

// Collector accumulates records for a single load and enforces Constraints.
// Source implementations feed it record by record.
type Collector struct {
	max         int
	questions   []Question
	diagnostics []Diagnostic
	dropped     int
	malformed   int
}

func NewCollector(constraints Constraints) *Collector {
	return &Collector{max: constraints.Max}
}

func (c *Collector) Add(question Question) {
	if c.max > 0 && len(c.questions) >= c.max {
		c.dropped++
		return
	}
	c.questions = append(c.questions, question)
}

func (c *Collector) Malformed(record, line int, err error) {
	c.malformed++
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Kind:    DiagRecordMalformed,
		Record:  record,
		Line:    line,
		Message: err.Error(),
	})
}

// Finish returns the Result, turning "nothing usable" into a source-level
// failure and noting records dropped by the Max constraint.
func (c *Collector) Finish() (Result, error) {
	if len(c.questions) == 0 {
		msg := "no valid questions found"
		if c.malformed > 0 {
			msg = fmt.Sprintf("all %d questions are malformed", c.malformed)
		}
		return c.Fail(ErrSourceEmptyOrMalformed, msg)
	}
	if c.dropped > 0 {
		c.diagnostics = append(c.diagnostics, Diagnostic{
			Kind:    DiagTruncated,
			Message: fmt.Sprintf("kept the first %d questions, %d more exceed the maximum", len(c.questions), c.dropped),
		})
	}
	return Result{Questions: c.questions, Diagnostics: c.diagnostics}, nil
}

// Fail abandons the load, keeping the record diagnostics gathered so far.
func (c *Collector) Fail(sentinel error, msg string) (Result, error) {
	return SourceFailure(c.diagnostics, sentinel, msg)
}

// SourceFailure builds the zero-question Result and wrapped error returned
// for source-level failures. Exported for Source implementations outside
// this package.
func SourceFailure(diagnostics []Diagnostic, sentinel error, msg string) (Result, error) {
	kind := DiagSourceEmptyOrMalformed
	if errors.Is(sentinel, ErrSourceUnavailable) {
		kind = DiagSourceUnavailable
	}
	diagnostics = append(diagnostics, Diagnostic{Kind: kind, Message: msg})
	return Result{Diagnostics: diagnostics}, fmt.Errorf("%w: %s", sentinel, msg)
}
