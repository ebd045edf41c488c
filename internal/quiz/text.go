package quiz

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// linesPerRecord is question, four choices and the answer letter.
const linesPerRecord = 2 + ChoiceCount

// maxLineLength bounds a single record line. A longer line makes its record
// malformed; the rest of the source still loads.
const maxLineLength = 64 * 1024

// LoadText reads the sectioned line format:
//
//	#Easy
//	What is 2+2?
//	3
//	4
//	5
//	6
//	B
//
// A '#' line closes the current section and opens the next. Only sections
// selected by constraints.Tier are parsed; the rest are skipped unread.
func LoadText(r io.Reader, constraints Constraints) (Result, error) {
	tier := ParseDifficulty(string(constraints.Tier))
	reader := bufio.NewReader(r)
	collector := NewCollector(constraints)

	var (
		lineNo       int
		sawContent   bool
		sawSection   bool
		active       bool
		label        Difficulty
		record       int
		group        []string
		groupStarted int
		oversized    int
		eof          bool
	)

	flush := func() {
		if len(group) == 0 {
			return
		}
		record++
		collector.Malformed(record, groupStarted, fmt.Errorf("incomplete record: %d of %d lines", len(group), linesPerRecord))
		group = group[:0]
		oversized = 0
	}

	for !eof {
		raw, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return collector.Fail(ErrSourceUnavailable, fmt.Sprintf("read source: %v", err))
		}
		eof = err != nil
		if raw == "" {
			continue
		}

		lineNo++
		line := strings.TrimRight(raw, " \t\r\n")
		if strings.TrimSpace(line) != "" {
			sawContent = true
		}

		if strings.HasPrefix(line, "#") {
			if active {
				flush()
			}
			label = ParseDifficulty(line)
			active = tier.Matches(label)
			if active {
				sawSection = true
				record = 0
			}
			continue
		}
		if !active {
			continue
		}
		if len(group) == 0 {
			if strings.TrimSpace(line) == "" {
				continue
			}
			groupStarted = lineNo
		}

		if len(line) > maxLineLength && oversized == 0 {
			oversized = lineNo
		}
		group = append(group, line)
		if len(group) < linesPerRecord {
			continue
		}

		record++
		if oversized > 0 {
			collector.Malformed(record, groupStarted, fmt.Errorf("line %d exceeds %d bytes", oversized, maxLineLength))
		} else if question, err := NewQuestion(group[0], group[1:1+ChoiceCount], group[linesPerRecord-1], label); err != nil {
			collector.Malformed(record, groupStarted, err)
		} else {
			collector.Add(question)
		}
		group = group[:0]
		oversized = 0
	}
	if active {
		flush()
	}

	switch {
	case !sawContent:
		return collector.Fail(ErrSourceEmptyOrMalformed, errEmptySource.Error())
	case !sawSection && tier != "":
		return collector.Fail(ErrSourceEmptyOrMalformed, fmt.Sprintf("section #%s not found", tier))
	case !sawSection:
		return collector.Fail(ErrSourceEmptyOrMalformed, "no sections found")
	}
	return collector.Finish()
}
