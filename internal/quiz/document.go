package quiz

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

const documentRecordSchema = `{
	"type": "object",
	"required": ["question", "choices", "correctAnswer"],
	"properties": {
		"question": {"type": "string", "minLength": 1},
		"choices": {
			"type": "array",
			"minItems": 4,
			"maxItems": 4,
			"items": {"type": "string"}
		},
		"correctAnswer": {"type": "string", "pattern": "^\\s*[A-Da-d]\\s*$"},
		"difficulty": {"type": "string"}
	}
}`

var compiledRecordSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentRecordSchema))
})

// documentRecord is one element of the "questions" list shared by the JSON
// and YAML encodings.
type documentRecord struct {
	Question      string   `json:"question" yaml:"question"`
	Choices       []string `json:"choices" yaml:"choices"`
	CorrectAnswer string   `json:"correctAnswer" yaml:"correctAnswer"`
	Difficulty    string   `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

// LoadJSON reads a document of the form {"questions": [...]}.
func LoadJSON(r io.Reader, constraints Constraints) (Result, error) {
	data, err := readDocument(r)
	if err != nil {
		return SourceFailure(nil, errSentinel(err), err.Error())
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return SourceFailure(nil, ErrSourceEmptyOrMalformed, fmt.Sprintf("parse json: %v", err))
	}
	rawQuestions, ok := doc["questions"]
	if !ok {
		return SourceFailure(nil, ErrSourceEmptyOrMalformed, "no questions found in document")
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(rawQuestions, &elements); err != nil {
		return SourceFailure(nil, ErrSourceEmptyOrMalformed, "questions is not a list")
	}

	schema, err := compiledRecordSchema()
	if err != nil {
		return Result{}, fmt.Errorf("compile question schema: %w", err)
	}

	collector := NewCollector(constraints)
	for idx, raw := range elements {
		collectRecord(collector, schema, constraints, idx+1, gojsonschema.NewBytesLoader(raw), func(record *documentRecord) error {
			return json.Unmarshal(raw, record)
		})
	}
	return collector.Finish()
}

// LoadYAML reads the YAML rendition of the JSON document format.
func LoadYAML(r io.Reader, constraints Constraints) (Result, error) {
	data, err := readDocument(r)
	if err != nil {
		return SourceFailure(nil, errSentinel(err), err.Error())
	}

	var doc struct {
		Questions *yaml.Node `yaml:"questions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return SourceFailure(nil, ErrSourceEmptyOrMalformed, fmt.Sprintf("parse yaml: %v", err))
	}
	if doc.Questions == nil {
		return SourceFailure(nil, ErrSourceEmptyOrMalformed, "no questions found in document")
	}
	if doc.Questions.Kind != yaml.SequenceNode {
		return SourceFailure(nil, ErrSourceEmptyOrMalformed, "questions is not a list")
	}

	schema, err := compiledRecordSchema()
	if err != nil {
		return Result{}, fmt.Errorf("compile question schema: %w", err)
	}

	collector := NewCollector(constraints)
	for idx, node := range doc.Questions.Content {
		var generic any
		if err := node.Decode(&generic); err != nil {
			collector.Malformed(idx+1, node.Line, err)
			continue
		}
		collectRecord(collector, schema, constraints, idx+1, gojsonschema.NewGoLoader(generic), func(record *documentRecord) error {
			return node.Decode(record)
		})
	}
	return collector.Finish()
}

func collectRecord(
	collector *Collector,
	schema *gojsonschema.Schema,
	constraints Constraints,
	index int,
	loader gojsonschema.JSONLoader,
	decode func(*documentRecord) error,
) {
	validation, err := schema.Validate(loader)
	if err != nil {
		collector.Malformed(index, 0, err)
		return
	}
	if !validation.Valid() {
		problems := make([]string, 0, len(validation.Errors()))
		for _, problem := range validation.Errors() {
			problems = append(problems, problem.String())
		}
		collector.Malformed(index, 0, errors.New(strings.Join(problems, "; ")))
		return
	}

	var record documentRecord
	if err := decode(&record); err != nil {
		collector.Malformed(index, 0, err)
		return
	}

	difficulty := ParseDifficulty(record.Difficulty)
	if difficulty != "" && !constraints.Tier.Matches(difficulty) {
		return
	}

	question, err := NewQuestion(record.Question, record.Choices, record.CorrectAnswer, difficulty)
	if err != nil {
		collector.Malformed(index, 0, err)
		return
	}
	collector.Add(question)
}

var errEmptySource = errors.New("source is empty")

func readDocument(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptySource
	}
	return data, nil
}

func errSentinel(err error) error {
	if errors.Is(err, errEmptySource) {
		return ErrSourceEmptyOrMalformed
	}
	return ErrSourceUnavailable
}
