package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoValidOneBroken = `{
  "questions": [
    {"question": "What is 2+2?", "choices": ["3", "4", "5", "6"], "correctAnswer": "B", "difficulty": "Easy"},
    {"question": "Broken?", "choices": ["only one"], "correctAnswer": "A"},
    {"question": "Capital of France?", "choices": ["Rome", "Madrid", "Paris", "Oslo"], "correctAnswer": "C", "difficulty": "Hard"}
  ]
}`

const singleQuestion = `{"questions":[{"question":"What is 2+2?","choices":["3","4","5","6"],"correctAnswer":"B"}]}`

type result struct {
	code   int
	out    string
	errOut string
}

func writeBank(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, input string, args ...string) result {
	t.Helper()

	var out, errOut bytes.Buffer
	code := Execute(context.Background(), args, Streams{
		In:     strings.NewReader(input),
		Out:    &out,
		ErrOut: &errOut,
	})
	return result{code: code, out: out.String(), errOut: errOut.String()}
}

func TestRootCommand(t *testing.T) {
	t.Run("version flag", func(t *testing.T) {
		res := execute(t, "", "--version")

		require.Equal(t, 0, res.code)
		assert.Contains(t, res.out, "quiz-cli version "+version)
	})

	t.Run("global flags", func(t *testing.T) {
		cmd := NewRootCmd(Streams{})

		for _, name := range []string{"config", "bank", "format", "tier", "max", "questions", "seed", "log-level", "no-color"} {
			assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
		}
		assert.Equal(t, "10", cmd.PersistentFlags().Lookup("questions").DefValue)
		assert.Equal(t, "warn", cmd.PersistentFlags().Lookup("log-level").DefValue)
	})

	t.Run("subcommands", func(t *testing.T) {
		cmd := NewRootCmd(Streams{})

		for _, name := range []string{"play", "check", "import"} {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		}
	})
}

func TestPlaySingleQuestion(t *testing.T) {
	path := writeBank(t, "bank.json", singleQuestion)

	res := execute(t, "b\n", "--bank", path, "--no-color", "--seed", "42")

	require.Equal(t, 0, res.code, res.errOut)
	assert.Equal(t, 1, strings.Count(res.out, "What is 2+2?"))
	assert.Contains(t, res.out, "Correct!")
	assert.Contains(t, res.out, "Your total score: 1 out of 1 (100%)")
}

func TestPlaySubcommandCapsSession(t *testing.T) {
	path := writeBank(t, "bank.json", twoValidOneBroken)

	res := execute(t, "a\na\na\n", "play", "--bank", path, "--no-color", "--questions", "1", "--seed", "3")

	require.Equal(t, 0, res.code, res.errOut)
	assert.Equal(t, 1, strings.Count(res.out, "Your answer (A/B/C/D): "))
	assert.Contains(t, res.out, "out of 1")
	assert.Contains(t, res.errOut, "record_malformed")
}

func TestPlayReportsSkippedRecordsAtAnyLogLevel(t *testing.T) {
	path := writeBank(t, "bank.json", twoValidOneBroken)

	res := execute(t, "b\nc\n", "--bank", path, "--no-color", "--log-level", "error")

	require.Equal(t, 0, res.code, res.errOut)
	assert.NotContains(t, res.errOut, "record_malformed")
	assert.Contains(t, res.errOut, "warning: skipped 1 malformed question records")
}

func TestPlayFailsOnUnusableBank(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		file    string
		want    string
	}{
		{name: "empty file", content: ptr(""), file: "empty.json", want: "empty"},
		{name: "all malformed", content: ptr(`{"questions":[{"question":"x"}]}`), file: "bad.json", want: "malformed"},
		{name: "missing file", file: "missing.json", want: "unavailable"},
		{name: "missing tier section", content: ptr("#Easy\nQ?\na\nb\nc\nd\nA\n"), file: "bank.txt", want: "not found"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.file)
			if tc.content != nil {
				path = writeBank(t, tc.file, *tc.content)
			}

			args := []string{"--bank", path}
			if tc.name == "missing tier section" {
				args = append(args, "--tier", "Hard")
			}
			res := execute(t, "", args...)

			assert.Equal(t, 1, res.code)
			assert.Contains(t, res.errOut, "error:")
			assert.Contains(t, res.errOut, tc.want)
			assert.NotContains(t, res.out, "Your answer")
		})
	}
}

func TestPlayTextBankByTier(t *testing.T) {
	bank := "#Easy\nEasy one?\na\nb\nc\nd\nA\n#Hard\nHard one?\na\nb\nc\nd\nD\n"
	path := writeBank(t, "bank.txt", bank)

	res := execute(t, "d\n", "--bank", path, "--tier", "hard", "--no-color")

	require.Equal(t, 0, res.code, res.errOut)
	assert.Contains(t, res.out, "Hard one?")
	assert.NotContains(t, res.out, "Easy one?")
	assert.Contains(t, res.out, "Correct!")
}

func TestPlayReadsEnvironment(t *testing.T) {
	path := writeBank(t, "bank.json", singleQuestion)
	t.Setenv("QUIZ_BANK_PATH", path)
	t.Setenv("QUIZ_NO_COLOR", "true")

	res := execute(t, "B\n")

	require.Equal(t, 0, res.code, res.errOut)
	assert.Contains(t, res.out, "Your total score: 1 out of 1")
}

func TestInvalidConfigExitsNonZero(t *testing.T) {
	path := writeBank(t, "bank.json", singleQuestion)

	res := execute(t, "", "--bank", path, "--format", "xml")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.errOut, "invalid config")
}

func TestCheckCommand(t *testing.T) {
	path := writeBank(t, "bank.json", twoValidOneBroken)

	res := execute(t, "", "check", "--bank", path)

	require.Equal(t, 0, res.code, res.errOut)
	assert.Contains(t, res.out, "Questions: 2")
	assert.Contains(t, res.out, "Skipped: 1")
	assert.Contains(t, res.out, "record 2")
	assert.Contains(t, res.out, "Easy: 1")
	assert.Contains(t, res.out, "Hard: 1")
}

func TestImportThenPlayFromSQLite(t *testing.T) {
	path := writeBank(t, "bank.json", twoValidOneBroken)
	dbPath := filepath.Join(t.TempDir(), "bank.db")

	res := execute(t, "", "import", "--bank", path, "--out", dbPath)
	require.Equal(t, 0, res.code, res.errOut)
	assert.Contains(t, res.out, "Imported 2 questions")

	res = execute(t, "c\n", "--bank", dbPath, "--tier", "Hard", "--no-color")
	require.Equal(t, 0, res.code, res.errOut)
	assert.Contains(t, res.out, "Capital of France?")
	assert.Contains(t, res.out, "Your total score: 1 out of 1")
}

func TestImportRequiresOut(t *testing.T) {
	path := writeBank(t, "bank.json", singleQuestion)

	res := execute(t, "", "import", "--bank", path)

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.errOut, "--out is required")
}

func ptr(s string) *string {
	return &s
}
