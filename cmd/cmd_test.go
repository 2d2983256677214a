package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathfinder/internal/quiz"
	"github.com/abhisek/pathfinder/internal/store"
	"github.com/abhisek/pathfinder/internal/submission"
)

const sampleReport = `### Conclusion
You are thoughtful and precise.

### Career Recommendations
**Engineer:** Builds things.
**Analyst:** Reads data.
**Writer:** Tells stories.
**Nurse:** Cares for people.`

// isolate keeps config lookups and databases inside a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("PATHFINDER_DB", "")
	t.Chdir(dir)
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func firstOptions(def *quiz.Definition) []string {
	var opts []string
	for _, k := range def.Keys() {
		q, _ := def.Question(k)
		opts = append(opts, q.Options[0])
	}
	return opts
}

func answersYAML(opts []string) string {
	var b strings.Builder
	b.WriteString("answers:\n")
	for _, o := range opts {
		b.WriteString("  - \"" + o + "\"\n")
	}
	return b.String()
}

func TestReadAnswers(t *testing.T) {
	dir := t.TempDir()
	def := quiz.MustDefault()
	opts := firstOptions(def)

	answers, err := readAnswers(def, writeFile(t, dir, "full.yaml", answersYAML(opts)))
	require.NoError(t, err)
	assert.Equal(t, def.Total(), answers.Len())

	partial := append([]string{""}, opts[1:3]...)
	answers, err = readAnswers(def, writeFile(t, dir, "partial.yaml", answersYAML(partial)))
	require.NoError(t, err)
	assert.Equal(t, 2, answers.Len())

	_, err = readAnswers(def, writeFile(t, dir, "bad.yaml", answersYAML([]string{"Astronaut"})))
	require.Error(t, err)
	assert.ErrorIs(t, err, quiz.ErrUnknownOption)

	tooMany := append(opts, opts[0])
	_, err = readAnswers(def, writeFile(t, dir, "many.yaml", answersYAML(tooMany)))
	require.Error(t, err)
}

func TestPromptCommand(t *testing.T) {
	dir := isolate(t)
	def := quiz.MustDefault()
	path := writeFile(t, dir, "answers.yaml", answersYAML(firstOptions(def)))

	out, err := run(t, "prompt", "--answers", path, "--partial=false")
	require.NoError(t, err)
	assert.Contains(t, out, "### Career Recommendations")
	assert.Contains(t, out, "1. **Question:** "+def.Sections[0].Questions[0].Text)
}

func TestPromptCommandIncomplete(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "answers.yaml", answersYAML(firstOptions(quiz.MustDefault())[:2]))

	_, err := run(t, "prompt", "--answers", path, "--partial=false")
	var verr *quiz.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 2, verr.Answered)

	out, err := run(t, "prompt", "--answers", path, "--partial")
	require.NoError(t, err)
	assert.Contains(t, out, "**Answer:**")
}

func TestParseCommand(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "report.md", sampleReport)

	out, err := run(t, "parse", path, "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "You are thoughtful and precise.")
	assert.Contains(t, out, "4. Nurse")

	out, err = run(t, "parse", path, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "Engineer"`)
	assert.Contains(t, out, `"complete": true`)
}

func TestParseCommandIncomplete(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "report.md", "### Conclusion\nOnly this.")

	_, err := run(t, "parse", path, "--json=false")
	var merr *submission.MalformedResponseError
	require.ErrorAs(t, err, &merr)
	assert.True(t, merr.MissingRecommendations)
	assert.False(t, merr.MissingConclusion)
}

func TestProfileShow(t *testing.T) {
	dir := isolate(t)
	dbPath := filepath.Join(dir, "p.db")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	_, err = st.ProfileRepo().Upsert(context.Background(), store.ProfileData{
		Email:           "ada@example.com",
		Conclusion:      "Analytical.",
		Recommendations: []string{"Actuary", "Engineer"},
	})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := run(t, "profile", "show", "ada@example.com", "--db", dbPath, "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Analytical.")
	assert.Contains(t, out, "2. Engineer")

	_, err = run(t, "profile", "show", "nobody@example.com", "--db", dbPath, "--json=false")
	require.Error(t, err)
}

func TestLLMListEmpty(t *testing.T) {
	dir := isolate(t)
	out, err := run(t, "llm", "list", "--db", filepath.Join(dir, "llm.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM events found.")
}

func TestLLMListAndStats(t *testing.T) {
	dir := isolate(t)
	dbPath := filepath.Join(dir, "llm.db")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.EventRepo().AppendLLMRequest(context.Background(), store.LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude-sonnet-4-20250514",
		Purpose:      "career-report",
		InputTokens:  900,
		OutputTokens: 400,
		LatencyMs:    1200,
		Success:      true,
	}))
	require.NoError(t, st.Close())

	out, err := run(t, "llm", "list", "--db", dbPath, "--purpose", "career-report")
	require.NoError(t, err)
	assert.Contains(t, out, "career-report")

	out, err = run(t, "llm", "stats", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage by Purpose")
	assert.Contains(t, out, "TOTAL")

	out, err = run(t, "llm", "view", "1", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Provider:  anthropic")
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "pathfinder (devel)\n", out)
}

func TestVersionVerbose(t *testing.T) {
	isolate(t)
	t.Cleanup(func() { versionVerbose = false })
	out, err := run(t, "version", "--verbose")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "pathfinder (devel)\ngo: "), out)
}
