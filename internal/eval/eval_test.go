package eval

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const suiteYAML = `
name: smoke
top_k: 2
cases:
  - id: tower
    userid: u1
    question: Where did I see the Tokyo tower?
    expect_type: where
    expect_answers: ["shiba park"]
  - id: beach
    userid: u1
    question: When was I at the beach?
    expect_type: when
    expect_answers: ["2015"]
  - id: broken
    userid: u1
    question: Who was there?
`

type fakeAnswerer struct {
	responses map[string]*domain.ResponseRecord
}

func (f *fakeAnswerer) Answer(_ context.Context, _, question string) (*domain.ResponseRecord, error) {
	res, ok := f.responses[question]
	if !ok {
		return nil, errors.New("no answer")
	}
	return res, nil
}

func newFakeAnswerer() *fakeAnswerer {
	return &fakeAnswerer{responses: map[string]*domain.ResponseRecord{
		"Where did I see the Tokyo tower?": {
			QuestionType: domain.Where,
			Answers: []domain.AnswerRecord{
				{Rank: 0, Evidence: "Tokyo by night", Snippet: "tall tower"},
				{Rank: 1, Evidence: "Walk in Shiba Park", Snippet: "Shiba Park"},
			},
		},
		"When was I at the beach?": {
			QuestionType: domain.What,
			Answers: []domain.AnswerRecord{
				{Rank: 0, Evidence: "Beach", Snippet: "summer"},
				{Rank: 1, Evidence: "Beach", Snippet: "sand"},
				{Rank: 2, Evidence: "April 02, 2015", Snippet: "April 2"},
			},
		},
	}}
}

func TestParseSuite(t *testing.T) {
	s, err := ParseSuite([]byte(suiteYAML))
	require.NoError(t, err)
	assert.Equal(t, "smoke", s.Name)
	assert.Equal(t, 2, s.TopK)
	require.Len(t, s.Cases, 3)
	assert.Equal(t, domain.Where, s.Cases[0].ExpectType)
	assert.Equal(t, []string{"shiba park"}, s.Cases[0].ExpectAnswers)
}

func TestParseSuite_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{name: "no cases", yaml: "name: empty", want: "no cases"},
		{name: "missing id", yaml: "cases: [{userid: u, question: q}]", want: "has no id"},
		{name: "duplicate id", yaml: "cases: [{id: a, userid: u, question: q}, {id: a, userid: u, question: q}]", want: "duplicate"},
		{name: "missing user", yaml: "cases: [{id: a, question: q}]", want: "needs userid"},
		{name: "malformed", yaml: "cases: [", want: "parse suite"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSuite([]byte(tt.yaml))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadSuite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(suiteYAML), 0644))

	s, err := LoadSuite(path)
	require.NoError(t, err)
	assert.Len(t, s.Cases, 3)

	_, err = LoadSuite(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRunner_Run(t *testing.T) {
	s, err := ParseSuite([]byte(suiteYAML))
	require.NoError(t, err)

	report, err := NewRunner(newFakeAnswerer(), Config{Workers: 2}).Run(context.Background(), s)
	require.NoError(t, err)

	require.Len(t, report.Cases, 3)
	assert.Equal(t, "tower", report.Cases[0].ID)
	assert.Equal(t, 1, report.Cases[0].HitRank)
	assert.Equal(t, 2, report.Cases[1].HitRank)
	assert.NotEmpty(t, report.Cases[2].Error)

	assert.Equal(t, 2, report.TopK)
	assert.InDelta(t, 0.5, report.HitAtK, 1e-9)
	assert.InDelta(t, 0.5, report.TypeAccuracy, 1e-9)
	assert.Equal(t, 1, report.Errors)
	assert.Equal(t, 2, report.Latency.SampleCount)
}

func TestRunner_TopKOverride(t *testing.T) {
	s, err := ParseSuite([]byte(suiteYAML))
	require.NoError(t, err)

	report, err := NewRunner(newFakeAnswerer(), Config{Workers: 1, TopK: 3}).Run(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 3, report.TopK)
	assert.InDelta(t, 1.0, report.HitAtK, 1e-9)
}

func TestFirstHit(t *testing.T) {
	answers := []domain.AnswerRecord{
		{Evidence: "nothing"},
		{Snippet: "Mount FUJI"},
	}
	assert.Equal(t, 1, firstHit(answers, []string{"fuji"}))
	assert.Equal(t, -1, firstHit(answers, []string{"osaka"}))
	assert.Equal(t, -1, firstHit(answers, []string{"  "}))
	assert.Equal(t, -1, firstHit(nil, []string{"fuji"}))
}

func TestComputeLatencyStats(t *testing.T) {
	empty := ComputeLatencyStats(nil)
	assert.Zero(t, empty.SampleCount)
	assert.Zero(t, empty.P50())

	single := ComputeLatencyStats([]time.Duration{10 * time.Millisecond})
	assert.Equal(t, 10*time.Millisecond, single.P99())
	assert.Zero(t, single.Stddev)

	stats := ComputeLatencyStats([]time.Duration{
		50 * time.Millisecond,
		10 * time.Millisecond,
		30 * time.Millisecond,
		20 * time.Millisecond,
		40 * time.Millisecond,
	})
	assert.Equal(t, 10*time.Millisecond, stats.Min)
	assert.Equal(t, 50*time.Millisecond, stats.Max)
	assert.Equal(t, 30*time.Millisecond, stats.Mean)
	assert.Equal(t, 30*time.Millisecond, stats.P50())
	assert.InDelta(t, float64(46*time.Millisecond), float64(stats.P90()), float64(time.Microsecond))
	assert.Equal(t, 5, stats.SampleCount)
}

func TestWriteReports(t *testing.T) {
	s, err := ParseSuite([]byte(suiteYAML))
	require.NoError(t, err)
	report, err := NewRunner(newFakeAnswerer(), Config{Workers: 1}).Run(context.Background(), s)
	require.NoError(t, err)

	var table bytes.Buffer
	require.NoError(t, WriteTable(report, &table))
	assert.Contains(t, table.String(), "QA Evaluation: smoke")
	assert.Contains(t, table.String(), "Hit@2")
	assert.Contains(t, table.String(), "ERR")

	var out bytes.Buffer
	require.NoError(t, WriteJSON(report, &out))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "smoke", decoded["suite"])
	assert.Len(t, decoded["cases"], 3)
}
