package eval

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/panjf2000/ants/v2"
)

const defaultTopK = 3

type Answerer interface {
	Answer(ctx context.Context, userID, question string) (*domain.ResponseRecord, error)
}

type Config struct {
	Workers int
	TopK    int
}

type CaseResult struct {
	ID           string              `json:"id"`
	Question     string              `json:"question"`
	ExpectedType domain.QuestionType `json:"expected_type,omitempty"`
	QuestionType domain.QuestionType `json:"question_type"`
	// HitRank is the rank of the first matching answer, -1 when none matched.
	HitRank int           `json:"hit_rank"`
	Latency time.Duration `json:"latency"`
	Error   string        `json:"error,omitempty"`

	checksAnswers bool
	checksType    bool
}

func (r CaseResult) Hit(k int) bool {
	return r.HitRank >= 0 && r.HitRank < k
}

func (r CaseResult) TypeMatch() bool {
	return r.QuestionType == r.ExpectedType
}

type Report struct {
	Suite        string        `json:"suite"`
	TopK         int           `json:"top_k"`
	Cases        []CaseResult  `json:"cases"`
	HitAtK       float64       `json:"hit_at_k"`
	TypeAccuracy float64       `json:"type_accuracy"`
	Errors       int           `json:"errors"`
	Latency      LatencyStats  `json:"latency"`
	Duration     time.Duration `json:"duration"`
}

type Runner struct {
	answerer Answerer
	config   Config
}

func NewRunner(answerer Answerer, cfg Config) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Runner{answerer: answerer, config: cfg}
}

// Run answers every case of the suite on a bounded worker pool. Case
// failures are recorded in the report, not returned.
func (r *Runner) Run(ctx context.Context, s *Suite) (*Report, error) {
	topK := r.topK(s)

	pool, err := ants.NewPool(r.config.Workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	start := time.Now()
	results := make([]CaseResult, len(s.Cases))

	var wg sync.WaitGroup
	for i := range s.Cases {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			results[i] = r.runCase(ctx, s.Cases[i])
		}); err != nil {
			wg.Done()
			results[i] = CaseResult{ID: s.Cases[i].ID, Question: s.Cases[i].Question, HitRank: -1, Error: err.Error()}
		}
	}
	wg.Wait()

	report := summarize(s.Name, topK, results)
	report.Duration = time.Since(start)

	slog.Info("Evaluation completed",
		"suite", s.Name,
		"cases", len(results),
		"errors", report.Errors,
		"hit_at_k", report.HitAtK,
		"type_accuracy", report.TypeAccuracy,
		"duration", report.Duration)

	return report, nil
}

func (r *Runner) topK(s *Suite) int {
	switch {
	case r.config.TopK > 0:
		return r.config.TopK
	case s.TopK > 0:
		return s.TopK
	default:
		return defaultTopK
	}
}

func (r *Runner) runCase(ctx context.Context, c Case) CaseResult {
	res := CaseResult{
		ID:            c.ID,
		Question:      c.Question,
		ExpectedType:  c.ExpectType,
		HitRank:       -1,
		checksAnswers: len(c.ExpectAnswers) > 0,
		checksType:    c.ExpectType != "",
	}

	start := time.Now()
	resp, err := r.answerer.Answer(ctx, c.UserID, c.Question)
	res.Latency = time.Since(start)
	if err != nil {
		slog.Warn("Evaluation case failed", "case", c.ID, "error", err)
		res.Error = err.Error()
		return res
	}

	res.QuestionType = resp.QuestionType
	res.HitRank = firstHit(resp.Answers, c.ExpectAnswers)
	return res
}

// firstHit returns the position of the first answer whose evidence or
// snippet contains any expected substring, ignoring case.
func firstHit(answers []domain.AnswerRecord, expected []string) int {
	for i, a := range answers {
		text := strings.ToLower(a.Evidence + "\n" + a.Snippet)
		for _, e := range expected {
			if e = strings.ToLower(strings.TrimSpace(e)); e != "" && strings.Contains(text, e) {
				return i
			}
		}
	}
	return -1
}

func summarize(name string, topK int, results []CaseResult) *Report {
	report := &Report{Suite: name, TopK: topK, Cases: results}

	var hits, answerCases, typeMatches, typeCases int
	latencies := make([]time.Duration, 0, len(results))
	for _, r := range results {
		if r.Error != "" {
			report.Errors++
		} else {
			latencies = append(latencies, r.Latency)
		}
		if r.checksAnswers {
			answerCases++
			if r.Hit(topK) {
				hits++
			}
		}
		if r.checksType {
			typeCases++
			if r.TypeMatch() {
				typeMatches++
			}
		}
	}

	report.HitAtK = ratio(hits, answerCases)
	report.TypeAccuracy = ratio(typeMatches, typeCases)
	report.Latency = ComputeLatencyStats(latencies)
	return report
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
