package review

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sync"

	"github.com/cuongbtq/news-review/internal/review/domain"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ArticleSource returns all stored articles published on an exact date.
type ArticleSource interface {
	FindByDate(ctx context.Context, date string) ([]domain.Article, error)
}

// ArticleAnalyzer classifies one article's title and body.
type ArticleAnalyzer interface {
	Analyze(ctx context.Context, title, text string) (domain.Assessment, error)
}

// Config holds runner configuration
type Config struct {
	Logger      *slog.Logger
	Articles    ArticleSource
	Analyzer    ArticleAnalyzer
	Registry    *Registry
	Concurrency int
	QueueSize   int
}

// reviewTask is one queued review run.
type reviewTask struct {
	jobID string
	date  string
}

// Runner executes review jobs on a pool of background worker goroutines.
// Each job runs to a terminal state without further client interaction.
type Runner struct {
	logger      *slog.Logger
	articles    ArticleSource
	analyzer    ArticleAnalyzer
	registry    *Registry
	concurrency int

	tasks    chan reviewTask
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewRunner creates a new runner instance.
func NewRunner(cfg *Config) *Runner {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 100
	}

	return &Runner{
		logger:      cfg.Logger,
		articles:    cfg.Articles,
		analyzer:    cfg.Analyzer,
		registry:    cfg.Registry,
		concurrency: concurrency,
		tasks:       make(chan reviewTask, queueSize),
		stopChan:    make(chan struct{}),
	}
}

// Start spawns the worker pool.
func (r *Runner) Start(ctx context.Context) {
	r.logger.Info("Spawning review worker pool",
		slog.Int("concurrency", r.concurrency),
	)

	for i := 0; i < r.concurrency; i++ {
		r.wg.Add(1)
		go r.workerLoop(ctx, i)
	}
}

// Submit enqueues a review run for an already-registered job. It returns an
// error only when the runner has been stopped.
func (r *Runner) Submit(jobID, date string) error {
	select {
	case <-r.stopChan:
		return fmt.Errorf("runner is stopped")
	case r.tasks <- reviewTask{jobID: jobID, date: date}:
		return nil
	}
}

// Stop accepts no further submissions and waits for in-flight jobs to finish.
func (r *Runner) Stop() {
	r.logger.Info("Stopping review runner...")
	r.stopOnce.Do(func() {
		close(r.stopChan)
	})
	r.wg.Wait()
	r.logger.Info("Review runner stopped")
}

// workerLoop is the main processing loop for each worker goroutine.
func (r *Runner) workerLoop(ctx context.Context, workerNum int) {
	defer r.wg.Done()

	r.logger.Debug("Review worker started",
		slog.Int("worker_num", workerNum),
	)

	for {
		select {
		case <-r.stopChan:
			r.logger.Debug("Review worker stopping",
				slog.Int("worker_num", workerNum),
			)
			return

		case <-ctx.Done():
			r.logger.Debug("Review worker stopping - context canceled",
				slog.Int("worker_num", workerNum),
			)
			return

		case task := <-r.tasks:
			r.runReview(ctx, task)
		}
	}
}

// runReview drives one job from running to a terminal state. Any error fails
// the whole job; partial progress and results are discarded.
func (r *Runner) runReview(ctx context.Context, task reviewTask) {
	r.registry.SetRunning(task.jobID)

	results, err := r.review(ctx, task.jobID, task.date)
	if err != nil {
		r.logger.Error("Review job failed",
			slog.String("job_id", task.jobID),
			slog.String("date", task.date),
			slog.String("error", err.Error()),
		)
		r.registry.SetFailed(task.jobID, err.Error())
		return
	}

	r.registry.SetDone(task.jobID, results)
	r.logger.Info("Review job completed",
		slog.String("job_id", task.jobID),
		slog.String("date", task.date),
		slog.Int("flagged", len(results)),
	)
}

// review fetches the date's articles and analyzes them strictly sequentially,
// accumulating flagged results and updating progress after every article.
func (r *Runner) review(ctx context.Context, jobID, date string) ([]domain.ReviewResult, error) {
	if !datePattern.MatchString(date) {
		return nil, fmt.Errorf("date must be in YYYY-MM-DD format")
	}

	articles, err := r.articles.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("fetch articles: %w", err)
	}

	// Guards the progress division when the date has no articles.
	total := len(articles)
	if total == 0 {
		total = 1
	}

	var results []domain.ReviewResult
	for i, article := range articles {
		assessment, err := r.analyzer.Analyze(ctx, article.Title, article.Text)
		if err != nil {
			return nil, fmt.Errorf("analyze %s: %w", article.URL, err)
		}

		if violations := assessment.Violations(); len(violations) > 0 {
			results = append(results, domain.ReviewResult{
				URL:           article.URL,
				Title:         article.Title,
				PublishedDate: article.PublishedDate,
				Violations:    violations,
				Evidence:      assessment.FlaggedEvidence(maxEvidencePerCategory),
			})
		}

		r.registry.SetProgress(jobID, (i+1)*100/total)
	}

	return results, nil
}
