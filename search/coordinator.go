package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jobha/backend/config"
	"github.com/jobha/backend/models"
)

// Searcher runs one background job search and reports discovered postings
// through the callback, possibly across several partial batches. The final
// invocation has done=true; failures arrive through err.
type Searcher interface {
	SearchJobs(ctx context.Context, keywords []string, onResults func(batch []models.JobPosting, done bool, err error))
}

// Store persists the postings collected by a finished session.
type Store interface {
	SaveJobs(docID string, jobs []models.JobPosting) error
}

// Options tune one search session's timing and thresholds.
type Options struct {
	Budget          time.Duration
	PollInterval    time.Duration
	IdleNotice      time.Duration
	SufficientCount int
	MaxResults      int
}

// OptionsFromConfig builds session options from application configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Budget:          time.Duration(cfg.SearchBudgetSeconds) * time.Second,
		PollInterval:    time.Duration(cfg.QueuePollSeconds) * time.Second,
		IdleNotice:      time.Duration(cfg.IdleNoticeSeconds) * time.Second,
		SufficientCount: cfg.SufficientJobsCount,
		MaxResults:      cfg.MaxJobResults,
	}
}

// progressPhrases rotate through keepalive messages while the queue is quiet.
var progressPhrases = []string{
	"Scanning job boards for matching positions...",
	"Matching postings against your profile...",
	"Gathering new listings...",
	"Checking for fresh postings...",
}

const idleMessage = "Still searching. Good matches can take a while to surface."

const jobSource = "perplexity"

// Coordinator drives search sessions: it launches the background search,
// deduplicates and scores arriving postings, and emits stream events until
// completion, provider error, or the session budget runs out.
type Coordinator struct {
	searcher Searcher
	store    Store
	opts     Options
	log      *zap.Logger
}

func NewCoordinator(searcher Searcher, store Store, opts Options, log *zap.Logger) *Coordinator {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 3 * time.Second
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 50
	}
	return &Coordinator{searcher: searcher, store: store, opts: opts, log: log}
}

// Stream starts a search session for one document and returns the event
// channel. The channel is closed after the terminal event, or without one if
// ctx is cancelled first (the client is gone, nobody is reading). The
// background search itself is not cancelled on disconnect; its late results
// are simply dropped.
func (c *Coordinator) Stream(ctx context.Context, docID string, keywords []string) <-chan any {
	out := make(chan any, 16)
	go c.run(ctx, docID, keywords, out)
	return out
}

func (c *Coordinator) run(ctx context.Context, docID string, keywords []string, out chan<- any) {
	defer close(out)

	if len(keywords) == 0 {
		c.send(ctx, out, &TerminalEvent{
			Status:  StatusError,
			Message: "No search keywords available. Analyze the document first.",
			Error:   "no search keywords",
		})
		return
	}

	primary := keywords[0]
	if !c.send(ctx, out, &StatusEvent{
		Status:   StatusStarted,
		Message:  fmt.Sprintf("Searching for jobs matching: %s", strings.Join(keywords, ", ")),
		Keywords: keywords,
	}) {
		return
	}

	c.log.Info("job search session started",
		zap.String("doc_id", docID),
		zap.String("primary_keyword", primary),
		zap.Int("keyword_count", len(keywords)))

	queue := make(chan models.JobPosting, c.opts.MaxResults)
	searchDone := make(chan error, 1)

	// The search runs on its own goroutine; the callback hands postings
	// over through the buffered queue so all session state stays on this
	// goroutine.
	go c.searcher.SearchJobs(context.WithoutCancel(ctx), keywords, func(batch []models.JobPosting, done bool, err error) {
		for _, job := range batch {
			select {
			case queue <- job:
			default:
				c.log.Warn("search queue full, dropping posting", zap.String("title", job.Title))
			}
		}
		if done {
			searchDone <- err
		}
	})

	var (
		collected      []models.JobPosting
		seen           = make(map[string]struct{})
		searchErr      error
		timedOut       bool
		sufficientSent bool
		start          = time.Now()
		lastArrival    = time.Now()
		deadline       = start.Add(c.opts.Budget)
	)

	handle := func(job models.JobPosting) bool {
		if _, dup := seen[job.DedupKey()]; dup {
			return true
		}
		seen[job.DedupKey()] = struct{}{}

		job.DocID = docID
		score := ScoreJob(&job, keywords)
		job.MatchScore = models.FlexibleInt(score)
		collected = append(collected, job)
		lastArrival = time.Now()

		if !c.send(ctx, out, &JobEvent{
			Job:          &collected[len(collected)-1],
			JobsCount:    len(collected),
			Source:       jobSource,
			MatchScore:   score,
			MatchQuality: models.MatchQuality(score),
		}) {
			return false
		}

		if !sufficientSent && len(collected) == c.opts.SufficientCount {
			sufficientSent = true
			if !c.send(ctx, out, &StatusEvent{
				Status:  StatusSufficient,
				Message: fmt.Sprintf("Found %d matching jobs. Search continues for more.", len(collected)),
			}) {
				return false
			}
		}
		return true
	}

loop:
	for {
		if c.opts.Budget > 0 && !time.Now().Before(deadline) {
			timedOut = true
			break loop
		}
		if len(collected) >= c.opts.MaxResults {
			break loop
		}

		select {
		case job := <-queue:
			if !handle(job) {
				return
			}
		case searchErr = <-searchDone:
			// Drain postings queued before the completion signal.
			for {
				select {
				case job := <-queue:
					if !handle(job) {
						return
					}
				default:
					break loop
				}
			}
		case <-time.After(c.opts.PollInterval):
			msg := progressPhrases[int(time.Since(start).Seconds())%len(progressPhrases)]
			if time.Since(lastArrival) >= c.opts.IdleNotice {
				msg = idleMessage
			}
			if !c.send(ctx, out, &StatusEvent{Status: StatusSearching, Message: msg}) {
				return
			}
		case <-ctx.Done():
			c.log.Info("client disconnected from job stream",
				zap.String("doc_id", docID), zap.Int("delivered", len(collected)))
			return
		}
	}

	total := len(collected)

	if total > 0 && c.store != nil && docID != "" {
		if err := c.store.SaveJobs(docID, collected); err != nil {
			c.log.Error("failed to persist search results", zap.String("doc_id", docID), zap.Error(err))
			c.send(ctx, out, &TerminalEvent{
				Status:  StatusError,
				Message: "Search finished but results could not be saved.",
				Total:   total,
				Error:   err.Error(),
			})
			return
		}
	}

	switch {
	case searchErr != nil:
		c.send(ctx, out, &TerminalEvent{
			Status:  StatusError,
			Message: "Job search failed.",
			Total:   total,
			Error:   searchErr.Error(),
		})
	case timedOut && total > 0:
		c.send(ctx, out, &TerminalEvent{
			Status:  StatusTimeout,
			Message: fmt.Sprintf("Search timed out after finding %d jobs.", total),
			Total:   total,
		})
	case total == 0:
		// A session that runs out of budget without results is a clean
		// empty completion, not a failure.
		c.send(ctx, out, &TerminalEvent{
			Status:  StatusCompleted,
			Message: "No matching jobs found.",
			Total:   0,
		})
	default:
		c.send(ctx, out, &TerminalEvent{
			Status:  StatusCompleted,
			Message: fmt.Sprintf("Found %d matching jobs.", total),
			Total:   total,
		})
	}

	c.log.Info("job search session finished",
		zap.String("doc_id", docID),
		zap.Int("total", total),
		zap.Bool("timed_out", timedOut),
		zap.Error(searchErr))
}

func (c *Coordinator) send(ctx context.Context, out chan<- any, event any) bool {
	select {
	case out <- event:
		return true
	case <-ctx.Done():
		return false
	}
}
