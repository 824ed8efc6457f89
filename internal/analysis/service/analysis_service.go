package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/camel-tools-api/camel-api/internal/analysis/domain"
	"github.com/camel-tools-api/camel-api/internal/analysis/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options bounds the work a single request may cause.
type Options struct {
	Timeout          time.Duration // per request; 0 disables
	MaxTextRunes     int           // 0 disables
	BatchMaxItems    int
	BatchConcurrency int
}

// DefaultOptions returns the limits used when none are configured.
func DefaultOptions() Options {
	return Options{
		Timeout:          5 * time.Second,
		MaxTextRunes:     10000,
		BatchMaxItems:    32,
		BatchConcurrency: 4,
	}
}

// AnalysisService dispatches analysis requests to the toolkit
type AnalysisService struct {
	toolkit  Toolkit
	handlers map[domain.Operation]handlerFunc
	cache    repository.ResultCache
	metrics  *Metrics
	log      *zap.Logger
	opts     Options
}

// NewAnalysisService creates a new AnalysisService. cache, metrics and log
// may be nil.
func NewAnalysisService(tk Toolkit, cache repository.ResultCache, metrics *Metrics, log *zap.Logger, opts Options) (*AnalysisService, error) {
	if err := tk.Validate(); err != nil {
		return nil, err
	}
	if err := checkDispatchTable(dispatchTable); err != nil {
		return nil, err
	}
	if cache == nil {
		cache = repository.NoopCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.BatchMaxItems <= 0 {
		opts.BatchMaxItems = DefaultOptions().BatchMaxItems
	}
	if opts.BatchConcurrency <= 0 {
		opts.BatchConcurrency = DefaultOptions().BatchConcurrency
	}

	return &AnalysisService{
		toolkit:  tk,
		handlers: dispatchTable,
		cache:    cache,
		metrics:  metrics,
		log:      log,
		opts:     opts,
	}, nil
}

// Operations returns the supported flags in dispatch order.
func (s *AnalysisService) Operations() []domain.Operation {
	return append([]domain.Operation(nil), domain.Operations...)
}

// Options returns the effective limits, defaults applied.
func (s *AnalysisService) Options() Options {
	return s.opts
}

// Metrics returns the collectors the service records into. It may be nil.
func (s *AnalysisService) Metrics() *Metrics {
	return s.metrics
}

// Analyze runs the operation selected by req.Flag. An unknown flag is not an
// error: the response carries domain.GuidanceMessage.
func (s *AnalysisService) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResponse, error) {
	start := time.Now()

	op, ok := domain.ParseOperation(req.Flag)
	if !ok {
		s.metrics.recordAnalysis("unknown", StatusGuidance, time.Since(start))
		return encodeResponse(domain.GuidanceMessage)
	}

	logger := NewLogger(ctx, s.log)

	if s.opts.MaxTextRunes > 0 {
		if n := utf8.RuneCountInString(req.Text); n > s.opts.MaxTextRunes {
			err := fmt.Errorf("%w: %d runes, limit is %d", domain.ErrTextTooLong, n, s.opts.MaxTextRunes)
			s.metrics.recordAnalysis(string(op), StatusError, time.Since(start))
			return nil, err
		}
	}

	if cached, hit := s.lookup(ctx, logger, op, req.Text); hit {
		s.metrics.recordAnalysis(string(op), StatusOK, time.Since(start))
		return &domain.AnalysisResponse{Output: cached}, nil
	}

	out, err := s.run(ctx, op, req.Text)
	if err != nil {
		s.metrics.recordAnalysis(string(op), StatusError, time.Since(start))
		if domain.KindOf(err) == domain.KindNoAnalysis {
			logger.LogDebug(string(op), "no analysis", zap.Error(err))
		} else {
			logger.LogError(string(op), err)
		}
		return nil, err
	}

	resp, err := encodeResponse(out)
	if err != nil {
		s.metrics.recordAnalysis(string(op), StatusError, time.Since(start))
		return nil, err
	}

	if err := s.cache.Set(ctx, op, req.Text, resp.Output); err != nil {
		logger.LogWarn(string(op), "cache write failed", zap.Error(err))
	}

	s.metrics.recordAnalysis(string(op), StatusOK, time.Since(start))
	return resp, nil
}

// AnalyzeBatch runs every request concurrently, at most
// Options.BatchConcurrency at a time. Results keep the input order; a
// failing item is reported in its slot and does not fail the batch.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, reqs []domain.AnalysisRequest) ([]domain.BatchItemResult, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: batch is empty", domain.ErrInvalidRequest)
	}
	if len(reqs) > s.opts.BatchMaxItems {
		return nil, fmt.Errorf("%w: batch has %d items, limit is %d", domain.ErrInvalidRequest, len(reqs), s.opts.BatchMaxItems)
	}

	results := make([]domain.BatchItemResult, len(reqs))

	var g errgroup.Group
	g.SetLimit(s.opts.BatchConcurrency)
	for i, req := range reqs {
		g.Go(func() error {
			resp, err := s.Analyze(ctx, req)
			if err != nil {
				results[i] = domain.BatchItemResult{Error: domain.NewErrorBody(err)}
				return nil
			}
			results[i] = domain.BatchItemResult{Output: resp.Output}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (s *AnalysisService) lookup(ctx context.Context, logger *Logger, op domain.Operation, text string) (json.RawMessage, bool) {
	cached, hit, err := s.cache.Get(ctx, op, text)
	switch {
	case err != nil:
		s.metrics.recordCache("error")
		logger.LogWarn(string(op), "cache read failed", zap.Error(err))
		return nil, false
	case hit:
		s.metrics.recordCache("hit")
		return cached, true
	default:
		s.metrics.recordCache("miss")
		return nil, false
	}
}

type runResult struct {
	out any
	err error
}

// run calls the operation handler in its own goroutine so that a deadline
// can cut the wait short and a panic inside a capability becomes an error.
// The handler receives ctx and stops between tokens once it is done.
func (s *AnalysisService) run(ctx context.Context, op domain.Operation, text string) (any, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	handler := s.handlers[op]
	done := make(chan runResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- runResult{err: fmt.Errorf("%w: %s: %v", domain.ErrCapabilityFailed, op, r)}
			}
		}()
		out, err := handler(ctx, &s.toolkit, text)
		done <- runResult{out: out, err: err}
	}()

	var res runResult
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = ctx.Err()
	}
	if errors.Is(res.err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w: %s exceeded %s", domain.ErrTimeout, op, s.opts.Timeout)
	}
	return res.out, res.err
}

func encodeResponse(out any) (*domain.AnalysisResponse, error) {
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	return &domain.AnalysisResponse{Output: raw}, nil
}
