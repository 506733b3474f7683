// internal/service/session/service.go
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"customer-lookup-service/internal/domain/customer"
	xerrors "customer-lookup-service/internal/pkg/errors"
	"customer-lookup-service/internal/repository/source"
	"customer-lookup-service/internal/service/ingestion"
	"customer-lookup-service/internal/service/lookup"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Fetcher retrieves a source payload from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*source.Payload, error)
}

// SourceMemory remembers the last URL that loaded successfully.
type SourceMemory interface {
	Remember(ctx context.Context, url string) error
	Recall(ctx context.Context) (string, error)
	Forget(ctx context.Context) error
}

// Notifier is told about every dataset change; info is nil after a reset.
type Notifier interface {
	DatasetChanged(info *customer.DatasetInfo)
}

// Service owns the single interactive session. Loads run outside the lock
// and only swap the dataset in once parsing succeeded, so a failed load
// leaves the previous data in place.
type Service struct {
	mu    sync.RWMutex
	state State

	fetcher  Fetcher
	pipeline *ingestion.Pipeline
	memory   SourceMemory
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(fetcher Fetcher, pipeline *ingestion.Pipeline, memory SourceMemory, logger *zap.Logger) *Service {
	return &Service{
		state:    Initial(),
		fetcher:  fetcher,
		pipeline: pipeline,
		memory:   memory,
		logger:   logger,
		now:      time.Now,
	}
}

// SetNotifier installs n to receive dataset changes. Call it before serving.
func (s *Service) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// SetClock replaces the time source used for the recency window.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// LoadURL fetches and ingests a source from url, then remembers url.
func (s *Service) LoadURL(ctx context.Context, url string) (*customer.DatasetInfo, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("%w: source url is required", xerrors.ErrInvalidInput)
	}

	info, err := s.load(ctx, url, func() (*source.Payload, error) {
		return s.fetcher.Fetch(ctx, url)
	})
	if err != nil {
		return nil, err
	}

	if err := s.memory.Remember(ctx, url); err != nil {
		s.logger.Warn("failed to remember source url", zap.Error(err))
	}
	return info, nil
}

// LoadPayload ingests an already-read source such as an uploaded file.
func (s *Service) LoadPayload(ctx context.Context, payload *source.Payload) (*customer.DatasetInfo, error) {
	return s.load(ctx, payload.Name, func() (*source.Payload, error) {
		return payload, nil
	})
}

// Restore loads fallbackURL, or the remembered url when fallbackURL is empty.
// Having nothing to restore is not an error.
func (s *Service) Restore(ctx context.Context, fallbackURL string) error {
	url := strings.TrimSpace(fallbackURL)
	if url == "" {
		remembered, err := s.memory.Recall(ctx)
		if err != nil {
			return xerrors.Wrap(err, "failed to recall source url")
		}
		url = remembered
	}
	if url == "" {
		return nil
	}
	_, err := s.LoadURL(ctx, url)
	return err
}

func (s *Service) load(ctx context.Context, label string, read func() (*source.Payload, error)) (*customer.DatasetInfo, error) {
	s.mu.Lock()
	if s.state.Loading {
		s.mu.Unlock()
		return nil, xerrors.ErrLoadInProgress
	}
	s.state = LoadStarted(s.state)
	s.mu.Unlock()

	start := time.Now()
	ds, err := s.safeIngest(ctx, label, read)

	s.mu.Lock()
	if err != nil {
		s.state = LoadFailed(s.state, fmt.Errorf("failed to load data: %w", err))
		s.mu.Unlock()
		s.logger.Error("source load failed",
			zap.String("source", label),
			zap.Error(err),
		)
		return nil, err
	}
	s.state = Loaded(s.state, ds)
	notifier := s.notifier
	s.mu.Unlock()

	s.logger.Info("source loaded",
		zap.String("load_id", ds.LoadID),
		zap.String("source", ds.Source),
		zap.String("kind", string(ds.Kind)),
		zap.Int("records", ds.Count()),
		zap.Int("rejected", ds.Rejected),
		zap.Duration("took", time.Since(start)),
	)
	info := datasetInfo(ds)
	if notifier != nil {
		notifier.DatasetChanged(info)
	}
	return info, nil
}

// safeIngest turns a panic during ingestion into an error so Loading is always cleared.
func (s *Service) safeIngest(ctx context.Context, label string, read func() (*source.Payload, error)) (ds *customer.Dataset, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic during source load",
				zap.String("source", label),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			ds, err = nil, fmt.Errorf("ingestion panicked: %v", r)
		}
	}()
	return s.ingest(ctx, label, read)
}

func (s *Service) ingest(ctx context.Context, label string, read func() (*source.Payload, error)) (*customer.Dataset, error) {
	payload, err := read()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrSourceUnavailable, err)
	}

	kind, err := source.DetectKind(payload)
	if err != nil {
		return nil, err
	}
	result, err := s.pipeline.Ingest(kind, payload.Data)
	if err != nil {
		return nil, err
	}

	return &customer.Dataset{
		LoadID:   ulid.Make().String(),
		Source:   label,
		Kind:     result.Kind,
		LoadedAt: s.loadClock(),
		Records:  result.Records,
		Rejected: result.Rejected,
	}, nil
}

// Reset drops all session data and forgets the remembered source.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	if s.state.Loading {
		s.mu.Unlock()
		return xerrors.ErrLoadInProgress
	}
	s.state = Reset(s.state)
	notifier := s.notifier
	s.mu.Unlock()

	if notifier != nil {
		notifier.DatasetChanged(nil)
	}
	if err := s.memory.Forget(ctx); err != nil {
		return xerrors.Wrap(err, "failed to forget source url")
	}
	s.logger.Info("session reset")
	return nil
}

// Query records the in-progress query and returns its suggestions.
func (s *Service) Query(query string) ([]customer.Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Dataset == nil {
		return nil, xerrors.ErrNoDataset
	}
	s.state = Queried(s.state, query)
	return s.state.Suggestions(), nil
}

// Select makes phone the active customer. A phone with no records yields a
// view without a summary rather than an error.
func (s *Service) Select(phone string) (customer.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Dataset == nil {
		return customer.SessionView{}, xerrors.ErrNoDataset
	}
	s.state = Selected(s.state, phone)
	s.logger.Debug("customer selected",
		zap.String("phone", phone),
		zap.Int("records", len(s.state.Results)),
	)
	return Render(s.state, s.clock()), nil
}

// SetRecentOnly toggles the recency window.
func (s *Service) SetRecentOnly(enabled bool) customer.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = RecentToggled(s.state, enabled)
	return Render(s.state, s.clock())
}

// SetPage moves to page; out-of-range pages leave the view unchanged.
func (s *Service) SetPage(page int) customer.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = PageChanged(s.state, page, s.clock())
	return Render(s.state, s.clock())
}

// View renders the current session.
func (s *Service) View() customer.SessionView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Render(s.state, s.clock())
}

// Records returns the full loaded record set.
func (s *Service) Records() ([]customer.CustomerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Dataset == nil {
		return nil, xerrors.ErrNoDataset
	}
	return s.state.Dataset.Records, nil
}

// ActiveCustomer returns the selected customer's name and unfiltered history.
func (s *Service) ActiveCustomer() (string, []customer.CustomerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	latest := lookup.MostRecent(s.state.Results)
	if latest == nil {
		return "", nil, xerrors.ErrNoSelection
	}
	return latest.RecipientName, s.state.Results, nil
}

func (s *Service) clock() time.Time {
	return s.now()
}

// loadClock reads the clock from outside the lock.
func (s *Service) loadClock() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now()
}
