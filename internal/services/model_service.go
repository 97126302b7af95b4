package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"territory/internal/cache"
	"territory/internal/core"
	"territory/internal/feed"
	"territory/internal/log"
	"territory/internal/settings"
)

var (
	ErrReadOnlyFeed = errors.New("feed is read-only")
	ErrRowNotFound  = errors.New("row not found")
)

// maxFeedOwners bounds the per-owner row collections kept between
// requests. The oldest owner's rows (and any cell edits on them) are
// dropped when the bound is exceeded.
const maxFeedOwners = 128

// SettingsReader is the settings lookup the dashboard builds from. The
// settings service satisfies it and serves saves still waiting in the
// write coalescer, so a dashboard built inside the debounce window
// already reflects them.
type SettingsReader interface {
	Get(ctx context.Context, ownerID string) (core.TargetSettings, error)
}

// RowView is the serialized form of one customer row.
type RowView struct {
	Customer       string                    `json:"customer"`
	Amounts        map[core.MonthKey]float64 `json:"amounts"`
	Total          float64                   `json:"total"`
	PipelineAmount float64                   `json:"pipelineAmount,omitempty"`
	CloseDate      string                    `json:"closeDate,omitempty"`
	Probability    int                       `json:"probability,omitempty"`
}

// TotalsView is a twelve-month series with its grand total.
type TotalsView struct {
	Months map[core.MonthKey]float64 `json:"months"`
	Total  float64                   `json:"total"`
}

// SectionView is one feed's rows plus its section totals.
type SectionView struct {
	Rows   []RowView                 `json:"rows"`
	Months map[core.MonthKey]float64 `json:"months"`
	Total  float64                   `json:"total"`
}

// DashboardModel is the fully reconciled per-owner view: three sections,
// the combined ledger, the target curve, the gap row, and both progress
// percentages.
type DashboardModel struct {
	Owner                  string              `json:"owner"`
	Realized               SectionView         `json:"realized"`
	NE                     SectionView         `json:"ne"`
	Workload               SectionView         `json:"workload"`
	Ledger                 TotalsView          `json:"ledger"`
	TargetCurve            TotalsView          `json:"targetCurve"`
	GapToGoal              TotalsView          `json:"gapToGoal"`
	NEProgress             float64             `json:"neProgress"`
	ConsumptionProgress    float64             `json:"consumptionProgress"`
	TotalConsumptionTarget float64             `json:"totalConsumptionTarget"`
	Settings               core.TargetSettings `json:"settings"`
}

// ModelService builds dashboard models. Raw feed text is fetched once and
// shared by all owners; per-owner row collections are built on first use
// and retained so cell edits survive between requests. Computed models are
// cached per owner until an edit or settings change invalidates them.
type ModelService struct {
	loader   *feed.Loader
	settings SettingsReader
	cache    cache.Cache[*DashboardModel]
	logger   *log.Logger

	mu        sync.Mutex
	raw       feed.RawFeeds
	rawLoaded bool
	feeds     map[string]*feed.Feeds
	feedOrder []string
}

func NewModelService(loader *feed.Loader, sr SettingsReader, c cache.Cache[*DashboardModel], logger *log.Logger) *ModelService {
	return &ModelService{
		loader:   loader,
		settings: sr,
		cache:    c,
		logger:   logger.WithComponent("model"),
		feeds:    make(map[string]*feed.Feeds),
	}
}

// Refresh re-fetches the raw feeds and discards every built model,
// including unallocated cell edits. The next request per owner rebuilds
// from the fresh text.
func (s *ModelService) Refresh(ctx context.Context) error {
	raw, err := s.loader.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch feeds: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = raw
	s.rawLoaded = true
	for owner := range s.feeds {
		s.cache.Delete(owner)
	}
	s.feeds = make(map[string]*feed.Feeds)
	s.feedOrder = nil
	return nil
}

// Dashboard returns the reconciled model for an owner, serving from cache
// when the underlying rows and settings have not changed.
func (s *ModelService) Dashboard(ctx context.Context, ownerID string) (*DashboardModel, error) {
	if ownerID == "" {
		return nil, core.ErrEmptyOwner
	}

	if model, ok := s.cache.Get(ownerID); ok {
		return model, nil
	}

	snap, err := s.snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	ts, err := s.settings.Get(ctx, ownerID)
	if errors.Is(err, settings.ErrNotFound) {
		ts = core.TargetSettings{OwnerID: ownerID}
	} else if err != nil {
		// Degrade to zero targets rather than failing the dashboard.
		s.logger.Warn("settings unavailable, using zero targets",
			log.FieldOwner, ownerID,
			log.FieldError, err)
		ts = core.TargetSettings{OwnerID: ownerID}
	}

	model := reconcile(ownerID, snap, ts)
	s.cache.Set(ownerID, model)
	return model, nil
}

// EditCell sets one month's amount on a pipeline row. Realized rows are
// read-only as they mirror the upstream feed.
func (s *ModelService) EditCell(ctx context.Context, ownerID string, kind core.FeedKind, customer string, month core.MonthKey, value float64) error {
	if ownerID == "" {
		return core.ErrEmptyOwner
	}
	if !kind.Valid() {
		return fmt.Errorf("unknown feed %q", kind)
	}
	if !kind.Pipeline() {
		return fmt.Errorf("%w: %s", ErrReadOnlyFeed, kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	feeds, err := s.ownerFeedsLocked(ctx, ownerID)
	if err != nil {
		return err
	}
	for _, row := range feeds.Rows(kind) {
		if row.Customer == customer {
			if err := row.SetAmount(month, value); err != nil {
				return err
			}
			s.cache.Delete(ownerID)
			s.logger.Debug("cell edited",
				log.FieldOwner, ownerID,
				log.FieldFeed, string(kind),
				log.FieldCustomer, customer,
				log.FieldMonth, string(month))
			return nil
		}
	}
	return fmt.Errorf("%w: %s/%s", ErrRowNotFound, kind, customer)
}

// Invalidate drops the cached model for an owner. The settings handlers
// call it after writes so the next dashboard reflects the new targets.
func (s *ModelService) Invalidate(ownerID string) {
	s.cache.Delete(ownerID)
}

// snapshot clones the owner's rows under the lock so reconciliation works
// on data no concurrent edit can touch.
func (s *ModelService) snapshot(ctx context.Context, ownerID string) (*feed.Feeds, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	feeds, err := s.ownerFeedsLocked(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &feed.Feeds{
		Realized: cloneRows(feeds.Realized),
		NE:       cloneRows(feeds.NE),
		Workload: cloneRows(feeds.Workload),
	}, nil
}

func (s *ModelService) ownerFeedsLocked(ctx context.Context, ownerID string) (*feed.Feeds, error) {
	if !s.rawLoaded {
		raw, err := s.loader.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch feeds: %w", err)
		}
		s.raw = raw
		s.rawLoaded = true
	}

	feeds, ok := s.feeds[ownerID]
	if !ok {
		feeds = feed.Build(s.raw, ownerID, s.logger)
		s.feeds[ownerID] = feeds
		s.feedOrder = append(s.feedOrder, ownerID)
		for len(s.feeds) > maxFeedOwners {
			oldest := s.feedOrder[0]
			s.feedOrder = s.feedOrder[1:]
			delete(s.feeds, oldest)
			s.cache.Delete(oldest)
		}
	}
	return feeds, nil
}

func cloneRows(rows []*core.Row) []*core.Row {
	out := make([]*core.Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}

// reconcile runs the full derivation chain on a row snapshot.
func reconcile(ownerID string, feeds *feed.Feeds, ts core.TargetSettings) *DashboardModel {
	realized := core.SectionTotal(feeds.Realized)
	ne := core.SectionTotal(feeds.NE)
	workload := core.SectionTotal(feeds.Workload)

	ledger := core.CombineLedger(realized, ne, workload)
	curve := core.NewTargetCurve(ts)
	gap := core.ComputeGapToGoal(curve, ledger)

	return &DashboardModel{
		Owner:                  ownerID,
		Realized:               sectionView(feeds.Realized, realized),
		NE:                     sectionView(feeds.NE, ne),
		Workload:               sectionView(feeds.Workload, workload),
		Ledger:                 TotalsView{Months: ledger.Months, Total: ledger.Total},
		TargetCurve:            TotalsView{Months: curve.Months, Total: curve.Total},
		GapToGoal:              TotalsView{Months: gap.Months, Total: gap.Total},
		NEProgress:             core.NEProgress(feeds.NE, ts),
		ConsumptionProgress:    core.ConsumptionProgress(ledger, ts),
		TotalConsumptionTarget: ts.TotalConsumptionTarget(),
		Settings:               ts,
	}
}

func sectionView(rows []*core.Row, totals core.SectionTotals) SectionView {
	views := make([]RowView, len(rows))
	for i, r := range rows {
		views[i] = RowView{
			Customer:       r.Customer,
			Amounts:        r.Amounts,
			Total:          r.Total,
			PipelineAmount: r.PipelineAmount,
			CloseDate:      r.CloseDate,
			Probability:    r.Probability,
		}
	}
	return SectionView{Rows: views, Months: totals.Months, Total: totals.Total}
}
