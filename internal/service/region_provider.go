package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"storefront/internal/domain"
)

// RegionState состояние загрузки регионов
type RegionState string

const (
	RegionsIdle    RegionState = "idle"
	RegionsLoading RegionState = "loading"
	RegionsLoaded  RegionState = "loaded"
	RegionsFailed  RegionState = "failed"
)

// RegionProvider загружает регионы один раз за визит страницы
type RegionProvider struct {
	source RegionSource
	log    *zap.Logger
	sfg    singleflight.Group // concurrent Load calls share one fetch

	mu      sync.RWMutex
	state   RegionState
	regions []domain.Region
	lastErr error
}

func NewRegionProvider(source RegionSource, log *zap.Logger) *RegionProvider {
	if log == nil {
		log = zap.NewNop()
	}
	return &RegionProvider{source: source, log: log, state: RegionsIdle}
}

// Load fetches the region list. Failure leaves the list empty; nothing is
// retried automatically. The shared fetch ignores cancellation of whichever
// caller started it (the source's own timeout bounds it); each caller stops
// waiting when its ctx is done.
func (p *RegionProvider) Load(ctx context.Context) error {
	fetchCtx := context.WithoutCancel(ctx)
	ch := p.sfg.DoChan("regions", func() (interface{}, error) {
		p.setState(RegionsLoading)
		regions, err := p.source.FetchRegions(fetchCtx)

		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			p.state = RegionsFailed
			p.regions = nil
			p.lastErr = fmt.Errorf("%w: %w", ErrRegionLoadFailed, err)
			return nil, p.lastErr
		}
		p.state = RegionsLoaded
		p.regions = append([]domain.Region(nil), regions...)
		p.lastErr = nil
		return nil, nil
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			p.log.Warn("regions load failed", zap.Error(res.Err), zap.Bool("shared", res.Shared))
			return res.Err
		}
		p.log.Debug("regions loaded", zap.Int("count", len(p.Regions())), zap.Bool("shared", res.Shared))
		return nil
	}
}

// EnsureLoaded запускает Load из состояния idle или присоединяется к текущей
// загрузке, иначе отдаёт результат предыдущей загрузки
func (p *RegionProvider) EnsureLoaded(ctx context.Context) error {
	p.mu.RLock()
	state, lastErr := p.state, p.lastErr
	p.mu.RUnlock()
	if state == RegionsIdle || state == RegionsLoading {
		return p.Load(ctx)
	}
	return lastErr
}

func (p *RegionProvider) setState(s RegionState) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

func (p *RegionProvider) State() RegionState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Err last load failure, nil unless State is RegionsFailed.
func (p *RegionProvider) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}

// Regions returns a copy in source order.
func (p *RegionProvider) Regions() []domain.Region {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]domain.Region, len(p.regions))
	copy(out, p.regions)
	return out
}

// Contains reports whether code is among the loaded regions.
func (p *RegionProvider) Contains(code string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, r := range p.regions {
		if r.Code == code {
			return true
		}
	}
	return false
}
