package whitelist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/primitivehl/whitelist-checker/metrics"
	"golang.org/x/sync/errgroup"
)

var ErrNoAddressesAvailable = errors.New("failed to fetch eligible addresses")

// Source is one hosted text resource contributing addresses.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

type ListLoader interface {
	LoadEligibleAddresses(ctx context.Context) ([]string, error)
}

type Loader struct {
	sources []Source
	logger  log.Logger
}

func NewLoader(logger log.Logger, sources ...Source) *Loader {
	return &Loader{sources: sources, logger: logger}
}

func (l *Loader) Sources() []Source {
	return l.sources
}

// LoadEligibleAddresses fetches every source concurrently and concatenates the
// parsed addresses. A failing source contributes nothing; only when no source
// yields an address does it return ErrNoAddressesAvailable.
func (l *Loader) LoadEligibleAddresses(ctx context.Context) ([]string, error) {
	results := make([][]string, len(l.sources))
	var g errgroup.Group
	for i, src := range l.sources {
		i, src := i, src
		g.Go(func() error {
			results[i] = l.loadSource(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	var all []string
	for _, addrs := range results {
		all = append(all, addrs...)
	}
	if len(all) == 0 {
		metrics.IncNoAddressesAvailable()
		l.logger.Error("[Loader] Failed to fetch eligible addresses from any source", "sources", len(l.sources))
		return nil, ErrNoAddressesAvailable
	}

	metrics.SetListSize(len(all))
	l.logger.Debug("[Loader] Loaded eligible addresses", "total", len(all))
	return all, nil
}

// loadSource runs on an errgroup goroutine, so a panicking Source is
// recovered here and counted as that source failing.
func (l *Loader) loadSource(ctx context.Context, src Source) (addrs []string) {
	defer func() {
		if r := recover(); r != nil {
			metrics.IncSourceFetchErr()
			l.logger.Error("[Loader] Source panicked", "source", src.Name(), "panic", fmt.Sprint(r))
			addrs = nil
		}
	}()

	start := time.Now()
	content, err := src.Fetch(ctx)
	metrics.ObserveSourceFetch(start)
	if err != nil {
		metrics.IncSourceFetchErr()
		l.logger.Warn("[Loader] Failed to load source", "source", src.Name(), "error", err)
		return nil
	}
	addrs = ParseList(content)
	l.logger.Debug("[Loader] Loaded source", "source", src.Name(), "contentLength", len(content), "addresses", len(addrs))
	return addrs
}
