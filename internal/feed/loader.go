package feed

import (
	"context"

	"golang.org/x/sync/errgroup"

	"territory/internal/log"
)

// RawFeeds holds the unparsed CSV text of the three feeds.
type RawFeeds struct {
	Consumption string
	NE          string
	Workload    string
}

// Loader fetches the three feeds concurrently. Fetch failures degrade to an
// empty feed rather than failing the load: the engine operates on whatever
// data is currently available.
type Loader struct {
	consumption Source
	ne          Source
	workload    Source
	logger      *log.Logger
}

func NewLoader(consumption, ne, workload Source, logger *log.Logger) *Loader {
	return &Loader{
		consumption: consumption,
		ne:          ne,
		workload:    workload,
		logger:      logger.WithComponent("feed"),
	}
}

// Fetch retrieves all three raw feeds. Individual source failures are
// logged and leave that feed empty; cancellation surfaces the same way, so
// the caller always gets whatever subset arrived.
func (l *Loader) Fetch(ctx context.Context) (RawFeeds, error) {
	var raw RawFeeds
	g, ctx := errgroup.WithContext(ctx)

	fetch := func(src Source, name string, dst *string) func() error {
		return func() error {
			text, err := src.Fetch(ctx)
			if err != nil {
				l.logger.Warn("feed fetch failed, treating as empty",
					log.FieldFeed, name, log.FieldError, err)
				return nil
			}
			*dst = text
			return nil
		}
	}

	g.Go(fetch(l.consumption, "consumption", &raw.Consumption))
	g.Go(fetch(l.ne, "ne", &raw.NE))
	g.Go(fetch(l.workload, "workload", &raw.Workload))

	return raw, g.Wait()
}
