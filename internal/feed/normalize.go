package feed

import (
	"territory/internal/core"
	"territory/internal/csvx"
	"territory/internal/log"
)

// Feed column names, as exported by the upstream reporting system.
const (
	ColCustomer    = "Customer Name"
	ColOwnerEmail  = "Territory Owner E-mail"
	ColFiscalMonth = "Fiscal Month"
	ColConsumption = "Actual Consumption (k$)"
	ColCloseDate   = "Date"
	ColProbability = "Probability"
	ColNEAmount    = "N/E"
	ColWLAmount    = "Workload"
)

// Feeds holds the three normalized row collections for one owner.
type Feeds struct {
	Realized []*core.Row
	NE       []*core.Row
	Workload []*core.Row
}

// Rows returns the collection for the given feed kind.
func (f *Feeds) Rows(kind core.FeedKind) []*core.Row {
	switch kind {
	case core.FeedRealized:
		return f.Realized
	case core.FeedPipelineNE:
		return f.NE
	case core.FeedPipelineWorkload:
		return f.Workload
	}
	return nil
}

// NormalizeRealized filters realized-consumption records to the owner and
// merges them into one row per customer, keyed by fiscal month.
//
// Records whose month abbreviation is not in the fiscal calendar are
// skipped and counted; a missing or unparsable amount becomes zero, since
// partial-period data is expected mid-fiscal-year. Neither case fails the
// feed.
func NormalizeRealized(records []csvx.Record, owner string, logger *log.Logger) ([]*core.Row, int) {
	var rows []*core.Row
	byCustomer := make(map[string]*core.Row)
	skipped := 0

	for _, rec := range records {
		if rec[ColOwnerEmail] != owner {
			continue
		}
		customer := rec[ColCustomer]
		if customer == "" {
			skipped++
			continue
		}

		month, err := core.ParseFiscalMonth(rec[ColFiscalMonth])
		if err != nil {
			skipped++
			logger.Warn("skipping record with unknown fiscal month",
				log.FieldCustomer, customer,
				log.FieldMonth, rec[ColFiscalMonth])
			continue
		}

		amount := 0.0
		if raw, ok := rec[ColConsumption]; ok {
			if v, err := core.ParseAmount(raw); err == nil {
				amount = v
			} else {
				logger.Debug("unparsable consumption amount, using zero",
					log.FieldCustomer, customer,
					log.FieldMonth, string(month),
					log.FieldError, err)
			}
		}

		row, ok := byCustomer[customer]
		if !ok {
			row = core.NewRealizedRow(customer)
			byCustomer[customer] = row
			rows = append(rows, row)
		}
		row.SetAmount(month, amount)
	}
	return rows, skipped
}

// NormalizePipeline filters pipeline records to the owner and produces one
// row per deal: the full forecast amount, close date, and probability carry
// over, and all twelve months start at zero pending manual allocation.
func NormalizePipeline(records []csvx.Record, owner string, kind core.FeedKind, logger *log.Logger) ([]*core.Row, int) {
	amountCol := ColNEAmount
	if kind == core.FeedPipelineWorkload {
		amountCol = ColWLAmount
	}

	var rows []*core.Row
	skipped := 0
	for _, rec := range records {
		if rec[ColOwnerEmail] != owner {
			continue
		}
		customer := rec[ColCustomer]
		if customer == "" {
			skipped++
			continue
		}

		amount, err := core.ParseAmount(rec[amountCol])
		if err != nil {
			amount = 0
			logger.Debug("unparsable pipeline amount, using zero",
				log.FieldFeed, string(kind),
				log.FieldCustomer, customer,
				log.FieldError, err)
		}
		rows = append(rows, core.NewPipelineRow(
			customer,
			amount,
			rec[ColCloseDate],
			core.ParseProbability(rec[ColProbability]),
		))
	}
	return rows, skipped
}

// Build parses the three raw CSV texts and normalizes them for the owner.
// A feed whose header cannot be read contributes an empty collection; a
// stale or partial ledger beats a failed one.
func Build(raw RawFeeds, owner string, logger *log.Logger) *Feeds {
	feeds := &Feeds{}

	parse := func(text, name string) []csvx.Record {
		records, err := csvx.Parse(text)
		if err != nil {
			logger.Warn("feed did not parse, treating as empty",
				log.FieldFeed, name, log.FieldError, err)
			return nil
		}
		return records
	}

	var skipped int
	feeds.Realized, skipped = NormalizeRealized(parse(raw.Consumption, string(core.FeedRealized)), owner, logger)
	logNormalized(logger, core.FeedRealized, len(feeds.Realized), skipped)

	feeds.NE, skipped = NormalizePipeline(parse(raw.NE, string(core.FeedPipelineNE)), owner, core.FeedPipelineNE, logger)
	logNormalized(logger, core.FeedPipelineNE, len(feeds.NE), skipped)

	feeds.Workload, skipped = NormalizePipeline(parse(raw.Workload, string(core.FeedPipelineWorkload)), owner, core.FeedPipelineWorkload, logger)
	logNormalized(logger, core.FeedPipelineWorkload, len(feeds.Workload), skipped)

	return feeds
}

func logNormalized(logger *log.Logger, kind core.FeedKind, rows, skipped int) {
	logger.Debug("normalized feed",
		log.FieldFeed, string(kind),
		log.FieldRows, rows,
		log.FieldSkipped, skipped)
}
