// Package portfolio computes per-scheme performance and portfolio totals from
// a parsed account statement.
package portfolio

import (
	"context"
	"time"

	"github.com/bobmcallan/tealscan/internal/common"
	"github.com/bobmcallan/tealscan/internal/interfaces"
	"github.com/bobmcallan/tealscan/internal/models"
)

var _ interfaces.ScanService = (*Service)(nil)

// Service implements ScanService. It holds only immutable configuration, so a
// single Service may serve concurrent scans.
type Service struct {
	evaluator *Evaluator
	logger    *common.Logger
	now       func() time.Time
}

// NewService creates a new scan service
func NewService(config *common.Config, logger *common.Logger) *Service {
	return &Service{
		evaluator: NewEvaluator(config),
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock returns a copy of the service reading "today" from now.
func (s *Service) WithClock(now func() time.Time) *Service {
	c := *s
	c.now = now
	return &c
}

// Scan evaluates every scheme of the statement as of today.
func (s *Service) Scan(ctx context.Context, statement *models.Statement) *models.ScanResult {
	return s.ScanAsOf(ctx, statement, models.NewDate(s.now()))
}

// ScanAsOf evaluates every scheme of the statement with asOf as "today". The
// date is fixed for the whole scan so every scheme's terminal flow shares it.
// A nil or empty statement yields a zero summary and no funds.
func (s *Service) ScanAsOf(ctx context.Context, statement *models.Statement, asOf models.Date) *models.ScanResult {
	today := asOf.Time
	logger := s.logger.With().Str("correlation_id", common.CorrelationID(ctx)).Logger()

	result := &models.ScanResult{AsOf: asOf}

	var evals []Evaluation
	if statement != nil {
		result.Investor = statement.InvestorInfo.Name
		result.Period = statement.StatementPeriod

		for fi := range statement.Folios {
			folio := &statement.Folios[fi]
			for si := range folio.Schemes {
				scheme := &folio.Schemes[si]

				ev, ok := s.evaluator.Evaluate(folio, scheme, today)
				if !ok {
					result.Excluded++
					logger.Debug().
						Str("folio", folio.Folio).
						Str("scheme", scheme.Name).
						Str("value", scheme.Valuation.ValueOrZero().String()).
						Msg("Scheme below minimum value, excluded")
					continue
				}
				if !ev.Record.XIRRAvailable {
					logger.Debug().
						Str("scheme", scheme.Name).
						Int("transactions", len(scheme.Transactions)).
						Msg("XIRR unavailable for scheme, reporting 0")
				}
				evals = append(evals, ev)
			}
		}
	}

	result.Summary, result.Funds = Aggregate(evals)
	result.Allocation = Allocate(result.Funds)

	logger.Info().
		Int("schemes", statement.SchemeCount()).
		Int("included", len(result.Funds)).
		Int("excluded", result.Excluded).
		Str("net_worth", result.Summary.NetWorth.String()).
		Str("as_of", asOf.String()).
		Msg("Statement scanned")

	return result
}
