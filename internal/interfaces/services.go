// Package interfaces defines service contracts for TealScan
package interfaces

import (
	"context"

	"github.com/bobmcallan/tealscan/internal/models"
)

// ScanService evaluates parsed account statements
type ScanService interface {
	// Scan evaluates every scheme with today's date as the valuation date
	Scan(ctx context.Context, statement *models.Statement) *models.ScanResult

	// ScanAsOf evaluates every scheme with asOf as the valuation date
	ScanAsOf(ctx context.Context, statement *models.Statement, asOf models.Date) *models.ScanResult
}
