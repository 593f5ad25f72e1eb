// Package report renders scan results as markdown for terminal display.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bobmcallan/tealscan/internal/common"
	"github.com/bobmcallan/tealscan/internal/models"
)

// FormatScanReport generates the markdown scan report: headline totals, allocation
// by category, every included fund, and the regular plans carrying commission.
func FormatScanReport(result *models.ScanResult, currency string) string {
	var sb strings.Builder

	sb.WriteString("# TealScan Report\n\n")
	if result.Investor != "" {
		sb.WriteString(fmt.Sprintf("**Investor:** %s\n", result.Investor))
	}
	if p := result.Period; p.From != "" || p.To != "" {
		sb.WriteString(fmt.Sprintf("**Statement Period:** %s to %s\n", p.From, p.To))
	}
	sb.WriteString(fmt.Sprintf("**As Of:** %s\n\n", result.AsOf.String()))

	s := result.Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Amount |\n")
	sb.WriteString("|--------|--------|\n")
	sb.WriteString(fmt.Sprintf("| Net Worth | %s |\n", common.FormatMoney(s.NetWorth, currency)))
	sb.WriteString(fmt.Sprintf("| Total Invested | %s |\n", common.FormatMoney(s.TotalInvested, currency)))
	sb.WriteString(fmt.Sprintf("| Total Gain | %s |\n", common.FormatSignedMoney(s.TotalGain, currency)))
	sb.WriteString(fmt.Sprintf("| Hidden Fees (annual) | %s |\n\n", common.FormatMoney(s.HiddenFees, currency)))

	if len(result.Funds) == 0 {
		sb.WriteString("No holdings above the minimum value.\n")
		if result.Excluded > 0 {
			sb.WriteString(fmt.Sprintf("\n_%d scheme(s) excluded as closed or below minimum value._\n", result.Excluded))
		}
		return sb.String()
	}

	if len(result.Allocation) > 0 {
		sb.WriteString("## Allocation\n\n")
		sb.WriteString("| Category | Value | Weight |\n")
		sb.WriteString("|----------|-------|--------|\n")
		for _, a := range result.Allocation {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
				a.Category, common.FormatMoney(a.Value, currency), common.FormatPct(a.Weight)))
		}
		sb.WriteString("\n")
	}

	funds := make([]models.SchemeRecord, len(result.Funds))
	copy(funds, result.Funds)
	sort.SliceStable(funds, func(i, j int) bool { return funds[i].Value.GreaterThan(funds[j].Value) })

	sb.WriteString("## Funds\n\n")
	sb.WriteString("| Fund | Category | Plan | Value | XIRR | Annual Fee |\n")
	sb.WriteString("|------|----------|------|-------|------|------------|\n")
	for _, f := range funds {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			escapeCell(f.FundName), f.Category, f.Type,
			common.FormatMoney(f.Value, currency), formatXIRR(f),
			common.FormatMoney(f.Loss, currency)))
	}
	sb.WriteString("\n")

	var regular []models.SchemeRecord
	for _, f := range funds {
		if f.Type == models.ChannelRegular && f.Loss.IsPositive() {
			regular = append(regular, f)
		}
	}
	if len(regular) > 0 {
		sb.WriteString("## Commission Drag\n\n")
		sb.WriteString(fmt.Sprintf("%d regular plan(s) cost an estimated **%s** a year in commission. "+
			"The direct plan of the same scheme avoids it.\n\n",
			len(regular), common.FormatMoney(s.HiddenFees, currency)))
		for _, f := range regular {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", f.FundName, common.FormatMoney(f.Loss, currency)))
		}
		sb.WriteString("\n")
	}

	if result.Excluded > 0 {
		sb.WriteString(fmt.Sprintf("_%d scheme(s) excluded as closed or below minimum value._\n", result.Excluded))
	}

	return sb.String()
}

// formatXIRR shows n/a where the return could not be computed, rather than 0.00%.
func formatXIRR(f models.SchemeRecord) string {
	if !f.XIRRAvailable {
		return "n/a"
	}
	return common.FormatSignedPct(f.XIRR)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
