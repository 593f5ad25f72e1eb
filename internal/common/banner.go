package common

import (
	"fmt"
	"io"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner.
func PrintBanner(w io.Writer, config *Config, logger *Logger) {
	info := GetVersionInfo()
	serviceURL := fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)

	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	hr := lineColor + strings.Repeat("═", 64) + banner.ColorReset

	art := []string{
		` _____ _____    _    _     ____   ____    _    _   _`,
		`|_   _| ____|  / \  | |   / ___| / ___|  / \  | \ | |`,
		`  | | |  _|   / _ \ | |   \___ \| |     / _ \ |  \| |`,
		`  | | | |___ / ___ \| |___ ___) | |___ / ___ \| |\  |`,
		`  |_| |_____/_/   \_\_____|____/ \____/_/   \_\_| \_|`,
	}

	fmt.Fprintf(w, "\n%s\n\n", hr)
	for _, line := range art {
		fmt.Fprintf(w, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(w, "\n%s  Mutual Fund Statement Performance & Fee Scanner%s\n\n", textColor, banner.ColorReset)
	fmt.Fprintf(w, "%s\n\n", hr)

	kvLines := [][2]string{
		{"Version", info.Version},
		{"Build", info.Build},
		{"Commit", info.Commit},
		{"Environment", config.Environment},
		{"Service URL", serviceURL},
		{"Min Value", fmt.Sprintf("%.0f %s", config.Scan.MinValue, config.Scan.Currency)},
		{"Regular Fee", FormatRate(config.Fees.RegularRate)},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(w, "%s  %-16s %s%s\n", textColor, kv[0], kv[1], banner.ColorReset)
	}
	fmt.Fprintf(w, "\n%s\n\n", hr)

	logger.Info().
		Str("version", info.Version).
		Str("build", info.Build).
		Str("commit", info.Commit).
		Str("environment", config.Environment).
		Str("service_url", serviceURL).
		Msg("Application started")
}

// PrintShutdownBanner displays the application shutdown banner.
func PrintShutdownBanner(w io.Writer, logger *Logger) {
	hr := banner.ColorCyan + strings.Repeat("═", 42) + banner.ColorReset

	fmt.Fprintf(w, "\n%s\n", hr)
	fmt.Fprintf(w, "%s  TEALSCAN: SHUTTING DOWN%s\n", banner.ColorBold+banner.ColorWhite, banner.ColorReset)
	fmt.Fprintf(w, "%s\n\n", hr)

	logger.Info().Msg("Application shutting down")
}
