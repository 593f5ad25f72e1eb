package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bobmcallan/tealscan/internal/models"
	"github.com/bobmcallan/tealscan/internal/services/portfolio"
	"github.com/bobmcallan/tealscan/internal/statement"
)

// scanResponse is the success envelope: status plus the flattened scan result.
type scanResponse struct {
	Status string `json:"status"`
	*models.ScanResult
}

// scanErrorResponse is the failure envelope returned by the scan endpoints.
type scanErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeScanError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, scanErrorResponse{Status: "error", Message: message})
}

// requirePost is RequireMethod for the scan endpoints, answering in the scan envelope.
func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodPost {
		return true
	}
	w.Header().Set("Allow", http.MethodPost)
	writeScanError(w, http.StatusMethodNotAllowed, "Method not allowed")
	return false
}

// handleScan handles POST /api/scan. The body is a parsed statement as JSON;
// ?as_of=YYYY-MM-DD fixes the valuation date instead of today.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	result, ok := s.scanRequest(w, r)
	if !ok {
		return
	}

	WriteJSON(w, http.StatusOK, scanResponse{Status: "success", ScanResult: result})
}

// handleScanChart handles POST /api/scan/chart, returning the allocation pie as PNG.
func (s *Server) handleScanChart(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	result, ok := s.scanRequest(w, r)
	if !ok {
		return
	}

	png, err := portfolio.RenderAllocationChart(result.Allocation)
	if err != nil {
		writeScanError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// scanRequest decodes the statement body and runs the scan, writing an error
// envelope and returning false on bad input.
func (s *Server) scanRequest(w http.ResponseWriter, r *http.Request) (*models.ScanResult, bool) {
	var asOf models.Date
	if v := r.URL.Query().Get("as_of"); v != "" {
		d, err := models.ParseDate(v)
		if err != nil {
			writeScanError(w, http.StatusBadRequest, err.Error())
			return nil, false
		}
		asOf = d
	}

	if r.Body == nil {
		writeScanError(w, http.StatusBadRequest, "Request body is required")
		return nil, false
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.app.Config.Server.MaxBodyBytes())

	stmt, err := statement.Decode(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeScanError(w, http.StatusRequestEntityTooLarge, "statement exceeds the request size limit")
		case errors.Is(err, statement.ErrEmpty):
			writeScanError(w, http.StatusBadRequest, "Request body is required")
		default:
			writeScanError(w, http.StatusBadRequest, err.Error())
		}
		return nil, false
	}

	ctx := r.Context()
	if asOf.IsZero() {
		return s.app.ScanService.Scan(ctx, stmt), true
	}
	return s.app.ScanService.ScanAsOf(ctx, stmt, asOf), true
}
