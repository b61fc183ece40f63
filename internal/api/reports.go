package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avenirlabs/scorecard-ai/internal/core"
	"github.com/avenirlabs/scorecard-ai/internal/report"
)

// sectionsResponse carries the parsed report structure: sections in document
// order plus the micro-parsed tier, findings and action plan.
type sectionsResponse struct {
	ReportID string            `json:"reportId"`
	Tier     string            `json:"tier"`
	Order    []string          `json:"order"`
	Sections map[string]string `json:"sections"`
	Findings report.Findings   `json:"findings"`
	Actions  []report.Action   `json:"actions"`
}

// handleListReports returns summaries of all stored reports.
func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.reports.List(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	type summary struct {
		ID        string `json:"id"`
		Tier      string `json:"tier"`
		Company   string `json:"company,omitempty"`
		CreatedAt string `json:"createdAt"`
	}
	out := make([]summary, 0, len(reports))
	for _, rep := range reports {
		out = append(out, summary{
			ID:        rep.ID,
			Tier:      rep.Tier.String(),
			Company:   rep.Lead.Company,
			CreatedAt: rep.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"reports": out})
}

// handleGetReport returns the full report document.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reports.Get(r.Context(), chi.URLParam(r, "reportID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

// handleGetReportSections returns the report split into sections, with the
// findings and action plan parsed out.
func (s *Server) handleGetReportSections(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reports.Get(r.Context(), chi.URLParam(r, "reportID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	secs := report.ExtractSections(rep.Markdown)
	body := make(map[string]string, secs.Len())
	for _, title := range secs.Titles() {
		body[title] = secs.Body(title)
	}

	respondJSON(w, http.StatusOK, sectionsResponse{
		ReportID: rep.ID,
		Tier:     rep.Tier.String(),
		Order:    secs.Titles(),
		Sections: body,
		Findings: report.ParseFindings(secs.Body(report.SectionKeyFindings)),
		Actions:  report.ParseActions(secs.Body(report.SectionActionPlan)),
	})
}

// handleDeleteReport removes a stored report.
func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	if err := s.reports.Delete(r.Context(), chi.URLParam(r, "reportID")); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleViewReport renders the printable HTML page. An unknown or
// unreachable report falls back to a fixed sample document so the page
// always renders.
func (s *Server) handleViewReport(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	var rep *core.Report
	if id != "" {
		stored, err := s.reports.Get(r.Context(), id)
		if err == nil {
			rep = stored
		} else if !core.IsNotFound(err) {
			s.logger.Warn("report lookup failed, serving sample", "report_id", id, "error", err)
		}
	}
	if rep == nil {
		rep = report.MockReport(id)
	}

	page, err := report.RenderHTML(rep)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "render failed: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}
