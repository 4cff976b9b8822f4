package http

import (
	"fmt"
	"net/http"

	"github.com/biotrack-io/attendance-engine-go/internal/handler/http/response"
	"github.com/biotrack-io/attendance-engine-go/internal/service/report"
)

type ReportHandler interface {
	// GetDailyWorkbook streams the daily metrics report as an xlsx file
	GetDailyWorkbook(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService *report.Service
}

func NewReportHandler(reportService *report.Service) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// GetDailyWorkbook handles GET /reports/daily.xlsx
func (h *reportHandlerImpl) GetDailyWorkbook(w http.ResponseWriter, r *http.Request) {
	date := parseDate(r.URL.Query().Get("date"))

	workbook, err := h.reportService.BuildDailyWorkbook(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("attendance-%s.xlsx", date.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))

	if err := workbook.Write(w); err != nil {
		// Headers already sent; nothing useful left to tell the client.
		return
	}
}
