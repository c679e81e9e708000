package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alejandrodnm/quadra/internal/calculator"
	"github.com/alejandrodnm/quadra/internal/domain"
)

const maxBodyBytes = 1 << 16

// Los porcentajes llegan como en el formulario (2 = 2%) y se dividen por 100 aquí.

type splitsRequest struct {
	Amount        float64 `json:"amount"`
	Months        int     `json:"months"`
	GoldMonthlyPc float64 `json:"gold_monthly_pct"`
	FlipPeriodPc  float64 `json:"flip_6m_pct"`
	AlgoAnnualPc  float64 `json:"algo_annual_pct"`
}

func (r splitsRequest) input() calculator.CompareInput {
	return calculator.CompareInput{
		Amount:        r.Amount,
		Months:        r.Months,
		GoldMonthly:   r.GoldMonthlyPc / 100,
		FlipPerPeriod: r.FlipPeriodPc / 100,
		AlgoAnnual:    r.AlgoAnnualPc / 100,
	}
}

// feesRequest: los campos omitidos conservan la comisión configurada.
type feesRequest struct {
	PlatformManagementPc    *float64 `json:"platform_management_pct"`
	PlatformPerformancePc   *float64 `json:"platform_performance_pct"`
	ContractorManagementPc  *float64 `json:"contractor_management_pct"`
	ContractorPerformancePc *float64 `json:"contractor_performance_pct"`
}

func (f *feesRequest) merge(base domain.FeeSchedule) domain.FeeSchedule {
	if f == nil {
		return base
	}
	set := func(dst *float64, pct *float64) {
		if pct != nil {
			*dst = *pct / 100
		}
	}
	set(&base.PlatformManagement, f.PlatformManagementPc)
	set(&base.PlatformPerformance, f.PlatformPerformancePc)
	set(&base.ContractorManagement, f.ContractorManagementPc)
	set(&base.ContractorPerformance, f.ContractorPerformancePc)
	return base
}

type customRequest struct {
	splitsRequest
	GoldWeightPc float64      `json:"gold_weight_pct"`
	FlipWeightPc float64      `json:"flip_weight_pct"`
	AlgoWeightPc float64      `json:"algo_weight_pct"`
	Fees         *feesRequest `json:"fees"`
}

type goalRequest struct {
	Amount   float64 `json:"amount"`
	Months   int     `json:"months"`
	TargetPc float64 `json:"target_pct"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStrategies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"strategies": s.svc.Strategies(),
		"fees":       s.svc.Fees(),
	})
}

func (s *Server) handleSplits(w http.ResponseWriter, r *http.Request) {
	var req splitsRequest
	if !decode(w, r, &req) {
		return
	}
	report, err := s.svc.Compare(r.Context(), req.input())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleCustom(w http.ResponseWriter, r *http.Request) {
	var req customRequest
	if !decode(w, r, &req) {
		return
	}
	in := calculator.CustomInput{
		CompareInput: req.splitsRequest.input(),
		GoldWeight:   req.GoldWeightPc / 100,
		FlipWeight:   req.FlipWeightPc / 100,
		AlgoWeight:   req.AlgoWeightPc / 100,
	}
	if req.Fees != nil {
		fees := req.Fees.merge(s.svc.Fees())
		in.Fees = &fees
	}

	report, err := s.svc.Custom(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if !decode(w, r, &req) {
		return
	}
	report, err := s.svc.Seek(r.Context(), calculator.GoalInput{
		Amount: req.Amount,
		Months: req.Months,
		Target: req.TargetPc / 100,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.metrics.goals.WithLabelValues(strconv.FormatBool(report.Result.Found), report.Result.Strategy).Inc()
	writeJSON(w, http.StatusOK, report)
}

// writeServiceError traduce los errores del servicio a códigos HTTP.
// La mezcla inválida es un aviso (422), no un fallo del servidor.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	id := requestID(r.Context())
	var mixErr *domain.MixError
	switch {
	case errors.As(err, &mixErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: mixErr.Error(), RequestID: id})
	case errors.Is(err, calculator.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), RequestID: id})
	default:
		slog.ErrorContext(r.Context(), "calculation failed", "request_id", id, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", RequestID: id})
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:     "invalid JSON body: " + err.Error(),
			RequestID: requestID(r.Context()),
		})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeJSON codifica antes de escribir la cabecera: si falla (Inf, NaN)
// el cliente recibe un 500 en vez de un 200 vacío.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("failed to encode response", "status", status, "err", err)
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: "response encoding failed"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("failed to write response", "err", err)
	}
}
