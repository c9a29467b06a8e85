package handlers

import (
	"bytes"
	"distance-matrix-service/internal/api/dto"
	"distance-matrix-service/internal/domain"
	"distance-matrix-service/internal/services"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

type MatrixHandler struct {
	Pipeline *services.Pipeline
	Logger   *zap.Logger
}

// Create computes one distance matrix. It decodes the polymorphic query
// payload, runs the pipeline and maps domain failures onto HTTP statuses.
func (h *MatrixHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.MatrixRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	origins, err := domain.ParseQueryJSON("origins", req.Origins)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	destinations, err := domain.ParseQueryJSON("destinations", req.Destinations)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	opts, err := decodeOptions(req.Options)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	job := services.MatrixJob{
		Origins:          origins,
		Destinations:     destinations,
		Options:          opts,
		OriginNames:      aliasNames(req.OriginNames, origins),
		DestinationNames: aliasNames(req.DestinationNames, destinations),
	}

	result, err := h.Pipeline.Run(r.Context(), job)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, matrixResponse(result))
}

// Options are decoded strictly on their own so an unknown option key is
// rejected instead of silently dropped.
func decodeOptions(raw json.RawMessage) (domain.Options, error) {
	var opts domain.Options
	if len(raw) == 0 {
		return opts, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		return domain.Options{}, &domain.InvalidQueryError{
			Field:  "options",
			Reason: err.Error(),
		}
	}
	return opts, nil
}

// aliasNames normalizes the untyped alias list; when the caller sends none,
// the query terms double as display names.
func aliasNames(raw []any, q domain.Query) []string {
	if raw == nil {
		return q.Terms()
	}
	names := make([]string, 0, len(raw))
	for _, v := range raw {
		names = append(names, domain.SanitizeLabel(v))
	}
	return names
}

func matrixResponse(result *services.MatrixResult) dto.MatrixResponse {
	rows := result.Matrix.RowLabels()
	cols := result.Matrix.ColumnLabels()

	km := make(map[string]map[string]*int, len(rows))
	for _, row := range rows {
		cells := make(map[string]*int, len(cols))
		for _, col := range cols {
			if m, ok := result.Matrix.Value(row, col); ok && m.Valid {
				v := m.Value
				cells[col] = &v
			} else {
				cells[col] = nil
			}
		}
		km[row] = cells
	}

	return dto.MatrixResponse{
		Artifact:          result.Artifact,
		RequestTime:       result.RequestTime,
		OriginLabels:      rows,
		DestinationLabels: cols,
		Kilometers:        km,
		ExportPath:        result.ExportPath,
	}
}

func (h *MatrixHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, domain.ErrMalformedResponse):
		writeError(w, r, http.StatusBadGateway, err.Error())
	default:
		logger := h.Logger
		if logger == nil {
			logger = zap.L()
		}
		logger.Error("matrix request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
