package handlers

import (
	"context"
	"errors"
	"fmt"
	"geo-forensics-service/internal/adapters/evidence"
	"geo-forensics-service/internal/api/dto"
	"geo-forensics-service/internal/domain"
	"geo-forensics-service/internal/report"
	"geo-forensics-service/internal/services"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/mdobak/go-xerrors"
)

const (
	maxUploadBytes = 64 << 20
	maxMemoryBytes = 32 << 20
	imagesField    = "images"
)

// BatchResolver resolves an ordered batch of images.
type BatchResolver interface {
	Resolve(ctx context.Context, sources []domain.EvidenceSource) (services.ResolveResult, error)
}

type InvestigationHandler struct {
	Pipeline BatchResolver
}

// Investigate resolves the uploaded images, in upload order, into a track.
// ?format=csv returns the CSV report instead of JSON.
func (h *InvestigationHandler) Investigate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeError(w, r, http.StatusBadRequest, "format must be json or csv")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxMemoryBytes); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid multipart body")
		return
	}
	defer r.MultipartForm.RemoveAll()

	sources, err := readUploads(r.MultipartForm.File[imagesField])
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(sources) == 0 {
		writeError(w, r, http.StatusBadRequest, "at least one image is required in the images field")
		return
	}

	result, err := h.Pipeline.Resolve(r.Context(), sources)
	if err != nil {
		if errors.Is(err, domain.ErrServiceUnavailable) {
			writeError(w, r, http.StatusServiceUnavailable, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "resolve batch failed", slog.Any("error", xerrors.New(err)))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "investigation-"+result.BatchID.String()+".csv"))
		w.WriteHeader(http.StatusOK)
		if err := report.WriteCSV(w, result); err != nil {
			slog.ErrorContext(r.Context(), "write report failed", slog.Any("error", xerrors.New(err)))
		}
		return
	}

	writeJSON(w, r, http.StatusOK, toInvestigationResponse(result))
}

func readUploads(headers []*multipart.FileHeader) ([]domain.EvidenceSource, error) {
	sources := make([]domain.EvidenceSource, 0, len(headers))
	for _, fh := range headers {
		if !evidence.IsImageName(fh.Filename) {
			return nil, fmt.Errorf("unsupported file %q: accepted extensions are .png, .jpg, .jpeg, .webp", fh.Filename)
		}

		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload %q: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read upload %q: %w", fh.Filename, err)
		}

		sources = append(sources, domain.EvidenceSource{Name: fh.Filename, Data: data})
	}
	return sources, nil
}

func toInvestigationResponse(result services.ResolveResult) dto.InvestigationResponse {
	res := dto.InvestigationResponse{
		BatchID:         result.BatchID.String(),
		Track:           make([]dto.EvidenceItemResponse, 0, len(result.Track)),
		Diagnostics:     make([]dto.DiagnosticResponse, 0, len(result.Diagnostics)),
		Resolved:        result.Resolved,
		Failed:          result.Failed,
		TotalDistanceKm: result.TotalDistance(),
		LegsKm:          services.TrackLegs(result.Track),
	}

	for _, item := range result.Track {
		if item.Coordinates == nil {
			continue
		}
		res.Track = append(res.Track, dto.EvidenceItemResponse{
			File:         item.SourceFile,
			Provenance:   string(item.Provenance),
			Label:        item.Label,
			Description:  item.Description,
			Lat:          item.Coordinates.Lat,
			Lon:          item.Coordinates.Lon,
			MapsURL:      item.MapsURL(),
			RawModelText: item.RawModelText,
		})
	}

	for _, d := range result.Diagnostics {
		res.Diagnostics = append(res.Diagnostics, dto.DiagnosticResponse{
			File:    d.File,
			Kind:    string(d.Kind),
			Message: d.Message,
		})
	}

	return res
}
