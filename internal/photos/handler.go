package photos

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/photo-fixer/internal/transcode"
	"github.com/JaimeStill/photo-fixer/pkg/handlers"
	"github.com/JaimeStill/photo-fixer/pkg/routes"
)

const multipartMemory = 8 << 20

// Response headers carrying the fit outcome alongside a JPEG download.
const (
	HeaderSizeKB       = "X-Photo-Size-KB"
	HeaderQuality      = "X-Photo-Quality"
	HeaderWithinBounds = "X-Photo-Within-Bounds"
)

type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "photos"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/photos",
		Description: "Fit photos to exam upload requirements",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/fix", Handler: h.Fix},
			{Method: "POST", Pattern: "/identify", Handler: h.Identify},
		},
	}
}

// Fix accepts multipart form data with a "file" part and either a "profile"
// field or "width", "height", "min_kb" and "max_kb" fields.
func (h *Handler) Fix(w http.ResponseWriter, r *http.Request) {
	data, err := h.readUpload(w, r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	cmd := FixCommand{
		Data:    data,
		Profile: r.FormValue("profile"),
	}

	if cmd.Profile == "" {
		target, err := ParseTarget(r)
		if err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
		cmd.Target = target
	}

	fixed, err := h.sys.Fix(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if r.URL.Query().Get("format") == "json" || r.FormValue("format") == "json" {
		handlers.RespondJSON(w, http.StatusOK, newFixResponse(fixed))
		return
	}

	WriteHeaders(w, fixed)
	handlers.RespondAttachment(w, "image/jpeg", fixed.FileName, fixed.Data)
}

func (h *Handler) Identify(w http.ResponseWriter, r *http.Request) {
	data, err := h.readUpload(w, r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	info, err := h.sys.Identify(r.Context(), data)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, info)
}

// WriteHeaders sets the fit outcome headers for a download response.
func WriteHeaders(w http.ResponseWriter, fixed *Fixed) {
	w.Header().Set(HeaderSizeKB, strconv.FormatFloat(fixed.SizeKB, 'f', 2, 64))
	w.Header().Set(HeaderQuality, strconv.Itoa(fixed.Quality))
	w.Header().Set(HeaderWithinBounds, strconv.FormatBool(fixed.WithinBounds))
}

// ReadUpload reads the "file" part of a multipart request, enforcing the
// upload limit.
func ReadUpload(r *http.Request, maxSize int64) ([]byte, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: %v", ErrTooLarge, err)
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, ErrMissingFile
		}
		return nil, fmt.Errorf("%w: %v", ErrMissingFile, err)
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, ErrMissingFile
	}
	defer file.Close()

	reader := io.Reader(file)
	if maxSize > 0 {
		reader = io.LimitReader(file, maxSize+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, ErrTooLarge
	}
	return data, nil
}

func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if limit := h.sys.MaxUploadSize(); limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartMemory)
	}
	return ReadUpload(r, h.sys.MaxUploadSize())
}

// ParseTarget reads a custom target from form values. It returns
// ErrMissingTarget when no dimension fields are present.
func ParseTarget(r *http.Request) (*transcode.TargetSpec, error) {
	if r.FormValue("width") == "" && r.FormValue("height") == "" {
		return nil, ErrMissingTarget
	}

	var target transcode.TargetSpec
	var err error

	if target.Width, err = formInt(r, "width"); err != nil {
		return nil, err
	}
	if target.Height, err = formInt(r, "height"); err != nil {
		return nil, err
	}
	if target.MinSizeKB, err = formFloat(r, "min_kb", true); err != nil {
		return nil, err
	}
	if target.MaxSizeKB, err = formFloat(r, "max_kb", false); err != nil {
		return nil, err
	}
	return &target, nil
}

func formInt(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(r.FormValue(name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", transcode.ErrInvalidDimensions, name)
	}
	return n, nil
}

func formFloat(r *http.Request, name string, optional bool) (float64, error) {
	v := r.FormValue(name)
	if v == "" && optional {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", transcode.ErrInvalidTarget, name)
	}
	return f, nil
}
