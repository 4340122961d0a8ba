package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/jalur/internal/observability"
	"github.com/abhisek/jalur/internal/pipeline"
	"github.com/abhisek/jalur/internal/placement"
	"github.com/abhisek/jalur/internal/schema"
	"github.com/abhisek/jalur/internal/table"
)

// multipartMemory is the in-memory part of a multipart upload; the rest
// spills to temp files.
const multipartMemory = 8 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// requestError carries the HTTP status for a failed request.
type requestError struct {
	status int
	err    error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(format string, args ...any) error {
	return &requestError{status: http.StatusBadRequest, err: fmt.Errorf(format, args...)}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var reqErr *requestError
	var unknown *schema.UnknownProfileError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.As(err, &reqErr):
		status = reqErr.status
	case errors.Is(err, table.ErrUnsupportedFormat):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, table.ErrEmpty), errors.As(err, &unknown):
		status = http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
	}
	if status >= http.StatusInternalServerError {
		observability.FromContext(r.Context()).Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type profilePayload struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Columns     []schema.Mapping `json:"columns"`
}

func (s *Server) handleProfiles(w http.ResponseWriter, _ *http.Request) {
	out := make([]profilePayload, 0, len(s.profiles.Profiles()))
	for _, p := range s.profiles.Profiles() {
		out = append(out, profilePayload{Name: p.Name, Description: p.Description, Columns: p.Columns})
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": out})
}

type rulePayload struct {
	Name     string           `json:"name"`
	Cascades []cascadePayload `json:"cascades"`
}

type cascadePayload struct {
	Status   string   `json:"status"`
	Rules    []string `json:"rules"`
	Fallback string   `json:"fallback"`
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("rules")
	var rs *placement.RuleSet
	if name == "" {
		var err error
		if rs, err = placement.Resolve(s.cfg.Pipeline.Rules); err != nil {
			writeError(w, r, err)
			return
		}
	} else if rs = placement.ByName(name); rs == nil {
		writeError(w, r, badRequest("unknown rule set %q", name))
		return
	}

	out := rulePayload{Name: rs.Name}
	for _, c := range rs.Cascades() {
		cp := cascadePayload{Status: string(c.Status), Fallback: string(c.Fallback), Rules: []string{}}
		for _, rule := range c.Rules {
			cp.Rules = append(cp.Rules, rule.Name()+": "+rule.Describe())
		}
		out.Cascades = append(out.Cascades, cp)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePlacements(w http.ResponseWriter, r *http.Request) {
	t, inFormat, res, err := s.process(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	outFormat := inFormat
	if q := r.URL.Query().Get("format"); q != "" {
		if outFormat, err = table.ParseFormat(q); err != nil {
			writeError(w, r, &requestError{status: http.StatusBadRequest, err: err})
			return
		}
	}
	if err := pipeline.Annotate(t, res); err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := table.Write(&buf, t, outFormat); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", outFormat.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="placements.%s"`, outFormat))
	w.Header().Set("X-Run-ID", res.RunID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	_, _, res, err := s.process(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// process reads the upload and runs the pipeline with the request's
// overrides applied.
func (s *Server) process(r *http.Request) (*table.Table, table.Format, *pipeline.Result, error) {
	opts, err := s.options(r)
	if err != nil {
		return nil, "", nil, err
	}
	body, format, err := upload(r)
	if err != nil {
		return nil, "", nil, err
	}
	defer body.Close()

	t, err := table.Read(body, format, table.ReadOptions{Sheet: r.URL.Query().Get("sheet")})
	if err != nil {
		return nil, "", nil, err
	}
	proc, err := pipeline.NewProcessor(opts)
	if err != nil {
		return nil, "", nil, err
	}
	res, err := proc.Process(r.Context(), t)
	if err != nil {
		return nil, "", nil, err
	}
	return t, format, res, nil
}

// options applies the query overrides. Only built-in rule sets may be
// selected per request; rule files are a server setting.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	opts := s.cfg.Pipeline
	opts.Logger = observability.FromContext(r.Context())

	q := r.URL.Query()
	if p := q.Get("profile"); p != "" {
		if p != schema.AutoDetect && s.profiles.Get(p) == nil {
			return opts, &schema.UnknownProfileError{Name: p}
		}
		opts.Profile = p
	}
	if rules := q.Get("rules"); rules != "" {
		if placement.ByName(rules) == nil {
			return opts, badRequest("unknown rule set %q (built-in: %s)", rules, strings.Join(placement.BuiltinNames(), ", "))
		}
		opts.Rules = rules
	}
	if loc := q.Get("locale"); loc != "" {
		if loc != placement.LocaleID && loc != placement.LocaleEN {
			return opts, badRequest("unsupported locale %q", loc)
		}
		opts.Locale = loc
	}
	return opts, nil
}

// upload returns the request body, or the "file" part of a multipart form,
// and its table format.
func upload(r *http.Request) (io.ReadCloser, table.Format, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, "", err
			}
			return nil, "", badRequest("parse multipart form: %v", err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			return nil, "", badRequest("multipart form needs a %q part", "file")
		}
		format, err := table.FormatFromPath(hdr.Filename)
		if err != nil {
			f.Close()
			return nil, "", err
		}
		return f, format, nil
	}

	format, err := formatFromMediaType(mediaType)
	if err != nil {
		return nil, "", err
	}
	return r.Body, format, nil
}

func formatFromMediaType(mt string) (table.Format, error) {
	switch mt {
	case "", "text/csv", "text/plain", "application/csv":
		return table.FormatCSV, nil
	case "application/json":
		return table.FormatJSON, nil
	case table.FormatXLSX.ContentType():
		return table.FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: content type %q", table.ErrUnsupportedFormat, mt)
	}
}
