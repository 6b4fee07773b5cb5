package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/buttonhalo/pkg/buildinfo"
	"github.com/matzehuels/buttonhalo/pkg/errors"
	"github.com/matzehuels/buttonhalo/pkg/observability"
	"github.com/matzehuels/buttonhalo/pkg/pipeline"
	"github.com/matzehuels/buttonhalo/pkg/render/sink"
	"github.com/matzehuels/buttonhalo/pkg/scenario"
)

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

// errorResponse is the body of every error answer.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	scn, err := decodeScenario(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := layoutOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	scene, _, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), scn, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := sink.RenderJSON(scene, sink.WithJSONRounds())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("X-Cache", cacheHeader(hit))
	writeBytes(w, http.StatusOK, pipeline.ContentTypes[pipeline.FormatJSON], data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	scn, err := decodeScenario(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := layoutOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}
	if err := renderOptions(r, &opts); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), scn, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("X-Cache", cacheHeader(result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit))
	w.Header().Set("X-Scenario-Hash", result.ScenarioHash)
	writeBytes(w, http.StatusOK, pipeline.ContentTypes[format], result.Artifacts[format])
}

// decodeScenario reads the request body in the format named by its
// Content-Type. JSON is the default.
func decodeScenario(r *http.Request) (*scenario.Scenario, error) {
	format := scenario.FormatJSON
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "content type")
		}
		switch mt {
		case "application/json":
		case "application/yaml", "application/x-yaml", "text/yaml":
			format = scenario.FormatYAML
		case "application/toml":
			format = scenario.FormatTOML
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported content type %q", mt)
		}
	}
	return scenario.Decode(http.MaxBytesReader(nil, r.Body, maxBodyBytes), format)
}

func layoutOptions(r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	q := r.URL.Query()
	var err error
	if opts.LegacyWrap, err = boolParam(q.Get("legacy_wrap")); err != nil {
		return opts, err
	}
	if opts.Refresh, err = boolParam(q.Get("refresh")); err != nil {
		return opts, err
	}
	return opts, nil
}

func renderOptions(r *http.Request, opts *pipeline.Options) error {
	q := r.URL.Query()
	var err error
	if opts.Rings, err = boolParam(q.Get("rings")); err != nil {
		return err
	}
	if opts.Labels, err = boolParam(q.Get("labels")); err != nil {
		return err
	}
	if opts.Crop, err = boolParam(q.Get("crop")); err != nil {
		return err
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 || scale > 8 {
			return errors.New(errors.ErrCodeInvalidInput, "scale %q must be a number in (0, 8]", v)
		}
		opts.Scale = scale
	}
	return nil
}

func boolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%q is not a boolean", v)
	}
	return b, nil
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// writeError maps coded client errors to 400, unsupported features to 501
// and everything else to 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch {
	case code.Client():
		status = http.StatusBadRequest
	case code == errors.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}

	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		observability.HTTP().OnError(r.Context(), r.Method, route, err)
		s.logger.Error("request failed", "id", RequestIDFromContext(r.Context()), "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Code: string(code), Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeBytes(w, status, "application/json", append(data, '\n'))
}

func writeBytes(w http.ResponseWriter, status int, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
