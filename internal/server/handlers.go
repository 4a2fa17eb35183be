package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/pseudoloc/pkg/buildinfo"
	perrors "github.com/matzehuels/pseudoloc/pkg/errors"
	"github.com/matzehuels/pseudoloc/pkg/observability"
	"github.com/matzehuels/pseudoloc/pkg/pipeline"
	"github.com/matzehuels/pseudoloc/pkg/resource"
	"github.com/matzehuels/pseudoloc/pkg/transform"
)

// Response headers set on localized documents.
const (
	HeaderEntries = "X-Pseudoloc-Entries"
	HeaderCache   = "X-Pseudoloc-Cache"
)

var contentTypes = map[resource.Format]string{
	resource.ResX: "application/xml; charset=utf-8",
	resource.JSON: "application/json; charset=utf-8",
	resource.YAML: "application/yaml; charset=utf-8",
	resource.TOML: "application/toml; charset=utf-8",
}

// fail reports err to the HTTP hooks and writes the error response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	route := chi.RouteContext(r.Context()).RoutePattern()
	observability.HTTP().OnError(r.Context(), r.Method, route, err)
	if statusFor(err) >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "route", route, "error", err)
	}
	writeError(w, err)
}

// options builds pipeline options for the named transforms. Omitted names
// (nil) fall back to the server's list and then the defaults; an explicitly
// empty list runs no transforms.
func (s *Server) options(names []string) (pipeline.Options, error) {
	ids, err := transform.ParseIDs(names)
	if err != nil {
		return pipeline.Options{}, err
	}
	switch {
	case names == nil:
		ids = slices.Clone(s.opts.Transforms)
	case ids == nil:
		ids = []transform.ID{}
	}
	opts := pipeline.Options{Transforms: ids, Logger: s.logger}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

type transformInfo struct {
	ID      transform.ID `json:"id"`
	Flag    string       `json:"flag"`
	Name    string       `json:"name"`
	Summary string       `json:"summary"`
	Default bool         `json:"default"`
}

type transformsResponse struct {
	Transforms []transformInfo `json:"transforms"`
}

func (s *Server) handleTransforms(w http.ResponseWriter, r *http.Request) {
	defaults := s.opts.Transforms
	if len(defaults) == 0 {
		defaults = transform.Defaults()
	}
	resp := transformsResponse{}
	for _, info := range transform.All() {
		resp.Transforms = append(resp.Transforms, transformInfo{
			ID:      info.ID,
			Flag:    info.Flag,
			Name:    info.Name,
			Summary: info.Summary,
			Default: slices.Contains(defaults, info.ID),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// transformRequest transforms Value, or each of Values when set.
type transformRequest struct {
	Value      string   `json:"value"`
	Values     []string `json:"values,omitempty"`
	Transforms []string `json:"transforms,omitempty"`
}

type transformResponse struct {
	Value      string         `json:"value"`
	Values     []string       `json:"values,omitempty"`
	Transforms []transform.ID `json:"transforms"`
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	var req transformRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if !errors.As(err, &tooLarge) {
			err = perrors.Wrap(perrors.ErrCodeInvalidInput, err, "decode request body")
		}
		s.fail(w, r, err)
		return
	}

	opts, err := s.options(req.Transforms)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := transformResponse{Value: opts.Apply(req.Value), Transforms: opts.Transforms}
	if req.Values != nil {
		resp.Values = make([]string, len(req.Values))
		for i, v := range req.Values {
			resp.Values[i] = opts.Apply(v)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDocument localizes the raw request body. Transforms come from the
// repeatable, comma-separated "transforms" query parameter, where an empty
// "transforms=" runs none; "refresh=true" bypasses cached results.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	format, err := resource.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	query := r.URL.Query()
	opts, err := s.options(query["transforms"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if v := query.Get("refresh"); v != "" {
		refresh, err := strconv.ParseBool(v)
		if err != nil {
			s.fail(w, r, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "refresh"))
			return
		}
		opts.Refresh = refresh
	}

	src, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.runner.LocalizeDocument(r.Context(), src, format, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	cacheState := "miss"
	if res.CacheHit {
		cacheState = "hit"
	}
	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set(HeaderEntries, strconv.Itoa(res.Entries))
	h.Set(HeaderCache, cacheState)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}
