package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/matzehuels/gmlexport/pkg/buildinfo"
	"github.com/matzehuels/gmlexport/pkg/cache"
	errs "github.com/matzehuels/gmlexport/pkg/errors"
	"github.com/matzehuels/gmlexport/pkg/gml"
	gmlio "github.com/matzehuels/gmlexport/pkg/io"
)

type errorResponse struct {
	Code  errs.Code `json:"code"`
	Error string    `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleParameters(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(gml.Parameters()))
	for _, p := range gml.Parameters() {
		names = append(names, p.String())
	}
	writeJSON(w, http.StatusOK, map[string][]string{"parameters": names})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	opts, err := s.exportOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format, err := bodyFormat(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes))
	if err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "read body"))
		return
	}

	key := documentKey(format, opts, body)
	if doc, hit, err := s.cache.Get(r.Context(), key); err != nil {
		s.logger.Warn("cache read failed", "id", RequestID(r.Context()), "err", err)
	} else if hit {
		writeDocument(w, "hit", doc)
		return
	}

	g, err := gmlio.ReadBytes(body, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var doc bytes.Buffer
	if err := gmlio.WriteGML(r.Context(), g, &doc, opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.cache.Set(r.Context(), key, doc.Bytes(), s.cfg.Server.Cache.TTL.Duration); err != nil {
		s.logger.Warn("cache write failed", "id", RequestID(r.Context()), "err", err)
	}
	writeDocument(w, "miss", doc.Bytes())
}

// documentKey identifies the document produced for body under opts by this
// build. File cache entries outlive the process, so the version is part of
// the key.
func documentKey(format errs.GraphFormat, opts gmlio.Options, body []byte) string {
	names := make([]string, len(opts.Parameters))
	for i, p := range opts.Parameters {
		names[i] = p.String()
	}
	return cache.Key("gml", buildinfo.Version, format, opts.Creator, names, cache.Hash(body))
}

func writeDocument(w http.ResponseWriter, cacheStatus string, doc []byte) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// exportOptions starts from the configured options; param query values
// replace the configured switches and creator replaces the Creator header.
func (s *Server) exportOptions(r *http.Request) (gmlio.Options, error) {
	opts, err := s.cfg.ExportOptions()
	if err != nil {
		return gmlio.Options{}, err
	}

	q := r.URL.Query()
	if names, ok := q["param"]; ok {
		opts.Parameters = nil
		for _, raw := range names {
			for _, name := range strings.Split(raw, ",") {
				if strings.TrimSpace(name) == "" {
					continue
				}
				p, err := gml.ParseParameter(name)
				if err != nil {
					return gmlio.Options{}, err
				}
				opts.Parameters = append(opts.Parameters, p)
			}
		}
	}
	if creator := q.Get("creator"); creator != "" {
		if err := errs.ValidateCreator(creator); err != nil {
			return gmlio.Options{}, err
		}
		opts.Creator = creator
	}
	return opts, nil
}

// bodyFormat picks the decoder from the Content-Type header. A missing
// header means JSON.
func bodyFormat(r *http.Request) (errs.GraphFormat, error) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return errs.FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInvalidFormat, err, "content type %q", ct)
	}
	switch mt {
	case "application/json":
		return errs.FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml":
		return errs.FormatYAML, nil
	default:
		return "", errs.New(errs.ErrCodeInvalidFormat, "unsupported content type %q", mt)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("export failed", "id", RequestID(r.Context()), "err", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Error: err.Error()})
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch errs.GetCode(err) {
	case errs.ErrCodeAttributeConflict,
		errs.ErrCodeUnsupportedAttribute,
		errs.ErrCodeDuplicateID,
		errs.ErrCodeInvalidID,
		errs.ErrCodeUnknownVertex:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeInvalidInput,
		errs.ErrCodeInvalidFormat,
		errs.ErrCodeInvalidParameter:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
