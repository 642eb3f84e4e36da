package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/modeltab/internal/parser"
	"github.com/dgallion1/modeltab/internal/pipeline"
	"github.com/dgallion1/modeltab/internal/writer"
)

type convertResponse struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Skipped []string   `json:"skipped,omitempty"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	format := strings.ToLower(r.FormValue("format"))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		jsonError(w, fmt.Sprintf("unknown format %q (want csv or json)", format), http.StatusBadRequest)
		return
	}

	opts, err := writer.ParseOptions(
		formOr(r, "delimiter", s.cfg.Delimiter),
		formOr(r, "quoting", s.cfg.Quoting),
		formOr(r, "encoding", s.cfg.Encoding),
	)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	var sources []pipeline.Source
	var skipped []string
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !parser.IsSupportedExtension(filename) {
			s.log.Warn("skipping unsupported upload", "file", filename)
			skipped = append(skipped, filename)
			continue
		}

		f, err := fh.Open()
		if err != nil {
			jsonError(w, "failed to open "+filename, http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil {
			jsonError(w, "failed to read "+filename, http.StatusBadRequest)
			return
		}
		if int64(len(data)) > s.cfg.MaxUploadBytes {
			jsonError(w, fmt.Sprintf("%s exceeds max size (%d bytes)", filename, s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		sources = append(sources, pipeline.BytesSource(filename, data))
	}

	log := s.log.With("files", len(sources))
	proc := pipeline.NewProcessor(s.tables, s.cfg.ParserOptions(), s.cfg.ParamColumn, log, s.stats)
	agg := pipeline.NewAggregator(proc, s.cfg.ParamColumn, s.cfg.Workers, log)

	corpus, err := agg.Aggregate(r.Context(), sources)
	if errors.Is(err, pipeline.ErrNoInput) {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		jsonError(w, "convert: "+err.Error(), http.StatusInternalServerError)
		return
	}
	grid := corpus.Grid()

	if format == "json" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(convertResponse{Columns: grid.Columns, Rows: grid.Rows, Skipped: skipped})
		return
	}

	var buf bytes.Buffer
	if err := writer.Encode(&buf, grid, opts); err != nil {
		jsonError(w, "encode: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset="+charset(opts.Encoding))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(s.cfg.Output)))
	if len(skipped) > 0 {
		w.Header().Set("X-Skipped-Files", strings.Join(skipped, ","))
	}
	w.Write(buf.Bytes())
}

func formOr(r *http.Request, key, fallback string) string {
	if v := r.FormValue(key); v != "" {
		return v
	}
	return fallback
}

// charset names the Content-Type charset for an output encoding.
func charset(enc string) string {
	if enc == writer.EncodingUTF8BOM {
		return writer.EncodingUTF8
	}
	return enc
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
