package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rdpishibashi/revision-management/pkg/cache"
	apperrors "github.com/rdpishibashi/revision-management/pkg/errors"
	"github.com/rdpishibashi/revision-management/pkg/graph"
	"github.com/rdpishibashi/revision-management/pkg/pipeline"
)

const indexPage = `<!DOCTYPE html>
<html lang="ja">
<head>
  <meta charset="UTF-8">
  <title>図番家系図</title>
  <style>
    body { font-family: sans-serif; max-width: 640px; margin: 4rem auto; padding: 0 1rem; }
    h1 { font-size: 1.4rem; }
    form { margin-top: 2rem; padding: 2rem; border: 2px dashed #ccc; border-radius: 8px; }
    label { display: block; margin-bottom: 1rem; }
    input[type="text"] { padding: 0.3rem; }
    button { padding: 0.5rem 1.5rem; font-size: 1rem; cursor: pointer; }
  </style>
</head>
<body>
  <h1>図番家系図</h1>
  <p>台帳ワークブック (.xlsx) をアップロードすると家系図を表示します。</p>
  <form action="/upload" method="post" enctype="multipart/form-data">
    <label>ワークブック: <input type="file" name="workbook" accept=".xlsx" required></label>
    <label>シート名 (省略時は Sheet1): <input type="text" name="sheet"></label>
    <button type="submit">アップロード</button>
  </form>
</body>
</html>
`

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, indexPage)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, _ = io.WriteString(w, "ok")
}

// handleUpload runs the uploaded workbook through the pipeline and
// stores the resulting view under a fresh ID.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.cfg.Server.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, _, err := r.FormFile("workbook")
	if err != nil {
		s.error(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "missing workbook upload"))
		return
	}
	defer file.Close()

	workbook, err := io.ReadAll(file)
	if err != nil {
		s.error(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read upload"))
		return
	}

	res, err := s.runner.Execute(r.Context(), workbook, pipeline.Options{
		Sheet:    r.FormValue("sheet"),
		Formats:  []string{pipeline.FormatJSON, pipeline.FormatHTML},
		Title:    s.cfg.Render.Title,
		FontName: s.cfg.Render.FontName,
		TTL:      s.cfg.Cache.TTL(),
	})
	if err != nil {
		s.error(w, err)
		return
	}

	id := uuid.NewString()
	ttl := s.cfg.Cache.TTL()
	ctx := r.Context()
	if err := s.cache.Set(ctx, viewKey(id, "graph"), res.Artifacts[pipeline.FormatJSON], ttl); err != nil {
		s.error(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "store view"))
		return
	}
	if err := s.cache.Set(ctx, viewKey(id, "html"), res.Artifacts[pipeline.FormatHTML], ttl); err != nil {
		s.error(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "store view"))
		return
	}

	s.logger.Infof("Upload %s: %d nodes, %d edges", id, len(res.Graph.Nodes), len(res.Graph.Edges))
	http.Redirect(w, r, "/view/"+id, http.StatusSeeOther)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data, hit, err := s.cache.Get(r.Context(), viewKey(id, "html"))
	if err != nil || !hit {
		s.error(w, apperrors.New(apperrors.ErrCodeNotFound, "view %s not found or expired", id))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data, hit, err := s.cache.Get(r.Context(), viewKey(id, "graph"))
	if err != nil || !hit {
		s.error(w, apperrors.New(apperrors.ErrCodeNotFound, "view %s not found or expired", id))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(data)
}

// handleViewPDF renders the stored graph as PDF on demand.
func (s *Server) handleViewPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data, hit, err := s.cache.Get(r.Context(), viewKey(id, "graph"))
	if err != nil || !hit {
		s.error(w, apperrors.New(apperrors.ErrCodeNotFound, "view %s not found or expired", id))
		return
	}
	g, err := graph.UnmarshalGraph(data)
	if err != nil {
		s.error(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "decode stored graph"))
		return
	}

	artifacts, err := s.runner.RenderGraph(r.Context(), g, pipeline.Options{
		Formats:  []string{pipeline.FormatPDF},
		FontName: s.cfg.Render.FontName,
	})
	if err != nil {
		s.error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".pdf"))
	_, _ = w.Write(artifacts[pipeline.FormatPDF])
}

// error writes a coded error with the matching HTTP status.
func (s *Server) error(w http.ResponseWriter, err error) {
	status := statusFor(apperrors.GetCode(err))
	if status >= http.StatusInternalServerError {
		s.logger.Errorf("Request failed: %v", err)
	} else {
		s.logger.Debugf("Request rejected: %v", err)
	}
	http.Error(w, apperrors.UserMessage(err), status)
}

func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidWorkbook,
		apperrors.ErrCodeMissingColumns, apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeSheetNotFound:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeRenderFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func viewKey(id, kind string) string {
	return cache.Key("view", id, kind)
}
