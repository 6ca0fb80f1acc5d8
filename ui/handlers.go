package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"camcheck/internal/engine"
	"camcheck/internal/errors"
	"camcheck/internal/report"
)

// validateResponse is the JSON body returned by POST /api/validate
type validateResponse struct {
	SessionID     string          `json:"session_id"`
	Filename      string          `json:"filename"`
	ValidatorType string          `json:"validator_type"`
	Summary       engine.Summary  `json:"summary"`
	Results       []engine.Result `json:"results"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": a.sessions.Len(),
	})
}

// handleListRules returns the rule catalog for a validator type
func (a *App) handleListRules(w http.ResponseWriter, r *http.Request) {
	vt := engine.ValidatorType(strings.ToUpper(chi.URLParam(r, "validator_type")))

	infos, err := engine.ListRules(vt)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"validator_type": vt,
		"rules":          infos,
	})
}

// handleValidate accepts a multipart upload, runs the requested
// catalog against it, and opens a session holding the results
func (a *App) handleValidate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	maxBytes := a.config.Uploads.MaxSizeMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		a.writeError(w, errors.InvalidInput("could not parse upload: "+err.Error()))
		return
	}

	vt := engine.ValidatorType(strings.ToUpper(r.FormValue("validator_type")))
	if _, err := engine.CatalogFor(vt); err != nil {
		a.writeError(w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		a.writeError(w, errors.InvalidInput("missing file field"))
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		a.writeError(w, errors.InvalidInput("only .xlsx workbooks are supported"))
		return
	}

	uploadPath, err := a.saveUpload(file, header.Filename)
	if err != nil {
		a.writeError(w, err)
		return
	}

	wb, err := a.loader.LoadFile(uploadPath)
	if err != nil {
		os.Remove(uploadPath)
		a.writeError(w, err)
		return
	}

	results, err := engine.Validate(wb, vt)
	if err != nil {
		os.Remove(uploadPath)
		a.writeError(w, err)
		return
	}

	sess := a.sessions.Create(header.Filename, uploadPath, vt, results)
	summary := engine.Summarize(results)

	if a.runs != nil {
		if _, err := a.runs.SaveRun(r.Context(), header.Filename, vt, summary); err != nil {
			log.Printf("[App] failed to record run: %v", err)
		}
	}

	log.Printf("[App] validated %s (%s) in %.2fms: %d passed, %d failed",
		header.Filename, vt, float64(time.Since(start).Nanoseconds())/1e6, summary.Passed, summary.Failed)

	a.writeJSON(w, http.StatusOK, validateResponse{
		SessionID:     sess.ID,
		Filename:      sess.Filename,
		ValidatorType: string(vt),
		Summary:       summary,
		Results:       results,
	})
}

// handleExportCSV streams the session results as a CSV report
func (a *App) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.sessionFromForm(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", attachment(sess.Filename, "_report.csv"))
	if err := report.WriteCSV(w, sess.Results); err != nil {
		log.Printf("[App] csv export failed: %v", err)
	}
}

// handleExportExcel streams the session results as a styled workbook
func (a *App) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.sessionFromForm(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", attachment(sess.Filename, "_report.xlsx"))
	if err := report.WriteExcel(w, sess.Results); err != nil {
		log.Printf("[App] excel export failed: %v", err)
	}
}

// handleSaveAnnotated writes a copy of the uploaded workbook with
// failing cells highlighted and commented, then streams it back
func (a *App) handleSaveAnnotated(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.sessionFromForm(w, r)
	if !ok {
		return
	}

	plan := engine.PlanAnnotations(sess.Results)
	outputPath := sess.UploadPath + ".annotated.xlsx"
	if err := a.annotator.Annotate(sess.UploadPath, outputPath, plan); err != nil {
		a.writeError(w, err)
		return
	}
	if err := a.sessions.SetAnnotatedPath(sess.ID, outputPath); err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", attachment(sess.Filename, "_annotated.xlsx"))
	http.ServeFile(w, r, outputPath)
}

// handleDeleteSession closes a session and removes its files
func (a *App) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "session_id")
	if err := a.sessions.Delete(id); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// handleHistory returns recent validation runs from the database
func (a *App) handleHistory(w http.ResponseWriter, r *http.Request) {
	runs, err := a.runs.ListRuns(r.Context(), 50)
	if err != nil {
		a.writeError(w, errors.DatabaseError("failed to list runs: "+err.Error()))
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"runs": runs})
}

func (a *App) sessionFromForm(w http.ResponseWriter, r *http.Request) (*sessionHandle, bool) {
	if err := r.ParseForm(); err != nil {
		a.writeError(w, errors.InvalidInput("could not parse form"))
		return nil, false
	}
	id := r.FormValue("session_id")
	if id == "" {
		a.writeError(w, errors.InvalidInput("session_id is required"))
		return nil, false
	}
	sess, err := a.sessions.Get(id)
	if err != nil {
		a.writeError(w, err)
		return nil, false
	}
	return &sessionHandle{
		ID:         sess.ID,
		Filename:   sess.Filename,
		UploadPath: sess.UploadPath,
		Results:    sess.Results,
	}, true
}

// sessionHandle is a copy of the session fields handlers need, so
// export handlers never hold a pointer into the store
type sessionHandle struct {
	ID         string
	Filename   string
	UploadPath string
	Results    []engine.Result
}

func (a *App) saveUpload(src io.Reader, filename string) (string, error) {
	dst, err := os.CreateTemp(a.config.Uploads.Dir, "camcheck-*-"+filepath.Base(filename))
	if err != nil {
		return "", errors.WorkbookError("failed to create upload file", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", errors.WorkbookError("failed to store upload", err)
	}
	return dst.Name(), nil
}

func (a *App) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[App] failed to encode response: %v", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeInvalidInput, errors.CodeConfigInvalid:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeWorkbookError:
		status = http.StatusUnprocessableEntity
	}

	log.Printf("[App] request failed (%s): %v", code, err)
	a.writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  code,
	})
}

func attachment(uploadName, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(uploadName), filepath.Ext(uploadName))
	return fmt.Sprintf("attachment; filename=%q", base+suffix)
}
