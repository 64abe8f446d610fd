package web

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/pm3import/internal/core"
	"github.com/JonMunkholm/pm3import/internal/history"
	"github.com/JonMunkholm/pm3import/internal/kitexport"
	"github.com/JonMunkholm/pm3import/internal/savefile"
	"github.com/JonMunkholm/pm3import/internal/schema"
)

type healthResponse struct {
	Status  string             `json:"status"`
	Imports core.LimiterStatus `json:"imports"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, healthResponse{Status: "ok", Imports: s.service.LimiterStatus()})
}

type columnInfo struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Required bool     `json:"required,omitempty"`
	Values   []string `json:"values,omitempty"`
}

type tableInfo struct {
	Key     string       `json:"key"`
	Label   string       `json:"label"`
	Columns []columnInfo `json:"columns"`
}

// handleListTables describes the columns each input table accepts.
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	tables := []schema.Table{schema.Clubs, schema.Players}
	out := make([]tableInfo, 0, len(tables))
	for _, t := range tables {
		info := tableInfo{Key: t.Key, Label: t.Label, Columns: make([]columnInfo, len(t.Fields))}
		for i, f := range t.Fields {
			info.Columns[i] = columnInfo{
				Name:     f.Name,
				Type:     f.Type.String(),
				Required: f.Required,
				Values:   f.EnumValues,
			}
		}
		out = append(out, info)
	}
	writeJSON(w, out)
}

// handleDownloadTemplate returns a CSV template with headers for a table.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	tableKey := chi.URLParam(r, "tableKey")
	def, ok := schema.Tables[tableKey]
	if !ok {
		writeError(w, http.StatusNotFound, "table not found")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_template.csv"`, tableKey))

	csvWriter := csv.NewWriter(w)
	csvWriter.Write(def.Headers())
	csvWriter.Flush()
}

type runsResponse struct {
	Runs []history.Run `json:"runs"`
}

// handleListRuns lists recent import runs, newest first.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", history.DefaultListLimit)
	runs, err := s.service.History(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	if runs == nil {
		runs = []history.Run{}
	}
	writeJSON(w, runsResponse{Runs: runs})
}

// handleExportKits dumps the kit colours of a target's club table.
func (s *Server) handleExportKits(w http.ResponseWriter, r *http.Request) {
	target, err := parseTarget(r)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	format, err := kitexport.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	clubs, err := s.service.Kits("", target)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	var buf bytes.Buffer
	if err := kitexport.Write(&buf, clubs, format); err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if format == kitexport.FormatCSV {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="kits_%s.csv"`, target))
	}
	buf.WriteTo(w)
}

type backupsResponse struct {
	Backups []string `json:"backups"`
}

func (s *Server) handleListBackups(w http.ResponseWriter, r *http.Request) {
	backups, err := s.service.Backups("")
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	if backups == nil {
		backups = []string{}
	}
	writeJSON(w, backupsResponse{Backups: backups})
}

// handleRestore puts a listed backup back into place. Only directories
// reported by /api/backups are accepted.
func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	target, err := parseTarget(r)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	backup := strings.TrimSpace(r.FormValue("backup"))
	if backup == "" {
		s.respondError(w, r, fmt.Errorf("%w: backup is required", errBadRequest), 0)
		return
	}

	backups, err := s.service.Backups("")
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	if !slices.Contains(backups, backup) {
		s.respondError(w, r, fmt.Errorf("%w: %s", savefile.ErrNoBackup, backup), 0)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	if err := s.service.Restore(ctx, "", target, backup); err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, map[string]string{"restored": backup, "target": target.String()})
}
