package api

import (
	_ "embed"
	"html/template"
	"log"
	"net/http"

	"github.com/fastrep/fastrep/model"
	"github.com/fastrep/fastrep/report"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// dashboardData はダッシュボードのテンプレートに渡すデータです。
type dashboardData struct {
	Entries   []*model.Entry
	Projects  []string
	Templates []string
	Today     string
}

// 最近のエントリ表示件数。
const recentEntryLimit = 20

// handleDashboard はWebダッシュボードを返却するハンドラーです。
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.ListAllEntries(r.Context())
	if err != nil {
		log.Printf("Error retrieving entries: %v", err)
		http.Error(w, "Failed to retrieve entries", http.StatusInternalServerError)
		return
	}
	if len(entries) > recentEntryLimit {
		entries = entries[:recentEntryLimit]
	}

	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		log.Printf("Error retrieving projects: %v", err)
		http.Error(w, "Failed to retrieve projects", http.StatusInternalServerError)
		return
	}

	data := dashboardData{
		Entries:   entries,
		Projects:  projects,
		Templates: report.TemplateNames(),
		Today:     model.Today().String(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		log.Printf("Error rendering dashboard: %v", err)
	}
}
