// Package api はfastrepのAPIサーバー実装を提供します。
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/fastrep/fastrep/config"
	"github.com/fastrep/fastrep/heatmap"
	"github.com/fastrep/fastrep/model"
	"github.com/fastrep/fastrep/report"
	"github.com/fastrep/fastrep/store"
	"github.com/fastrep/fastrep/summarize"
)

// 設定テーブルで使用するキー。
const (
	SettingDefaultTemplate  = "default_template"
	SettingAIInstructions   = "ai_instructions"
	SettingAISummaryEnabled = "ai_summary_enabled"
)

// Server はAPIサーバーの構造体です。
type Server struct {
	router     *http.ServeMux
	store      store.Store
	config     *config.Config
	summarizer summarize.Provider
}

// ErrorResponse はエラーレスポンスの構造体です。
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// writeJSONError はJSON形式でエラーレスポンスを返却します。
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp := ErrorResponse{
		Error: message,
		Code:  statusCode,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding error response: %v", err)
	}
}

// writeStoreError はストアのエラーをHTTPステータスに対応付けて返却します。
func writeStoreError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	switch {
	case errors.Is(err, model.ErrEntryNotFound):
		writeJSONError(w, "Entry not found", http.StatusNotFound)
	case errors.As(err, &verr):
		writeJSONError(w, verr.Error(), http.StatusBadRequest)
	default:
		log.Printf("Store error: %v", err)
		writeJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// NewServer は新しいAPIサーバーインスタンスを生成します。
// summarizerはnilでもよく、その場合要約機能は無効になります。
func NewServer(store store.Store, config *config.Config, summarizer summarize.Provider) *Server {
	s := &Server{
		router:     http.NewServeMux(),
		store:      store,
		config:     config,
		summarizer: summarizer,
	}
	s.routes()
	return s
}

// routes はAPIエンドポイントのルーティングを設定します。
func (s *Server) routes() {
	s.router.HandleFunc("GET /healthz", s.handleHealthCheck)

	// Dashboard
	s.router.HandleFunc("GET /{$}", s.handleDashboard)
	s.router.HandleFunc("GET /graph.svg", s.handleGetGraph)

	// Log entry endpoints
	s.router.HandleFunc("POST /api/v0/logs", s.handleCreateEntry)
	s.router.HandleFunc("GET /api/v0/logs", s.handleListEntries)
	s.router.HandleFunc("GET /api/v0/logs/{id}", s.handleGetEntry)
	s.router.HandleFunc("PUT /api/v0/logs/{id}", s.handleUpdateEntry)
	s.router.HandleFunc("DELETE /api/v0/logs/{id}", s.handleDeleteEntry)
	s.router.HandleFunc("POST /api/v0/clear", s.handleClearEntries)

	// Project endpoints
	s.router.HandleFunc("GET /api/v0/projects", s.handleListProjects)

	// Report endpoints
	s.router.HandleFunc("GET /api/v0/report/{mode}", s.handleGetReport)

	// Settings endpoints
	s.router.HandleFunc("GET /api/v0/settings", s.handleGetSettings)
	s.router.HandleFunc("PUT /api/v0/settings", s.handleUpdateSettings)
}

// ServeHTTP はServer構造体をhttp.Handlerとして実装します。
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.requestIDMiddleware(s.router).ServeHTTP(w, r)
}

// handleHealthCheck はヘルスチェックエンドポイントのハンドラーです。
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	resp := map[string]string{"status": "ok"}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// CreateEntryParams represents parameters for creating a log entry.
type CreateEntryParams struct {
	Project     string
	Description string
	Date        model.Date
}

// NewCreateEntryParams creates parameters for entry creation from HTTP request.
func NewCreateEntryParams(r *http.Request) (*CreateEntryParams, error) {
	var requestBody struct {
		Project     string `json:"project"`
		Description string `json:"description"`
		Date        string `json:"date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	if requestBody.Description == "" {
		return nil, fmt.Errorf("description is required")
	}

	if requestBody.Project == "" {
		requestBody.Project = model.DefaultProject
	}

	date := model.Today()
	if requestBody.Date != "" {
		var err error
		date, err = model.ParseDate(requestBody.Date)
		if err != nil {
			return nil, err
		}
	}

	return &CreateEntryParams{
		Project:     requestBody.Project,
		Description: requestBody.Description,
		Date:        date,
	}, nil
}

// handleCreateEntry はエントリ作成エンドポイントのハンドラーです。
func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewCreateEntryParams(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// 新しいエントリの作成
	entry, err := model.NewEntry(params.Project, params.Description, params.Date)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// エントリの保存
	if err := s.store.CreateEntry(r.Context(), entry); err != nil {
		writeStoreError(w, err)
		return
	}

	// 成功レスポンスの返却
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(entry); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// ListEntriesParams represents parameters for listing log entries.
type ListEntriesParams struct {
	From *model.Date
	To   *model.Date
}

// NewListEntriesParams creates parameters for entry listing from HTTP request.
func NewListEntriesParams(r *http.Request) (*ListEntriesParams, error) {
	params := &ListEntriesParams{}

	q := r.URL.Query()
	if v := q.Get("from"); v != "" {
		d, err := model.ParseDate(v)
		if err != nil {
			return nil, err
		}
		params.From = &d
	}
	if v := q.Get("to"); v != "" {
		d, err := model.ParseDate(v)
		if err != nil {
			return nil, err
		}
		params.To = &d
	}

	// 片側だけの指定は範囲の解釈が曖昧になるため拒否する
	if (params.From == nil) != (params.To == nil) {
		return nil, fmt.Errorf("from and to must be specified together")
	}

	return params, nil
}

// handleListEntries はエントリ一覧取得エンドポイントのハンドラーです。
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	params, err := NewListEntriesParams(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var entries []*model.Entry
	if params.From != nil {
		entries, err = s.store.ListEntries(r.Context(), *params.From, *params.To)
	} else {
		entries, err = s.store.ListAllEntries(r.Context())
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if entries == nil {
		entries = []*model.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// parseEntryID はパスパラメータからエントリIDを取得します。
func parseEntryID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid entry id: %q", r.PathValue("id"))
	}
	return id, nil
}

// handleGetEntry は特定のIDのエントリを取得するハンドラーです。
func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseEntryID(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := s.store.GetEntry(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entry); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// UpdateEntryParams represents parameters for updating a log entry.
type UpdateEntryParams struct {
	ID     int64
	Update *model.EntryUpdate
}

// NewUpdateEntryParams creates parameters for entry update from HTTP request.
func NewUpdateEntryParams(r *http.Request) (*UpdateEntryParams, error) {
	id, err := parseEntryID(r)
	if err != nil {
		return nil, err
	}

	var requestBody struct {
		Project     *string `json:"project"`
		Description *string `json:"description"`
		Date        *string `json:"date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	update := &model.EntryUpdate{
		Project:     requestBody.Project,
		Description: requestBody.Description,
	}
	if requestBody.Date != nil {
		d, err := model.ParseDate(*requestBody.Date)
		if err != nil {
			return nil, err
		}
		update.Date = &d
	}

	if update.IsEmpty() {
		return nil, fmt.Errorf("no fields to update")
	}

	return &UpdateEntryParams{ID: id, Update: update}, nil
}

// handleUpdateEntry は特定のIDのエントリを更新するハンドラーです。
func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewUpdateEntryParams(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// エントリの更新
	entry, err := s.store.UpdateEntry(r.Context(), params.ID, params.Update)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	// 更新後のエントリを返却
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entry); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// handleDeleteEntry は特定のIDのエントリを削除するハンドラーです。
func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseEntryID(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.store.DeleteEntry(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleClearEntries はすべてのエントリを削除するハンドラーです。
func (s *Server) handleClearEntries(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.ClearEntries(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := map[string]int{"deleted": count}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// handleListProjects はプロジェクト一覧取得エンドポイントのハンドラーです。
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if projects == nil {
		projects = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(projects); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// GetReportParams represents parameters for generating a report.
type GetReportParams struct {
	Mode      report.Mode
	Start     *model.Date
	End       *model.Date
	Template  string
	Format    string
	Summarize bool
}

// NewGetReportParams creates parameters for report generation from HTTP request.
func NewGetReportParams(r *http.Request) (*GetReportParams, error) {
	params := &GetReportParams{}

	q := r.URL.Query()
	if v := q.Get("start"); v != "" {
		d, err := model.ParseDate(v)
		if err != nil {
			return nil, err
		}
		params.Start = &d
	}
	if v := q.Get("end"); v != "" {
		d, err := model.ParseDate(v)
		if err != nil {
			return nil, err
		}
		params.End = &d
	}

	// 明示的な日付が両方ある場合のみパスのcustomを受け付ける
	if mode := r.PathValue("mode"); mode == string(report.ModeCustom) {
		if params.Start == nil || params.End == nil {
			return nil, fmt.Errorf("custom reports require start and end dates")
		}
		params.Mode = report.ModeCustom
	} else {
		parsed, err := report.ParseMode(mode)
		if err != nil {
			return nil, err
		}
		params.Mode = parsed
	}

	params.Template = q.Get("template")

	switch format := q.Get("format"); format {
	case "", "text":
		params.Format = "text"
	case "html":
		params.Format = "html"
	default:
		return nil, fmt.Errorf("unknown format: %q", format)
	}

	params.Summarize = q.Get("summarize") == "true"
	return params, nil
}

// ReportResponse は要約付きレポートのレスポンス構造体です。
type ReportResponse struct {
	Period  report.Period `json:"period"`
	Report  string        `json:"report"`
	Summary string        `json:"summary,omitempty"`
}

// handleGetReport はレポート生成エンドポイントのハンドラーです。
// format=htmlでダッシュボード用のHTML断片を、summarize=trueで
// AI要約付きのJSONを返却します。要約が失敗してもレポート本体は返します。
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewGetReportParams(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// 対象期間の算出
	period, err := report.ComputeRange(params.Mode, model.Today(), params.Start, params.End)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// 期間内のエントリを取得
	entries, err := s.store.ListEntries(r.Context(), period.Start, period.End)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	// HTML形式はダッシュボードへの埋め込み用
	if params.Format == "html" {
		html, err := report.RenderHTML(entries, period)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
		return
	}

	// テンプレート未指定時は設定値を利用
	templateName := params.Template
	if templateName == "" {
		templateName, err = s.store.GetSetting(r.Context(), SettingDefaultTemplate, s.config.DefaultTemplate)
		if err != nil {
			writeStoreError(w, err)
			return
		}
	}

	text, err := report.Render(entries, period, templateName)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if !params.Summarize {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, text)
		return
	}

	// AI要約の実行。失敗時はレポートのみ返却する
	resp := ReportResponse{Period: period, Report: text}
	enabled, err := s.store.GetSetting(r.Context(), SettingAISummaryEnabled, "true")
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if enabled != "true" {
		log.Printf("Summarization requested but disabled in settings")
	} else if s.summarizer == nil {
		log.Printf("Summarization requested but no provider is configured")
	} else {
		instructions, err := s.store.GetSetting(r.Context(), SettingAIInstructions, s.config.AI.Instructions)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		summary, err := s.summarizer.Summarize(r.Context(), text, instructions)
		if err != nil {
			log.Printf("Summarization failed: %v", err)
		} else {
			resp.Summary = summary
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// handleGetSettings は設定取得エンドポイントのハンドラーです。
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	template, err := s.store.GetSetting(r.Context(), SettingDefaultTemplate, s.config.DefaultTemplate)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	instructions, err := s.store.GetSetting(r.Context(), SettingAIInstructions, s.config.AI.Instructions)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	enabled, err := s.store.GetSetting(r.Context(), SettingAISummaryEnabled, "true")
	if err != nil {
		writeStoreError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := map[string]string{
		SettingDefaultTemplate:  template,
		SettingAIInstructions:   instructions,
		SettingAISummaryEnabled: enabled,
		// 読み取り専用: ローカル要約ツールの存在確認
		"local_tool_available": strconv.FormatBool(summarize.LocalToolAvailable(s.config.AI.LocalToolPath)),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// UpdateSettingsParams represents parameters for updating settings.
type UpdateSettingsParams struct {
	DefaultTemplate  *string
	AIInstructions   *string
	AISummaryEnabled *bool
}

// NewUpdateSettingsParams creates parameters for settings update from HTTP request.
func NewUpdateSettingsParams(r *http.Request) (*UpdateSettingsParams, error) {
	var requestBody struct {
		DefaultTemplate  *string `json:"default_template"`
		AIInstructions   *string `json:"ai_instructions"`
		AISummaryEnabled *bool   `json:"ai_summary_enabled"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	if requestBody.DefaultTemplate == nil && requestBody.AIInstructions == nil && requestBody.AISummaryEnabled == nil {
		return nil, fmt.Errorf("no settings to update")
	}

	// テンプレート名は保存前に検証する
	if requestBody.DefaultTemplate != nil {
		if _, err := report.LookupTemplate(*requestBody.DefaultTemplate); err != nil {
			return nil, err
		}
	}

	return &UpdateSettingsParams{
		DefaultTemplate:  requestBody.DefaultTemplate,
		AIInstructions:   requestBody.AIInstructions,
		AISummaryEnabled: requestBody.AISummaryEnabled,
	}, nil
}

// handleUpdateSettings は設定更新エンドポイントのハンドラーです。
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	params, err := NewUpdateSettingsParams(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if params.DefaultTemplate != nil {
		if err := s.store.SetSetting(r.Context(), SettingDefaultTemplate, *params.DefaultTemplate); err != nil {
			writeStoreError(w, err)
			return
		}
	}
	if params.AIInstructions != nil {
		if err := s.store.SetSetting(r.Context(), SettingAIInstructions, *params.AIInstructions); err != nil {
			writeStoreError(w, err)
			return
		}
	}
	if params.AISummaryEnabled != nil {
		if err := s.store.SetSetting(r.Context(), SettingAISummaryEnabled, strconv.FormatBool(*params.AISummaryEnabled)); err != nil {
			writeStoreError(w, err)
			return
		}
	}

	s.handleGetSettings(w, r)
}

// GetGraphParams represents parameters for the activity heatmap.
type GetGraphParams struct {
	From model.Date
	To   model.Date
}

// NewGetGraphParams creates parameters for graph generation from HTTP request.
func NewGetGraphParams(r *http.Request) (*GetGraphParams, error) {
	// 既定では直近1年分を表示する
	to := model.Today()
	from := to.AddDays(-364)

	q := r.URL.Query()
	if v := q.Get("from"); v != "" {
		d, err := model.ParseDate(v)
		if err != nil {
			return nil, err
		}
		from = d
	}
	if v := q.Get("to"); v != "" {
		d, err := model.ParseDate(v)
		if err != nil {
			return nil, err
		}
		to = d
	}

	if from.After(to) {
		return nil, fmt.Errorf("from must not be after to")
	}

	return &GetGraphParams{From: from, To: to}, nil
}

// handleGetGraph は記録状況のヒートマップグラフを生成・返却するハンドラーです。
func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewGetGraphParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// エントリの取得と日付ごとの集計
	entries, err := s.store.ListEntries(r.Context(), params.From, params.To)
	if err != nil {
		log.Printf("Error retrieving entries: %v", err)
		http.Error(w, "Failed to retrieve entries", http.StatusInternalServerError)
		return
	}

	dateMap := make(map[string]int)
	for _, e := range entries {
		dateMap[e.Date.String()]++
	}

	// ヒートマップ用データの作成（範囲内のすべての日を含む）
	var cells []heatmap.Cell
	for d := params.From; !d.After(params.To); d = d.AddDays(1) {
		cells = append(cells, heatmap.Cell{
			Date:  time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
			Count: dateMap[d.String()],
		})
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	fmt.Fprint(w, heatmap.GenerateSVG(cells, nil))
}

// Run はサーバーを指定されたアドレスで起動します。
func (s *Server) Run(addr string) error {
	log.Printf("Server starting on %s", addr)
	return http.ListenAndServe(addr, s)
}
