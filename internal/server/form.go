package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/jonathan/jobad-assistant/internal/generation"
	"github.com/jonathan/jobad-assistant/internal/ingestion"
	"github.com/jonathan/jobad-assistant/internal/rendering"
	"github.com/jonathan/jobad-assistant/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

const draftFileField = "draft_file"

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"displayTitle": rendering.DisplayTitle,
	}).ParseFS(templateFS, "templates/*.html")
}

type toneOption struct {
	Value   string
	Checked bool
}

// pageData feeds templates/index.html.
type pageData struct {
	Draft       types.Draft
	Tones       []toneOption
	Bullets     bool
	Models      []string
	Model       string
	Temperature string
	MaxTokens   int
	Bounds      OptionsResponse

	Warning string
	Error   string
	Notice  string

	Result   *generation.Result
	Shape    types.AdShape
	AdJSON   string
	FullText string
}

func (s *Server) newPageData(req generation.Request) *pageData {
	opts := s.options()
	selected := make(map[types.ToneTag]bool, len(req.Style.Tones))
	for _, t := range req.Style.Tones {
		selected[t] = true
	}
	tones := make([]toneOption, 0, len(types.ToneTags()))
	for _, t := range types.ToneTags() {
		tones = append(tones, toneOption{Value: string(t), Checked: selected[t]})
	}

	return &pageData{
		Draft:       req.Draft,
		Tones:       tones,
		Bullets:     req.Style.Bullets,
		Models:      opts.Models,
		Model:       s.generator.LLMConfig().ResolveModel(req.Params.Model),
		Temperature: strconv.FormatFloat(req.Params.Temperature, 'f', 1, 64),
		MaxTokens:   req.Params.MaxTokens,
		Bounds:      opts,
		Warning:     opts.Warning,
		Shape:       s.generator.Shape(),
	}
}

func (s *Server) defaultRequest() generation.Request {
	return generation.Request{
		Style:  types.StyleOptions{Tones: s.style.Tones, Bullets: s.style.Bullets},
		Params: s.params,
	}
}

// handleFormPage renders the empty form with the configured defaults.
func (s *Server) handleFormPage(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, http.StatusOK, s.newPageData(s.defaultRequest()))
}

// handleFormSubmit generates an ad from the posted form and renders the result below it.
func (s *Server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	req, err := s.readForm(r)
	data := s.newPageData(req)
	if err != nil {
		data.Error = UserMessage(err)
		s.renderPage(w, HTTPStatus(err), data)
		return
	}

	result, err := s.generator.Generate(r.Context(), req)
	if err != nil {
		if status := HTTPStatus(err); status >= http.StatusInternalServerError {
			s.logger.Error("form generation failed", "status", status, "error", err)
		}
		data.Error = UserMessage(err)
		s.renderPage(w, HTTPStatus(err), data)
		return
	}

	data.Result = result
	if result.Fallback() {
		data.Notice = NoticeFallback
	} else {
		data.Notice = NoticeSuccess
		adJSON, err := json.Marshal(result.Ad)
		if err != nil {
			s.failure(w, r, err)
			return
		}
		data.AdJSON = string(adJSON)
		data.FullText = result.Ad.FullText
	}
	s.renderPage(w, http.StatusOK, data)
}

// readForm builds a request from urlencoded or multipart form values.
// The returned request always carries the submitted values so the form can be redisplayed.
func (s *Server) readForm(r *http.Request) (generation.Request, error) {
	req := s.defaultRequest()

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(ingestion.MaxDocumentBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return req, &ErrValidation{Field: "form", Message: err.Error()}
	}

	req.Draft = types.Draft{
		Raw:              r.PostFormValue("raw"),
		Title:            r.PostFormValue("title"),
		Description:      r.PostFormValue("description"),
		Responsibilities: r.PostFormValue("responsibilities"),
		Qualifications:   r.PostFormValue("qualifications"),
		Education:        r.PostFormValue("education"),
		Benefits:         r.PostFormValue("benefits"),
		Location:         r.PostFormValue("location"),
		Contract:         r.PostFormValue("contract"),
	}
	req.Style = types.StyleOptions{
		Tones:   toneTags(r.PostForm["tones"]),
		Bullets: r.PostFormValue("bullets") != "",
	}
	if model := r.PostFormValue("model"); model != "" {
		req.Params.Model = model
	}
	if v := r.PostFormValue("temperature"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, &generation.ValidationError{Fields: []generation.FieldError{{Field: "temperature", Message: "must be a number"}}}
		}
		req.Params.Temperature = t
	}
	if v := r.PostFormValue("max_tokens"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, &generation.ValidationError{Fields: []generation.FieldError{{Field: "max_tokens", Message: "must be an integer"}}}
		}
		req.Params.MaxTokens = n
	}

	if r.MultipartForm != nil && len(r.MultipartForm.File[draftFileField]) > 0 {
		doc, err := readUpload(r)
		if err != nil {
			return req, err
		}
		req.Draft = req.Draft.Merge(ingestion.SplitDraft(doc.Text))
	}
	return req, nil
}

func readUpload(r *http.Request) (*ingestion.Document, error) {
	file, header, err := r.FormFile(draftFileField)
	if err != nil {
		return nil, &ErrValidation{Field: draftFileField, Message: err.Error()}
	}
	defer func() { _ = file.Close() }()

	format, err := ingestion.DetectFormat(header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(file, ingestion.MaxDocumentBytes+1))
	if err != nil {
		return nil, &ErrValidation{Field: draftFileField, Message: err.Error()}
	}
	if len(data) > ingestion.MaxDocumentBytes {
		return nil, &ErrValidation{Field: draftFileField, Message: "file too large"}
	}
	return ingestion.Parse(data, header.Filename, format)
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data *pageData) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		s.logger.Error("template execution failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		s.logger.Warn("page write failed", "error", err)
	}
}
