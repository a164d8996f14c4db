package server

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/bobmcallan/portdash/internal/models"
	"github.com/bobmcallan/portdash/internal/services/dashboard"
	"github.com/bobmcallan/portdash/internal/storage"
	"github.com/bobmcallan/portdash/internal/view"
)

// eventRequest is the JSON form of an event for scripted clients.
type eventRequest struct {
	Region string            `json:"region"`
	Target string            `json:"target"`
	Tag    string            `json:"tag"`
	Input  map[string]string `json:"input"`
}

// handlePage handles GET / with the current page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	s.writePage(w, http.StatusOK)
}

// handleEvent handles POST /events. HTML forms post region and target; a
// target is only ever submitted by the clicked button, so a form post with
// a target is a button click.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var ev models.Event
	jsonClient := isJSONRequest(r)
	if jsonClient {
		var req eventRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		ev = models.Event{Region: req.Region, Target: req.Target, Tag: req.Tag, Input: req.Input}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		if err := r.ParseForm(); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid form: "+err.Error())
			return
		}
		ev = formEvent(r)
	}

	status := http.StatusOK
	err := s.app.Dashboard.Dispatch(ev)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrStockNotFound):
		status = http.StatusNotFound
	case errors.Is(err, dashboard.ErrUnknownEvent):
		status = http.StatusBadRequest
	default:
		s.logger.Error().Err(err).Str("region", ev.Region).Msg("Event failed")
		WriteError(w, http.StatusInternalServerError, "Event failed")
		return
	}

	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("region", ev.Region).
			Str("target", ev.Target).
			Msg("Event rejected")
	}

	if jsonClient {
		if err != nil {
			WriteError(w, status, err.Error())
			return
		}
		selected, ok := s.app.Dashboard.Selected()
		resp := map[string]interface{}{"status": "ok"}
		if ok {
			resp["selected"] = selected
		}
		WriteJSON(w, status, resp)
		return
	}

	s.writePage(w, status)
}

func formEvent(r *http.Request) models.Event {
	ev := models.Event{
		Region: r.PostForm.Get("region"),
		Target: r.PostForm.Get("target"),
		Tag:    r.PostForm.Get("tag"),
	}
	if ev.Tag == "" && ev.Target != "" {
		ev.Tag = "button"
	}
	for _, f := range view.FormFields {
		if _, ok := r.PostForm[f]; ok {
			if ev.Input == nil {
				ev.Input = make(map[string]string)
			}
			ev.Input[f] = r.PostForm.Get(f)
		}
	}
	return ev
}

func (s *Server) writePage(w http.ResponseWriter, status int) {
	var buf bytes.Buffer
	if err := s.app.Dashboard.WritePage(&buf); err != nil {
		s.logger.Error().Err(err).Msg("Page render failed")
		WriteError(w, http.StatusInternalServerError, "Page render failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// handlePortfolioChart handles GET /charts/portfolio.svg?user={id}.
func (s *Server) handlePortfolioChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	id := models.ID(r.URL.Query().Get("user"))
	if id.IsZero() {
		if selected, ok := s.app.Dashboard.Selected(); ok {
			id = selected
		}
	}
	if id.IsZero() {
		WriteError(w, http.StatusBadRequest, "user is required")
		return
	}

	svg, err := s.app.Dashboard.HoldingsChart(id)
	switch {
	case errors.Is(err, storage.ErrUserNotFound), errors.Is(err, view.ErrNoHoldings):
		WriteError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		s.logger.Error().Err(err).Str("user_id", id.String()).Msg("Chart render failed")
		WriteError(w, http.StatusInternalServerError, "Chart render failed")
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(svg)
}
