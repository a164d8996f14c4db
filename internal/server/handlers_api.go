package server

import (
	"fmt"
	"net/http"

	"github.com/bobmcallan/portdash/internal/models"
)

// handleSelection handles GET /api/selection.
func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	id, ok := s.app.Dashboard.Selected()
	data := map[string]interface{}{"selected": ok}
	if ok {
		data["user_id"] = id
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   data,
	})
}

// handleUserList handles GET /api/users.
func (s *Server) handleUserList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	users := s.app.Dashboard.Users()
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"count":  len(users),
		"data":   users,
	})
}

// handleUserGet handles GET /api/users/{id}.
func (s *Server) handleUserGet(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	id := models.ID(pathParam(r, "/api/users/"))
	if id.IsZero() {
		WriteError(w, http.StatusBadRequest, "user id is required in path")
		return
	}

	user, err := s.app.Dashboard.User(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("user '%s' not found", id))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   user,
	})
}

// handleStockList handles GET /api/stocks.
func (s *Server) handleStockList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	stocks := s.app.Dashboard.Stocks()
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"count":  len(stocks),
		"data":   stocks,
	})
}

// handleStockGet handles GET /api/stocks/{symbol}.
func (s *Server) handleStockGet(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	symbol := pathParam(r, "/api/stocks/")
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required in path")
		return
	}

	stock, err := s.app.Dashboard.Stock(symbol)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("stock '%s' not found", symbol))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data": map[string]interface{}{
			"stock": stock,
			"logo":  stock.LogoPath(),
		},
	})
}
