package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Maneesh0032/Sweets-Shop/internal/model"
)

// sweetRequest uses pointers for the numeric fields so a missing field is
// distinguishable from an explicit zero.
type sweetRequest struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Price    *float64 `json:"price"`
	Quantity *int64   `json:"quantity"`
}

type restockRequest struct {
	Quantity *int64 `json:"quantity"`
}

func sweetID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	sweets, err := s.sweets.List(r.Context())
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sweets)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := model.SearchFilters{
		Name:     q.Get("name"),
		Category: q.Get("category"),
	}
	for param, dst := range map[string]**float64{"minPrice": &f.MinPrice, "maxPrice": &f.MaxPrice} {
		raw := q.Get(param)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid price filter")
			return
		}
		*dst = &v
	}

	sweets, err := s.sweets.Search(r.Context(), f)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sweets)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := sweetID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid sweet ID")
		return
	}
	sweet, err := s.sweets.GetByID(r.Context(), id)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sweet)
}

// decodeFields enforces presence of all four fields; negative values are the
// service's concern.
func decodeFields(w http.ResponseWriter, r *http.Request) (model.SweetFields, bool) {
	var req sweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return model.SweetFields{}, false
	}
	if req.Name == "" || req.Category == "" || req.Price == nil || req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return model.SweetFields{}, false
	}
	return model.SweetFields{
		Name:     req.Name,
		Category: req.Category,
		Price:    *req.Price,
		Quantity: *req.Quantity,
	}, true
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	f, ok := decodeFields(w, r)
	if !ok {
		return
	}
	sweet, err := s.sweets.Create(r.Context(), f)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sweet)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := sweetID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid sweet ID")
		return
	}
	// Existence wins over body validation: an absent id is 404 even when
	// the body is malformed.
	if _, err := s.sweets.GetByID(r.Context(), id); err != nil {
		s.respondErr(w, r, err)
		return
	}
	f, ok := decodeFields(w, r)
	if !ok {
		return
	}
	sweet, err := s.sweets.Update(r.Context(), id, f)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sweet)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := sweetID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid sweet ID")
		return
	}
	sweet, err := s.sweets.Remove(r.Context(), id)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Sweet deleted successfully",
		"sweet":   sweet,
	})
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := sweetID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid sweet ID")
		return
	}
	sweet, err := s.sweets.Purchase(r.Context(), id)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Purchase successful",
		"sweet":   sweet,
	})
}

func (s *Server) handleRestock(w http.ResponseWriter, r *http.Request) {
	id, ok := sweetID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid sweet ID")
		return
	}
	var req restockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	var amount int64
	if req.Quantity != nil {
		amount = *req.Quantity
	}
	sweet, err := s.sweets.Restock(r.Context(), id, amount)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Restock successful",
		"sweet":   sweet,
	})
}
