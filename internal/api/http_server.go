package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/application"
	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/domain"
)

const maxBodyBytes = 1 << 20

// Server groups the HTTP layer dependencies.
type Server struct {
	manager *application.WarehouseManager
	metrics http.Handler
	log     *zap.Logger
}

func NewServer(
	manager *application.WarehouseManager,
	metrics http.Handler,
	log *zap.Logger,
) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		manager: manager,
		metrics: metrics,
		log:     log.Named("http"),
	}
}

// RegisterRoutes registers every HTTP route on mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/warehouse", s.handleWarehouse)
	mux.HandleFunc("/api/locations/", s.handleGetLocation)
	mux.HandleFunc("/api/stock/", s.handleStock)
	mux.HandleFunc("/api/movements", s.handleListMovements)
	mux.HandleFunc("/api/movements/", s.handleMovements)
	mux.HandleFunc("/swagger.json", s.handleSwaggerJson)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics)
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

type availabilityResponse struct {
	ISBN      string `json:"isbn"`
	Quantity  int    `json:"quantity"`
	Available bool   `json:"available"`
}

type errorResponse struct {
	Error    string                      `json:"error"`
	Message  string                      `json:"message"`
	Movement *application.MovementResult `json:"movement,omitempty"`
}

// Handler /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := s.manager.CheckConsistency(); err != nil {
		s.log.Error("warehouse inconsistent", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "inconsistent"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Handler GET /api/warehouse
func (s *Server) handleWarehouse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.manager.WarehouseSummary())
}

// Handler GET /api/locations/{id}
func (s *Server) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/locations/")
	if id == "" || id == r.URL.Path {
		http.Error(w, "location id is required", http.StatusBadRequest)
		return
	}
	info, ok := s.manager.FindLocation(id)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// Handler GET /api/stock/{isbn} and GET /api/stock/{isbn}/availability?quantity=N
func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/api/stock/")
	if path == "" || path == r.URL.Path {
		http.Error(w, "isbn is required", http.StatusBadRequest)
		return
	}

	isbn, rest, _ := strings.Cut(path, "/")
	switch rest {
	case "":
		writeJSON(w, http.StatusOK, s.manager.GetBookStockInfo(isbn))
	case "availability":
		qty, err := strconv.Atoi(r.URL.Query().Get("quantity"))
		if err != nil || qty <= 0 {
			http.Error(w, "quantity must be a positive integer", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, availabilityResponse{
			ISBN:      isbn,
			Quantity:  qty,
			Available: s.manager.IsBookAvailable(isbn, qty),
		})
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

// Handler GET /api/movements?limit=N
func (s *Server) handleListMovements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}
	res, err := s.manager.ListMovements(r.Context(), limit)
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Handler /api/movements/...
//
//	POST /api/movements/receipts|writeoffs|transfers[?prepare=true]
//	POST /api/movements/{id}/execute
//	POST /api/movements/{id}/cancel
//	GET  /api/movements/{id}
func (s *Server) handleMovements(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/movements/")
	if path == "" || path == r.URL.Path {
		http.Error(w, "movement id is required", http.StatusBadRequest)
		return
	}
	prepare := r.URL.Query().Get("prepare") == "true"

	switch path {
	case "receipts":
		var req application.ReceiptRequest
		if s.decodePost(w, r, &req) {
			if prepare {
				res, err := s.manager.PrepareStockReceipt(req)
				s.writePrepared(w, res, err)
				return
			}
			res, err := s.manager.ProcessStockReceipt(r.Context(), req)
			s.writeMovement(w, res, err)
		}
		return
	case "writeoffs":
		var req application.WriteOffRequest
		if s.decodePost(w, r, &req) {
			if prepare {
				res, err := s.manager.PrepareStockWriteOff(req)
				s.writePrepared(w, res, err)
				return
			}
			res, err := s.manager.ProcessStockWriteOff(r.Context(), req)
			s.writeMovement(w, res, err)
		}
		return
	case "transfers":
		var req application.TransferRequest
		if s.decodePost(w, r, &req) {
			if prepare {
				res, err := s.manager.PrepareStockTransfer(req)
				s.writePrepared(w, res, err)
				return
			}
			res, err := s.manager.ProcessStockTransfer(r.Context(), req)
			s.writeMovement(w, res, err)
		}
		return
	}

	id, action, _ := strings.Cut(path, "/")
	switch action {
	case "":
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		res, err := s.manager.GetMovement(r.Context(), id)
		if err != nil {
			s.writeError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, res)
	case "execute", "cancel":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var res *application.MovementResult
		var err error
		if action == "execute" {
			res, err = s.manager.ExecuteMovement(r.Context(), id)
		} else {
			res, err = s.manager.CancelMovement(r.Context(), id)
		}
		if err != nil {
			s.writeError(w, err, res)
			return
		}
		writeJSON(w, http.StatusOK, res)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

func (s *Server) decodePost(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "INVALID_BODY", Message: err.Error()})
		return false
	}
	return true
}

func (s *Server) writeMovement(w http.ResponseWriter, res *application.MovementResult, err error) {
	if err != nil {
		s.writeError(w, err, res)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) writePrepared(w http.ResponseWriter, res *application.MovementResult, err error) {
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusAccepted, res)
}

func (s *Server) writeError(w http.ResponseWriter, err error, res *application.MovementResult) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
		writeJSON(w, status, errorResponse{Error: "INTERNAL", Message: "internal error", Movement: res})
		return
	}
	code := domain.ErrorCode(err)
	if code == "" {
		code = "ERROR"
	}
	writeJSON(w, status, errorResponse{Error: code, Message: err.Error(), Movement: res})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCapacity),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrBlockedResource):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// Handler GET /swagger.json
func (s *Server) handleSwaggerJson(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(openAPISpec))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
