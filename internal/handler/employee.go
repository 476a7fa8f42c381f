package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/yourorg/rosterhub/internal/domain"
	"github.com/yourorg/rosterhub/internal/service"
)

// EmployeeHandler handles the /funcionarios endpoints
type EmployeeHandler struct {
	employees *service.EmployeeService
	logger    *slog.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employees *service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &EmployeeHandler{
		employees: employees,
		logger:    logger,
	}
}

// ListResponse wraps the employee collection in the success envelope
type ListResponse struct {
	Success      bool               `json:"success"`
	Funcionarios []*domain.Employee `json:"funcionarios"`
}

// List handles GET /funcionarios?search=
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	employees, err := h.employees.List(r.Context(), search)
	if err != nil {
		h.logger.Error("failed to list employees",
			slog.String("search", search),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to fetch employees")
		return
	}

	if employees == nil {
		employees = []*domain.Employee{}
	}
	writeJSON(w, http.StatusOK, ListResponse{Success: true, Funcionarios: employees})
}

// Create handles POST /funcionarios
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("failed to decode create request", slog.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.employees.Create(r.Context(), &in); err != nil {
		h.logger.Error("failed to add employee", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to add employee")
		return
	}

	writeSuccess(w)
}

// Update handles PUT /funcionarios/{id}
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	var in domain.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("failed to decode update request", slog.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	switch err := h.employees.Update(r.Context(), id, &in); {
	case errors.Is(err, domain.ErrNothingToUpdate):
		writeError(w, http.StatusBadRequest, "nothing to update")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "employee not found")
	case err != nil:
		h.logger.Error("failed to update employee",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to update employee")
	default:
		writeSuccess(w)
	}
}

// Delete handles DELETE /funcionarios/{id}
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	switch err := h.employees.Delete(r.Context(), id); {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "employee not found")
	case err != nil:
		h.logger.Error("failed to delete employee",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to delete employee")
	default:
		writeSuccess(w)
	}
}
