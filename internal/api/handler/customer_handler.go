package handler

import (
	"customer-api/internal/api/handler/dto"
	"customer-api/internal/domain/customer"
	"customer-api/internal/event"
	"customer-api/internal/infrastructure/monitoring"
	"customer-api/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type CustomerServices struct {
	Creator customer.CustomerCreator
	Updater customer.CustomerUpdater
	Lister  customer.CustomerLister
	Getter  customer.CustomerGetter
}

type CustomerHandler struct {
	services  CustomerServices
	publisher event.EventPublisher
	logger    *slog.Logger
}

func NewCustomerHandler(s CustomerServices, p event.EventPublisher, l *slog.Logger) *CustomerHandler {
	if s.Creator == nil || s.Updater == nil || s.Lister == nil || s.Getter == nil {
		panic("customer services cannot be nil")
	}
	if p == nil {
		panic("event publisher cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		services:  s,
		publisher: p,
		logger:    l.With("component", "CustomerHandler"),
	}
}

func getCustomerIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "customerID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: customerID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid customerID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

func getTaxpayerIDFromURL(r *http.Request) (string, error) {
	taxpayerID := chi.URLParam(r, "taxpayerID")
	if taxpayerID == "" {
		return "", fmt.Errorf("%w: taxpayerID not found in URL path", apperrors.ErrInvalidArgument)
	}
	return taxpayerID, nil
}

// CreateCustomer handles POST /api/customers
// @Summary Register a new customer
// @Description Creates a customer with name, taxpayer id, email and password. The taxpayer id may be sent with or without punctuation.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CreateCustomerRequest true "Customer creation request"
// @Success 201 {object} dto.CustomerResponse "Customer successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload, duplicate taxpayer id or email, weak password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error during creation"
// @Router /api/customers [post]
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.logger.DebugContext(ctx, "Received create customer request")

	var req dto.CreateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(ctx, "Request validation failed", slog.Any("error", err))
		respondError(w, err)
		return
	}

	newCustomer, err := req.ToDomain()
	if err != nil {
		h.logger.WarnContext(ctx, "Invalid customer attributes", slog.Any("error", err))
		respondError(w, err)
		return
	}

	created, err := h.services.Creator.Execute(ctx, newCustomer, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	monitoring.Business.CustomersCreatedTotal.Inc()

	if err := h.publisher.PublishCustomerCreated(ctx, event.NewCustomerCreatedEvent(created)); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish customer created event",
			slog.Int64("customerID", created.CustomerID), slog.Any("error", err))
	}

	respondJSON(w, http.StatusCreated, dto.NewCustomerResponse(created))
}

// ListCustomers handles GET /api/customers
// @Summary List customers
// @Description Returns every customer, active or not, with creation and update timestamps.
// @Tags Customers
// @Produce json
// @Success 200 {array} dto.CustomerListResponse "Customers"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/customers [get]
// @Security BearerAuth
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.services.Lister.Execute(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerListResponse(customers))
}

// GetCustomer handles GET /api/customers/{customerID}
// @Summary Get a customer by ID
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID"
// @Success 200 {object} dto.CustomerResponse "Customer"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/customers/{customerID} [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	cust, err := h.services.Getter.Execute(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(cust))
}

// UpdateCustomer handles PUT /api/customers/taxpayer/{taxpayerID}
// @Summary Partially update a customer
// @Description Accepts any subset of taxpayerId, email, name and active. Unknown keys are rejected.
// @Tags Customers
// @Accept json
// @Produce json
// @Param taxpayerID path string true "Taxpayer ID, with or without punctuation"
// @Param request body object true "Fields to update"
// @Success 200 {object} dto.CustomerResponse "Updated customer"
// @Failure 400 {object} dto.ErrorResponse "Invalid fields or values, duplicate taxpayer id or email"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/customers/taxpayer/{taxpayerID} [put]
// @Security BearerAuth
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	taxpayerID, err := getTaxpayerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var updates dto.UpdateCustomerRequest
	if err := decodeJSON(r, &updates); err != nil {
		h.logger.WarnContext(ctx, "Failed to decode update body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := updates.Validate(); err != nil {
		h.logger.WarnContext(ctx, "Update body failed validation", slog.Any("error", err))
		respondError(w, err)
		return
	}

	updated, err := h.services.Updater.Execute(ctx, taxpayerID, updates)
	if err != nil {
		respondError(w, err)
		return
	}
	h.publishUpdated(r, updated)

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(updated))
}

// DeactivateCustomer handles DELETE /api/customers/taxpayer/{taxpayerID}
// @Summary Deactivate a customer
// @Description Soft delete: the customer is kept but can no longer log in.
// @Tags Customers
// @Param taxpayerID path string true "Taxpayer ID, with or without punctuation"
// @Success 204 "Customer deactivated"
// @Failure 400 {object} dto.ErrorResponse "Invalid taxpayer id"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/customers/taxpayer/{taxpayerID} [delete]
// @Security BearerAuth
func (h *CustomerHandler) DeactivateCustomer(w http.ResponseWriter, r *http.Request) {
	taxpayerID, err := getTaxpayerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.services.Updater.Execute(r.Context(), taxpayerID, map[string]any{customer.FieldActive: false})
	if err != nil {
		respondError(w, err)
		return
	}
	h.publishUpdated(r, updated)

	w.WriteHeader(http.StatusNoContent)
}

func (h *CustomerHandler) publishUpdated(r *http.Request, updated *customer.Customer) {
	if err := h.publisher.PublishCustomerUpdated(r.Context(), event.NewCustomerUpdatedEvent(updated)); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to publish customer updated event",
			slog.Int64("customerID", updated.CustomerID), slog.Any("error", err))
	}
}
