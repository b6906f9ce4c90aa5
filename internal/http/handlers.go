package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Flarenzy/ipam-engine/internal/domain"
)

// @Summary Health check
// @Tags health
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// @Summary Readiness check
// @Tags health
// @Success 200 {string} string "ready"
// @Failure 503 {string} string "db unavailable"
// @Router /readyz [get]
func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := a.Health.Ping(ctx); err != nil {
		a.Logger.ErrorContext(ctx, "db ping failed", "err", err.Error())
		http.Error(w, "db unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// @Summary List subnets
// @Tags subnets
// @Produce json
// @Success 200 {array} SubnetResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/subnets [get]
func (a *API) handleListSubnets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subnets, err := a.Service.ListSubnets(ctx)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, subnetsToResponse(subnets))
}

// @Summary Create subnet
// @Tags subnets
// @Accept json
// @Produce json
// @Param subnet body CreateSubnetRequest true "Subnet payload"
// @Success 201 {object} SubnetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/subnets [post]
func (a *API) handleCreateSubnet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := decode[CreateSubnetRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.ErrorContext(ctx, "unmarshaling subnet from request", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	subnet, err := a.Service.CreateSubnet(ctx, req.toInput())
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusCreated, subnetToResponse(subnet))
}

// @Summary Get subnet by ID
// @Tags subnets
// @Produce json
// @Param id path int true "Subnet ID"
// @Success 200 {object} SubnetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/subnets/{id} [get]
func (a *API) handleGetSubnetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.Logger.ErrorContext(ctx, "unable to convert string id to int64", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	subnet, err := a.Service.GetSubnet(ctx, id)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, subnetToResponse(subnet))
}

// @Summary Delete subnet
// @Tags subnets
// @Param id path int true "Subnet ID of the subnet to delete."
// @Success 204 "No content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/subnets/{id} [delete]
func (a *API) handleDeleteSubnetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.Logger.ErrorContext(ctx, "unable to convert string id to int64", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	if err := a.Service.DeleteSubnet(ctx, id); err != nil {
		a.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary List address records in a subnet
// @Tags records
// @Produce json
// @Param id path int true "Subnet ID"
// @Success 200 {array} RecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/subnets/{id}/records [get]
func (a *API) handleListRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.Logger.ErrorContext(ctx, "unable to convert string id to int64", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	records, err := a.Service.ListRecords(ctx, id)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, recordsToResponse(records))
}

// @Summary Allocate an address in a subnet
// @Description Claims the requested address, or the first free one when no
// @Description address is given. Allocation never lands inside an active
// @Description reservation.
// @Tags records
// @Accept json
// @Produce json
// @Param id path int true "Subnet ID"
// @Param payload body AllocateRequest true "Allocation request"
// @Success 201 {object} RecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/subnets/{id}/allocate [post]
func (a *API) handleAllocate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.Logger.ErrorContext(ctx, "unable to convert string id to int64", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	req, err := decode[AllocateRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.ErrorContext(ctx, "unmarshaling allocation from request", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	rec, err := a.Service.Allocate(ctx, id, req.toInput())
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusCreated, recordToResponse(rec))
}

// @Summary Release an address record
// @Description Returns the address to the free pool and clears its metadata.
// @Tags records
// @Produce json
// @Param uuid path string true "Record UUID"
// @Success 200 {object} RecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/records/{uuid}/release [post]
func (a *API) handleRelease(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rec, err := a.Service.Release(ctx, domain.AddressRecordID(r.PathValue("uuid")))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, recordToResponse(rec))
}

// @Summary Update an address record
// @Description Replaces the metadata of a record and optionally moves it to a
// @Description new occupied status, or back to available.
// @Tags records
// @Accept json
// @Produce json
// @Param uuid path string true "Record UUID"
// @Param payload body UpdateRecordRequest true "Record update"
// @Success 200 {object} RecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/records/{uuid} [patch]
func (a *API) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := decode[UpdateRecordRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.ErrorContext(ctx, "unmarshaling record update from request", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	rec, err := a.Service.UpdateMetadata(ctx, domain.AddressRecordID(r.PathValue("uuid")), req.toInput())
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, recordToResponse(rec))
}

// @Summary List reservations in a subnet
// @Tags reservations
// @Produce json
// @Param id path int true "Subnet ID"
// @Success 200 {array} ReservationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/subnets/{id}/reservations [get]
func (a *API) handleListReservations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.Logger.ErrorContext(ctx, "unable to convert string id to int64", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	reservations, err := a.Service.ListReservations(ctx, id)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, reservationsToResponse(reservations))
}

// @Summary Reserve a range of addresses
// @Description Reserves a contiguous range. Fails with 409 when any address
// @Description in the range is already assigned or managed, listing the
// @Description conflicting addresses.
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path int true "Subnet ID"
// @Param payload body CreateReservationRequest true "Reservation payload"
// @Success 201 {object} ReservationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/subnets/{id}/reservations [post]
func (a *API) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.Logger.ErrorContext(ctx, "unable to convert string id to int64", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	req, err := decode[CreateReservationRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.ErrorContext(ctx, "unmarshaling reservation from request", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	if err := validateRange(req.Start, req.End); err != nil {
		a.Logger.DebugContext(ctx, "invalid reservation range", "start", req.Start, "end", req.End, "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	res, err := a.Service.CreateReservation(ctx, id, req.toInput())
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusCreated, reservationToResponse(res))
}

// @Summary Delete a reservation
// @Description Removes the reservation and returns its still-reserved member
// @Description records to the free pool. Members promoted to another status
// @Description are left untouched.
// @Tags reservations
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} DeleteReservationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/reservations/{id} [delete]
func (a *API) handleDeleteReservation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.Logger.ErrorContext(ctx, "unable to convert string id to int64", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	released, err := a.Service.DeleteReservation(ctx, id)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, DeleteReservationResponse{Released: released})
}

// @Summary Compute the usable range of a network
// @Tags tools
// @Produce json
// @Param network query string true "Network address"
// @Param prefix query int true "Prefix length"
// @Param family query string false "Address family, ipv4 or ipv6; detected from the network when omitted"
// @Success 200 {object} RangeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/tools/range [get]
func (a *API) handleComputeRange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	prefix, err := strconv.Atoi(query.Get("prefix"))
	if err != nil {
		a.Logger.DebugContext(ctx, "invalid prefix in query", "prefix", query.Get("prefix"))
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "invalid prefix"})
		return
	}

	result, err := a.Service.ComputeRange(ctx, query.Get("network"), prefix, query.Get("family"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, rangeToResponse(result))
}

// @Summary Check whether an address belongs to a network
// @Tags tools
// @Produce json
// @Param address query string true "Address to test"
// @Param network query string true "Network address"
// @Param prefix query int true "Prefix length"
// @Success 200 {object} ContainsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/tools/contains [get]
func (a *API) handleContains(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	prefix, err := strconv.Atoi(query.Get("prefix"))
	if err != nil {
		a.Logger.DebugContext(ctx, "invalid prefix in query", "prefix", query.Get("prefix"))
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "invalid prefix"})
		return
	}

	contains, err := a.Service.IsInSubnet(ctx, query.Get("address"), query.Get("network"), prefix)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, ContainsResponse{Contains: contains})
}

func (a *API) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := encode(w, r, status, v); err != nil {
		a.Logger.ErrorContext(r.Context(), "responding to client", "err", err.Error())
	}
}

// respondError maps domain errors onto HTTP statuses. Validation failures are
// 400, missing resources 404, and anything that loses a race or finds the
// space taken is 409.
func (a *API) respondError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var rangeConflict *domain.RangeConflictError
	if errors.As(err, &rangeConflict) {
		a.Logger.DebugContext(ctx, "reservation range occupied", "conflicts", rangeConflict.Addresses)
		a.respond(w, r, http.StatusConflict, ErrorResponse{Error: "range occupied", Conflicts: rangeConflict.Addresses})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrFamilyMismatch),
		errors.Is(err, domain.ErrOutOfRange),
		errors.Is(err, domain.ErrInvalidOrder):
		a.Logger.DebugContext(ctx, "rejected request", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		a.respond(w, r, http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrSubnetExhausted),
		errors.Is(err, domain.ErrSearchBudget):
		a.Logger.DebugContext(ctx, "allocation conflict", "err", err.Error())
		a.respond(w, r, http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		a.respond(w, r, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	default:
		a.Logger.ErrorContext(ctx, "unhandled service error", "err", err.Error())
		a.respond(w, r, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
