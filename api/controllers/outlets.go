package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/routesales/routesales-backend/api/responses"
	"github.com/routesales/routesales-backend/api/validators"
	"github.com/routesales/routesales-backend/internal/outlets"
	pkgerrors "github.com/routesales/routesales-backend/pkg/errors"
	"github.com/routesales/routesales-backend/pkg/logger"
)

// UpsertOutletRequest captures the payload for creating or updating an
// outlet. Optional fields stay untouched on update when omitted.
type UpsertOutletRequest struct {
	Name      string           `json:"name"`
	Address   string           `json:"address"`
	Email     *string          `json:"email,omitempty"`
	Contact   *string          `json:"contact,omitempty"`
	TaxPIN    *string          `json:"tax_pin,omitempty"`
	Latitude  *float64         `json:"latitude,omitempty"`
	Longitude *float64         `json:"longitude,omitempty"`
	Balance   *decimal.Decimal `json:"balance,omitempty"`
	RegionID  *uuid.UUID       `json:"region_id,omitempty"`
}

// AddPaymentRequest captures a payment submission against an outlet.
type AddPaymentRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	ImageURL string          `json:"image_url"`
}

func toUpsertOutletInput(payload UpsertOutletRequest) outlets.UpsertOutletInput {
	return outlets.UpsertOutletInput{
		Name:      payload.Name,
		Address:   payload.Address,
		Email:     payload.Email,
		Contact:   payload.Contact,
		TaxPIN:    payload.TaxPIN,
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
		Balance:   payload.Balance,
		RegionID:  payload.RegionID,
	}
}

// OutletsList returns the reduced outlet projection, alphabetical by name.
func OutletsList(svc outlets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "outlets service unavailable"))
			return
		}

		views, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, views)
	}
}

// OutletCreate registers a new retail outlet.
func OutletCreate(svc outlets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "outlets service unavailable"))
			return
		}

		var payload UpsertOutletRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		outlet, err := svc.Create(r.Context(), toUpsertOutletInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, outlet)
	}
}

// OutletUpdate applies the provided fields to an existing outlet.
func OutletUpdate(svc outlets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "outlets service unavailable"))
			return
		}

		outletID, err := validators.ParseUUIDParam(r, "outletId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload UpsertOutletRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		outlet, err := svc.Update(r.Context(), outletID, toUpsertOutletInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, outlet)
	}
}

// OutletProducts lists the products stocked at an outlet with quantities.
func OutletProducts(svc outlets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "outlets service unavailable"))
			return
		}

		outletID, err := validators.ParseUUIDParam(r, "outletId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.Products(r.Context(), outletID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// OutletLocation returns just the outlet's coordinates.
func OutletLocation(svc outlets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "outlets service unavailable"))
			return
		}

		outletID, err := validators.ParseUUIDParam(r, "outletId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		location, err := svc.Location(r.Context(), outletID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, location)
	}
}

// OutletAddPayment records a payment made by an outlet.
func OutletAddPayment(svc outlets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "outlets service unavailable"))
			return
		}

		outletID, err := validators.ParseUUIDParam(r, "outletId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload AddPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.AddPayment(r.Context(), outletID, outlets.AddPaymentInput{
			Amount:   payload.Amount,
			ImageURL: payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

// OutletPayments lists an outlet's payments, most recent first.
func OutletPayments(svc outlets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "outlets service unavailable"))
			return
		}

		outletID, err := validators.ParseUUIDParam(r, "outletId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payments, err := svc.Payments(r.Context(), outletID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, payments)
	}
}
