// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

// HTTP transport for the two-step login flow.
package login

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/votra-app/votra/internal/platform/request"
	"github.com/votra-app/votra/internal/platform/respond"
	"github.com/votra-app/votra/internal/platform/validate"
	"github.com/votra-app/votra/internal/voter"
)

// Handler exposes the authentication flow over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the login HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
Routes mounts the login endpoints.

The credential-check endpoint sits behind the coarse bearer gate: callers
must present a known voter id before the password is even examined. The OTP
endpoint is ungated, its pending token is the proof of step one.

Parameters:
  - voterGate: middleware enforcing the bearer-check gate

Returns:
  - chi.Router: Mountable sub-router
*/
func (handler *Handler) Routes(voterGate func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.With(voterGate).Get("/login", handler.start)
	router.Post("/verify-otp", handler.verifyOTP)
	router.Get("/session", handler.session)

	return router
}

// start handles GET /login. Credentials travel as query parameters, a shape
// kept for compatibility with the existing voting clients.
func (handler *Handler) start(writer http.ResponseWriter, request *http.Request) {
	voterID := request.URL.Query().Get(voter.FieldVoterID)
	password := request.URL.Query().Get(voter.FieldPassword)

	validator := &validate.Validator{}
	validator.
		Required(voter.FieldVoterID, voterID).
		Required(voter.FieldPassword, password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Start(request.Context(), voterID, password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// session handles GET /session. It re-validates the presented session token
// statelessly and echoes the identity baked into its claims, so clients can
// check whether a stored token is still usable without a round trip per
// protected call.
func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"voterId":  claims.VoterID,
		"role":     claims.Role,
		"verified": claims.IsVerified,
	})
}

type verifyOTPRequest struct {
	IDToken   string `json:"idToken"`
	TempToken string `json:"tempToken"`
	VoterID   string `json:"voterId"`
	Mock      bool   `json:"mock"`
}

// verifyOTP handles POST /verify-otp.
func (handler *Handler) verifyOTP(writer http.ResponseWriter, request *http.Request) {
	var body verifyOTPRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(voter.FieldTempToken, body.TempToken)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.VerifyOTP(request.Context(), VerifyInput{
		IDToken:   body.IDToken,
		TempToken: body.TempToken,
		VoterID:   body.VoterID,
		Mock:      body.Mock,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
