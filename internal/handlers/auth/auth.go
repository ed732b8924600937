package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/codbbit.net/internal/core/ports/primary"
	auth2 "gitlab.com/codbbit.net/internal/core/services/auth"
	"gitlab.com/codbbit.net/internal/core/services/connection"
	"gitlab.com/codbbit.net/internal/domain"
	"gitlab.com/codbbit.net/internal/handlers"
	"gitlab.com/codbbit.net/internal/handlers/response"
)

// connectStateTTL bounds how long an authorization redirect stays
// redeemable at the callback.
const connectStateTTL = 10 * time.Minute

type Handler struct {
	localAuth   auth2.IAuthService
	connections connection.IConnectionService
	jwtProvider primary.JWTService
	logger      primary.Logger
}

func NewHandler(localAuth auth2.IAuthService, connections connection.IConnectionService, jwtProvider primary.JWTService, logger primary.Logger) *Handler {
	return &Handler{
		localAuth:   localAuth,
		connections: connections,
		jwtProvider: jwtProvider,
		logger:      logger,
	}
}

// RegisterRoutes registers the account routes. The Salesforce callback
// is public because the platform redirects the browser there without
// our bearer token; the connecting user travels in the state parameter
// as a short-lived signed token, never as a raw ID.
func (h *Handler) RegisterRoutes(router *mux.Router, protected *mux.Router) {
	router.HandleFunc("/api/auth/signup", h.Signup).Methods("POST")
	router.HandleFunc("/api/auth/login", h.Login).Methods("POST")
	router.HandleFunc("/api/salesforce/callback", h.SalesforceCallback).Methods("GET")

	protected.HandleFunc("/api/salesforce/connect", h.SalesforceConnect).Methods("GET")
	protected.HandleFunc("/api/salesforce/connection", h.SalesforceDisconnect).Methods("DELETE")
}

type SignupRequest struct {
	UserName string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.UserName == "" || req.Password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}

	token, err := h.localAuth.Register(r.Context(), req.UserName, req.Email, req.Password)
	if err != nil {
		response.WriteError(w, response.ErrorMessage{
			Message:    err.Error(),
			StatusCode: http.StatusBadRequest,
		})
		return
	}
	handlers.ResponseWithJson(w, http.StatusCreated, domain.LoginResponse{Token: token})
}

type LoginRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	token, err := h.localAuth.Login(r.Context(), req.UserName, req.Password)
	if err != nil {
		response.WriteError(w, response.ErrorMessage{
			Message:    err.Error(),
			StatusCode: http.StatusUnauthorized,
		})
		return
	}
	response.WriteSuccess(w, domain.LoginResponse{Token: token})
}

// SalesforceConnect redirects the authenticated user to the platform's
// authorization page, carrying the user in a signed state token.
func (h *Handler) SalesforceConnect(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.UserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	state, err := h.jwtProvider.GenerateTokenHMAC(r.Context(), jwt.SigningMethodHS256.Name, map[string]interface{}{
		"user_id": userID.String(),
		"exp":     time.Now().Add(connectStateTTL).Unix(),
	})
	if err != nil {
		h.logger.Error("Failed to sign connect state", "user_id", userID.String(), "error", err)
		http.Error(w, "Failed to start connection", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, h.connections.ConnectURL(state), http.StatusTemporaryRedirect)
}

// SalesforceCallback completes the OAuth handshake and stores the
// credential. The state must be a token we signed in SalesforceConnect;
// an unsigned or expired state never reaches the connection service, so
// a caller cannot bind a credential to a user they picked themselves.
func (h *Handler) SalesforceCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "No code in URL", http.StatusBadRequest)
		return
	}
	userID, err := h.verifyConnectState(r)
	if err != nil {
		h.logger.Warn("Rejected Salesforce callback state", "error", err)
		http.Error(w, "Invalid state", http.StatusBadRequest)
		return
	}

	if err := h.connections.CompleteConnection(r.Context(), userID, code); err != nil {
		h.logger.Error("Failed to complete Salesforce connection", "user_id", userID.String(), "error", err)
		response.WriteError(w, response.ErrorMessage{
			Message:    "failed to connect Salesforce org",
			StatusCode: http.StatusBadGateway,
		})
		return
	}
	response.WriteSuccess(w, map[string]bool{"connected": true})
}

func (h *Handler) verifyConnectState(r *http.Request) (uuid.UUID, error) {
	state := r.URL.Query().Get("state")
	valid, err := h.jwtProvider.VerifyTokenHMAC(r.Context(), state, jwt.SigningMethodHS256.Name)
	if err != nil {
		return uuid.Nil, err
	}
	if !valid {
		return uuid.Nil, jwt.ErrTokenUnverifiable
	}
	payload, err := h.jwtProvider.DecodeTokenPayload(r.Context(), state)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(payload.UserID)
}

func (h *Handler) SalesforceDisconnect(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.UserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	if err := h.connections.Disconnect(r.Context(), userID); err != nil {
		h.logger.Error("Failed to disconnect Salesforce org", "user_id", userID.String(), "error", err)
		http.Error(w, "Failed to disconnect", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
