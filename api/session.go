package api

import (
	"encoding/json"
	"net/http"

	"chat-room/auth"
)

type sessionResponse struct {
	Success bool `json:"success"`
}

type checkAuthResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

func (h *Handler) sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *Handler) decodeCredentials(w http.ResponseWriter, r *http.Request) (auth.Credentials, bool) {
	var creds auth.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return auth.Credentials{}, false
	}
	return creds, true
}

// HandleRegister creates an account and opens a session in one step.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}
	token, err := h.auth.Register(creds.Username, creds.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.log.Info("User registered", "username", creds.Username)
	http.SetCookie(w, h.sessionCookie(token, int(h.sessionTTL.Seconds())))
	h.writeJSON(w, http.StatusCreated, sessionResponse{Success: true})
}

// HandleLogin verifies credentials and sets the session cookie.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}
	token, err := h.auth.Login(creds.Username, creds.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	http.SetCookie(w, h.sessionCookie(token, int(h.sessionTTL.Seconds())))
	h.writeJSON(w, http.StatusOK, sessionResponse{Success: true})
}

// HandleLogout drops the session cookie. The token itself simply expires.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	h.writeJSON(w, http.StatusOK, sessionResponse{Success: true})
}

// HandleCheckAuth reports whether the caller holds a live session. Open
// endpoint: an anonymous caller gets authenticated=false, not an error.
func (h *Handler) HandleCheckAuth(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		h.writeJSON(w, http.StatusOK, checkAuthResponse{Authenticated: false})
		return
	}
	claims, err := h.tokens.Validate(cookie.Value)
	if err != nil {
		h.writeJSON(w, http.StatusOK, checkAuthResponse{Authenticated: false})
		return
	}
	h.writeJSON(w, http.StatusOK, checkAuthResponse{Authenticated: true, Username: claims.Username})
}
