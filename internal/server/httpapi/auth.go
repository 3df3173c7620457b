package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/and161185/classroom-gateway/internal/model"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  model.SanitizedAccount `json:"user"`
	Token string                 `json:"token"`
}

func (rt *Router) handleRegister(w http.ResponseWriter, req *http.Request) {
	var body registerRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	acc, sess, err := rt.accounts.Register(req.Context(), body.Email, body.Password, body.Role)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{User: acc, Token: sess.Token})
}

func (rt *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	acc, sess, err := rt.accounts.Login(req.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, authResponse{User: acc, Token: sess.Token})
}
