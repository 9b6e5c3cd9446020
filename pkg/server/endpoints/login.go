package endpoints

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"coride/pkg/model"
	"coride/pkg/server"
)

// LoginRequest is the credential pair posted to /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed bearer token and the authenticated user.
type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// RegisterLoginEndpoint registers POST /login. It sits outside /api/v1 and
// is the only route that does not require a bearer token.
func RegisterLoginEndpoint(s *server.Server) {
	db := s.DB
	tokens := s.Tokens

	s.Router.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeBody(r, &req); err != nil || req.Email == "" || req.Password == "" {
			respondWithError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		user, err := model.FindUserByEmail(r.Context(), db, req.Email)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				// Same response as a bad password so the endpoint does not
				// leak which emails exist.
				respondWithError(w, http.StatusUnauthorized, "invalid credentials")
				return
			}
			respondWithModelError(w, err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			respondWithError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		signed, err := tokens.Issue(user.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to issue token")
			return
		}

		user.Password = ""
		respondWithJSON(w, http.StatusOK, LoginResponse{Token: signed, User: *user})
	}).Methods("POST")
}
