package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gorilla/mux"

	"coride/pkg/token"
)

var bearerRegex = regexp.MustCompile(`^Bearer (.+)$`)

// Authenticator is middleware that validates bearer tokens and enforces that
// a caller only acts on resources bound to their own identity.
type Authenticator struct {
	Tokens *token.Service
}

// NewAuthenticator creates a new bearer token authenticator middleware
func NewAuthenticator(tokens *token.Service) *Authenticator {
	return &Authenticator{Tokens: tokens}
}

// subject decodes the Authorization header and returns the caller's user ID.
func (a *Authenticator) subject(w http.ResponseWriter, r *http.Request) (int, bool) {
	authHeader := r.Header.Get("Authorization")

	if len(authHeader) == 0 {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Authorization missing"))
		return 0, false
	}

	tokenMatches := bearerRegex.FindStringSubmatch(authHeader)

	if len(tokenMatches) != 2 {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Malformed authorization header"))
		return 0, false
	}

	userID, err := a.Tokens.Verify(tokenMatches[1])
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Invalid token"))
		return 0, false
	}

	return userID, true
}

// Verify returns middleware that validates the bearer token and stores the
// caller's user ID on the request context. It performs no ownership check;
// it is used on routes that do not target a particular identity.
func (a *Authenticator) Verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := a.subject(w, r)
		if !ok {
			return
		}

		ctx := context.WithValue(r.Context(), "userId", userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// VerifyOwner returns middleware for routes whose target resource is bound
// to a user identity. On top of Verify, it resolves the target identity from
// the request (path parameters first, then the JSON body) and rejects the
// request when it differs from the token subject. A request carrying no
// target identity passes through.
func (a *Authenticator) VerifyOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := a.subject(w, r)
		if !ok {
			return
		}

		targetID, found := targetIdentity(r)
		if found && targetID != userID {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Caller may not act on another user's resource"))
			return
		}

		ctx := context.WithValue(r.Context(), "userId", userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// targetIdentity extracts the user identity the request targets: the userId
// or id path parameter, or the user_id/id field of a JSON body. The body is
// restored so the handler can read it again.
func targetIdentity(r *http.Request) (int, bool) {
	vars := mux.Vars(r)
	for _, name := range []string{"userId", "id"} {
		if raw, ok := vars[name]; ok {
			if id, err := strconv.Atoi(raw); err == nil {
				return id, true
			}
		}
	}

	if r.Body == nil || r.Body == http.NoBody {
		return 0, false
	}

	raw, err := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil || len(raw) == 0 {
		return 0, false
	}

	var body struct {
		UserID *int `json:"user_id"`
		ID     *int `json:"id"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return 0, false
	}
	if body.UserID != nil {
		return *body.UserID, true
	}
	if body.ID != nil {
		return *body.ID, true
	}
	return 0, false
}
