// Package diagserver exposes the recognizer as an HTTP diagnostic service:
// construct a table from posted grammar text, print it, and (behind a JWT
// login gate) browse the construction history log. Grounded on tunaq's
// server/api/api.go (the API struct holding a Secret and a chi router) and
// server/server.go's login handler (bcrypt + jwt.NewWithClaims/jwt.Parse),
// trimmed from a multi-user game server down to a single operator login.
package diagserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dekarrin/lr1/internal/lr1/automaton"
	"github.com/dekarrin/lr1/internal/lr1/history"
	"github.com/dekarrin/lr1/internal/lr1/ingest"
	"github.com/dekarrin/lr1/internal/lr1/table"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is returned when a login attempt's password doesn't
// match the configured operator password.
var ErrBadCredentials = errors.New("bad credentials")

// Server is the diagnostic HTTP service. The zero value is not usable; build
// one with New.
type Server struct {
	Secret       []byte
	AdminHash    []byte // bcrypt hash of the operator password
	History      *history.DB
	router       chi.Router
}

// New builds a Server whose admin login is gated by the bcrypt hash of
// adminPassword, and whose JWTs are signed with secret.
func New(secret []byte, adminPassword string, hist *history.DB) (*Server, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash admin password: %w", err)
	}

	s := &Server{Secret: secret, AdminHash: hash, History: hist}
	s.router = s.newRouter()
	return s, nil
}

// ServeHTTP implements http.Handler by delegating to the internal chi
// router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) newRouter() chi.Router {
	r := chi.NewRouter()

	r.Post("/login", s.handleLogin)
	r.Post("/construct", s.handleConstruct)
	r.Get("/history", s.requireAuth(s.handleHistory))

	return r
}

type constructRequest struct {
	GrammarText string `json:"grammar_text"`
}

type constructResponse struct {
	Accepted  bool   `json:"accepted"`
	Error     string `json:"error,omitempty"`
	Table     string `json:"table,omitempty"`
	States    string `json:"states,omitempty"`
	NumStates int    `json:"num_states,omitempty"`
}

// handleConstruct parses the posted grammar text, builds its canonical
// LR(1) table, and returns the table/states dumps. Every attempt, success
// or failure, is recorded to the history log.
func (s *Server) handleConstruct(w http.ResponseWriter, r *http.Request) {
	var req constructRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	g, err := ingest.ParseText(req.GrammarText)
	if err != nil {
		s.recordAttempt(r, req.GrammarText, false, err.Error(), 0)
		writeJSON(w, http.StatusOK, constructResponse{Accepted: false, Error: err.Error()})
		return
	}

	col := automaton.Build(g)
	tbl, err := table.Build(col)
	if err != nil {
		s.recordAttempt(r, req.GrammarText, false, err.Error(), len(col.States))
		writeJSON(w, http.StatusOK, constructResponse{Accepted: false, Error: err.Error()})
		return
	}

	s.recordAttempt(r, req.GrammarText, true, "", len(col.States))
	writeJSON(w, http.StatusOK, constructResponse{
		Accepted:  true,
		Table:     tbl.String(),
		States:    tbl.StatesString(),
		NumStates: len(col.States),
	})
}

func (s *Server) recordAttempt(r *http.Request, grammarText string, succeeded bool, failureText string, numStates int) {
	if s.History == nil {
		return
	}
	if _, err := s.History.Record(r.Context(), history.Entry{
		GrammarText: grammarText,
		Succeeded:   succeeded,
		FailureText: failureText,
		NumStates:   numStates,
	}); err != nil {
		log.Printf("ERROR: recording construction history: %v", err)
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := bcrypt.CompareHashAndPassword(s.AdminHash, []byte(req.Password)); err != nil {
		writeJSONError(w, http.StatusUnauthorized, ErrBadCredentials.Error())
		return
	}

	claims := jwt.MapClaims{
		"iss": "lr1-diagserver",
		"sub": "admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	tokStr, err := tok.SignedString(s.Secret)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "could not generate token")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: tokStr})
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if len(authHeader) <= len(prefix) || authHeader[:len(prefix)] != prefix {
			writeJSONError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		tokStr := authHeader[len(prefix):]

		_, err := jwt.Parse(tokStr, func(t *jwt.Token) (interface{}, error) {
			return s.Secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer("lr1-diagserver"), jwt.WithLeeway(time.Minute))
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next(w, r)
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.History.List(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "could not list history")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: encoding response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
