// Package vaulttest runs an in-memory SyncVault server for tests.
//
// It implements the REST surface the client consumes: JWT issuance on
// login/signup, device registration and snippet CRUD with the tag, type and
// deviceId listing filters. Failures can be injected per route.
package vaulttest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/xid"

	"tableflip.dev/syncvault/pkg/snippet"
)

// Request is a recorded incoming request.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          string
}

type failure struct {
	status  int
	message string
}

type account struct {
	user     snippet.User
	password string
}

// Server is a fake SyncVault backend.
type Server struct {
	*httptest.Server

	tb       testing.TB
	mu       sync.Mutex
	secret   []byte
	accounts map[string]*account // by email
	devices  map[string]*snippet.Device
	owners   map[string]string // device id -> user id
	snippets []*snippet.Snippet
	requests []Request
	failures map[string]failure
	now      func() time.Time
}

// New starts a server; it is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		tb:       t,
		secret:   []byte(xid.New().String() + "-vaulttest-secret"),
		accounts: make(map[string]*account),
		devices:  make(map[string]*snippet.Device),
		owners:   make(map[string]string),
		failures: make(map[string]failure),
		now:      time.Now,
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)
	r.Use(s.inject)

	r.Post("/auth/signup", s.handleSignup)
	r.Post("/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/devices", s.handleListDevices)
		r.Post("/devices/register", s.handleRegisterDevice)
		r.Delete("/devices/{id}", s.handleDeleteDevice)
		r.Get("/snippets", s.handleListSnippets)
		r.Get("/snippets/{id}", s.handleGetSnippet)
		r.Post("/snippets", s.handleCreateSnippet)
		r.Delete("/snippets/{id}", s.handleDeleteSnippet)
	})
	return r
}

// Fail makes every later request matching method and path answer status
// with message until Recover is called.
func (s *Server) Fail(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, message: message}
}

// Recover clears all injected failures.
func (s *Server) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]failure)
}

// Requests returns a copy of everything received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// CountRequests counts received requests for method and path.
func (s *Server) CountRequests(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// RevokeTokens rotates the signing key so every issued token is rejected.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secret = []byte(xid.New().String() + "-rotated")
}

// AddUser registers an account directly and returns a valid token.
func (s *Server) AddUser(email, password string) (snippet.User, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.addAccountLocked(email, password)
	token, err := s.issueLocked(acct.user.ID)
	if err != nil {
		s.tb.Fatalf("vaulttest: issue token: %v", err)
	}
	return acct.user, token
}

// AddDevice registers a device for userID.
func (s *Server) AddDevice(userID, name string) *snippet.Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addDeviceLocked(userID, name)
}

// AddSnippet stores sn for userID, filling id and timestamps when empty.
func (s *Server) AddSnippet(userID string, sn snippet.Snippet) *snippet.Snippet {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sn.ID == "" {
		sn.ID = xid.New().String()
	}
	if sn.Type == "" {
		sn.Type = snippet.Text
	}
	if sn.Tags == nil {
		sn.Tags = []string{}
	}
	sn.UserID = userID
	if sn.CreatedAt.IsZero() {
		sn.CreatedAt = snippet.Timestamp{Time: s.now().UTC()}
	}
	sn.UpdatedAt = sn.CreatedAt
	cp := sn
	s.snippets = append(s.snippets, &cp)
	return &cp
}

// Snippets returns the stored snippets of userID.
func (s *Server) Snippets(userID string) []snippet.Snippet {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]snippet.Snippet, 0)
	for _, sn := range s.snippets {
		if sn.UserID == userID {
			out = append(out, *sn)
		}
	}
	return out
}

func (s *Server) addAccountLocked(email, password string) *account {
	acct := &account{
		user: snippet.User{
			ID:        uuid.NewString(),
			Email:     email,
			CreatedAt: snippet.Timestamp{Time: s.now().UTC()},
		},
		password: password,
	}
	s.accounts[strings.ToLower(email)] = acct
	return acct
}

func (s *Server) addDeviceLocked(userID, name string) *snippet.Device {
	d := &snippet.Device{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: snippet.Timestamp{Time: s.now().UTC()},
	}
	s.devices[d.ID] = d
	s.owners[d.ID] = userID
	return d
}

func (s *Server) issueLocked(userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		ID:        xid.New().String(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) verify(raw string) (string, error) {
	s.mu.Lock()
	secret := s.secret
	s.mu.Unlock()

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

type ctxKey struct{}

func userFrom(ctx context.Context) string {
	v, _ := ctx.Value(ctxKey{}).(string)
	return v
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			Body:          string(body),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		f, ok := s.failures[r.Method+" "+r.URL.Path]
		s.mu.Unlock()
		if ok {
			writeError(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "Access token required")
			return
		}
		userID, err := s.verify(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, userID)))
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var creds snippet.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[strings.ToLower(creds.Email)]; exists {
		writeError(w, http.StatusConflict, "User already exists")
		return
	}
	acct := s.addAccountLocked(creds.Email, creds.Password)
	token, err := s.issueLocked(acct.user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusCreated, snippet.AuthResponse{Message: "User created successfully", Token: token, User: acct.user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds snippet.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[strings.ToLower(creds.Email)]
	if !ok || acct.password != creds.Password {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	token, err := s.issueLocked(acct.user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	writeJSON(w, http.StatusOK, snippet.AuthResponse{Message: "Login successful", Token: token, User: acct.user})
}

func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r.Context())
	s.mu.Lock()
	out := make([]*snippet.Device, 0)
	for id, d := range s.devices {
		if s.owners[id] == userID {
			out = append(out, d)
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt.Time) {
			return out[i].Name < out[j].Name
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt.Time)
	})
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		writeError(w, http.StatusBadRequest, "Device name is required")
		return
	}
	if len([]rune(body.Name)) > 128 {
		writeError(w, http.StatusBadRequest, "Device name too long")
		return
	}
	s.mu.Lock()
	d := s.addDeviceLocked(userFrom(r.Context()), body.Name)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owners[id] != userFrom(r.Context()) {
		writeError(w, http.StatusNotFound, "Device not found")
		return
	}
	delete(s.devices, id)
	delete(s.owners, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSnippets(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r.Context())
	q := r.URL.Query()
	tag, typ, deviceID := q.Get("tag"), q.Get("type"), q.Get("deviceId")

	s.mu.Lock()
	out := make([]*snippet.Snippet, 0)
	for _, sn := range s.snippets {
		if sn.UserID != userID {
			continue
		}
		if typ != "" && string(sn.Type) != typ {
			continue
		}
		if deviceID != "" && sn.DeviceID != deviceID {
			continue
		}
		if tag != "" && !contains(sn.Tags, tag) {
			continue
		}
		cp := *sn
		out = append(out, &cp)
	}
	s.mu.Unlock()
	// newest first
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetSnippet(w http.ResponseWriter, r *http.Request) {
	sn := s.find(userFrom(r.Context()), chi.URLParam(r, "id"))
	if sn == nil {
		writeError(w, http.StatusNotFound, "Snippet not found")
		return
	}
	writeJSON(w, http.StatusOK, sn)
}

func (s *Server) handleCreateSnippet(w http.ResponseWriter, r *http.Request) {
	var req snippet.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "Content is required")
		return
	}
	typ := req.Type
	if typ == "" {
		typ = snippet.Text
	}
	if !typ.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid type %q", typ))
		return
	}
	sn := s.AddSnippet(userFrom(r.Context()), snippet.Snippet{
		Content:  req.Content,
		Tags:     splitTags(req.Tags),
		DeviceID: req.DeviceID,
		Type:     typ,
	})
	writeJSON(w, http.StatusCreated, sn)
}

func (s *Server) handleDeleteSnippet(w http.ResponseWriter, r *http.Request) {
	userID, id := userFrom(r.Context()), chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sn := range s.snippets {
		if sn.ID == id && sn.UserID == userID {
			s.snippets = append(s.snippets[:i], s.snippets[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Snippet not found")
}

func (s *Server) find(userID, id string) *snippet.Snippet {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sn := range s.snippets {
		if sn.ID == id && sn.UserID == userID {
			cp := *sn
			return &cp
		}
	}
	return nil
}

func splitTags(raw string) []string {
	tags := make([]string, 0)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError answers status with {"error": message}, or with an empty
// object when message is blank so clients fall back to their own text.
func writeError(w http.ResponseWriter, status int, message string) {
	body := map[string]string{}
	if message != "" {
		body["error"] = message
	}
	writeJSON(w, status, body)
}
