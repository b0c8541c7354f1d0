package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

type user struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	hash     []byte
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c credentials) logins() []string {
	var out []string
	for _, v := range []string{c.Username, c.Email} {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if creds.Username == "" || creds.Email == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not hash password")
		return
	}

	s.mu.Lock()
	for _, login := range creds.logins() {
		if _, exists := s.byLogin[login]; exists {
			s.mu.Unlock()
			writeError(w, http.StatusConflict, "User already exists")
			return
		}
	}
	u := &user{
		ID:       uuid.New().String(),
		Username: creds.Username,
		Email:    creds.Email,
		hash:     hash,
	}
	s.users[u.ID] = u
	for _, login := range creds.logins() {
		s.byLogin[login] = u.ID
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"data": u})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.RLock()
	var u *user
	for _, login := range creds.logins() {
		if id, ok := s.byLogin[login]; ok {
			u = s.users[id]
			break
		}
	}
	s.mu.RUnlock()

	if u == nil || bcrypt.CompareHashAndPassword(u.hash, []byte(creds.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authorized(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": u})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.RLock()
	u, ok := s.users[id]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": u})
}

// authorized ищет пользователя по заголовку Authorization, в котором лежит id
func (s *Server) authorized(r *http.Request) (*user, bool) {
	id := strings.TrimSpace(r.Header.Get("Authorization"))
	if id == "" {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}
