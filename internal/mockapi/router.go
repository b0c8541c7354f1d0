// Package mockapi офлайн сервер интервью для разработки и тестов.
package mockapi

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"interview-practice/internal/config"

	"github.com/gorilla/mux"
)

// Server хранит пользователей в памяти и отвечает вопросами из каталога
type Server struct {
	catalog *config.Catalog
	router  *mux.Router

	mu      sync.RWMutex
	users   map[string]*user // по id
	byLogin map[string]string
	resumes map[string]string // id пользователя -> имя файла
}

func New(catalog *config.Catalog) *Server {
	s := &Server{
		catalog: catalog,
		users:   make(map[string]*user),
		byLogin: make(map[string]string),
		resumes: make(map[string]string),
	}
	s.router = s.newRouter()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) newRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", s.handleRegister).Methods("POST")
	api.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
	api.HandleFunc("/auth/me", s.handleMe).Methods("GET")
	api.HandleFunc("/interview/questions", s.handleQuestions).Methods("POST")
	api.HandleFunc("/interview/submit", s.handleSubmit).Methods("POST")
	api.HandleFunc("/resume/upload", s.handleResume).Methods("POST")
	api.HandleFunc("/users/{id}", s.handleGetUser).Methods("GET")

	r.Use(logRequests)
	return r
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
