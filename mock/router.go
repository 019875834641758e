package mock

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/viant/postboard/schema"
)

type contextKey string

const identityKey contextKey = "identity"

// Handler returns chi router serving the API
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.countHits)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/login", s.login)
		r.Get("/refresh", s.refresh)
		r.With(s.authenticate).Get("/logout", s.logout)
	})
	// authenticate wraps routes, not sub-routers: countHits needs the full pattern of rejected requests
	r.Route("/users", func(r chi.Router) {
		r = r.With(s.authenticate)
		r.Get("/profile", s.profile)
		r.Get("/list", s.listUsers)
		r.Get("/single-user/{id}", s.singleUser)
		r.Patch("/update", s.updateMyAccount)
		r.With(requireRole(schema.Elevated)).Patch("/update-user", s.updateUsersAccount)
	})
	r.With(s.authenticate).Get("/posts", s.listPosts)
	r.Route("/post", func(r chi.Router) {
		r = r.With(s.authenticate)
		r.Post("/create", s.createPostHandler)
		r.Get("/single/{id}", s.singlePost)
		r.Get("/my-posts", s.myPosts)
		r.Patch("/update", s.updateMyPost)
		r.Delete("/delete", s.deleteMyPost)
	})
	return r
}

// Server represents running mock API
type Server struct {
	*httptest.Server
	Service *Service
}

// NewHTTPTestServer starts a mock API server
func NewHTTPTestServer(options ...Option) *Server {
	service := New(options...)
	return &Server{Server: httptest.NewServer(service.Handler()), Service: service}
}

func (s *Service) countHits(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			s.hit(r.Method + " " + rctx.RoutePattern())
		}
	})
}

func (s *Service) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || raw == "" {
			writeError(w, http.StatusUnauthorized, "Missing access token")
			return
		}
		claims, err := s.verifyToken(raw)
		if err != nil {
			writeError(w, http.StatusForbidden, "Forbidden: access token expired")
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, *claims.UserInfo)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requireRole(allowed schema.Roles) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allowed.Contains(identity(r).Role) {
				writeError(w, http.StatusUnauthorized, "Insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func identity(r *http.Request) schema.Identity {
	ret, _ := r.Context().Value(identityKey).(schema.Identity)
	return ret
}

func (s *Service) register(w http.ResponseWriter, r *http.Request) {
	var credentials schema.Credentials
	if !readJSON(w, r, &credentials) {
		return
	}
	if credentials.Username == "" || credentials.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[credentials.Username]; ok {
		writeError(w, http.StatusConflict, "Username already taken")
		return
	}
	s.createAccount(credentials.Username, credentials.Password, schema.RoleUser)
	writeJSON(w, http.StatusCreated, schema.MessageResult{Message: "User registered"})
}

func (s *Service) login(w http.ResponseWriter, r *http.Request) {
	var credentials schema.Credentials
	if !readJSON(w, r, &credentials) {
		return
	}
	s.mu.Lock()
	id, ok := s.byName[credentials.Username]
	var acc *account
	if ok {
		acc = s.accounts[id]
	}
	if acc == nil || acc.password != credentials.Password {
		s.mu.Unlock()
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	session := uuid.NewString()
	s.sessions[session] = id
	user := acc.user
	s.mu.Unlock()

	token, err := s.IssueToken(schema.Identity{ID: user.ID, Username: user.Username, Role: user.Role})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    session,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(s.RefreshTTL),
	})
	writeJSON(w, http.StatusOK, schema.AccessTokenResult{AccessToken: token})
}

func (s *Service) refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshCookie)
	if err != nil || s.refreshOff.Load() {
		writeError(w, http.StatusUnauthorized, "Refresh token expired, please login")
		return
	}
	s.mu.RLock()
	id, ok := s.sessions[cookie.Value]
	var acc *account
	if ok {
		acc = s.accounts[id]
	}
	s.mu.RUnlock()
	if acc == nil {
		writeError(w, http.StatusUnauthorized, "Refresh token expired, please login")
		return
	}
	token, err := s.IssueToken(schema.Identity{ID: acc.user.ID, Username: acc.user.Username, Role: acc.user.Role})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, schema.AccessTokenResult{AccessToken: token})
}

func (s *Service) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(RefreshCookie); err == nil {
		s.mu.Lock()
		delete(s.sessions, cookie.Value)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: RefreshCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	writeJSON(w, http.StatusOK, schema.MessageResult{Message: "Logged out"})
}

func (s *Service) profile(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	acc, ok := s.accounts[identity(r).ID]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, schema.ProfileResult{Profile: acc.user})
}

func (s *Service) listUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	s.mu.RLock()
	users := s.sortedUsers()
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, schema.UsersResult{Users: paginate(users, page, limit), Count: len(users)})
}

func (s *Service) singleUser(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	acc, ok := s.accounts[chi.URLParam(r, "id")]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, schema.UserResult{User: acc.user})
}

func (s *Service) updateMyAccount(w http.ResponseWriter, r *http.Request) {
	var payload schema.UpdateMyAccount
	if !readJSON(w, r, &payload) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[identity(r).ID]
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if payload.NewPassword != "" {
		if payload.OldPassword != acc.password {
			writeError(w, http.StatusBadRequest, "Old password does not match")
			return
		}
		acc.password = payload.NewPassword
	}
	if payload.Username != "" && payload.Username != acc.user.Username {
		if _, taken := s.byName[payload.Username]; taken {
			writeError(w, http.StatusConflict, "Username already taken")
			return
		}
		delete(s.byName, acc.user.Username)
		acc.user.Username = payload.Username
		s.byName[payload.Username] = acc.user.ID
	}
	acc.user.Version++
	acc.user.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, schema.UpdatedUserResult{UpdatedUser: acc.user})
}

func (s *Service) updateUsersAccount(w http.ResponseWriter, r *http.Request) {
	var payload schema.UpdateUsersAccount
	if !readJSON(w, r, &payload) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[payload.ID]
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if payload.Username != "" && payload.Username != acc.user.Username {
		delete(s.byName, acc.user.Username)
		acc.user.Username = payload.Username
		s.byName[payload.Username] = acc.user.ID
	}
	if payload.Password != "" {
		acc.password = payload.Password
	}
	if payload.Role != schema.RoleUndefined {
		if !payload.Role.Valid() {
			writeError(w, http.StatusBadRequest, "Invalid role")
			return
		}
		acc.user.Role = payload.Role
	}
	acc.user.Version++
	writeJSON(w, http.StatusOK, schema.UpdatedUserResult{UpdatedUser: acc.user})
}

func (s *Service) createPostHandler(w http.ResponseWriter, r *http.Request) {
	var payload schema.CreatePost
	if !readJSON(w, r, &payload) {
		return
	}
	if payload.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	s.mu.Lock()
	post := s.createPost(identity(r).ID, payload.Title, payload.Content)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, schema.PostResult{Message: "Post created", Post: post})
}

func (s *Service) singlePost(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	post, ok := s.posts[chi.URLParam(r, "id")]
	var aCopy schema.Post
	if ok {
		aCopy = *post
	}
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	writeJSON(w, http.StatusOK, schema.PostResult{Message: "Post found", Post: aCopy})
}

func (s *Service) listPosts(w http.ResponseWriter, r *http.Request) {
	s.writePosts(w, r, nil)
}

func (s *Service) myPosts(w http.ResponseWriter, r *http.Request) {
	userID := identity(r).ID
	s.writePosts(w, r, func(post *schema.Post) bool { return post.UserID == userID })
}

func (s *Service) writePosts(w http.ResponseWriter, r *http.Request, filter func(post *schema.Post) bool) {
	page, limit := pagination(r)
	s.mu.RLock()
	posts := s.sortedPosts(filter)
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, schema.PostsResult{Message: "Posts found", Posts: paginate(posts, page, limit), Count: len(posts)})
}

func (s *Service) updateMyPost(w http.ResponseWriter, r *http.Request) {
	var payload schema.UpdateMyPost
	if !readJSON(w, r, &payload) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[payload.PostID]
	if !ok || post.UserID != identity(r).ID {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if payload.Title != "" {
		post.Title = payload.Title
	}
	if payload.Content != "" {
		post.Content = payload.Content
	}
	post.Version++
	writeJSON(w, http.StatusOK, schema.UpdatedPostResult{Message: "Post updated", UpdatedPost: *post})
}

func (s *Service) deleteMyPost(w http.ResponseWriter, r *http.Request) {
	var payload schema.DeleteMyPost
	if !readJSON(w, r, &payload) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[payload.PostID]
	if !ok || post.UserID != identity(r).ID {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	delete(s.posts, payload.PostID)
	writeJSON(w, http.StatusOK, schema.MessageResult{Message: "Post deleted"})
}

func pagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

func readJSON(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, schema.ErrorBody{Message: message, IsError: true})
}
