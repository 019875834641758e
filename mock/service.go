package mock

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/viant/postboard/schema"
)

const (
	// RefreshCookie carries the refresh credential
	RefreshCookie = "refreshToken"
	defaultSecret = "mock-secret"
)

type account struct {
	user     schema.User
	password string
}

// Service holds mock API state
type Service struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	mu         sync.RWMutex
	accounts   map[string]*account
	byName     map[string]string
	posts      map[string]*schema.Post
	sessions   map[string]string
	generation atomic.Int64
	refreshOff atomic.Bool
	hits       map[string]int
}

type Option func(*Service)

// WithSecret sets signing secret
func WithSecret(secret string) Option {
	return func(s *Service) {
		s.Secret = []byte(secret)
	}
}

// WithAccessTTL sets access token ttl
func WithAccessTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.AccessTTL = ttl
	}
}

// Seed creates an account and returns its user document
func (s *Service) Seed(username, password string, role schema.Role) schema.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createAccount(username, password, role)
}

func (s *Service) createAccount(username, password string, role schema.Role) schema.User {
	now := time.Now().UTC().Format(time.RFC3339)
	user := schema.User{
		BaseEntity: schema.BaseEntity{ID: uuid.NewString()},
		Username:   username,
		Role:       role,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.accounts[user.ID] = &account{user: user, password: password}
	s.byName[username] = user.ID
	return user
}

// SeedPost creates a post owned by userID
func (s *Service) SeedPost(userID, title, content string) schema.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createPost(userID, title, content)
}

func (s *Service) createPost(userID, title, content string) schema.Post {
	post := schema.Post{
		BaseEntity: schema.BaseEntity{ID: uuid.NewString()},
		Title:      title,
		Content:    content,
		UserID:     userID,
	}
	if acc, ok := s.accounts[userID]; ok {
		post.Author = acc.user.Username
	}
	s.posts[post.ID] = &post
	return post
}

// ExpireAccessTokens makes every issued access token answer 403
func (s *Service) ExpireAccessTokens() {
	s.generation.Add(1)
}

// DisableRefresh makes the refresh endpoint fail
func (s *Service) DisableRefresh(disabled bool) {
	s.refreshOff.Store(disabled)
}

// Hits returns number of requests served by route pattern, e.g. "GET /auth/refresh"
func (s *Service) Hits(route string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits[route]
}

func (s *Service) hit(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hits[route]++
}

func (s *Service) sortedUsers() []*schema.User {
	var ret []*schema.User
	for _, acc := range s.accounts {
		user := acc.user
		ret = append(ret, &user)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Username < ret[j].Username })
	return ret
}

func (s *Service) sortedPosts(filter func(post *schema.Post) bool) []*schema.Post {
	var ret []*schema.Post
	for _, post := range s.posts {
		if filter != nil && !filter(post) {
			continue
		}
		aCopy := *post
		ret = append(ret, &aCopy)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Title < ret[j].Title })
	return ret
}

// New creates a mock service
func New(options ...Option) *Service {
	ret := &Service{
		Secret:     []byte(defaultSecret),
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
		accounts:   map[string]*account{},
		byName:     map[string]string{},
		posts:      map[string]*schema.Post{},
		sessions:   map[string]string{},
		hits:       map[string]int{},
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

func paginate[T any](items []T, page, limit int) []T {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
