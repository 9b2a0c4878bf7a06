package middleware

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

const CSRFHeader = "X-CSRF-Token"

// CSRFTokenStore issues single-use tokens that expire after ttl.
type CSRFTokenStore struct {
	tokens map[string]time.Time
	mutex  sync.Mutex
	ttl    time.Duration
	now    func() time.Time

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewCSRFTokenStore(ttl time.Duration) *CSRFTokenStore {
	return newCSRFTokenStore(ttl, time.Now)
}

func newCSRFTokenStore(ttl time.Duration, now func() time.Time) *CSRFTokenStore {
	store := &CSRFTokenStore{
		tokens: make(map[string]time.Time),
		ttl:    ttl,
		now:    now,
		done:   make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanup(cleanupInterval(ttl))

	return store
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return time.Minute
	}
	if ttl < 10*time.Minute {
		return ttl
	}
	return 10 * time.Minute
}

// Close stops the cleanup goroutine.
func (store *CSRFTokenStore) Close() {
	store.closeOnce.Do(func() { close(store.done) })
	store.wg.Wait()
}

func (store *CSRFTokenStore) cleanup(interval time.Duration) {
	defer store.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-store.done:
			return
		case <-ticker.C:
			store.purgeExpired()
		}
	}
}

func (store *CSRFTokenStore) purgeExpired() {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	now := store.now()
	for token, expiry := range store.tokens {
		if now.After(expiry) {
			delete(store.tokens, token)
		}
	}
}

func (store *CSRFTokenStore) GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(bytes)

	store.mutex.Lock()
	store.tokens[token] = store.now().Add(store.ttl)
	store.mutex.Unlock()

	return token, nil
}

// ConsumeToken validates and removes token in one step.
func (store *CSRFTokenStore) ConsumeToken(token string) bool {
	if token == "" {
		return false
	}

	store.mutex.Lock()
	defer store.mutex.Unlock()

	expiry, exists := store.tokens[token]
	if !exists {
		return false
	}
	delete(store.tokens, token)
	return !store.now().After(expiry)
}

// CSRFMiddleware rejects state-changing requests without a valid token.
func CSRFMiddleware(store *CSRFTokenStore, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
				next.ServeHTTP(w, r)
				return
			}

			token := r.Header.Get(CSRFHeader)
			if !store.ConsumeToken(token) {
				logger.Warn("rejected request with invalid csrf token",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path))
				http.Error(w, "Invalid or missing CSRF token", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func CSRFTokenHandler(store *CSRFTokenStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := store.GenerateToken()
		if err != nil {
			http.Error(w, "Failed to generate token", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"csrf_token": token})
	}
}
