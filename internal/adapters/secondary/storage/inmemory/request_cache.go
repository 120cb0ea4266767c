package inmemory

import (
	"sync"

	"github.com/admin/kundali-service/internal/ports/cache"
	"github.com/google/uuid"
)

// RequestCache in-memory реализация кэша последних токенов генерации
type RequestCache struct {
	mu            sync.RWMutex
	lastRequestID map[string]uuid.UUID // session_id -> request_id
}

// NewRequestCache создаёт новый in-memory кэш токенов
func NewRequestCache() cache.IRequestCache {
	return &RequestCache{
		lastRequestID: make(map[string]uuid.UUID),
	}
}

// SetLastRequestID делает requestID последним для сессии
func (c *RequestCache) SetLastRequestID(sessionID string, requestID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastRequestID[sessionID] = requestID
}

// IsLastRequestID проверяет, что после requestID в сессии не было нового прогона
func (c *RequestCache) IsLastRequestID(sessionID string, requestID uuid.UUID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	lastID, exists := c.lastRequestID[sessionID]
	return exists && lastID == requestID
}
