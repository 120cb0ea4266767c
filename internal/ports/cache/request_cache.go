package cache

import "github.com/google/uuid"

// IRequestCache последний токен генерации по сессии
type IRequestCache interface {
	SetLastRequestID(sessionID string, requestID uuid.UUID)
	IsLastRequestID(sessionID string, requestID uuid.UUID) bool
}
