package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-ID"
	SessionIDKey  = "session_id"

	maxSessionIDLen = 128
)

// Session берёт id сессии из заголовка, без него выдаёт новый и возвращает его клиенту
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if id == "" || len(id) > maxSessionIDLen {
			id = uuid.NewString()
		}

		c.Set(SessionIDKey, id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}
