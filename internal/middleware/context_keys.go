package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const deviceIDKey = contextKey("deviceID")

// DeviceIDHeader carries the offline-capable client's device identifier.
// Every mutation increments that device's version vector counter.
const DeviceIDHeader = "X-Device-ID"

// DeviceIDMiddleware extracts the device identifier header into the request
// context. Mutating handlers require it; reads tolerate its absence.
func DeviceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader(DeviceIDHeader)
		if deviceID != "" {
			c.Set(string(deviceIDKey), deviceID)
		}
		c.Next()
	}
}

// GetDeviceIDFromContext retrieves the acting device ID from the Gin context.
func GetDeviceIDFromContext(c *gin.Context) (string, bool) {
	deviceIDVal, exists := c.Get(string(deviceIDKey))
	if !exists {
		return "", false
	}
	deviceID, ok := deviceIDVal.(string)
	if !ok || deviceID == "" {
		return "", false
	}
	return deviceID, true
}

// RequireDeviceID aborts with 400 when the device header is missing. Applied
// to mutating routes only.
func RequireDeviceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetDeviceIDFromContext(c); !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": DeviceIDHeader + " header is required"})
			return
		}
		c.Next()
	}
}
