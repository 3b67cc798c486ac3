package config

import "os"

// getEnv dengan fallback untuk development lokal
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// ServerPort is the HTTP listen port.
func ServerPort() string {
	return getEnv("PORT", "8080")
}

// APIBaseURL is the REST endpoint base consumed by the notification client.
func APIBaseURL() string {
	return getEnv("API_BASE_URL", "http://localhost:8080")
}

// RealtimeWSURL is the WebSocket endpoint base consumed by the notification
// client, with a local-development fallback.
func RealtimeWSURL() string {
	return getEnv("REALTIME_WS_URL", "ws://localhost:8080/ws")
}

// CORSAllowedOrigin is the origin the CORS middleware allows, with the
// local frontend dev server as fallback.
func CORSAllowedOrigin() string {
	return getEnv("CORS_ALLOWED_ORIGIN", "http://127.0.0.1:5500")
}

// MongoURI for the document store connection.
func MongoURI() string {
	return getEnv("MONGO_URI", "mongodb://localhost:27017")
}

// MongoDBName is the database holding the ads/users/notifications collections.
func MongoDBName() string {
	return getEnv("MONGO_DB_NAME", "adscreener")
}
