package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppPort        string
	CatalogBackend string // redis | postgres | memory
	DBDSN          string
	RemoteBaseURL  string
	MediaUploadURL string
	MediaDeleteURL string
	SessionSecret  string
	SessionTTLMin  int
	AllowOrigins   string
}

func Load() Config {
	ttl, _ := strconv.Atoi(get("SESSION_TTL_MIN", "10080"))
	return Config{
		AppPort:        get("APP_PORT", "8080"),
		CatalogBackend: get("CATALOG_BACKEND", "redis"),
		DBDSN:          get("DB_DSN", ""),
		RemoteBaseURL:  get("REMOTE_API_BASE_URL", "https://dummyjson.com"),
		MediaUploadURL: get("MEDIA_UPLOAD_URL", ""),
		MediaDeleteURL: get("MEDIA_DELETE_URL", ""),
		SessionSecret:  must("SESSION_SECRET"),
		SessionTTLMin:  ttl,
		AllowOrigins:   get("ALLOW_ORIGINS", "http://127.0.0.1:3000, http://localhost:3000"),
	}
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
