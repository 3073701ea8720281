package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time parses token lifetimes
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, durations for token
// lifetimes, int64 for byte sizes.
type Config struct {
	Env              string        // application environment (e.g. "development", "production")
	Port             string        // HTTP port to listen on
	MongoURI         string        // MongoDB connection string
	MongoDB          string        // MongoDB database name
	JWTSecret        string        // secret used to sign JWTs
	JWTExpire        time.Duration // access token time-to-live
	BcryptCost       int           // bcrypt cost for password hashing
	GeocoderProvider string        // geocoding provider ("mapquest" or "openstreetmap")
	GeocoderKey      string        // API key for keyed geocoding providers
	FileUploadPath   string        // directory where uploaded photos are stored
	MaxFileUpload    int64         // maximum upload size in bytes
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Everything else has
// a development-friendly default.
func Load() Config {
	return Config{
		Env:              envStr("APP_ENV", "development"),
		Port:             envStr("APP_PORT", "5000"),
		MongoURI:         must("MONGO_URI"),
		MongoDB:          envStr("MONGO_DB", "devcamper"),
		JWTSecret:        must("JWT_SECRET"),
		JWTExpire:        envDur("JWT_EXPIRE", 30*24*time.Hour),
		BcryptCost:       envInt("BCRYPT_COST", 10),
		GeocoderProvider: envStr("GEOCODER_PROVIDER", "openstreetmap"),
		GeocoderKey:      os.Getenv("GEOCODER_API_KEY"),
		FileUploadPath:   envStr("FILE_UPLOAD_PATH", "./public/uploads"),
		MaxFileUpload:    int64(envInt("MAX_FILE_UPLOAD", 1000000)),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// envStr returns the value of an environment variable or a default when unset.
func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt is like envStr but converts the retrieved string into an integer.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

// envDur parses a duration such as "720h" or "30m" from the environment.
func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
