package config

import "os"

// Addr returns the listen address, ":8080" unless APP_PORT is set.
func Addr() string {
	if port, ok := os.LookupEnv("APP_PORT"); ok {
		return ":" + port
	}
	return ":8080"
}

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}
