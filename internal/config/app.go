package config

import "os"

func Addr() string {
	if addr, ok := os.LookupEnv("SWEEPER_ADDR"); ok {
		return addr
	}
	return ":8080"
}

func LogFile() string {
	return os.Getenv("SWEEPER_LOG_FILE")
}
