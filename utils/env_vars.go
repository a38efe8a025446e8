package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type envTypes interface {
	bool | int | string | time.Duration
}

func parseEnv[T envTypes](envVar, envValue string) T {
	var out T
	var err error

	switch ptr := any(&out).(type) {
	case *bool:
		*ptr, err = strconv.ParseBool(envValue)
	case *int:
		*ptr, err = strconv.Atoi(envValue)
	case *string:
		*ptr = envValue
	case *time.Duration:
		*ptr, err = time.ParseDuration(envValue)
	}
	if err != nil {
		panic(fmt.Sprintf("environment variable %s is not valid: %q cannot be parsed as %T", envVar, envValue, out))
	}
	return out
}

func GetEnv[T envTypes](envVar string, defaultValue T) T {
	envValue, ok := os.LookupEnv(envVar)
	if !ok || envValue == "" {
		return defaultValue
	}
	return parseEnv[T](envVar, envValue)
}

func GetRequiredEnv[T envTypes](envVar string) T {
	envValue, ok := os.LookupEnv(envVar)
	if !ok || envValue == "" {
		log.Fatalf("%s environment variable is required", envVar)
	}
	return parseEnv[T](envVar, envValue)
}
