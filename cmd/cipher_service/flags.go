package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"encryption-service/internal/storage"
)

type flags struct {
	serverAddr string
	storage    string
	logLevel   string
	secretCost int
}

func initFlags(args []string) (flags, error) {
	fs := flag.NewFlagSet("cipher_service", flag.ContinueOnError)
	serverAddr := fs.String("a", ":8080", "The address to bind the server to")
	storageKind := fs.String("s", storage.KindMemory, "Storage backend: memory or sqlite")
	logLevel := fs.String("l", "info", "Log level: debug, info, warn, error")
	secretCost := fs.Int("c", bcrypt.DefaultCost, "bcrypt cost for stored secrets")

	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}

	for key, target := range map[string]*string{
		"RUN_ADDRESS": serverAddr,
		"STORAGE":     storageKind,
		"LOG_LEVEL":   logLevel,
	} {
		if value, exist := os.LookupEnv(key); exist {
			if value == "" {
				return flags{}, fmt.Errorf("%s environment variable not set", key)
			}
			*target = value
		}
	}

	secretCostKey := "SECRET_COST"
	if value, exist := os.LookupEnv(secretCostKey); exist {
		cost, err := parseCost(value)
		if err != nil {
			return flags{}, fmt.Errorf("%s: %w", secretCostKey, err)
		}
		*secretCost = cost
	}

	if *storageKind != storage.KindMemory && *storageKind != storage.KindSQLite {
		return flags{}, fmt.Errorf("unknown storage %q", *storageKind)
	}
	if *secretCost < bcrypt.MinCost || *secretCost > bcrypt.MaxCost {
		return flags{}, fmt.Errorf("secret cost must be in [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost)
	}

	return flags{
		serverAddr: *serverAddr,
		storage:    *storageKind,
		logLevel:   *logLevel,
		secretCost: *secretCost,
	}, nil
}

func parseCost(value string) (int, error) {
	cost, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", value, err)
	}

	return cost, nil
}
