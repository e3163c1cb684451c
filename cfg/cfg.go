// Package cfg
package cfg

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ModeDev        = "dev"
	ModeProduction = "prod"
)

type AnalyticsConfig struct {
	ServerMode        string
	Port              string
	HttpRequestSecret string

	LogLevel  string
	SentryDSN string

	DefaultAPITimeout time.Duration

	CacheEngine      string
	CacheURL         string
	CacheDB          int
	CachePassword    string
	CacheIsFlush     bool
	CacheExpiredTime time.Duration

	StorageDriver  string
	StorageURI     string
	StorageDB      string
	StorageMinConn int
	StorageMaxConn int
	StorageIsFlush bool

	Protocols []string

	WatcherInterval time.Duration

	SimilarityThreshold float64
	NakamotoThreshold   float64
}

func New() (AnalyticsConfig, error) {
	apiDefaultTimeoutStr := os.Getenv("DEFAULT_API_TIMEOUT")
	apiDefaultTimeout, err := strconv.Atoi(apiDefaultTimeoutStr)
	if err != nil {
		apiDefaultTimeout = 2
	}

	cacheExpiredTimeStr := os.Getenv("CACHE_EXPIRED_TIME")
	cacheExpiredTime, err := strconv.Atoi(cacheExpiredTimeStr)
	if err != nil {
		cacheExpiredTime = 12
	}

	cacheDBStr := os.Getenv("CACHE_DB")
	cacheDB, err := strconv.Atoi(cacheDBStr)
	if err != nil {
		cacheDB = 0
	}

	cacheIsFlushStr := os.Getenv("CACHE_IS_FLUSH")
	cacheIsFlush, err := strconv.ParseBool(cacheIsFlushStr)
	if err != nil {
		cacheIsFlush = false
	}

	var protocols []string
	protocolsStr := os.Getenv("PROTOCOLS")
	if protocolsStr != "" {
		protocols = strings.Split(protocolsStr, ",")
	}

	watcherIntervalStr := os.Getenv("WATCHER_INTERVAL")
	watcherInterval, err := time.ParseDuration(watcherIntervalStr)
	if err != nil {
		watcherInterval = 5 * time.Minute
	}

	storageMinConnStr := os.Getenv("STORAGE_MIN_CONN")
	storageMinConn, err := strconv.Atoi(storageMinConnStr)
	if err != nil {
		storageMinConn = 8
	}

	storageMaxConnStr := os.Getenv("STORAGE_MAX_CONN")
	storageMaxConn, err := strconv.Atoi(storageMaxConnStr)
	if err != nil {
		storageMaxConn = 32
	}

	storageIsFlushStr := os.Getenv("STORAGE_IS_FLUSH")
	storageIsFLush, err := strconv.ParseBool(storageIsFlushStr)
	if err != nil {
		storageIsFLush = false
	}

	similarityThresholdStr := os.Getenv("SIMILARITY_THRESHOLD")
	similarityThreshold, err := strconv.ParseFloat(similarityThresholdStr, 64)
	if err != nil {
		similarityThreshold = 0.7
	}

	nakamotoThresholdStr := os.Getenv("NAKAMOTO_THRESHOLD")
	nakamotoThreshold, err := strconv.ParseFloat(nakamotoThresholdStr, 64)
	if err != nil {
		nakamotoThreshold = 51
	}

	cfg := AnalyticsConfig{
		ServerMode:        os.Getenv("SERVER_MODE"),
		Port:              os.Getenv("PORT"),
		HttpRequestSecret: os.Getenv("HTTP_REQUEST_SECRET"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		SentryDSN:         os.Getenv("SENTRY_DSN"),
		DefaultAPITimeout: time.Duration(apiDefaultTimeout) * time.Second,
		CacheEngine:       os.Getenv("CACHE_ENGINE"),
		CacheURL:          os.Getenv("CACHE_URI"),
		CacheDB:           cacheDB,
		CachePassword:     os.Getenv("CACHE_PASSWORD"),
		CacheExpiredTime:  time.Duration(cacheExpiredTime) * time.Hour,

		CacheIsFlush: cacheIsFlush,

		StorageDriver:  os.Getenv("STORAGE_DRIVER"),
		StorageURI:     os.Getenv("STORAGE_URI"),
		StorageDB:      os.Getenv("STORAGE_DB"),
		StorageMinConn: storageMinConn,
		StorageMaxConn: storageMaxConn,
		StorageIsFlush: storageIsFLush,

		Protocols: protocols,

		WatcherInterval: watcherInterval,

		SimilarityThreshold: similarityThreshold,
		NakamotoThreshold:   nakamotoThreshold,
	}

	return cfg, nil
}
