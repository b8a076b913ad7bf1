package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD                         = false
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, it falls back to an internal in-memory store
	TRACE_ID_KEY                    = "traceId"
	RATE_LIMIT_PER_SECOND           = 2
	BURST_RATE_LIMIT_PER_SECOND     = 5

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	//IdleWorkerTimeout = 1 * time.Second //for tests

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second //uploads + synchronous extraction can run long
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//classification job buffer limit
	BufferLimit = 100

	//intake ceilings
	MaxUploadBytes int64 = 50 * 1024 * 1024
	MaxPDFPages          = 50

	//text ceilings
	ClassifyInputLimit       = 100_000
	ExternalClassifyLimit    = 90_000
	TranslateInputLimit      = 10_000
	LanguageDetectSampleSize = 1_000

	//language heuristic
	MalayalamRatioThreshold = 0.3

	//external classifier gate: the document must carry at least this many
	//non-whitespace characters before the external taxonomy call is attempted
	MinClassifiableChars = 20

	//ocr
	GeminiModelName = "gemini-2.5-flash-lite-preview-09-2025"
	OCRCallTimeout  = 30 * time.Second

	//translation collaborator
	TranslateEndpoint = "https://translation.googleapis.com/language/translate/v2"
	TranslateTimeout  = 30 * time.Second
	DefaultSourceLang = "ml"
	DefaultTargetLang = "en"

	//content-classifier collaborator
	ContentClassifierEndpoint = "https://language.googleapis.com/v1/documents:classifyText"
	ContentClassifierTimeout  = 30 * time.Second

	//circuit breaker
	BreakerConsecutiveFailures uint32 = 5
	BreakerOpenTimeout                = 60 * time.Second

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisRecordStore = 0
	RedisJobStore    = 1

	//redis timeouts
	RedisRecordStoreTTL = 24 * time.Hour
	RedisJobStoreTTL    = 1 * time.Hour

	//in-memory store janitor sweep interval
	RecordEvictionInterval = 10 * time.Minute
)
