package constants

import "time"

const (
	AccountCacheTTL     = 1 * time.Hour
	SummonerCacheTTL    = 1 * time.Hour
	LeagueCacheTTL      = 5 * time.Minute
	MatchListCacheTTL   = 5 * time.Minute
	MatchDetailCacheTTL = 24 * time.Hour
	CacheWriteTimeout   = 2 * time.Second
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	SyncTimeout        = 2 * time.Minute
	CardTimeout        = 45 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	RankedSoloQueueID   = 420
	RankedSoloQueueType = "RANKED_SOLO_5x5"
	DefaultPlatform     = "na1"
)

const (
	RiotMaxRetries = 3
	RiotRetryBase  = 500 * time.Millisecond
)

const (
	CardPoolSize       = 15
	CardPromptPoolSize = 10
	CardMinGames       = 3
	CardMaxTokens      = 1024
	PatchVersion       = "14.3"
)

const (
	ScheduledSyncBatch = 50
)
