package store

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/DocIntakeAPI/internal/config"
	"github.com/akolanti/DocIntakeAPI/internal/domain/jobModel"
	"github.com/akolanti/DocIntakeAPI/pkg/logger_i"
)

var inMemJobLogger = logger_i.NewLogger("InMem JobStore")

type expiringJob struct {
	job       jobModel.Job
	expiresAt time.Time
}

// InMemoryJobStore keeps jobs with the same TTL as the Redis store. A
// janitor goroutine sweeps expired entries so the map cannot grow
// without bound while the process is up.
type InMemoryJobStore struct {
	jobMutex *sync.RWMutex
	jobMap   map[string]expiringJob
	ttl      time.Duration
}

func InitInMemoryJobStore(ctx context.Context) *InMemoryJobStore {
	s := &InMemoryJobStore{
		jobMutex: new(sync.RWMutex),
		jobMap:   make(map[string]expiringJob),
		ttl:      config.RedisJobStoreTTL,
	}
	go s.evictExpired(ctx, config.RecordEvictionInterval)
	return s
}

func (store *InMemoryJobStore) SaveJob(ctx context.Context, jobToStore jobModel.Job) error {
	store.jobMutex.Lock()
	defer store.jobMutex.Unlock()
	store.jobMap[jobToStore.RecordId] = expiringJob{
		job:       jobToStore,
		expiresAt: time.Now().Add(store.ttl),
	}
	inMemJobLogger.Info(jobToStore.RecordId, " : Saved job to store")
	return nil
}

func (store *InMemoryJobStore) GetJob(ctx context.Context, recordId string) (jobModel.Job, bool) {
	store.jobMutex.RLock()
	defer store.jobMutex.RUnlock()
	entry, found := store.jobMap[recordId]
	if found && time.Now().After(entry.expiresAt) {
		return jobModel.Job{}, false
	}
	inMemJobLogger.Info(recordId, " : Is job found :", found)
	return entry.job, found
}

func (store *InMemoryJobStore) DeleteJob(ctx context.Context, recordId string) {
	store.jobMutex.Lock()
	defer store.jobMutex.Unlock()
	delete(store.jobMap, recordId)
}

func (store *InMemoryJobStore) evictExpired(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			store.jobMutex.Lock()
			for id, entry := range store.jobMap {
				if now.After(entry.expiresAt) {
					delete(store.jobMap, id)
				}
			}
			store.jobMutex.Unlock()
		}
	}
}
