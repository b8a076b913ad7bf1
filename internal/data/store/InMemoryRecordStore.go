package store

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/DocIntakeAPI/internal/config"
	"github.com/akolanti/DocIntakeAPI/internal/domain/commonModels"
	"github.com/akolanti/DocIntakeAPI/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem RecordStore")

type expiringRecord struct {
	record    commonModels.ProcessingRecord
	expiresAt time.Time
}

// InMemoryRecordStore keeps records with the same TTL as the Redis store.
// A janitor goroutine sweeps expired entries so the map cannot grow
// without bound while the process is up.
type InMemoryRecordStore struct {
	recordMutex *sync.RWMutex
	recordMap   map[string]expiringRecord
	ttl         time.Duration
}

func InitInMemoryRecordStore(ctx context.Context) *InMemoryRecordStore {
	s := &InMemoryRecordStore{
		recordMutex: new(sync.RWMutex),
		recordMap:   make(map[string]expiringRecord),
		ttl:         config.RedisRecordStoreTTL,
	}
	go s.evictExpired(ctx, config.RecordEvictionInterval)
	return s
}

func (store *InMemoryRecordStore) SaveRecord(ctx context.Context, record commonModels.ProcessingRecord) error {
	store.recordMutex.Lock()
	defer store.recordMutex.Unlock()
	store.recordMap[record.ProcessingId] = expiringRecord{
		record:    record,
		expiresAt: time.Now().Add(store.ttl),
	}
	inMemLogger.Info(record.ProcessingId, " : Saved record to store")
	return nil
}

func (store *InMemoryRecordStore) GetRecord(ctx context.Context, recordId string) (commonModels.ProcessingRecord, bool) {
	store.recordMutex.RLock()
	defer store.recordMutex.RUnlock()
	entry, found := store.recordMap[recordId]
	if found && time.Now().After(entry.expiresAt) {
		return commonModels.ProcessingRecord{}, false
	}
	inMemLogger.Info(recordId, " : Is record found :", found)
	return entry.record, found
}

func (store *InMemoryRecordStore) DeleteRecord(ctx context.Context, recordId string) {
	store.recordMutex.Lock()
	defer store.recordMutex.Unlock()
	delete(store.recordMap, recordId)
}

func (store *InMemoryRecordStore) evictExpired(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			store.recordMutex.Lock()
			for id, entry := range store.recordMap {
				if now.After(entry.expiresAt) {
					delete(store.recordMap, id)
				}
			}
			store.recordMutex.Unlock()
		}
	}
}
