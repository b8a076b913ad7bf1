package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/DocIntakeAPI/internal/config"
	"github.com/akolanti/DocIntakeAPI/internal/data/redisStore"
	"github.com/akolanti/DocIntakeAPI/internal/domain/commonModels"
	"github.com/akolanti/DocIntakeAPI/pkg/logger_i"
)

type RedisRecordStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisRecordStore(ctx context.Context) *RedisRecordStore {
	redis := redisStore.GetRedisStore(ctx, config.RedisRecordStore)
	if redis == nil {
		return nil
	}
	return &RedisRecordStore{
		store:  redis,
		logger: logger_i.NewLogger("RecordStore"),
	}
}

func (s *RedisRecordStore) SaveRecord(ctx context.Context, record commonModels.ProcessingRecord) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "record Id", record.ProcessingId)
	log.Debug("saving record")
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, record.ProcessingId, data, config.RedisRecordStoreTTL)
	if err == nil {
		log.Debug("Saved record to Redis")
	}
	return err
}

func (s *RedisRecordStore) GetRecord(ctx context.Context, recordId string) (commonModels.ProcessingRecord, bool) {
	var record commonModels.ProcessingRecord
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "record Id", recordId)
	log.Debug("getting record")
	val, err := s.store.Get(ctx, recordId)
	if s.store.IsNil(err) {
		return record, false
	} else if err != nil {
		return record, false
	}

	log.Debug("Unmarshalling record")
	err = json.Unmarshal([]byte(val), &record)
	if err != nil {
		return record, false
	}

	log.Debug(": Record found in Redis")
	return record, true
}

func (s *RedisRecordStore) DeleteRecord(ctx context.Context, recordId string) {
	err := s.store.Del(ctx, recordId)
	if err != nil {
		s.logger.Error(recordId, "recordId", ": Error deleting record from Redis")
		return
	}
	s.logger.Debug(" Record deleted from Redis", "recordId:", recordId)
}

func TestRecordStore(store *redisStore.Store) *RedisRecordStore {
	return &RedisRecordStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
