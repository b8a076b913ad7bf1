package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/DocIntakeAPI/internal/config"
	"github.com/akolanti/DocIntakeAPI/internal/data/redisStore"
	"github.com/akolanti/DocIntakeAPI/internal/domain/jobModel"
	"github.com/akolanti/DocIntakeAPI/pkg/logger_i"
)

type RedisJobStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisJobStore(ctx context.Context) *RedisJobStore {
	redis := redisStore.GetRedisStore(ctx, config.RedisJobStore)
	if redis == nil {
		return nil
	}
	return &RedisJobStore{
		store:  redis,
		logger: logger_i.NewLogger("JobStore"),
	}
}

// SaveJob keys on the record id so a status lookup needs only the
// processing id the client already holds.
func (s *RedisJobStore) SaveJob(ctx context.Context, job jobModel.Job) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "record Id", job.RecordId)
	log.Debug("saving job")
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, job.RecordId, data, config.RedisJobStoreTTL)
	if err == nil {
		log.Debug("Saved job to Redis")
	}
	return err
}

func (s *RedisJobStore) GetJob(ctx context.Context, recordId string) (jobModel.Job, bool) {
	var job jobModel.Job
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "record Id", recordId)
	log.Debug("getting job")
	val, err := s.store.Get(ctx, recordId)
	if s.store.IsNil(err) {
		return job, false
	} else if err != nil {
		return job, false
	}

	log.Debug("Unmarshalling job")
	err = json.Unmarshal([]byte(val), &job)
	if err != nil {
		return job, false
	}

	log.Debug(": Job found in Redis")
	return job, true
}

func (s *RedisJobStore) DeleteJob(ctx context.Context, recordId string) {
	err := s.store.Del(ctx, recordId)
	if err != nil {
		s.logger.Error(recordId, "recordId", ": Error deleting job from Redis")
		return
	}
	s.logger.Debug(" Job deleted from Redis", "recordId:", recordId)
}

func TestJobStore(store *redisStore.Store) *RedisJobStore {
	return &RedisJobStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
