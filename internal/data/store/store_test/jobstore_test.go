package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/akolanti/DocIntakeAPI/internal/config"
	"github.com/akolanti/DocIntakeAPI/internal/data/redisStore"
	"github.com/akolanti/DocIntakeAPI/internal/data/store"
	"github.com/akolanti/DocIntakeAPI/internal/domain/jobModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisJobStore_Lifecycle(t *testing.T) {
	// 1. Start miniredis
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	internalStore := redisStore.NewTestStore(client)
	jobStore := store.TestJobStore(internalStore)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	recordID := "b2e5d0a3-88bb-4c3f-8b12-4e7d9f6a2c31"

	testJob := jobModel.Job{
		Id:       "job_abc_123",
		RecordId: recordID,
		JobType:  jobModel.JobTypeClassify,
		Status:   jobModel.JobStatusRunning,
		JobPayload: jobModel.JobPayload{
			Text:     "work order for escalator inspection",
			Filename: "work_order.pdf",
		},
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		// Test Save
		err := jobStore.SaveJob(ctx, testJob)
		if err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}

		// Jobs are keyed by the record they classify
		retrievedJob, found := jobStore.GetJob(ctx, recordID)
		if !found {
			t.Fatal("Job was saved but not found in Redis")
		}

		if retrievedJob.JobPayload.Text != testJob.JobPayload.Text {
			t.Errorf("Data mismatch! Got %s, want %s",
				retrievedJob.JobPayload.Text, testJob.JobPayload.Text)
		}
	})

	t.Run("Get Non-Existent Job", func(t *testing.T) {
		_, found := jobStore.GetJob(ctx, "ghost-id")
		if found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Job Expires With TTL", func(t *testing.T) {
		if err := jobStore.SaveJob(ctx, testJob); err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}
		mr.FastForward(config.RedisJobStoreTTL + time.Minute)
		if _, found := jobStore.GetJob(ctx, recordID); found {
			t.Error("Job still present after TTL elapsed")
		}
	})

	t.Run("Delete Job", func(t *testing.T) {
		if err := jobStore.SaveJob(ctx, testJob); err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}
		jobStore.DeleteJob(ctx, recordID)

		// Verify it's gone from miniredis
		if mr.Exists(recordID) {
			t.Error("Job still exists in Redis after DeleteJob call")
		}
	})
}

func TestInMemoryJobStore_Lifecycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	memStore := store.InitInMemoryJobStore(ctx)

	job := jobModel.Job{Id: "mem-job", RecordId: "mem-record"}
	if err := memStore.SaveJob(ctx, job); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}

	if _, found := memStore.GetJob(ctx, "mem-record"); !found {
		t.Fatal("Job not found right after save")
	}

	memStore.DeleteJob(ctx, "mem-record")
	if _, found := memStore.GetJob(ctx, "mem-record"); found {
		t.Error("Job still visible after delete")
	}
}

func TestRedisJobStore_Race(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	jobStore := store.TestJobStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "race-trace")
	job := jobModel.Job{Id: "race-job", RecordId: "race-record"}

	const workers = 50
	for i := 0; i < workers; i++ {
		go func() {
			_ = jobStore.SaveJob(ctx, job)
			_, _ = jobStore.GetJob(ctx, "race-record")
		}()
	}
}
