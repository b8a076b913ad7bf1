package jobModel

import (
	"context"
	"time"

	"github.com/akolanti/DocIntakeAPI/internal/domain/commonModels"
)

type JobStatus string
type InternalStatus string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	ClassifyInit    InternalStatus = "Init"
	ExternalNLCall  InternalStatus = "ExternalClassifier"
	KeywordFallback InternalStatus = "KeywordFallback"
	RecordWriteBack InternalStatus = "RecordWriteBack"
	RedisCall       InternalStatus = "Redis"
	Error           InternalStatus = "Error"

	Complete InternalStatus = "Complete"

	JobTypeClassify JobType = "Classify"
)

type Job struct {
	Id          string         `json:"id"`
	RecordId    string         `json:"record_id"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	Text     string `json:"text,omitempty"`
	Language string `json:"language,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// RecordStore abstracts where ProcessingRecords live. Both
// implementations evict on TTL so the store never grows without bound.
type RecordStore interface {
	GetRecord(ctx context.Context, recordId string) (commonModels.ProcessingRecord, bool)
	SaveRecord(ctx context.Context, record commonModels.ProcessingRecord) error
	DeleteRecord(ctx context.Context, recordId string)
}

// JobStore tracks in-flight classification jobs, keyed by the record id
// they classify so the status endpoint can join job and record.
type JobStore interface {
	GetJob(ctx context.Context, recordId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, recordId string)
}
