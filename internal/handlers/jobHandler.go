package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/DocIntakeAPI/internal/adapter/utils"
	"github.com/akolanti/DocIntakeAPI/internal/config"
	"github.com/akolanti/DocIntakeAPI/internal/docai"
	"github.com/akolanti/DocIntakeAPI/internal/domain/commonModels"
	"github.com/akolanti/DocIntakeAPI/internal/domain/jobModel"
	"github.com/akolanti/DocIntakeAPI/internal/job"
	"github.com/akolanti/DocIntakeAPI/internal/metrics"
	"github.com/akolanti/DocIntakeAPI/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service      *job.Service
	docaiService docai.Service
}

func InitJobHandler(jobService *job.Service, docaiService docai.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService, docaiService: docaiService}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})

}

func CreateClassificationJob(record commonModels.ProcessingRecord, traceId string) {
	logJH.With("traceId", traceId, "record id", record.ProcessingId)
	logJH.Info("To create new classification job")
	handlerInstance.pushToJobChannel(record, traceId)
}

func GetJobStatus(recordId string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, recordId)
	}
	return result, false
}

func GetRecord(recordId string, traceId string) (result commonModels.ProcessingRecord, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.RecordStore.GetRecord(ctxC, recordId)
	}
	return result, false
}

// private methods
func (h *JobHandler) pushToJobChannel(record commonModels.ProcessingRecord, traceId string) {

	_job := jobModel.Job{}
	_job.Id = utils.GetNewUUID()
	_job.RecordId = record.ProcessingId
	_job.CreatedTime = time.Now()
	_job.TraceId = traceId
	_job.Status = jobModel.JobStatusQueued
	_job.JobType = jobModel.JobTypeClassify
	_job.CurrentStep = jobModel.ClassifyInit
	_job.JobPayload.Text = classifiableText(record)
	_job.JobPayload.Language = record.LanguageDetection.Code
	_job.JobPayload.Filename = record.Filename

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new classification job")

	//we will start a new worker every 10 requests - can also be configured
	//worker will be removed if it has idle time
	//this also allows us to only keep 1 worker running at most times therefore cutting resource spend

	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1) //after sending a request increment counter
	if accurateCount%config.RequestsPerNewWorkerCount == 0 {
		metrics.StartDispatcherSignalCount() //metrics
		logJH.Debug("Worker count ", accurateCount)
		h.service.DispatcherChannel <- true
	}
}

// classifiableText picks the snapshot the classifier will see: the
// English translation when one was produced, the cleaned extraction
// text otherwise.
func classifiableText(record commonModels.ProcessingRecord) string {
	if record.Translation != nil && record.Translation.TranslatedText != "" {
		return record.Translation.TranslatedText
	}
	return record.Extraction.Text
}
