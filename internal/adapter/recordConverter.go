package adapter

import (
	"fmt"

	"github.com/akolanti/DocIntakeAPI/internal/api"
	"github.com/akolanti/DocIntakeAPI/internal/domain/commonModels"
	"github.com/akolanti/DocIntakeAPI/internal/domain/jobModel"
)

func ToProcessResponse(record commonModels.ProcessingRecord) api.ProcessResponse {
	return api.ProcessResponse{
		ProcessingId:      record.ProcessingId,
		Filename:          record.Filename,
		FileType:          string(record.FileType),
		Extraction:        record.Extraction,
		LanguageDetection: record.LanguageDetection,
		Translation:       record.Translation,
		Classification:    record.Classification,
		StatusURL:         fmt.Sprintf("status/%s", record.ProcessingId),
		CreatedAt:         record.CreatedAt,
	}
}

func ToStatusResponse(record commonModels.ProcessingRecord, job jobModel.Job, jobFound bool) api.StatusResponse {
	resp := api.StatusResponse{
		ProcessingId:   record.ProcessingId,
		Status:         classificationStatus(record, job, jobFound),
		Classification: record.Classification,
	}
	full := ToProcessResponse(record)
	resp.Record = &full

	if jobFound && (job.Error.Message != "" || job.Error.Code != 0) {
		resp.Error = &api.OutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}
	return resp
}

// classificationStatus collapses record + job state into one external
// status word. A record whose classification has been written back is
// COMPLETE even if the job entry has already expired.
func classificationStatus(record commonModels.ProcessingRecord, job jobModel.Job, jobFound bool) string {
	if record.Classification != nil {
		return string(jobModel.JobStatusComplete)
	}
	if jobFound {
		return string(job.Status)
	}
	return string(jobModel.JobStatusQueued)
}

func ToClassifyResponse(id string, result commonModels.ClassificationResult) api.ClassifyResponse {
	return api.ClassifyResponse{
		ProcessingId:   id,
		Classification: &result,
	}
}

func BadRequest(id string, error string, code int) api.ProcessResponse {
	return api.ProcessResponse{
		ProcessingId: id,
		Error: &api.OutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
