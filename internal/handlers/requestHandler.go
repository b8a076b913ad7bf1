package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/akolanti/DocIntakeAPI/internal/adapter"
	"github.com/akolanti/DocIntakeAPI/internal/adapter/utils"
	"github.com/akolanti/DocIntakeAPI/internal/api"
	"github.com/akolanti/DocIntakeAPI/internal/config"
	"github.com/akolanti/DocIntakeAPI/internal/docai"
	"github.com/akolanti/DocIntakeAPI/internal/docai/extract"
	"github.com/akolanti/DocIntakeAPI/internal/docai/ocr"
	"github.com/akolanti/DocIntakeAPI/pkg/logger_i"
)

var logRH *logger_i.Logger

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// PostProcessHandler handles the uploading of documents for intake.
// @Summary      Upload a document for processing
// @Description  Receives a file via multipart/form-data, extracts and cleans its text synchronously, and queues a classification job. Poll the status URL for the classification.
// @Tags         Intake
// @Accept       multipart/form-data
// @Produce      json
// @Param        document             formData  file    true   "The image, PDF or word-processing file to process"
// @Param        ocr_method           formData  string  false  "OCR mode for images: document (default) or text"
// @Param        include_translation  formData  string  false  "Set to true to translate the extracted text"
// @Param        target_language      formData  string  false  "Translation target language code (default en)"
// @Success      202  {object}  api.ProcessResponse "Accepted - extraction result with status URL"
// @Failure      400  {object}  api.ProcessResponse "Bad Request - missing file or unsupported type"
// @Failure      413  {object}  api.ProcessResponse "File exceeds the upload limit"
// @Router       /process [post]
func PostProcessHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
			return
		}

		fileReader, fileMetadata, err := r.FormFile("document")
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
			return
		}
		defer fileReader.Close()

		if fileMetadata.Size > config.MaxUploadBytes {
			WriteErrorResponse(w, http.StatusRequestEntityTooLarge, "", "file exceeds the 50MB limit")
			return
		}

		data, err := io.ReadAll(fileReader)
		if err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, "", "Read error")
			return
		}

		opts := docai.ProcessOptions{
			OCRMode:            ocrModeFromForm(r.FormValue("ocr_method")),
			IncludeTranslation: r.FormValue("include_translation") == "true",
			TargetLanguage:     r.FormValue("target_language"),
		}

		record, err := handlerInstance.docaiService.ProcessDocument(r.Context(), data, fileMetadata.Filename, fileMetadata.Header.Get("Content-Type"), opts)
		if err != nil {
			WriteErrorResponse(w, validationCode(err), "", docai.ValidationMessage(err))
			return
		}

		CreateClassificationJob(record, r.Context().Value(config.TRACE_ID_KEY).(string))
		writeJsonResponse(w, http.StatusAccepted, adapter.ToProcessResponse(record))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetStatusHandler godoc
// @Summary      Get processing status
// @Description  Retrieves the processing record and classification status for a processing ID.
// @Tags         Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Processing ID"
// @Success      200  {object}  api.StatusResponse "The current status of the processing record"
// @Failure      400  {object}  api.ProcessResponse "Invalid processing ID"
// @Failure      404  {object}  api.ProcessResponse "Record not found"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)

		if !utils.IsValidUUID(idString) {
			WriteErrorResponse(w, http.StatusBadRequest, idString, "invalid processing id")
			return
		}

		traceId := r.Context().Value(config.TRACE_ID_KEY).(string)
		record, found := GetRecord(idString, traceId)
		if !found {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Record not found")
			return
		}

		currentJob, jobFound := GetJobStatus(idString, traceId)
		writeJsonResponse(w, http.StatusOK, adapter.ToStatusResponse(record, currentJob, jobFound))
	}
}

// PostClassifyHandler godoc
// @Summary      Classify a processed record synchronously
// @Description  Runs the classification engine over the posted text, or over the record's stored text when no body text is given.
// @Tags         Classification
// @Accept       json
// @Produce      json
// @Param        id       path      string               true   "Processing ID"
// @Param        request  body      api.ClassifyRequest  false  "Optional text override"
// @Success      200      {object}  api.ClassifyResponse "Classification result"
// @Failure      400      {object}  api.ProcessResponse  "Invalid processing ID"
// @Failure      404      {object}  api.ProcessResponse  "Record not found"
// @Router       /classify/{id} [post]
func PostClassifyHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")

		if !utils.IsValidUUID(idString) {
			WriteErrorResponse(w, http.StatusBadRequest, idString, "invalid processing id")
			return
		}

		var requestData api.ClassifyRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the Classify handler reader :", err)
			}
		}(r.Body)
		//body is optional; with no text the record's stored snapshot is classified
		_ = json.NewDecoder(r.Body).Decode(&requestData)

		text := requestData.Text
		if text == "" {
			record, found := GetRecord(idString, r.Context().Value(config.TRACE_ID_KEY).(string))
			if !found {
				WriteErrorResponse(w, http.StatusNotFound, idString, "Record not found")
				return
			}
			text = classifiableText(record)
		}

		result := handlerInstance.docaiService.ClassifyText(r.Context(), text)
		writeJsonResponse(w, http.StatusOK, adapter.ToClassifyResponse(idString, result))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

func ocrModeFromForm(value string) ocr.Mode {
	if value == string(ocr.ModeText) {
		return ocr.ModeText
	}
	return ocr.ModeDocument
}

func validationCode(err error) int {
	if err == extract.ErrFileTooLarge {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
