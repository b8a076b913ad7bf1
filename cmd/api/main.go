// @title           Document Intake & Classification API
// @version         1.0
// @description     This API ingests documents, extracts their text and classifies them asynchronously
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/DocIntakeAPI/internal/config"
	"github.com/akolanti/DocIntakeAPI/internal/data/store"
	"github.com/akolanti/DocIntakeAPI/internal/docai"
	"github.com/akolanti/DocIntakeAPI/internal/docai/classify"
	"github.com/akolanti/DocIntakeAPI/internal/docai/classify/googlenl"
	"github.com/akolanti/DocIntakeAPI/internal/docai/extract"
	"github.com/akolanti/DocIntakeAPI/internal/docai/language"
	"github.com/akolanti/DocIntakeAPI/internal/docai/ocr/gemini"
	"github.com/akolanti/DocIntakeAPI/internal/docai/translate"
	"github.com/akolanti/DocIntakeAPI/internal/docai/translate/googlecloud"
	jobmodel "github.com/akolanti/DocIntakeAPI/internal/domain/jobModel"
	"github.com/akolanti/DocIntakeAPI/internal/handlers"
	"github.com/akolanti/DocIntakeAPI/internal/job"
	"github.com/akolanti/DocIntakeAPI/internal/server"
	"github.com/akolanti/DocIntakeAPI/internal/worker"
	"github.com/akolanti/DocIntakeAPI/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and stores
	var jobStore jobmodel.JobStore
	var recordStore jobmodel.RecordStore
	if redisJobStore := store.GetRedisJobStore(serviceContext); redisJobStore != nil {
		jobStore = redisJobStore
	}
	if redisRecordStore := store.GetRedisRecordStore(serviceContext); redisRecordStore != nil {
		recordStore = redisRecordStore
	}

	if jobStore == nil || recordStore == nil {
		logger.Error("Redis stores are offline")
		if !config.FALLBACK_REDIS_TO_INTERNALSTORE {
			return
		}
		jobStore = store.InitInMemoryJobStore(serviceContext)
		recordStore = store.InitInMemoryRecordStore(serviceContext)
	}

	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          jobStore,
		RecordStore:       recordStore,
	}
	logger.Info("Starting job service")
	service := job.InitJobService(serviceConfig)

	//collaborators are optional; each pipeline stage degrades without its
	//collaborator instead of blocking startup
	ocrProvider := gemini.GetGeminiOCR(serviceContext, config.GeminiModelName, config.GeminiAPIKey)
	translateProvider := googlecloud.GetGoogleTranslate(config.TranslateEndpoint, config.TranslateAPIKey)
	classifyProvider := googlenl.GetGoogleNLClassifier(config.ContentClassifierEndpoint, config.GoogleAPIKey)
	logger.Debug("Available collaborators : ", "OCR", ocrProvider != nil, "Translate", translateProvider != nil, "Classifier", classifyProvider != nil)

	//the translation collaborator doubles as the language detector
	var langDetector language.Collaborator
	if translateProvider != nil {
		langDetector = translateProvider
	}
	docaiService := docai.NewService(
		extract.NewExtractor(ocrProvider),
		translate.New(translateProvider),
		classify.NewEngine(classifyProvider),
		langDetector,
		recordStore,
	)

	handlers.InitJobHandler(service, docaiService)

	//init worker pool
	worker.InitServices(service, docaiService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
