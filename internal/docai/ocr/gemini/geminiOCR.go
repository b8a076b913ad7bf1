package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/akolanti/DocIntakeAPI/internal/config"
	"github.com/akolanti/DocIntakeAPI/internal/docai/ocr"
	"github.com/akolanti/DocIntakeAPI/internal/metrics"
	"github.com/akolanti/DocIntakeAPI/pkg/logger_i"
	"google.golang.org/genai"
)

const documentPrompt = "Transcribe every piece of text in this image exactly as it appears, preserving line breaks and reading order. Output only the transcription, nothing else."
const textPrompt = "Read any visible text in this image and output it verbatim. Output only the text, nothing else."

type ocrClient struct {
	client    *genai.Client
	modelName string
}

var logger *logger_i.Logger
var geminiClient *ocrClient
var once sync.Once

func GetGeminiOCR(ctx context.Context, modelName string, apikey string) ocr.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("ocr_gemini")
		newGeminiClient(ctx, modelName, apikey)
	})

	if geminiClient == nil {
		return nil
	}
	return &ocrClient{client: geminiClient.client, modelName: geminiClient.modelName}
}

func newGeminiClient(ctx context.Context, modelName string, apikey string) {

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
	}
	if c != nil {
		geminiClient = &ocrClient{client: c, modelName: modelName}
		logger.Debug("Gemini ", modelName, " client created")
		logger.Info("Gemini OCR client created")
		go closeClient(ctx, geminiClient)
	}

}

func (c *ocrClient) Extract(ctx context.Context, imageBytes []byte, mode ocr.Mode) (ocr.Result, error) {
	logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("ocr_gemini", time.Since(start)) }()

	prompt := documentPrompt
	if mode == ocr.ModeText {
		prompt = textPrompt
	}

	callCtx, cancel := context.WithTimeout(ctx, config.OCRCallTimeout)
	defer cancel()

	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: sniffImageMIME(imageBytes), Data: imageBytes}},
		{Text: prompt},
	}
	contents := []*genai.Content{{Parts: parts}}

	result, err := c.client.Models.GenerateContent(callCtx, c.modelName, contents, nil)
	if err != nil {
		logger.Error("Gemini OCR call failed", "error", err)
		return ocr.Result{}, err
	}
	if result == nil {
		return ocr.Result{}, errors.New("empty response from Gemini")
	}

	text := strings.TrimSpace(result.Text())
	confidence := 0.85
	if mode == ocr.ModeDocument {
		confidence = 0.9
	}
	if text == "" {
		confidence = 0.0
	}

	return ocr.Result{Text: text, Confidence: confidence}, nil
}

func sniffImageMIME(data []byte) string {
	mime := http.DetectContentType(data)
	if strings.HasPrefix(mime, "image/") {
		return mime
	}
	return "image/png"
}

func closeClient(ctx context.Context, c *ocrClient) {
	<-ctx.Done()
	logger.Info("Closing Gemini OCR client")
	c.client = nil
	c.modelName = ""
}
