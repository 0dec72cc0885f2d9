// Package voice 提供语音转写与合成客户端
package voice

import (
	"context"
	"io"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"finance-assistant-api/internal/config"
	apperrors "finance-assistant-api/pkg/errors"
	"finance-assistant-api/pkg/metrics"
)

var tracer = otel.Tracer("voice")

// Client 基于 OpenAI 语音接口的转写/合成客户端
type Client struct {
	api      *openai.Client
	sttModel string
	ttsModel string
	ttsVoice string
}

// NewClient 创建语音客户端。cfg.Enabled 为 false 或 API Key 缺失时返回 nil。
func NewClient(cfg *config.VoiceConfig) *Client {
	if !cfg.Enabled || cfg.APIKey == "" {
		return nil
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	sttModel := cfg.STTModel
	if sttModel == "" {
		sttModel = openai.Whisper1
	}
	ttsModel := cfg.TTSModel
	if ttsModel == "" {
		ttsModel = string(openai.TTSModel1)
	}
	ttsVoice := cfg.TTSVoice
	if ttsVoice == "" {
		ttsVoice = string(openai.VoiceAlloy)
	}

	return &Client{
		api:      openai.NewClientWithConfig(clientCfg),
		sttModel: sttModel,
		ttsModel: ttsModel,
		ttsVoice: ttsVoice,
	}
}

// Enabled 客户端是否可用
func (c *Client) Enabled() bool {
	return c != nil && c.api != nil
}

// Transcribe 将语音转写为文本。filename 用于推断音频格式。
func (c *Client) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if !c.Enabled() {
		return "", apperrors.New(apperrors.CodeTranscribeFailed, "voice service not configured")
	}

	ctx, span := tracer.Start(ctx, "voice.Transcribe",
		trace.WithAttributes(attribute.String("voice.model", c.sttModel)))
	defer span.End()

	start := time.Now()
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.sttModel,
		Reader:   audio,
		FilePath: filename,
	})
	metrics.LLMCallDuration.WithLabelValues("openai", c.sttModel).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.LLMCallTotal.WithLabelValues("openai", c.sttModel, "error").Inc()
		span.RecordError(err)
		return "", apperrors.Wrap(err, apperrors.CodeTranscribeFailed, "transcription failed")
	}

	metrics.LLMCallTotal.WithLabelValues("openai", c.sttModel, "success").Inc()
	return resp.Text, nil
}

// Synthesize 将文本合成为语音，返回音频流。调用方负责关闭。
func (c *Client) Synthesize(ctx context.Context, text string) (io.ReadCloser, error) {
	if !c.Enabled() {
		return nil, apperrors.New(apperrors.CodeSynthesisFailed, "voice service not configured")
	}

	ctx, span := tracer.Start(ctx, "voice.Synthesize",
		trace.WithAttributes(
			attribute.String("voice.model", c.ttsModel),
			attribute.Int("voice.text_len", len(text)),
		))
	defer span.End()

	start := time.Now()
	resp, err := c.api.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.SpeechModel(c.ttsModel),
		Input: text,
		Voice: openai.SpeechVoice(c.ttsVoice),
	})
	metrics.LLMCallDuration.WithLabelValues("openai", c.ttsModel).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.LLMCallTotal.WithLabelValues("openai", c.ttsModel, "error").Inc()
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeSynthesisFailed, "speech synthesis failed")
	}

	metrics.LLMCallTotal.WithLabelValues("openai", c.ttsModel, "success").Inc()
	return resp, nil
}
