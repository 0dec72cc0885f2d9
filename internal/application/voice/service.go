// Package voice 语音问答应用服务：转写 → 编排 → 合成
package voice

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"finance-assistant-api/internal/application/orchestrator"
	voiceclient "finance-assistant-api/internal/infrastructure/voice"
	apperrors "finance-assistant-api/pkg/errors"
	"finance-assistant-api/pkg/logger"
)

var tracer = otel.Tracer("application.voice")

// Result 语音查询处理结果
type Result struct {
	Transcript string
	Answer     *orchestrator.Answer
	// Speech 合成的音频流，未请求或合成失败时为 nil；调用方负责关闭。
	Speech io.ReadCloser
}

// Service 语音问答服务
type Service struct {
	client       *voiceclient.Client
	orchestrator *orchestrator.Service
}

// NewService 创建语音问答服务。client 为 nil 时语音能力不可用。
func NewService(client *voiceclient.Client, orchestratorSvc *orchestrator.Service) *Service {
	return &Service{
		client:       client,
		orchestrator: orchestratorSvc,
	}
}

// Enabled 语音能力是否可用
func (s *Service) Enabled() bool {
	return s != nil && s.client.Enabled()
}

// ProcessVoice 处理语音查询。wantSpeech 为 true 时尝试合成回答语音，
// 合成失败只降级为纯文本回答。
func (s *Service) ProcessVoice(ctx context.Context, audio io.Reader, filename, sessionID string, wantSpeech bool) (*Result, error) {
	if !s.Enabled() {
		return nil, apperrors.New(apperrors.CodeTranscribeFailed, "voice service not configured")
	}

	ctx, span := tracer.Start(ctx, "voice.ProcessVoice",
		trace.WithAttributes(attribute.Bool("voice.want_speech", wantSpeech)))
	defer span.End()

	transcript, err := s.client.Transcribe(ctx, audio, filename)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	answer, err := s.orchestrator.ProcessText(ctx, transcript, sessionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result := &Result{
		Transcript: transcript,
		Answer:     answer,
	}

	if wantSpeech {
		speech, err := s.client.Synthesize(ctx, answer.Answer)
		if err != nil {
			logger.Warn(ctx, "speech synthesis failed, returning text only", "error", err)
		} else {
			result.Speech = speech
		}
	}
	return result, nil
}
