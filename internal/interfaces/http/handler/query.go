package handler

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"finance-assistant-api/internal/application/orchestrator"
	"finance-assistant-api/internal/application/voice"
	"finance-assistant-api/internal/config"
	llmctx "finance-assistant-api/internal/domain/service"
	"finance-assistant-api/internal/interfaces/http/dto"
	apperrors "finance-assistant-api/pkg/errors"
	"finance-assistant-api/pkg/logger"
)

// maxAudioUploadBytes 语音上传大小上限（25MB，与上游转写接口一致）
const maxAudioUploadBytes = 25 << 20

// QueryHandler 智能问答处理器
type QueryHandler struct {
	orchestrator *orchestrator.Service
	voice        *voice.Service
	cfg          *config.Config
}

// NewQueryHandler 创建问答处理器。voiceSvc 可为 nil，此时语音端点返回 503。
func NewQueryHandler(orchestratorSvc *orchestrator.Service, voiceSvc *voice.Service, cfg *config.Config) *QueryHandler {
	return &QueryHandler{
		orchestrator: orchestratorSvc,
		voice:        voiceSvc,
		cfg:          cfg,
	}
}

// ProcessText 处理文本问答
// @Summary 文本问答
// @Tags Query
// @Accept json
// @Produce json
// @Param request body dto.TextQueryRequest true "问答请求"
// @Success 200 {object} dto.Response[dto.QueryAnswerResponse]
// @Router /api/query/text [post]
func (h *QueryHandler) ProcessText(c *gin.Context) {
	var req dto.TextQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "query is required")
		return
	}

	ctx := c.Request.Context()
	if req.Provider != "" {
		provider, _, err := resolveProviderModel(h.cfg, req.Provider, req.Model)
		if err != nil {
			dto.BadRequest(c, err.Error())
			return
		}
		ctx = llmctx.WithPreferredProvider(ctx, provider)
	}

	answer, err := h.orchestrator.ProcessText(ctx, req.Query, req.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, dto.FromAnswer(answer))
}

// ProcessVoice 处理语音问答：multipart 音频 → 转写 → 问答 → 可选语音合成。
// speech=true 且合成成功时直接返回音频流，转写文本放在响应头中。
// @Summary 语音问答
// @Tags Query
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "音频文件"
// @Param session_id formData string false "会话 ID"
// @Param speech formData bool false "是否返回合成语音"
// @Success 200 {object} dto.Response[dto.VoiceQueryResponse]
// @Router /api/query/voice [post]
func (h *QueryHandler) ProcessVoice(c *gin.Context) {
	if h.voice == nil || !h.voice.Enabled() {
		dto.ServiceUnavailable(c, "voice service not configured")
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		dto.BadRequest(c, "audio file is required")
		return
	}
	if fileHeader.Size > maxAudioUploadBytes {
		respondError(c, apperrors.New(apperrors.CodeInvalidParam, "audio file too large"))
		return
	}

	audio, err := fileHeader.Open()
	if err != nil {
		dto.BadRequest(c, "cannot read audio file")
		return
	}
	defer audio.Close()

	sessionID := c.PostForm("session_id")
	wantSpeech, _ := strconv.ParseBool(c.DefaultPostForm("speech", "false"))

	result, err := h.voice.ProcessVoice(c.Request.Context(), audio, fileHeader.Filename, sessionID, wantSpeech)
	if err != nil {
		respondError(c, err)
		return
	}

	// 合成成功时返回音频流，文本结果通过响应头传递
	if result.Speech != nil {
		defer func() {
			if cerr := result.Speech.Close(); cerr != nil {
				logger.Warn(c.Request.Context(), "close speech stream failed", "error", cerr)
			}
		}()

		c.Header("X-Transcript", url.QueryEscape(result.Transcript))
		c.Header("X-Answer", url.QueryEscape(result.Answer.Answer))
		c.Header("X-Intent", result.Answer.Intent)
		c.DataFromReader(200, -1, "audio/mpeg", result.Speech, nil)
		return
	}

	dto.Success(c, &dto.VoiceQueryResponse{
		Transcript: result.Transcript,
		Result:     dto.FromAnswer(result.Answer),
	})
}
