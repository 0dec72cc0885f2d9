package handler

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"finance-assistant-api/internal/config"
	"finance-assistant-api/internal/interfaces/http/dto"
	apperrors "finance-assistant-api/pkg/errors"
	"finance-assistant-api/pkg/logger"
)

// resolveProviderModel 解析 LLM Provider 和 Model
func resolveProviderModel(cfg *config.Config, provider, model string) (string, string, error) {
	if cfg == nil {
		return "", "", fmt.Errorf("server config not configured")
	}

	p := strings.TrimSpace(provider)
	if p == "" {
		p = strings.TrimSpace(cfg.LLM.DefaultProvider)
	}
	if p == "" {
		return "", "", fmt.Errorf("llm provider not specified")
	}
	if len(p) > 32 {
		return "", "", fmt.Errorf("llm provider too long")
	}

	providerCfg, ok := cfg.LLM.Providers[p]
	if !ok {
		return "", "", fmt.Errorf("llm provider not found: %s", p)
	}

	m := strings.TrimSpace(model)
	if m == "" {
		m = strings.TrimSpace(providerCfg.Model)
	}
	if len(m) > 64 {
		return "", "", fmt.Errorf("llm model too long")
	}
	return p, m, nil
}

// respondError 将业务错误映射为统一错误响应
func respondError(c *gin.Context, err error) {
	if appErr := apperrors.AsAppError(err); appErr != nil {
		dto.ErrorWithDetail(c, appErr.HTTPStatus, appErr.Message, &dto.ErrorDetail{
			ErrorCode: string(appErr.Code),
			Details:   appErr.Detail,
		})
		return
	}

	logger.Error(c.Request.Context(), "unhandled error", err,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	dto.InternalError(c, "internal server error")
}
