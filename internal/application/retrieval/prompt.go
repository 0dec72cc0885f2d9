package retrieval

import (
	"fmt"
	"strings"
)

// BuildPromptContext 将召回结果格式化为可直接注入 Prompt 的块。
// 约束：尽量短，避免把 score 等调试信息塞进 Prompt。
func BuildPromptContext(docs []Document, maxDocs int, maxRunesPerDoc int) string {
	if len(docs) == 0 {
		return ""
	}
	if maxDocs <= 0 {
		maxDocs = 5
	}
	if maxRunesPerDoc <= 0 {
		maxRunesPerDoc = 400
	}

	n := len(docs)
	if n > maxDocs {
		n = maxDocs
	}

	lines := make([]string, 0, n+1)
	lines = append(lines, "【召回上下文（可能为空）】")
	for i := 0; i < n; i++ {
		d := docs[i]
		ref := strings.TrimSpace(d.Topic)
		if ref == "" {
			ref = "context"
		}
		if s := strings.TrimSpace(d.Symbol); s != "" {
			ref = ref + ":" + s
		}

		txt := compactOneLine(d.Text)
		txt = truncateRunes(txt, maxRunesPerDoc)
		if strings.TrimSpace(txt) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%d] (%s) %s", i+1, ref, txt))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func compactOneLine(s string) string {
	out := strings.ReplaceAll(s, "\r\n", "\n")
	out = strings.ReplaceAll(out, "\r", "\n")
	out = strings.ReplaceAll(out, "\n", " ")
	out = strings.TrimSpace(out)
	for strings.Contains(out, "  ") {
		out = strings.ReplaceAll(out, "  ", " ")
	}
	return out
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max])) + "…"
}
