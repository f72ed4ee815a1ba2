package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAnswerContext(t *testing.T) {
	block := BuildAnswerContext([]string{"first fragment", "second fragment"})
	assert.Equal(t, "[1] first fragment\n\n[2] second fragment", block)
}

func TestBuildAnswerContextEmpty(t *testing.T) {
	assert.Equal(t, "", BuildAnswerContext(nil))
}

func TestBuildAnswerPrompt(t *testing.T) {
	prompt := BuildAnswerPrompt("what is tcp", "[1] tcp is a protocol", "English")

	assert.Contains(t, prompt, "[1] tcp is a protocol")
	assert.Contains(t, prompt, "Question: what is tcp")
	assert.Contains(t, prompt, "Answer in English.")
	assert.NotContains(t, prompt, PROMPT_VAR_QUERY)
	assert.NotContains(t, prompt, PROMPT_VAR_CONTEXT)
	assert.NotContains(t, prompt, PROMPT_VAR_LANG)
}

func TestFallbackTitle(t *testing.T) {
	assert.Equal(t, "short question", FallbackTitle("short question"))

	long := strings.Repeat("q", 80)
	got := FallbackTitle(long)
	assert.Equal(t, strings.Repeat("q", 50)+"...", got)
}

func TestFallbackTitleUnicode(t *testing.T) {
	long := strings.Repeat("问", 60)
	got := FallbackTitle(long)
	assert.Equal(t, strings.Repeat("问", 50)+"...", got)
}
