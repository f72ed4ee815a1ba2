package ai

import (
	"fmt"
	"strings"
)

const (
	PROMPT_VAR_QUERY   = "${query}"
	PROMPT_VAR_CONTEXT = "${context}"
	PROMPT_VAR_LANG    = "${lang}"
)

const PROMPT_NOTE_ANSWER_EN = `You are an assistant that answers questions strictly from the user's personal notes.

Reference fragments, each preceded by its citation number:
--------------------------------------
${context}
--------------------------------------

Requirements:
1. Give the answer a title of at most 10 words.
2. Write the answer as 3 to 5 paragraphs, each 3 to 5 sentences long.
3. Cite the fragments you rely on with inline bracket citations such as [1] or [2], using the numbers shown above. Place a citation after every claim taken from a fragment.
4. If the fragments leave parts of the question unanswered, you may close with a short paragraph noting what the notes do not cover.
5. Answer in ${lang}.

Question: ${query}`

// BuildAnswerContext renders retrieved fragments as a numbered context
// block, one fragment per provisional citation number, separated by blank
// lines.
func BuildAnswerContext(fragments []string) string {
	var b strings.Builder
	for i, text := range fragments {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(fmt.Sprintf("[%d] %s", i+1, text))
	}
	return b.String()
}

func BuildAnswerPrompt(query, contextBlock, lang string) string {
	prompt := strings.ReplaceAll(PROMPT_NOTE_ANSWER_EN, PROMPT_VAR_CONTEXT, contextBlock)
	prompt = strings.ReplaceAll(prompt, PROMPT_VAR_LANG, lang)
	prompt = strings.ReplaceAll(prompt, PROMPT_VAR_QUERY, query)
	return prompt
}
