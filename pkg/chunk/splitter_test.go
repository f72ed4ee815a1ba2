package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitShortText(t *testing.T) {
	chunks := Split("hello world")
	assert.Equal(t, []string{"hello world"}, chunks)
}

func TestSplitEmpty(t *testing.T) {
	assert.Nil(t, Split(""))
}

func TestSplitOverlap(t *testing.T) {
	text := strings.Repeat("a", 1000) + strings.Repeat("b", 1000)
	chunks := Split(text)

	assert.Len(t, chunks, 3)
	assert.Len(t, []rune(chunks[0]), WindowSize)

	// consecutive windows share the trailing Overlap characters
	first := []rune(chunks[0])
	second := []rune(chunks[1])
	assert.Equal(t, string(first[Step:]), string(second[:Overlap]))
}

func TestSplitReassembly(t *testing.T) {
	text := strings.Repeat("0123456789", 250)
	chunks := Split(text)

	var rebuilt strings.Builder
	for i, c := range chunks {
		runes := []rune(c)
		if i == 0 {
			rebuilt.WriteString(c)
			continue
		}
		rebuilt.WriteString(string(runes[Overlap:]))
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestSplitUnicode(t *testing.T) {
	text := strings.Repeat("笔记内容测试", 300)
	chunks := Split(text)

	for _, c := range chunks[:len(chunks)-1] {
		assert.Len(t, []rune(c), WindowSize)
	}
}
