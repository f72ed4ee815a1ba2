package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocateExactInBody(t *testing.T) {
	body := "The quick brown fox jumps over the lazy dog. Pack my box with five dozen liquor jugs."
	bodyRunes := []rune(body)

	s, e := Locate("", body, string(bodyRunes[10:40]), 0)
	assert.Equal(t, 10, s)
	assert.Equal(t, 40, e)
}

func TestLocateWithTitle(t *testing.T) {
	title := "Networking"
	body := "TCP provides reliable ordered delivery of a byte stream between hosts."

	s, e := Locate(title, body, "reliable ordered delivery", 0)
	assert.Equal(t, "reliable ordered delivery", string([]rune(body)[s:e]))
}

func TestLocateStraddlesBoundary(t *testing.T) {
	title := "Kafka notes"
	body := "Partitions are append-only logs consumed by offset."

	// fragment begins inside the title and continues into the body
	fragment := "notes\nPartitions are"
	s, e := Locate(title, body, fragment, 0)
	assert.Equal(t, 0, s)
	assert.Equal(t, len([]rune("Partitions are")), e)
}

func TestLocateTitlePrefixStripped(t *testing.T) {
	title := "Groceries"
	body := "reminder: eggs, milk, flour, butter"

	// not a substring of title+"\n"+body, so the prefix strip path fires
	fragment := title + "\n" + "eggs, milk"
	s, e := Locate(title, body, fragment, 0)
	assert.Equal(t, "eggs, milk", string([]rune(body)[s:e]))
}

func TestLocateFuzzy(t *testing.T) {
	body := strings.Repeat("x", 30) + "abcdefghij klmnopqrst uvwxyz abcdefghij klmnopqrst uvwxyz" + strings.Repeat("y", 30)
	fragment := []rune(body)[30:90]

	// corrupt a handful of characters so exact search fails
	corrupted := []rune(string(fragment))
	corrupted[3] = '#'
	corrupted[17] = '#'
	corrupted[41] = '#'

	s, e := Locate("", body, string(corrupted), 0)
	assert.Equal(t, 30, s)
	assert.Equal(t, 90, e)
}

func TestLocateEstimateFromIndex(t *testing.T) {
	body := strings.Repeat("z", 3000)

	s, e := Locate("", body, "completely unrelated fragment text that appears nowhere at all in the note body", 2)
	assert.Equal(t, 2*Step, s)
	assert.LessOrEqual(t, e, len([]rune(body)))
	assert.Greater(t, e, s)
}

func TestLocateFallbackWholeBody(t *testing.T) {
	body := "short body"

	s, e := Locate("", body, "completely unrelated fragment text that appears nowhere at all in the note body", 5)
	assert.Equal(t, 0, s)
	assert.Equal(t, len([]rune(body)), e)
}

func TestLocateNeverOutOfBounds(t *testing.T) {
	cases := []struct {
		name     string
		title    string
		body     string
		fragment string
		index    int
	}{
		{"empty body", "t", "", "anything", 0},
		{"unrelated", "", "abc", "zzzzzz", 3},
		{"unicode", "标题", "正文内容在这里", "标题\n正文", 0},
		{"fragment longer than body", "", "tiny", strings.Repeat("q", 200), 0},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			s, e := Locate(tt.title, tt.body, tt.fragment, tt.index)
			bodyLen := len([]rune(tt.body))
			assert.GreaterOrEqual(t, s, 0)
			assert.LessOrEqual(t, s, bodyLen)
			assert.LessOrEqual(t, e, bodyLen)
			assert.LessOrEqual(t, s, e)
		})
	}
}

func TestLocateRoundTrip(t *testing.T) {
	body := "Alpha bravo charlie delta echo foxtrot golf hotel india juliett kilo lima."
	runes := []rune(body)

	for _, span := range [][2]int{{0, 12}, {6, 33}, {40, len(runes)}} {
		s, e := Locate("", body, string(runes[span[0]:span[1]]), 0)
		assert.Equal(t, span[0], s)
		assert.Equal(t, span[1], e)
	}
}
