package chunk

const (
	// WindowSize is the fragment window length in characters.
	WindowSize = 1000
	// Overlap is how many characters consecutive windows share.
	Overlap = 180
)

// Step is the distance between the starts of consecutive windows.
const Step = WindowSize - Overlap

// Split cuts text into overlapping windows of WindowSize characters,
// each window starting Step characters after the previous one. The last
// window may be shorter. Offsets are counted in runes, not bytes.
func Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	var chunks []string
	for start := 0; start < len(runes); start += Step {
		end := start + WindowSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
