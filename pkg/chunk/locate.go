package chunk

import "strings"

// Locate recovers the best-effort [start,end) character span of fragment
// within body. Fragments are cut from title+"\n"+body when the note has a
// title, so a fragment may start inside the title or straddle the boundary;
// the returned span is always body-relative. index is the fragment's
// sequence number within its note, used for a positional estimate when
// text matching fails. Locate never fails: the worst case is the whole
// body as a low-confidence span.
func Locate(title, body, fragment string, index int) (int, int) {
	bodyRunes := []rune(body)
	bodyLen := len(bodyRunes)
	fragLen := len([]rune(fragment))

	boundary := 0
	indexed := body
	if title != "" {
		boundary = len([]rune(title)) + 1
		indexed = title + "\n" + body
	}

	if at := runeIndex(indexed, fragment); at >= 0 {
		if at >= boundary {
			return at - boundary, at - boundary + fragLen
		}
		end := fragLen - (boundary - at)
		if end < 0 {
			end = 0
		}
		if end > bodyLen {
			end = bodyLen
		}
		return 0, end
	}

	remainder := fragment
	if title != "" {
		remainder = strings.TrimPrefix(fragment, title+"\n")
	}
	remRunes := []rune(remainder)
	remLen := len(remRunes)

	if at := runeIndex(body, remainder); at >= 0 {
		return at, at + remLen
	}

	if at := fuzzyIndex(bodyRunes, remRunes); at >= 0 {
		end := at + remLen
		if end > bodyLen {
			end = bodyLen
		}
		return at, end
	}

	if index >= 0 {
		start := index * Step
		if start < bodyLen {
			end := start + remLen
			if end > bodyLen {
				end = bodyLen
			}
			return start, end
		}
	}

	return 0, bodyLen
}

// runeIndex returns the rune offset of the first occurrence of sub in s,
// or -1 if absent.
func runeIndex(s, sub string) int {
	byteAt := strings.Index(s, sub)
	if byteAt < 0 {
		return -1
	}
	return len([]rune(s[:byteAt]))
}

const (
	fuzzyRatio      = 0.7
	fuzzyMinCompare = 50
)

// fuzzyIndex slides a window of len(rem) over body and returns the first
// position where the character-wise equality ratio over the overlapping
// length exceeds fuzzyRatio. Positions where fewer than
// max(fuzzyMinCompare, fuzzyRatio*len(rem)) characters overlap are not
// considered a match.
func fuzzyIndex(body, rem []rune) int {
	if len(rem) == 0 {
		return -1
	}

	minCompare := int(fuzzyRatio * float64(len(rem)))
	if minCompare < fuzzyMinCompare {
		minCompare = fuzzyMinCompare
	}

	for pos := 0; pos < len(body); pos++ {
		compared := len(body) - pos
		if compared > len(rem) {
			compared = len(rem)
		}
		if compared < minCompare {
			// shrinks monotonically from here on
			return -1
		}

		same := 0
		for i := 0; i < compared; i++ {
			if body[pos+i] == rem[i] {
				same++
			}
		}
		if float64(same)/float64(compared) > fuzzyRatio {
			return pos
		}
	}
	return -1
}
