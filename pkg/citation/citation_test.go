package citation

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakura-notes/sakura/pkg/types"
)

func provisionalMap(nums ...int) types.ReferenceMap {
	m := make(types.ReferenceMap)
	for _, n := range nums {
		key := strconv.Itoa(n)
		m[key] = types.Reference{
			NoteID:        "note-" + key,
			FragmentIndex: n - 1,
			FragmentText:  "fragment " + key,
		}
	}
	return m
}

func TestExtractCited(t *testing.T) {
	nums := ExtractCited("see [3], then [1], and [3] again plus [12]")
	assert.Equal(t, []int{1, 3, 12}, nums)
}

func TestRenumberDense(t *testing.T) {
	text := "First point [5]. Second point [2]. Back to [5]."
	rewritten, refs := Renumber(text, provisionalMap(1, 2, 3, 4, 5))

	assert.Equal(t, "First point [2]. Second point [1]. Back to [2].", rewritten)
	assert.Len(t, refs, 2)
	assert.Equal(t, "note-2", refs["1"].NoteID)
	assert.Equal(t, "note-5", refs["2"].NoteID)
}

func TestRenumberAscendingNotAppearanceOrder(t *testing.T) {
	// [7] appears first in text but 3 < 7, so 3 becomes 1
	text := "claim [7] and evidence [3]"
	rewritten, refs := Renumber(text, provisionalMap(3, 7))

	assert.Equal(t, "claim [2] and evidence [1]", rewritten)
	assert.Equal(t, "note-3", refs["1"].NoteID)
	assert.Equal(t, "note-7", refs["2"].NoteID)
}

func TestRenumberGlobalSubstitution(t *testing.T) {
	text := "[4] a [4] b [4]"
	rewritten, _ := Renumber(text, provisionalMap(4))
	assert.Equal(t, "[1] a [1] b [1]", rewritten)
}

func TestRenumberUnknownNumberDropped(t *testing.T) {
	// the model hallucinated [9]; it keeps its bracket but gets no entry
	text := "real [2], imaginary [9]"
	rewritten, refs := Renumber(text, provisionalMap(1, 2))

	assert.Equal(t, "real [1], imaginary [9]", rewritten)
	assert.Len(t, refs, 1)
	assert.Equal(t, "note-2", refs["1"].NoteID)
}

func TestRenumberAdjacentTokens(t *testing.T) {
	text := "combined evidence [1][3]"
	rewritten, refs := Renumber(text, provisionalMap(1, 2, 3))

	assert.Equal(t, "combined evidence [1][2]", rewritten)
	assert.Len(t, refs, 2)
}

func TestRenumberNoCitations(t *testing.T) {
	text := "no citations here"
	rewritten, refs := Renumber(text, provisionalMap(1, 2))

	assert.Equal(t, text, rewritten)
	assert.Empty(t, refs)
}

func TestRenumberMonotonicBijection(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"reverse order", "[8] [6] [4] [2]"},
		{"interleaved", "[2] [8] [4] [8] [2] [6]"},
		{"already dense", "[1] [2] [3]"},
	}

	prov := provisionalMap(1, 2, 3, 4, 5, 6, 7, 8)
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			rewritten, refs := Renumber(tt.text, prov)

			cited := ExtractCited(tt.text)
			final := ExtractCited(rewritten)
			assert.Len(t, refs, len(cited))

			// dense 1..N
			for i, n := range final {
				assert.Equal(t, i+1, n)
			}
			// relative numeric order of provisional numbers is preserved
			for i, old := range cited {
				assert.Equal(t, prov[strconv.Itoa(old)], refs[strconv.Itoa(i+1)])
			}
		})
	}
}

func TestRenumberDeterministic(t *testing.T) {
	text := "alpha [5] beta [1] gamma [5] delta [3]"
	prov := provisionalMap(1, 2, 3, 4, 5)

	first, firstRefs := Renumber(text, prov)
	for i := 0; i < 10; i++ {
		again, againRefs := Renumber(text, prov)
		assert.Equal(t, first, again)
		assert.Equal(t, firstRefs, againRefs)
	}
}
