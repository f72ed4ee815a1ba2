package citation

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/sakura-notes/sakura/pkg/types"
)

// bracketRe matches a single inline citation token. Adjacent citations
// like [1][2] are two independent tokens, never one bracket.
var bracketRe = regexp.MustCompile(`\[(\d+)\]`)

// ExtractCited returns the distinct provisional numbers cited in text,
// sorted numerically ascending.
func ExtractCited(text string) []int {
	seen := make(map[int]struct{})
	for _, m := range bracketRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		seen[n] = struct{}{}
	}

	nums := make([]int, 0, len(seen))
	for n := range seen {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// Renumber rewrites the bracket citations in text so that the provisional
// numbers actually cited become a dense run 1..N, assigned in ascending
// numeric order of the provisional numbers. Numbers the model cited that
// have no entry in provisional are left untouched and get no reference
// entry. Every occurrence of a remapped token is rewritten, not just the
// first. The returned map keys are the final numbers.
func Renumber(text string, provisional types.ReferenceMap) (string, types.ReferenceMap) {
	remap := make(map[string]string)
	final := make(types.ReferenceMap)

	next := 1
	for _, n := range ExtractCited(text) {
		old := strconv.Itoa(n)
		ref, ok := provisional[old]
		if !ok {
			continue
		}
		fresh := strconv.Itoa(next)
		remap[old] = fresh
		final[fresh] = ref
		next++
	}

	rewritten := bracketRe.ReplaceAllStringFunc(text, func(token string) string {
		old := token[1 : len(token)-1]
		if fresh, ok := remap[old]; ok {
			return fmt.Sprintf("[%s]", fresh)
		}
		return token
	})

	return rewritten, final
}
