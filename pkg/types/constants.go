package types

const (
	NO_PAGING = 0

	LANGUAGE_EN_KEY = "en"
	LANGUAGE_CN_KEY = "zh-CN"
)

const (
	// DEFAULT_RETRIEVE_LIMIT caps how many fragments a single retrieval returns.
	DEFAULT_RETRIEVE_LIMIT = 10
	// DEFAULT_RETRIEVE_THRESHOLD is the minimum cosine score for a fragment to count as relevant.
	DEFAULT_RETRIEVE_THRESHOLD = 0.4
)
