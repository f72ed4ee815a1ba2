package openai

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakura-notes/sakura/pkg/ai"
)

func newStubDriver(t *testing.T, handler http.HandlerFunc) *Driver {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New("test-token", srv.URL+"/v1", ai.ModelName{})
}

func TestGenerateStructuredOutput(t *testing.T) {
	driver := newStubDriver(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"title\":\"Kafka basics\",\"answer\":\"Partitions spread load [1].\"}"}}],"usage":{"prompt_tokens":10,"completion_tokens":12,"total_tokens":22}}`))
	})

	res, err := driver.Generate(context.Background(), "prompt", "query")

	assert.NoError(t, err)
	assert.False(t, res.Fallback)
	assert.Equal(t, "Kafka basics", res.Title)
	assert.Equal(t, "Partitions spread load [1].", res.Answer)
	assert.Equal(t, 22, res.Usage.TotalTokens)
}

// providers that reject the json_schema response format must not fail the
// request, the driver retries plain and returns the raw text.
func TestGenerateRetriesPlainWhenSchemaRejected(t *testing.T) {
	var calls int
	driver := newStubDriver(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		body, _ := io.ReadAll(r.Body)
		if bytes.Contains(body, []byte("json_schema")) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"response_format json_schema is not supported","type":"invalid_request_error"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Partitions spread load across brokers [1]."}}],"usage":{"prompt_tokens":10,"completion_tokens":9,"total_tokens":19}}`))
	})

	res, err := driver.Generate(context.Background(), "prompt", "query")

	assert.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Empty(t, res.Title)
	assert.Equal(t, "Partitions spread load across brokers [1].", res.Answer)
	assert.Equal(t, 2, calls)
}

func TestGenerateFailsWhenPlainRetryFails(t *testing.T) {
	driver := newStubDriver(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"upstream unavailable","type":"server_error"}}`))
	})

	_, err := driver.Generate(context.Background(), "prompt", "query")

	assert.Error(t, err)
}

func TestGenerateUnparsableStructuredContent(t *testing.T) {
	driver := newStubDriver(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"not json at all"}}],"usage":{"prompt_tokens":4,"completion_tokens":4,"total_tokens":8}}`))
	})

	res, err := driver.Generate(context.Background(), "prompt", "query")

	assert.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, "not json at all", res.Answer)
}
