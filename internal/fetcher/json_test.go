package fetcher

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestDecodeJSONArray(t *testing.T) {
	input := `[{"id":1,"name":"alpha"},{"id":2,"name":"beta"},{"id":3,"name":"gamma"}]`

	ch, errCh := DecodeJSONArray[testRecord](context.Background(), strings.NewReader(input))

	var records []testRecord
	for rec := range ch {
		records = append(records, rec)
	}
	for err := range errCh {
		require.NoError(t, err)
	}

	require.Len(t, records, 3)
	assert.Equal(t, testRecord{ID: 2, Name: "beta"}, records[1])
}

func TestReadJSONArray(t *testing.T) {
	recs, err := ReadJSONArray[testRecord](context.Background(), strings.NewReader(`[{"id":7,"name":"x"}]`))
	require.NoError(t, err)
	assert.Equal(t, []testRecord{{ID: 7, Name: "x"}}, recs)
}

func TestReadJSONArray_Empty(t *testing.T) {
	recs, err := ReadJSONArray[testRecord](context.Background(), strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestReadJSONArray_NotArray(t *testing.T) {
	_, err := ReadJSONArray[testRecord](context.Background(), strings.NewReader(`{"id":1}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected '['")
}

func TestReadJSONArray_Malformed(t *testing.T) {
	_, err := ReadJSONArray[testRecord](context.Background(), strings.NewReader(`[{"id":1},{"id":`))
	assert.Error(t, err)
}

func TestReadJSONArray_EmptyInput(t *testing.T) {
	_, err := ReadJSONArray[testRecord](context.Background(), strings.NewReader(``))
	assert.Error(t, err)
}

func TestDecodeJSONArray_ContextCancellation(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < 10000; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"id":1,"name":"n"}`)
	}
	sb.WriteString("]")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, errCh := DecodeJSONArray[testRecord](ctx, strings.NewReader(sb.String()))

	count := 0
	for range ch {
		count++
		if count == 10 {
			cancel()
			break
		}
	}
	// Drain so the decoder goroutine can observe cancellation.
	for range ch {
	}

	err := <-errCh
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context cancelled")
}
