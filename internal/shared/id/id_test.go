package id

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestID(t *testing.T) {
	a := NewRequestID()
	b := NewRequestID()

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a.String(), "req_"))
	assert.Len(t, a.String(), len("req_")+26)
	assert.True(t, IsValid(a.String()))
}

func TestNewJobID(t *testing.T) {
	j := NewJobID()
	assert.True(t, strings.HasPrefix(j.String(), "job_"))
	assert.True(t, IsValid(j.String()))
}

func TestNewSpanID(t *testing.T) {
	s := NewSpanID()
	_, err := uuid.Parse(s.String())
	assert.NoError(t, err)
	assert.False(t, IsValid(s.String()))
}

func TestTimestamp(t *testing.T) {
	before := time.Now().Add(-time.Second)
	ts, err := Timestamp(NewRequestID().String())
	require.NoError(t, err)
	assert.True(t, ts.After(before))

	_, err = Timestamp("req_not-a-ulid")
	assert.Error(t, err)
}

func TestGeneratorWithEntropy(t *testing.T) {
	entropy := bytes.Repeat([]byte{0xab}, 10)
	gen := NewGeneratorWithEntropy(bytes.NewReader(entropy))

	u := gen.Generate()
	assert.Equal(t, entropy, u.Entropy())
	assert.WithinDuration(t, time.Now(), ulid.Time(u.Time()), time.Second)

	assert.Panics(t, func() { gen.Generate() })
}

func TestGeneratorConcurrent(t *testing.T) {
	gen := NewGenerator()
	const n = 200

	var mu sync.Mutex
	seen := make(map[string]struct{}, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v := gen.GenerateWithPrefix("req")
			mu.Lock()
			seen[v] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, n)
}
