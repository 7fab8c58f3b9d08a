package llm

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinParts(t *testing.T) {
	s, err := joinParts([]string{"  {\"a\":", "1}\n"})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, s)

	_, err = joinParts([]string{" ", ""})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestResumeOptions(t *testing.T) {
	assert.Equal(t, float32(0.7), ResumeOptions.Temperature)
	assert.Equal(t, float32(0.8), ResumeOptions.TopP)
	assert.Equal(t, int32(40), ResumeOptions.TopK)
	assert.Equal(t, int32(2048), ResumeOptions.MaxOutputTokens)
}

func TestStaticRecordsPrompts(t *testing.T) {
	s := &Static{Text: "{}", Tokens: 12}
	c, err := s.Generate(context.Background(), "hello", ResumeOptions)
	require.NoError(t, err)
	assert.Equal(t, 12, c.TokensUsed)
	assert.Equal(t, []string{"hello"}, s.Prompts())
}

func TestStaticConcurrentGenerate(t *testing.T) {
	s := NewStatic("")
	assert.Equal(t, StaticReply, s.Text)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Generate(context.Background(), "prompt", ResumeOptions)
		}()
	}
	wg.Wait()
	assert.Len(t, s.Prompts(), 16)
}
