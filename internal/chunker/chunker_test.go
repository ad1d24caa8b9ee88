package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitReconstitutesInput(t *testing.T) {
	inputs := []string{
		"a",
		"hello world",
		strings.Repeat("x", 4999),
		strings.Repeat("x", 5000),
		strings.Repeat("x", 5001),
		strings.Repeat("abcdefghij", 1234),
		"многоязычный текст с юникодом — 混合文字",
	}
	for _, in := range inputs {
		chunks := NewSizeChunker(5000).Split(in)
		assert.Equal(t, in, strings.Join(chunks, ""))
	}
}

func TestSplitBalancesChunkSizes(t *testing.T) {
	target := 100
	c := NewSizeChunker(target)
	for _, n := range []int{1, 99, 100, 101, 150, 199, 250, 1000, 1001} {
		in := strings.Repeat("a", n)
		chunks := c.Split(in)

		numChunks := (n + target - 1) / target
		adjusted := (n + numChunks - 1) / numChunks
		require.Len(t, chunks, numChunks, "n=%d", n)
		for _, ch := range chunks {
			assert.LessOrEqual(t, len([]rune(ch)), adjusted, "n=%d", n)
		}
	}
}

func TestSplitShortTextIsSingleChunk(t *testing.T) {
	chunks := NewSizeChunker(5000).Split("short text")
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}

func TestSplitChunkSizedTextIsIdentity(t *testing.T) {
	in := strings.Repeat("z", 100)
	chunks := NewSizeChunker(100).Split(in)
	require.Len(t, chunks, 1)
	assert.Equal(t, in, chunks[0])
}

func TestSplitEmptyTextYieldsNothing(t *testing.T) {
	assert.Empty(t, NewSizeChunker(5000).Split(""))
}

func TestSplitNeverCutsRunes(t *testing.T) {
	in := strings.Repeat("é漢", 500)
	chunks := NewSizeChunker(7).Split(in)
	for _, ch := range chunks {
		assert.True(t, strings.ContainsRune("é漢", []rune(ch)[0]))
		assert.Equal(t, string([]rune(ch)), ch)
	}
	assert.Equal(t, in, strings.Join(chunks, ""))
}

func TestNewSizeChunkerDefaultsBadTarget(t *testing.T) {
	c := NewSizeChunker(0)
	in := strings.Repeat("a", 6000)
	chunks := c.Split(in)
	require.Len(t, chunks, 2)
	assert.Equal(t, in, strings.Join(chunks, ""))
}
