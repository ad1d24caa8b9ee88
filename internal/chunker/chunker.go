package chunker

// SizeChunker splits text into near-equal pieces no longer than the
// target size. Concatenating the pieces in order reproduces the input
// exactly.
type SizeChunker struct {
	targetSize int
}

func NewSizeChunker(targetSize int) *SizeChunker {
	if targetSize <= 0 {
		targetSize = 5000
	}
	return &SizeChunker{targetSize: targetSize}
}

// Split returns the chunks for text. Sizes are counted in runes so a
// multi-byte character is never cut in half. Empty input yields nil.
func (c *SizeChunker) Split(text string) []string {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil
	}
	// Balance the chunks so the final one is not pathologically short:
	// ceil(n/target) chunks of ceil(n/numChunks) runes each.
	numChunks := (n + c.targetSize - 1) / c.targetSize
	adjusted := (n + numChunks - 1) / numChunks
	chunks := make([]string, 0, numChunks)
	for i := 0; i < n; i += adjusted {
		end := i + adjusted
		if end > n {
			end = n
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
