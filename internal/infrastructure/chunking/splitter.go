package chunking

import "strings"

type Splitter struct {
	ChunkSize int
	Overlap   int
}

func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return &Splitter{
		ChunkSize: chunkSize,
		Overlap:   overlap,
	}
}

// NewSummarySplitter sizes chunks so the text divides into roughly
// targetChunks pieces, bounding the number of model calls for any input. The
// floor keeps short documents from being over-split. Overlap is 10% of the
// chunk size so the fold does not lose context at boundaries.
func NewSummarySplitter(totalLen, targetChunks, minChunkSize int) *Splitter {
	if targetChunks <= 0 {
		targetChunks = 20
	}
	if minChunkSize <= 0 {
		minChunkSize = 1000
	}
	chunkSize := totalLen / targetChunks
	if chunkSize < minChunkSize {
		chunkSize = minChunkSize
	}
	return NewSplitter(chunkSize, chunkSize/10)
}

func (s *Splitter) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := s.ChunkSize - s.Overlap
	if step <= 0 {
		step = s.ChunkSize
	}

	out := make([]string, 0, len(runes)/step+1)
	for start := 0; start < len(runes); start += step {
		end := start + s.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			out = append(out, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return out
}
