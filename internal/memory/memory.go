// Package memory implements the temporal fractal memory: compressed storage
// of analysed queries with fractal signatures and access tracking.
package memory

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"hash/fnv"
	"time"
)

const (
	fractalLevel      = 3
	patternDensity    = 0.85
	temporalCoherence = 1.0
	compressedMarker  = "...[fractal_compressed]"
)

// ErrNotFound is returned when a memory id is unknown or expired.
var ErrNotFound = errors.New("memory not found")

// Compression is the fractal-compressed form of a stored content.
type Compression struct {
	Data           string  `json:"compressed_data"`
	OriginalSize   int     `json:"original_size"`
	CompressedSize int     `json:"compressed_size"`
	FractalLevel   int     `json:"fractal_level"`
	PatternDensity float64 `json:"pattern_density"`
	Ratio          float64 `json:"compression_ratio"`
}

// Entry is a stored memory.
type Entry struct {
	ID          string            `json:"id"`
	Content     Compression       `json:"content"`
	Metadata    map[string]string `json:"metadata"`
	StoredAt    time.Time         `json:"timestamp"`
	AccessCount int               `json:"access_count"`
	Signature   string            `json:"fractal_signature"`
}

// Recall is a decompressed memory returned by Get.
type Recall struct {
	ID                string            `json:"id"`
	Content           string            `json:"content"`
	Metadata          map[string]string `json:"metadata"`
	AccessCount       int               `json:"access_count"`
	Signature         string            `json:"fractal_signature"`
	TemporalCoherence float64           `json:"temporal_coherence"`
}

// Metrics summarise the memory system.
type Metrics struct {
	TotalMemories           int     `json:"total_memories"`
	FractalPatterns         int     `json:"fractal_patterns"`
	TemporalCoherence       float64 `json:"temporal_coherence"`
	AverageCompressionRatio float64 `json:"average_compression_ratio"`
	MemoryEfficiency        string  `json:"memory_efficiency"`
	SystemStatus            string  `json:"system_status"`
	Backend                 string  `json:"backend"`
}

// Store persists memories. Implementations are safe for concurrent use.
type Store interface {
	// Put compresses and stores content, returning the new memory id.
	Put(ctx context.Context, content string, metadata map[string]string) (string, error)
	// Get returns the decompressed memory and increments its access count.
	Get(ctx context.Context, id string) (*Recall, error)
	// Metrics reports aggregate memory statistics.
	Metrics(ctx context.Context) (*Metrics, error)
}

// Compress applies fractal compression: the leading third of the content
// (at least 10 runes) is kept verbatim.
func Compress(content string) Compression {
	runes := []rune(content)
	size := max(10, len(runes)/3)
	ratio := 1.0
	if len(runes) > 0 {
		ratio = float64(size) / float64(len(runes))
	}
	return Compression{
		Data:           string(runes[:min(size, len(runes))]) + compressedMarker,
		OriginalSize:   len(runes),
		CompressedSize: size,
		FractalLevel:   fractalLevel,
		PatternDensity: patternDensity,
		Ratio:          ratio,
	}
}

// Decompress renders the stored form with its size annotation.
func Decompress(c Compression) string {
	return fmt.Sprintf("%s [decompressed: %d -> %d bytes]", c.Data, c.CompressedSize, c.OriginalSize)
}

// Signature returns the fractal signature of content.
func Signature(content string) string {
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])[:16]
}

// NewID builds a memory id from the store time and the content hash.
func NewID(now time.Time, content string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(content))
	return fmt.Sprintf("memory_%d_%d", now.UnixMilli(), h.Sum32()%10000)
}

func newMetrics(total, patterns int, ratioSum float64, backend string) *Metrics {
	avg := 0.0
	if total > 0 {
		avg = ratioSum / float64(total)
	}
	efficiency := "medium"
	if avg < 0.5 {
		efficiency = "high"
	}
	return &Metrics{
		TotalMemories:           total,
		FractalPatterns:         patterns,
		TemporalCoherence:       temporalCoherence,
		AverageCompressionRatio: avg,
		MemoryEfficiency:        efficiency,
		SystemStatus:            "OPTIMAL",
		Backend:                 backend,
	}
}

func recall(e *Entry) *Recall {
	return &Recall{
		ID:                e.ID,
		Content:           Decompress(e.Content),
		Metadata:          e.Metadata,
		AccessCount:       e.AccessCount,
		Signature:         e.Signature,
		TemporalCoherence: temporalCoherence,
	}
}
