package scheduling

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	blockIDPrefix   = "b"
	bookingIDPrefix = "bk"

	defaultIDSuffixLen = 6
	maxIDAttempts      = 16
)

// IDGenerator builds short prefixed identifiers such as "b3f9a1c" or "bk0c47de".
// Random may be swapped in tests; it defaults to dash-stripped UUIDv4 text.
type IDGenerator struct {
	SuffixLen int
	Random    func() string
}

func (g IDGenerator) Generate(prefix string) string {
	n := g.SuffixLen
	if n <= 0 {
		n = defaultIDSuffixLen
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	for sb.Len() < len(prefix)+n {
		chunk := g.random()
		need := len(prefix) + n - sb.Len()
		if len(chunk) > need {
			chunk = chunk[:need]
		}
		sb.WriteString(chunk)
	}
	return sb.String()
}

// Unique draws ids until taken reports one as free.
func (g IDGenerator) Unique(ctx context.Context, prefix string, taken func(context.Context, string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := g.Generate(prefix)
		used, err := taken(ctx, id)
		if err != nil {
			return "", err
		}
		if !used {
			return id, nil
		}
	}
	return "", fmt.Errorf("generate %q id: %d collisions in a row", prefix, maxIDAttempts)
}

func (g IDGenerator) random() string {
	if g.Random != nil {
		if s := g.Random(); s != "" {
			return s
		}
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
