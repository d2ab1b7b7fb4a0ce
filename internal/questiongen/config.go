package questiongen

import "math/rand/v2"

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every parsed question; the first failure
	// rejects it. They also gate answer sets proposed by the validation pass.
	Validators []Validator

	// K is how many chunks are retrieved per topic.
	K int

	// TopN is the size of the top-ranked pool a chunk is drawn from.
	TopN int

	// MaxUniqueAttempts bounds regeneration when a question repeats a
	// previous one. The last attempt is accepted regardless.
	MaxUniqueAttempts int

	// SimilarityThreshold rejects questions whose similarity to a previous
	// question is strictly greater than this value.
	SimilarityThreshold float64

	// RandomPool is how many chunks are sampled for random topics, and
	// MinPool the size below which the source filter is dropped.
	RandomPool int
	MinPool    int

	// PrimarySource is the source_type questions are generated from.
	PrimarySource string

	// TopicMaxLen caps extracted topics, in runes.
	TopicMaxLen int

	// FallbackTopic is used when topic extraction fails.
	FallbackTopic string

	// Rand drives chunk selection. Nil means a time-seeded source.
	Rand *rand.Rand
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
		},
		K:                   5,
		TopN:                3,
		MaxUniqueAttempts:   3,
		SimilarityThreshold: 0.7,
		RandomPool:          150,
		MinPool:             10,
		PrimarySource:       "Hauptskript",
		TopicMaxLen:         50,
		FallbackTopic:       "Business Software",
	}
}
