// Package replies produces the canned automated responses appended after
// every user message.
package replies

import "math/rand/v2"

// Canned is the fixed set of automated responses.
var Canned = []string{
	"Hello! How can I assist you today?",
	"I'm here to help. What do you need?",
	"How can I make your day better?",
	"Do you have any questions for me?",
	"I'm ready to assist with anything you need.",
	"Feel free to ask me anything.",
	"What can I do for you right now?",
	"Let me know if there's anything specific you need help with.",
	"I'm here to provide information or help with tasks.",
	"How can I support you today?",
}

// Source supplies uniformly distributed integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Pick returns one of candidates chosen by src. candidates must not be empty.
func Pick(src Source, candidates []string) string {
	return candidates[src.IntN(len(candidates))]
}

// Generator draws replies from a fixed list.
type Generator struct {
	src        Source
	candidates []string
}

// NewGenerator returns a Generator over Canned. A nil src uses the
// goroutine-safe top-level math/rand/v2 generator; a caller-supplied src must
// be safe for concurrent use if the Generator is shared.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = globalSource{}
	}
	return &Generator{src: src, candidates: Canned}
}

// Generate returns the next automated reply.
func (g *Generator) Generate() string {
	return Pick(g.src, g.candidates)
}
