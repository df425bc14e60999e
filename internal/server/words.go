package server

import (
	"context"
	"math/rand"
	"sync"

	"sketch-rooms/internal/db"

	"gorm.io/gorm"
)

// Word is a sampled word with its library id, when one exists.
type Word struct {
	DBID uint
	Text string
}

// WordProvider returns one random word per call.
type WordProvider interface {
	SampleOne(ctx context.Context) (Word, error)
}

type dbWordProvider struct {
	conn *gorm.DB
}

func (p *dbWordProvider) SampleOne(ctx context.Context) (Word, error) {
	record, err := db.SampleWord(p.conn.WithContext(ctx))
	if err != nil {
		return Word{}, err
	}
	return Word{DBID: record.ID, Text: record.Text}, nil
}

// listWordProvider serves from a fixed in-memory list. It backs the server
// when no database is configured.
type listWordProvider struct {
	mu    sync.Mutex
	rng   *rand.Rand
	words []string
}

func newListWordProvider(seed int64, words []string) *listWordProvider {
	if len(words) == 0 {
		words = defaultWordList
	}
	return &listWordProvider{
		rng:   rand.New(rand.NewSource(seed)),
		words: words,
	}
}

func (p *listWordProvider) SampleOne(ctx context.Context) (Word, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Word{Text: p.words[p.rng.Intn(len(p.words))]}, nil
}

var defaultWordList = []string{
	"apple", "bridge", "castle", "dragon", "elephant", "forest",
	"guitar", "house", "island", "jungle", "kite", "lighthouse",
	"mountain", "notebook", "octopus", "pirate", "queen", "rocket",
	"sunflower", "train", "umbrella", "volcano", "whale", "zebra",
}
