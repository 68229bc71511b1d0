// Package customdict keeps user supplied words in a Redis set so they survive
// model reloads and are shared by every server instance.
package customdict

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis set holding the words.
const DefaultKey = "custom_dict"

// CustomDict wraps a Redis client to store custom dictionary words.
type CustomDict struct {
	client redis.Cmdable
	key    string
}

// New creates a new CustomDict with the provided Redis client. An empty key
// selects DefaultKey.
func New(client redis.Cmdable, key string) *CustomDict {
	if key == "" {
		key = DefaultKey
	}
	return &CustomDict{client: client, key: key}
}

// Normalize is applied to every word before it is stored or removed.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Add inserts a word into the custom dictionary. It reports whether the word
// was new.
func (cd *CustomDict) Add(ctx context.Context, word string) (bool, error) {
	n, err := cd.client.SAdd(ctx, cd.key, Normalize(word)).Result()
	if err != nil {
		return false, fmt.Errorf("adding %q: %w", word, err)
	}
	return n > 0, nil
}

// Remove deletes a word from the custom dictionary. It reports whether the
// word was present.
func (cd *CustomDict) Remove(ctx context.Context, word string) (bool, error) {
	n, err := cd.client.SRem(ctx, cd.key, Normalize(word)).Result()
	if err != nil {
		return false, fmt.Errorf("removing %q: %w", word, err)
	}
	return n > 0, nil
}

// All returns all words stored in the custom dictionary, sorted.
func (cd *CustomDict) All(ctx context.Context) ([]string, error) {
	words, err := cd.client.SMembers(ctx, cd.key).Result()
	if err != nil {
		return nil, fmt.Errorf("listing custom words: %w", err)
	}
	slices.Sort(words)
	return words, nil
}

// Has reports whether word is stored.
func (cd *CustomDict) Has(ctx context.Context, word string) (bool, error) {
	ok, err := cd.client.SIsMember(ctx, cd.key, Normalize(word)).Result()
	if err != nil {
		return false, fmt.Errorf("checking %q: %w", word, err)
	}
	return ok, nil
}
