package chat

import (
	"bufio"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pickupsports/game-chat-api/config"
)

const profanityMask = "****"

// ProfanityFilter screens chat content against a runtime-mutable
// dictionary. The dictionary and its compiled matcher are always
// swapped together under the write lock, so readers never observe a
// dictionary that disagrees with the pattern.
type ProfanityFilter struct {
	mu         sync.RWMutex
	enabled    bool
	reject     bool
	path       string
	words      []string
	dictionary map[string]struct{}
	pattern    *regexp.Regexp
}

// NewProfanityFilter builds the filter from the configured inline word
// list merged with the optional dictionary file.
func NewProfanityFilter(conf *config.Config) *ProfanityFilter {
	f := &ProfanityFilter{
		enabled: conf.ProfanityEnabled,
		reject:  conf.ProfanityReject,
		path:    conf.DictionaryPath,
		words:   conf.ProfanityWords,
	}
	f.dictionary = f.loadDictionary()
	f.pattern = compilePattern(f.dictionary)
	return f
}

// loadDictionary merges the inline words with the dictionary file.
// File lines are trimmed and lowercased; blank lines and # comments are
// skipped. A missing or unreadable file only logs.
func (f *ProfanityFilter) loadDictionary() map[string]struct{} {
	dict := make(map[string]struct{})
	for _, w := range f.words {
		if t := strings.ToLower(strings.TrimSpace(w)); t != "" {
			dict[t] = struct{}{}
		}
	}
	if f.path == "" {
		return dict
	}

	file, err := os.Open(f.path)
	if err != nil {
		zap.S().Warnw("failed to open profanity dictionary",
			"path", f.path,
			"error", err,
		)
		return dict
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		t := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		dict[t] = struct{}{}
	}
	return dict
}

func compilePattern(dict map[string]struct{}) *regexp.Regexp {
	if len(dict) == 0 {
		return nil
	}
	quoted := make([]string, 0, len(dict))
	for w := range dict {
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	sort.Strings(quoted)
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// Enabled reports whether the filter is on and has terms to match
func (f *ProfanityFilter) Enabled() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.enabled && f.pattern != nil
}

// ShouldReject reports whether matches fail the submission instead of
// being masked
func (f *ProfanityFilter) ShouldReject() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.reject
}

// Contains reports whether content has a whole-word dictionary match
func (f *ProfanityFilter) Contains(content string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.enabled || f.pattern == nil || content == "" {
		return false
	}
	return f.pattern.MatchString(content)
}

// Sanitize replaces every dictionary match in content with the mask
func (f *ProfanityFilter) Sanitize(content string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.enabled || f.pattern == nil || content == "" {
		return content
	}
	return f.pattern.ReplaceAllString(content, profanityMask)
}

// Words returns the dictionary terms sorted
func (f *ProfanityFilter) Words() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, 0, len(f.dictionary))
	for w := range f.dictionary {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Add inserts a term and recompiles the matcher
func (f *ProfanityFilter) Add(word string) {
	t := strings.ToLower(strings.TrimSpace(word))
	if t == "" {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	dict := copyDict(f.dictionary)
	dict[t] = struct{}{}
	f.dictionary = dict
	f.pattern = compilePattern(dict)
}

// Remove deletes a term and recompiles the matcher
func (f *ProfanityFilter) Remove(word string) {
	t := strings.ToLower(strings.TrimSpace(word))
	if t == "" {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	dict := copyDict(f.dictionary)
	delete(dict, t)
	f.dictionary = dict
	f.pattern = compilePattern(dict)
}

// ReplaceAll swaps the whole dictionary for the given terms
func (f *ProfanityFilter) ReplaceAll(words []string) {
	dict := make(map[string]struct{})
	for _, w := range words {
		if t := strings.ToLower(strings.TrimSpace(w)); t != "" {
			dict[t] = struct{}{}
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dictionary = dict
	f.pattern = compilePattern(dict)
}

// Reload rebuilds the dictionary from the inline list and the file
func (f *ProfanityFilter) Reload() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dictionary = f.loadDictionary()
	f.pattern = compilePattern(f.dictionary)
}

// SetEnabled toggles the filter
func (f *ProfanityFilter) SetEnabled(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled = enabled
}

// SetReject toggles reject-vs-sanitize policy
func (f *ProfanityFilter) SetReject(reject bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reject = reject
}

func copyDict(dict map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(dict))
	for w := range dict {
		out[w] = struct{}{}
	}
	return out
}
