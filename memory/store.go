package memory

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultShortTermCapacity is the number of entries kept before eviction.
	DefaultShortTermCapacity = 20
	// DefaultLongTermWindow is how many long-term entries Context appends per type.
	DefaultLongTermWindow = 5
)

// Options configures a Store.
type Options struct {
	ShortTermCapacity int
	LongTermWindow    int
	// Clock stamps new entries; defaults to time.Now.
	Clock func() time.Time
}

// Store is a per-agent tiered memory:
//  1. a bounded short-term tier in arrival order
//  2. an unbounded long-term tier bucketed by entry type
//
// Appending beyond capacity evicts the oldest short-term entry into the
// bucket of its type. Entries are never modified after insertion.
//
// Concurrency: protected by RWMutex.
type Store struct {
	mu        sync.RWMutex
	shortTerm []Entry
	longTerm  map[EntryType][]Entry
	capacity  int
	window    int
	clock     func() time.Time
}

// NewStore creates an empty Store.
func NewStore(optFns ...func(o *Options)) *Store {
	opts := Options{
		ShortTermCapacity: DefaultShortTermCapacity,
		LongTermWindow:    DefaultLongTermWindow,
		Clock:             time.Now,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.ShortTermCapacity <= 0 {
		opts.ShortTermCapacity = DefaultShortTermCapacity
	}
	if opts.LongTermWindow < 0 {
		opts.LongTermWindow = DefaultLongTermWindow
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Store{
		shortTerm: make([]Entry, 0, opts.ShortTermCapacity+1),
		longTerm:  make(map[EntryType][]Entry),
		capacity:  opts.ShortTermCapacity,
		window:    opts.LongTermWindow,
		clock:     opts.Clock,
	}
}

// AddConversation stores a conversational turn. md may be nil.
func (s *Store) AddConversation(content string, md *PlanningMetadata) {
	var meta Metadata
	if md != nil {
		meta = *md
	}
	s.add(TypeConversation, content, meta)
}

// AddTask stores the record of a finished task. md may be nil.
func (s *Store) AddTask(content string, md *TaskMetadata) {
	var meta Metadata
	if md != nil {
		meta = *md
	}
	s.add(TypeTask, content, meta)
}

// AddLearning stores a learned fact. md may be nil.
func (s *Store) AddLearning(content string, md *LearningMetadata) {
	var meta Metadata
	if md != nil {
		meta = *md
	}
	s.add(TypeLearning, content, meta)
}

// AddPreference stores a user preference. md may be nil.
func (s *Store) AddPreference(content string, md *PreferenceMetadata) {
	var meta Metadata
	if md != nil {
		meta = *md
	}
	s.add(TypePreference, content, meta)
}

func (s *Store) add(t EntryType, content string, md Metadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shortTerm = append(s.shortTerm, Entry{Timestamp: s.clock(), Type: t, Content: content, Metadata: md})
	if len(s.shortTerm) > s.capacity {
		old := s.shortTerm[0]
		s.shortTerm = append(s.shortTerm[:0:0], s.shortTerm[1:]...)
		s.longTerm[old.Type] = append(s.longTerm[old.Type], old)
	}
}

// Context returns the short-term tier when t is AnyType. Otherwise it returns
// the short-term entries of type t followed by up to the last LongTermWindow
// long-term entries of the same type.
func (s *Store) Context(t EntryType) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t == AnyType {
		out := make([]Entry, len(s.shortTerm))
		copy(out, s.shortTerm)
		return out
	}
	out := make([]Entry, 0, len(s.shortTerm))
	for _, e := range s.shortTerm {
		if e.Type == t {
			out = append(out, e)
		}
	}
	bucket := s.longTerm[t]
	start := len(bucket) - s.window
	if start < 0 {
		start = 0
	}
	return append(out, bucket[start:]...)
}

// ConversationHistory returns the contents of the most recent limit
// conversation entries in the short-term tier, oldest first.
func (s *Store) ConversationHistory(limit int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		return []string{}
	}
	var contents []string
	for _, e := range s.shortTerm {
		if e.Type == TypeConversation {
			contents = append(contents, e.Content)
		}
	}
	if len(contents) > limit {
		contents = contents[len(contents)-limit:]
	}
	out := make([]string, len(contents))
	copy(out, contents)
	return out
}

// Search performs a case-insensitive substring match over both tiers.
// Results come in storage order: short-term first, then long-term buckets.
func (s *Store) Search(query string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(query)
	var results []Entry
	match := func(e Entry) {
		if strings.Contains(strings.ToLower(e.Content), q) {
			results = append(results, e)
		}
	}
	for _, e := range s.shortTerm {
		match(e)
	}
	for _, t := range entryTypes {
		for _, e := range s.longTerm[t] {
			match(e)
		}
	}
	return results
}

// ClearShortTerm empties the short-term tier; the long-term tier is kept.
func (s *Store) ClearShortTerm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shortTerm = make([]Entry, 0, s.capacity+1)
}

// ShortTerm returns a copy of the short-term tier.
func (s *Store) ShortTerm() []Entry {
	return s.Context(AnyType)
}

// LongTerm returns a copy of the long-term bucket for t.
func (s *Store) LongTerm(t EntryType) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.longTerm[t]))
	copy(out, s.longTerm[t])
	return out
}

// Summary describes the short-term tier in one line.
func (s *Store) Summary() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var tasks, conversations int
	for _, e := range s.shortTerm {
		switch e.Type {
		case TypeTask:
			tasks++
		case TypeConversation:
			conversations++
		}
	}
	return fmt.Sprintf("Memory: %d conversations, %d tasks completed", conversations, tasks)
}
