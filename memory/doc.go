// Package memory provides the per-agent tiered memory Store.
//
// Every entry lands in a bounded short-term tier. Once the tier exceeds its
// capacity the oldest entry is moved into an unbounded long-term bucket
// keyed by its EntryType. Context, Search and ConversationHistory read
// across those tiers; nothing in the package mutates an entry after insert.
package memory
