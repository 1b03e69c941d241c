// Package tag reads and writes macOS Finder tags through the
// com.apple.metadata:_kMDItemUserTags extended attribute, which
// stores a binary plist array of tag strings.
package tag

import (
	"fmt"

	"github.com/pkg/xattr"
	"howett.net/plist"
)

// UserTagsAttr is the extended attribute Finder stores tags in.
const UserTagsAttr = "com.apple.metadata:_kMDItemUserTags"

// Store applies tags to files. The production implementation writes
// extended attributes; a dry-run or test implementation can record
// instead.
type Store interface {
	// Add ensures the tag is present on the file, preserving any
	// tags already there.
	Add(path, tag string) error
}

// FinderStore is the xattr-backed Store.
type FinderStore struct{}

// Read returns the file's current Finder tags. A missing attribute
// or an undecodable value reads as no tags, matching Finder's own
// tolerance for absent metadata.
func (FinderStore) Read(path string) []string {
	data, err := xattr.Get(path, UserTagsAttr)
	if err != nil {
		return nil
	}
	var tags []string
	if _, err := plist.Unmarshal(data, &tags); err != nil {
		return nil
	}
	return tags
}

// Write replaces the file's Finder tags, deduplicated in first-seen
// order.
func (FinderStore) Write(path string, tags []string) error {
	data, err := plist.Marshal(dedupe(tags), plist.BinaryFormat)
	if err != nil {
		return fmt.Errorf("encoding tags for %q: %w", path, err)
	}
	if err := xattr.Set(path, UserTagsAttr, data); err != nil {
		return fmt.Errorf("writing tags to %q: %w", path, err)
	}
	return nil
}

// Add implements Store.
func (s FinderStore) Add(path, tag string) error {
	existing := s.Read(path)
	for _, t := range existing {
		if t == tag {
			return nil
		}
	}
	return s.Write(path, append(existing, tag))
}

func dedupe(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
