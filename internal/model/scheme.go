// Package model defines the data structures for event-id maintenance.
package model

import (
	"fmt"
	"sort"
)

// Category is a coarse subsystem label used to partition the identifier
// numbering space.
type Category string

const (
	// CategoryCore is the fallback category for unmatched paths.
	CategoryCore Category = "Core"
	// CategoryAudio covers playback, media and sound output code.
	CategoryAudio Category = "Audio"
	// CategoryKNX covers the building-automation integration.
	CategoryKNX Category = "KNX"
	// CategoryMQTT covers the broker/topic messaging integration.
	CategoryMQTT Category = "MQTT"
	// CategoryWeb covers HTTP controllers and API endpoints.
	CategoryWeb Category = "Web"
	// CategoryInfrastructure covers hosting, extensions and services.
	CategoryInfrastructure Category = "Infrastructure"
	// CategoryPerformance covers metrics and monitoring code.
	CategoryPerformance Category = "Performance"
	// CategoryNotifications covers event handlers and publishers.
	CategoryNotifications Category = "Notifications"
	// CategoryTesting covers test doubles living in the main tree.
	CategoryTesting Category = "Testing"
)

// Rule maps path keywords to a category. Rules are evaluated in order and
// the first keyword hit wins.
type Rule struct {
	Category Category `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// Range reserves a contiguous numeric block for one category.
type Range struct {
	Category Category `yaml:"category"`
	Base     int      `yaml:"base"`
	Span     int      `yaml:"span"`
}

// Scheme is the authoritative category configuration for a run: the ordered
// classification rules, the reserved ranges, the fallback category and the
// per-file block size.
type Scheme struct {
	Rules     []Rule   `yaml:"rules"`
	Ranges    []Range  `yaml:"ranges"`
	Default   Category `yaml:"default"`
	BlockSize int      `yaml:"block_size"`
}

// Base returns the reserved base value for a category.
func (s Scheme) Base(c Category) (int, bool) {
	for _, r := range s.Ranges {
		if r.Category == c {
			return r.Base, true
		}
	}

	return 0, false
}

// Span returns the reserved range width for a category.
func (s Scheme) Span(c Category) (int, bool) {
	for _, r := range s.Ranges {
		if r.Category == c {
			return r.Span, true
		}
	}

	return 0, false
}

// Validate checks the structural invariants of a scheme: positive block
// size, a range for the default category and every rules category, and
// pairwise disjoint ranges.
func (s Scheme) Validate() error {
	if s.BlockSize <= 0 {
		return fmt.Errorf("scheme: block size must be positive, got %d", s.BlockSize)
	}

	if _, ok := s.Base(s.Default); !ok {
		return fmt.Errorf("scheme: default category %q has no reserved range", s.Default)
	}

	for _, rule := range s.Rules {
		if _, ok := s.Base(rule.Category); !ok {
			return fmt.Errorf("scheme: rule category %q has no reserved range", rule.Category)
		}
	}

	ranges := make([]Range, len(s.Ranges))
	copy(ranges, s.Ranges)
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Base < ranges[j].Base })

	for i, r := range ranges {
		if r.Span <= 0 {
			return fmt.Errorf("scheme: category %q has non-positive span %d", r.Category, r.Span)
		}

		if r.Span < s.BlockSize {
			return fmt.Errorf("scheme: category %q span %d is smaller than block size %d", r.Category, r.Span, s.BlockSize)
		}

		if i+1 < len(ranges) {
			next := ranges[i+1]
			if r.Base+r.Span > next.Base {
				return fmt.Errorf("scheme: ranges for %q and %q overlap", r.Category, next.Category)
			}
		}
	}

	return nil
}

// DefaultScheme returns the built-in category table: each category owns a
// 1000-wide range with a 100-id block per file.
func DefaultScheme() Scheme {
	return Scheme{
		Rules: []Rule{
			{Category: CategoryAudio, Keywords: []string{"Audio", "Media", "Snapcast", "LibVLC", "Player", "Sound"}},
			{Category: CategoryKNX, Keywords: []string{"KNX", "Knx", "Building", "Automation"}},
			{Category: CategoryMQTT, Keywords: []string{"MQTT", "Mqtt", "Message", "Broker", "Topic"}},
			{Category: CategoryWeb, Keywords: []string{"Web", "Http", "API", "Controller", "Endpoint"}},
			{Category: CategoryInfrastructure, Keywords: []string{"Infrastructure", "Host", "Extension", "Service", "Integration"}},
			{Category: CategoryPerformance, Keywords: []string{"Performance", "Metrics", "Monitor", "Stats"}},
			{Category: CategoryNotifications, Keywords: []string{"Notification", "Event", "Handler", "Publisher"}},
			{Category: CategoryTesting, Keywords: []string{"Test", "Mock", "Fake", "Stub"}},
		},
		Ranges: []Range{
			{Category: CategoryCore, Base: 1000, Span: 1000},
			{Category: CategoryAudio, Base: 2000, Span: 1000},
			{Category: CategoryKNX, Base: 3000, Span: 1000},
			{Category: CategoryMQTT, Base: 4000, Span: 1000},
			{Category: CategoryWeb, Base: 5000, Span: 1000},
			{Category: CategoryInfrastructure, Base: 6000, Span: 1000},
			{Category: CategoryPerformance, Base: 7000, Span: 1000},
			{Category: CategoryNotifications, Base: 8000, Span: 1000},
			{Category: CategoryTesting, Base: 9000, Span: 1000},
		},
		Default:   CategoryCore,
		BlockSize: 100,
	}
}
