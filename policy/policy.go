// Package policy implements the per-binding access guardrail. A policy looks
// at the concrete path segments of a request, estimates how many rows the
// backing source would return, and decides allow, warn, or block before any
// adapter I/O happens.
package policy

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

const (
	// DefaultBaseRowCount is the starting row estimate when a policy does not
	// set one.
	DefaultBaseRowCount = 100

	// DefaultMultiplier is applied for a wildcarded segment position with no
	// configured cardinality multiplier.
	DefaultMultiplier = 100

	// Wildcard is the segment value that matches every key at its position.
	Wildcard = "ALL"
)

// AccessPolicy is the guardrail attached to a source binding. The zero value
// allows everything with the default row estimate.
type AccessPolicy struct {
	// RequiredSegments lists segment indexes that must not be the wildcard.
	RequiredSegments []int `yaml:"required_segments" json:"required_segments,omitempty"`

	// MinFilters is the minimum count of non-wildcard segments.
	MinFilters int `yaml:"min_filters" json:"min_filters,omitempty"`

	// BlockedPatterns are regexes matched case-insensitively against the
	// "/"-joined concrete segments.
	BlockedPatterns []string `yaml:"blocked_patterns" json:"blocked_patterns,omitempty"`

	// DenialMessage overrides the generated message for blocked patterns.
	DenialMessage string `yaml:"denial_message" json:"denial_message,omitempty"`

	// MaxRowsWarn returns a non-blocking warning when exceeded. Zero disables.
	MaxRowsWarn int64 `yaml:"max_rows_warn" json:"max_rows_warn,omitempty"`

	// MaxRowsBlock denies the request when exceeded. Zero disables.
	MaxRowsBlock int64 `yaml:"max_rows_block" json:"max_rows_block,omitempty"`

	// CardinalityMultipliers holds per-segment-position factors applied when
	// that position is wildcarded.
	CardinalityMultipliers []int64 `yaml:"cardinality_multipliers" json:"cardinality_multipliers,omitempty"`

	// BaseRowCount seeds the estimate. Zero means DefaultBaseRowCount.
	BaseRowCount int64 `yaml:"base_row_count" json:"base_row_count,omitempty"`
}

// Decision is the outcome of a policy check.
type Decision struct {
	Allowed       bool   `json:"allowed"`
	Reason        string `json:"reason,omitempty"`
	Warning       string `json:"warning,omitempty"`
	EstimatedRows int64  `json:"estimated_rows"`
}

// IsWildcard reports whether a segment is the "ALL" wildcard, ignoring case.
func IsWildcard(segment string) bool {
	return strings.EqualFold(segment, Wildcard)
}

// EstimateRows computes the expected result cardinality for the given
// concrete segments. Each wildcarded position multiplies the running total by
// its configured multiplier, or DefaultMultiplier when none is configured.
// The estimate saturates at math.MaxInt64 instead of overflowing.
func (p *AccessPolicy) EstimateRows(segments []string) int64 {
	rows := p.BaseRowCount
	if rows <= 0 {
		rows = DefaultBaseRowCount
	}
	for i, seg := range segments {
		if !IsWildcard(seg) {
			continue
		}
		mult := int64(DefaultMultiplier)
		if i < len(p.CardinalityMultipliers) && p.CardinalityMultipliers[i] > 0 {
			mult = p.CardinalityMultipliers[i]
		}
		if rows > math.MaxInt64/mult {
			return math.MaxInt64
		}
		rows *= mult
	}
	return rows
}

// Validate checks the segments against the policy. Checks run in a fixed
// order so that a pattern-level denial message takes precedence over the
// generic row-count message: blocked patterns, required segments, minimum
// filters, then the row-count limit. An error is returned only for a
// malformed policy (an invalid blocked pattern).
func (p *AccessPolicy) Validate(segments []string) (Decision, error) {
	estimated := p.EstimateRows(segments)
	joined := strings.Join(segments, "/")

	for _, pattern := range p.BlockedPatterns {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return Decision{}, fmt.Errorf("invalid blocked pattern %q: %w", pattern, err)
		}
		if re.MatchString(joined) {
			reason := p.DenialMessage
			if reason == "" {
				reason = fmt.Sprintf("query %q matches blocked pattern %q", joined, pattern)
			}
			return Decision{Allowed: false, Reason: reason, EstimatedRows: estimated}, nil
		}
	}

	for _, idx := range p.RequiredSegments {
		if idx >= 0 && idx < len(segments) && IsWildcard(segments[idx]) {
			return Decision{
				Allowed:       false,
				Reason:        fmt.Sprintf("segment %d is required and cannot be %s", idx, Wildcard),
				EstimatedRows: estimated,
			}, nil
		}
	}

	if p.MinFilters > 0 {
		concrete := 0
		for _, seg := range segments {
			if !IsWildcard(seg) {
				concrete++
			}
		}
		if concrete < p.MinFilters {
			return Decision{
				Allowed:       false,
				Reason:        fmt.Sprintf("at least %d concrete filters required, got %d", p.MinFilters, concrete),
				EstimatedRows: estimated,
			}, nil
		}
	}

	if p.MaxRowsBlock > 0 && estimated > p.MaxRowsBlock {
		return Decision{
			Allowed:       false,
			Reason:        fmt.Sprintf("estimated %d rows exceeds limit of %d", estimated, p.MaxRowsBlock),
			EstimatedRows: estimated,
		}, nil
	}

	decision := Decision{Allowed: true, EstimatedRows: estimated}
	if p.MaxRowsWarn > 0 && estimated > p.MaxRowsWarn {
		decision.Warning = fmt.Sprintf("estimated %d rows exceeds warning threshold of %d", estimated, p.MaxRowsWarn)
	}
	return decision, nil
}
