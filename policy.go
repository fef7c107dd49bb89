package mdsafe

import (
	"slices"

	"github.com/alnah/go-mdsafe/internal/pipeline"
)

// SanitizationPolicy configures the allow-list applied to every render.
//
// The sanitizer is default-deny: only standard prose tags and the markup the
// renderer emits for code blocks and tables survive. The policy can remove
// more and can allow extra attributes, but event-handler attributes (on*)
// are always dropped.
type SanitizationPolicy struct {
	ForbiddenTags       []string // removed together with their content
	ForbiddenAttributes []string // removed from every element
	AllowedAttributes   []string // allowed on top of the built-in list
	AllowDataAttributes bool     // keep every data-* attribute
	ExternalLinksNewTab bool     // add target="_blank" to absolute links
}

// DefaultPolicy returns the policy used when WithPolicy is not given:
// script, style, iframe, form, input, button, object and embed are removed
// with their content, style and every on* attribute are dropped, and
// anchors may carry a target.
func DefaultPolicy() SanitizationPolicy {
	p := pipeline.DefaultPolicy()
	return SanitizationPolicy(p)
}

func (p SanitizationPolicy) internal() pipeline.Policy {
	return pipeline.Policy{
		ForbiddenTags:       slices.Clone(p.ForbiddenTags),
		ForbiddenAttributes: slices.Clone(p.ForbiddenAttributes),
		AllowedAttributes:   slices.Clone(p.AllowedAttributes),
		AllowDataAttributes: p.AllowDataAttributes,
		ExternalLinksNewTab: p.ExternalLinksNewTab,
	}
}
