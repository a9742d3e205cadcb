// Package manifest provides types and utilities for loading and validating
// sgmerge rule manifests. A manifest lists the module sources to aggregate,
// each with optional per-source exclusion tokens, plus optional header
// metadata for the merged output.
//
// # Manifest Format
//
// Manifests are YAML (JSON is accepted by extension):
//
//	name: My Merged Module
//	desc: Aggregated from upstream lists
//	rules:
//	  - url: https://example.com/ads.sgmodule
//	    drop: banner, tracker
//	  - url: ./local/extra.sgmodule
//
// # Usage
//
//	loader := manifest.NewLoader()
//	m, err := loader.Load("rule.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, rule := range m.UsableRules() {
//	    // Fetch and fold each source
//	}
//
// Entries without a url are skipped; a manifest yielding no usable rules
// fails validation with domain.ErrNoRules.
package manifest
