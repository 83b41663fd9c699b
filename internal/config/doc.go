// Package config provides configuration loading, merging, and validation
// facilities for backend services.
//
// Configuration is assembled as a tree of [Values] and layered in the order
// the caller chooses (later layers override earlier leaves):
//  1. Presets (development, production, staging, test)
//  2. A JSON or YAML file
//  3. Environment variables, optionally prefixed
//  4. Explicit overrides
//
// Layers are combined with [Merge], which merges nested sections recursively
// and replaces lists and scalars outright. The accumulated tree is checked
// against the declarative [Schema] by [Validate], which reports every
// violation at once and then applies the production secret gate.
//
// The main entry points are [NewBuilder] for fluent composition and [Load]
// for the usual service startup sequence.
package config
