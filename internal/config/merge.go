// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"github.com/knadh/koanf/maps"
)

// Values is a partial configuration tree. Sections are nested
// map[string]any values, lists are slices and leaves are scalars.
//
// Values is an alias so that literals such as
// Values{"app": Values{"port": 4000}} nest plain maps that [Merge] and the
// validator recognise as sections.
type Values = map[string]any

// Merge returns a new tree holding every key of target overlaid by every key
// of source.
//
// When both sides hold a section under the same key the sections are merged
// recursively. In every other case, including lists, the source value
// replaces the target value. Keys present only in target are kept. Neither
// input is modified, and the result shares no mutable state with them.
//
// A nil source leaves the result equal to target.
func Merge(target, source Values) Values {
	out := Clone(target)
	if source == nil {
		return out
	}

	maps.Merge(Clone(source), out)
	return out
}

// Clone returns a deep copy of v. A nil tree yields an empty one.
func Clone(v Values) Values {
	if v == nil {
		return Values{}
	}
	return maps.Copy(v)
}

// shallowCopy copies the top level of v only; nested sections are shared.
func shallowCopy(v Values) Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// lookup walks v along path and returns the value found there.
func lookup(v Values, path ...string) (any, bool) {
	var cur any = v
	for _, key := range path {
		section, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = section[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
