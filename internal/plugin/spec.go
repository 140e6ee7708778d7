// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package plugin describes the entries of a plugin list and resolves them
// against a module loader.
package plugin

import (
	"fmt"
	"maps"
)

// Default export names used when a spec does not name one.
const (
	DefaultsExport  = "defaults"
	ConfigureExport = "configure"
)

// Kind discriminates the shapes a Spec can take.
type Kind int

const (
	// KindModule refers to a module by id only; the merge phase reads its
	// "defaults" export.
	KindModule Kind = iota
	// KindModuleExport refers to a named export of a module.
	KindModuleExport
	// KindInline carries a literal mapping and has no configure step.
	KindInline
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindModuleExport:
		return "module-export"
	case KindInline:
		return "inline"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Spec is one entry of a plugin list. Build it with [Module], [ModuleExport],
// [Inline] or [Parse]; the zero value is an empty inline spec.
type Spec struct {
	kind     Kind
	moduleID string
	export   string
	value    map[string]any
}

// Module returns a spec for moduleID using the conventional export names.
func Module(moduleID string) Spec {
	return Spec{kind: KindModule, moduleID: moduleID}
}

// ModuleExport returns a spec whose defaults come from the named export of
// moduleID.
func ModuleExport(moduleID, exportName string) Spec {
	return Spec{kind: KindModuleExport, moduleID: moduleID, export: exportName}
}

// Inline returns a spec that merges value as is.
func Inline(value map[string]any) Spec {
	return Spec{kind: KindInline, value: value}
}

// Kind reports the shape of s.
func (s Spec) Kind() Kind {
	if s.kind == KindModule && s.moduleID == "" {
		return KindInline
	}
	return s.kind
}

// IsInline reports whether s carries a literal mapping.
func (s Spec) IsInline() bool {
	return s.Kind() == KindInline
}

// ModuleID returns the module of a module-backed spec, or "" for inline specs.
func (s Spec) ModuleID() string {
	return s.moduleID
}

// DefaultsExport returns the export read during the merge phase.
func (s Spec) DefaultsExport() string {
	if s.kind == KindModuleExport {
		return s.export
	}
	return DefaultsExport
}

// Value returns the literal mapping of an inline spec.
func (s Spec) Value() map[string]any {
	return s.value
}

// String names the spec in logs.
func (s Spec) String() string {
	switch s.Kind() {
	case KindModule:
		return s.moduleID
	case KindModuleExport:
		return s.moduleID + "#" + s.export
	default:
		return fmt.Sprintf("inline(%d keys)", len(s.value))
	}
}

// Parse builds a Spec from a decoded list entry: a string is a module id,
// a mapping with non-empty string "moduleId" and "exportName" is a module
// export, and any other mapping is an inline value.
func Parse(entry any) (Spec, error) {
	switch v := entry.(type) {
	case Spec:
		return v, nil
	case string:
		if v == "" {
			return Spec{}, fmt.Errorf("%w: empty module id", ErrInvalidSpec)
		}
		return Module(v), nil
	case map[string]any:
		moduleID, _ := v["moduleId"].(string)
		exportName, _ := v["exportName"].(string)
		if moduleID != "" && exportName != "" {
			return ModuleExport(moduleID, exportName), nil
		}
		return Inline(maps.Clone(v)), nil
	default:
		return Spec{}, fmt.Errorf("%w: unsupported entry of type %T", ErrInvalidSpec, entry)
	}
}

// ParseList parses every entry of entries in order. The first invalid entry
// stops parsing; its index is part of the error.
func ParseList(entries []any) ([]Spec, error) {
	specs := make([]Spec, 0, len(entries))
	for i, entry := range entries {
		spec, err := Parse(entry)
		if err != nil {
			return nil, fmt.Errorf("plugin %d: %w", i, err)
		}
		specs = append(specs, spec)
	}

	return specs, nil
}
