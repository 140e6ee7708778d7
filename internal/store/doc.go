// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store provides the configuration store that plugins merge their
// defaults into.
//
// A [Store] holds a JSON-like tree (map[string]any with nested mappings,
// sequences and scalars). It is created once per configuration session and
// mutated in place by every [Store.Merge] call. Values are addressed with
// dot-delimited namespaces such as "server.http.address".
//
// Merging is deep: when both the existing and the incoming value at a key are
// mappings they are combined key by key, otherwise the incoming value replaces
// the existing one. Sequences are atomic and are replaced, never concatenated.
package store
