// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package lua

import (
	"fmt"
	"strconv"

	glua "github.com/yuin/gopher-lua"
)

// toGo converts a Lua value to its Go counterpart. Integral numbers become
// int64, sequences become []any and other tables map[string]any. Functions
// nested in tables and cyclic references convert to nil.
func toGo(lv glua.LValue) any {
	return toGoVisited(lv, make(map[*glua.LTable]bool))
}

func toGoVisited(lv glua.LValue, visited map[*glua.LTable]bool) any {
	switch v := lv.(type) {
	case glua.LBool:
		return bool(v)
	case glua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case glua.LString:
		return string(v)
	case *glua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		defer delete(visited, v)

		return tableToGo(v, visited)
	case *glua.LUserData:
		return v.Value
	default:
		return nil
	}
}

func tableToGo(t *glua.LTable, visited map[*glua.LTable]bool) any {
	if n := sequenceLen(t); n > 0 {
		out := make([]any, n)
		for i := 1; i <= n; i++ {
			out[i-1] = toGoVisited(t.RawGetInt(i), visited)
		}
		return out
	}

	out := make(map[string]any)
	t.ForEach(func(key, value glua.LValue) {
		var name string
		switch k := key.(type) {
		case glua.LString:
			name = string(k)
		case glua.LNumber:
			name = strconv.FormatFloat(float64(k), 'f', -1, 64)
		default:
			name = key.String()
		}
		out[name] = toGoVisited(value, visited)
	})

	return out
}

// sequenceLen returns the length of t when its keys are exactly 1..n, and 0
// otherwise.
func sequenceLen(t *glua.LTable) int {
	count, maxN := 0, 0
	isSequence := true

	t.ForEach(func(key, _ glua.LValue) {
		count++
		kn, ok := key.(glua.LNumber)
		if !ok || float64(kn) != float64(int(kn)) || kn < 1 {
			isSequence = false
			return
		}
		maxN = max(maxN, int(kn))
	})

	if !isSequence || count != maxN {
		return 0
	}

	return maxN
}

// toLua converts a Go configuration value to a Lua value.
func toLua(L *glua.LState, v any) glua.LValue {
	switch val := v.(type) {
	case nil:
		return glua.LNil
	case bool:
		return glua.LBool(val)
	case string:
		return glua.LString(val)
	case int:
		return glua.LNumber(val)
	case int32:
		return glua.LNumber(val)
	case int64:
		return glua.LNumber(val)
	case uint:
		return glua.LNumber(val)
	case uint64:
		return glua.LNumber(val)
	case float32:
		return glua.LNumber(val)
	case float64:
		return glua.LNumber(val)
	case []any:
		t := L.NewTable()
		for i, item := range val {
			t.RawSetInt(i+1, toLua(L, item))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		for key, item := range val {
			t.RawSetString(key, toLua(L, item))
		}
		return t
	default:
		return glua.LString(fmt.Sprint(val))
	}
}
