package store

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

// Query, write and watch semantics shared by the in-process backends. They
// follow the hosted backend: documents missing the order-by field are left
// out of ordered results, and writes hand values back in canonical form
// (int64, float64, []interface{}, map[string]interface{}).

func watchLocal(ctx context.Context, b *broadcaster, q Query, run func(context.Context, Query) ([]Doc, error)) <-chan Snapshot {
	changed, cancel := b.hubFor(q.Collection).subscribe()
	out := make(chan Snapshot)
	go func() {
		defer close(out)
		defer cancel()
		for {
			docs, err := run(ctx, q)
			select {
			case out <- Snapshot{Docs: docs, Err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
			select {
			case <-changed:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func applyQuery(docs []Doc, q Query) []Doc {
	out := make([]Doc, 0, len(docs))
	for _, d := range docs {
		if matches(d, q.Filters) {
			if q.OrderBy != "" {
				if _, ok := d.Data[q.OrderBy]; !ok {
					continue
				}
			}
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if q.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			c := compareValues(out[i].Data[q.OrderBy], out[j].Data[q.OrderBy])
			if q.Direction == Desc {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func matches(d Doc, filters []Filter) bool {
	for _, f := range filters {
		v, ok := d.Data[f.Field]
		if !ok || !equalValues(v, normalize(f.Value)) {
			return false
		}
	}
	return true
}

func applyFields(existing, fields map[string]interface{}, now time.Time) map[string]interface{} {
	out := make(map[string]interface{}, len(existing)+len(fields))
	for k, v := range existing {
		out[k] = v
	}
	for k, v := range fields {
		switch tv := v.(type) {
		case serverTimestamp:
			out[k] = now
		case arrayUnion:
			cur, _ := out[k].([]interface{})
			merged := append([]interface{}(nil), cur...)
			for _, nv := range tv.values {
				nv = normalize(nv)
				present := false
				for _, ev := range merged {
					if equalValues(ev, nv) {
						present = true
						break
					}
				}
				if !present {
					merged = append(merged, nv)
				}
			}
			out[k] = merged
		default:
			out[k] = normalize(v)
		}
	}
	return out
}

func cloneData(data map[string]interface{}) map[string]interface{} {
	if data == nil {
		return map[string]interface{}{}
	}
	return normalize(data).(map[string]interface{})
}

func normalize(v interface{}) interface{} {
	switch tv := v.(type) {
	case nil:
		return nil
	case time.Time:
		return tv
	case map[string]interface{}:
		m := make(map[string]interface{}, len(tv))
		for k, e := range tv {
			m[k] = normalize(e)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(tv))
		for i, e := range tv {
			s[i] = normalize(e)
		}
		return s
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Slice, reflect.Array:
		s := make([]interface{}, rv.Len())
		for i := range s {
			s[i] = normalize(rv.Index(i).Interface())
		}
		return s
	case reflect.Map:
		m := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[fmt.Sprint(iter.Key().Interface())] = normalize(iter.Value().Interface())
		}
		return m
	}
	return v
}

func equalValues(a, b interface{}) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
		return false
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders mixed values by type first (null, bool, number,
// time, string, other), then by value.
func compareValues(a, b interface{}) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case 1:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		}
		return 1
	case 2:
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case 3:
		ta, tb := a.(time.Time), b.(time.Time)
		switch {
		case ta.Before(tb):
			return -1
		case ta.After(tb):
			return 1
		}
		return 0
	case 4:
		return strings.Compare(a.(string), b.(string))
	case 5:
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
	return 0
}

func typeRank(v interface{}) int {
	if v == nil {
		return 0
	}
	if _, ok := toFloat(v); ok {
		return 2
	}
	switch v.(type) {
	case bool:
		return 1
	case time.Time:
		return 3
	case string:
		return 4
	}
	return 5
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
