package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrNotObject is returned when a merge input is not a JSON object.
var ErrNotObject = errors.New("document is not a JSON object")

// DeepMerge overlays patch onto base. Where both sides hold an object under the
// same key the merge recurses; any other patch value (array, scalar, null)
// replaces the base value outright. Keys only present in base are kept.
func DeepMerge(base, patch []byte) ([]byte, error) {
	if !gjson.ValidBytes(base) || !gjson.ParseBytes(base).IsObject() {
		return nil, fmt.Errorf("base: %w", ErrNotObject)
	}
	if !gjson.ValidBytes(patch) || !gjson.ParseBytes(patch).IsObject() {
		return nil, fmt.Errorf("patch: %w", ErrNotObject)
	}

	existing := make(map[string]gjson.Result)
	gjson.ParseBytes(base).ForEach(func(k, v gjson.Result) bool {
		existing[k.String()] = v
		return true
	})

	out := []byte(gjson.ParseBytes(base).Raw)
	var err error
	gjson.ParseBytes(patch).ForEach(func(k, v gjson.Result) bool {
		// sjson has no path for the empty key; the document never uses one.
		if k.String() == "" {
			return true
		}
		value := []byte(v.Raw)
		if cur, ok := existing[k.String()]; ok && cur.IsObject() && v.IsObject() {
			value, err = DeepMerge([]byte(cur.Raw), value)
			if err != nil {
				return false
			}
		}
		out, err = sjson.SetRawBytes(out, setPath(k.String()), value)
		return err == nil
	})
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	return out, nil
}

// setPath turns an object key into a literal sjson path component.
func setPath(key string) string {
	escaped := gjson.Escape(key)
	if key != "" && strings.Trim(key, "0123456789") == "" {
		return ":" + escaped
	}
	return escaped
}
