package persist

import (
	"bytes"
	"encoding/json"

	"github.com/KirkDiggler/talis/internal/errors"
)

// DecodePatch fills a typed patch struct from an untyped map. Unknown keys
// and mistyped values are rejected.
func DecodePatch(raw map[string]any, dst any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return errors.InvalidArgumentf("patch is not encodable: %v", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.InvalidArgumentf("invalid patch: %v", err)
	}
	return nil
}
