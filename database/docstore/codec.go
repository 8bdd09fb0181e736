package docstore

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// TagName is the struct tag shared by every driver.
const TagName = "firestore"

var timeType = reflect.TypeOf(time.Time{})

// timestampToMillis lets documents written with native timestamps decode into
// the epoch-millisecond fields of the models.
func timestampToMillis(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from == timeType && to.Kind() == reflect.Int64 {
		return data.(time.Time).UnixMilli(), nil
	}
	return data, nil
}

// Encode converts a flat tagged struct into document data.
func Encode(v any) (map[string]any, error) {
	out := map[string]any{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: TagName,
		Result:  &out,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(v); err != nil {
		return nil, fmt.Errorf("docstore: encode %T: %w", v, err)
	}
	return out, nil
}

// Decode fills the tagged struct pointed to by out from document data.
func Decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          TagName,
		WeaklyTypedInput: true,
		DecodeHook:       timestampToMillis,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("docstore: decode into %T: %w", out, err)
	}
	return nil
}
