package repository

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/ec-club-bing/website/internal/docstore"
	"github.com/ec-club-bing/website/internal/models"
)

// decodeDocument copies a loosely typed document into dest using the json field names.
// Backends hand back numbers and timestamps in their own types, so decoding is weakly typed.
func decodeDocument(doc docstore.Document, dest interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           dest,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			timeToDateHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		),
	})
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}
	if err := decoder.Decode(doc.Data); err != nil {
		return fmt.Errorf("decode document %s: %w", doc.ID, err)
	}
	return nil
}

// timeToDateHook turns native timestamps into calendar-day strings when the target field is a string.
func timeToDateHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	if from == reflect.TypeOf(time.Time{}) {
		return data.(time.Time).UTC().Format(models.EventDateLayout), nil
	}
	return data, nil
}
