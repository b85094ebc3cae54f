package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes bounds request bodies; a full year of benchmarks fits easily.
const maxBodyBytes = 8 << 20

// batch accepts either a single JSON object or an array of them.
type batch[T any] struct {
	items []T
}

func (b *batch[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errors.New("empty body")
	}

	switch trimmed[0] {
	case '[':
		items := []T{}
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		b.items = items
	case '{':
		var one T
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return err
		}
		b.items = []T{one}
	default:
		return errors.New("expected an object or an array of objects")
	}
	return nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON body: trailing data")
	}
	return nil
}

// validateItems validates every element and reports the first failure by index.
func validateItems[T any](v *validator.Validate, items []T) error {
	for i := range items {
		if err := v.Struct(items[i]); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				return fmt.Errorf("item %d: %s", i, formatFieldErrors(verrs))
			}
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

func formatFieldErrors(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return strings.Join(parts, ", ")
}

// queryParser reads optional filter values, remembering the first parse error.
type queryParser struct {
	values url.Values
	err    error
}

func newQueryParser(r *http.Request) *queryParser {
	return &queryParser{values: r.URL.Query()}
}

func (q *queryParser) int(name string) *int {
	raw := q.values.Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		if q.err == nil {
			q.err = fmt.Errorf("invalid %s: %q is not an integer", name, raw)
		}
		return nil
	}
	return &v
}

func (q *queryParser) string(name string) *string {
	if !q.values.Has(name) {
		return nil
	}
	v := q.values.Get(name)
	return &v
}

func pathInt(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not an integer", name, raw)
	}
	return v, nil
}
