package anonymizer

import (
	"fmt"
	"sort"
)

// Record is a parsed file whose top-level attributes can be queried and
// removed by keyword. *dicom.Dataset implements it.
type Record interface {
	Has(field string) (bool, error)
	Remove(field string) error
}

var sensitiveFields = func() map[string]struct{} {
	set := make(map[string]struct{}, len(sensitiveFieldNames))
	for _, name := range sensitiveFieldNames {
		set[name] = struct{}{}
	}
	return set
}()

// IsSensitive reports whether field is on the de-identification list.
func IsSensitive(field string) bool {
	_, ok := sensitiveFields[field]
	return ok
}

// SensitiveFields returns the de-identification list, sorted.
func SensitiveFields() []string {
	names := make([]string, 0, len(sensitiveFields))
	for name := range sensitiveFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Redact removes every sensitive field present at the top level of r.
// Everything else, including pixel data and nested sequences, is left as is.
//
// An error from the record aborts redaction and leaves r partially redacted;
// such a record must not be written.
func Redact(r Record) error {
	for name := range sensitiveFields {
		ok, err := r.Has(name)
		if err != nil {
			return fmt.Errorf("could not check %s: %w", name, err)
		}
		if !ok {
			continue
		}
		if err := r.Remove(name); err != nil {
			return fmt.Errorf("could not remove %s: %w", name, err)
		}
	}
	return nil
}

// Present lists the sensitive fields present in r, sorted. r is not modified.
func Present(r Record) ([]string, error) {
	var found []string
	for name := range sensitiveFields {
		ok, err := r.Has(name)
		if err != nil {
			return nil, fmt.Errorf("could not check %s: %w", name, err)
		}
		if ok {
			found = append(found, name)
		}
	}
	sort.Strings(found)
	return found, nil
}
