package dicom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/suyashkumar/dicom/pkg/tag"
)

// ErrRecordAccess is returned when the dataset cannot be queried or mutated
// for a keyword, e.g. because two top-level elements carry the same keyword.
var ErrRecordAccess = errors.New("record access")

// retiredPrefix marks retired attributes in the tag dictionary, e.g.
// "RETIRED_StudyComments" for (0032,4000).
const retiredPrefix = "RETIRED_"

// Keyword returns the standard keyword for a tag ("PatientName"), or an
// empty string for private and unknown tags. Retired attributes keep their
// bare keyword.
func Keyword(t tag.Tag) string {
	info, err := tag.Find(t)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(info.Name, retiredPrefix)
}

// Keywords returns the keywords of the top-level elements in dataset order.
// Elements without a dictionary keyword are reported by their tag, e.g. "(0009,0010)".
func (d *Dataset) Keywords() []string {
	names := make([]string, 0, len(d.Data.Elements))
	for _, elem := range d.Data.Elements {
		if elem == nil {
			continue
		}
		name := Keyword(elem.Tag)
		if name == "" {
			name = elem.Tag.String()
		}
		names = append(names, name)
	}
	return names
}

// Has reports whether a top-level element with the given keyword exists.
// Nested sequence items are not searched.
func (d *Dataset) Has(keyword string) (bool, error) {
	idx, err := d.indexOf(keyword)
	if err != nil {
		return false, err
	}
	return idx >= 0, nil
}

// Remove deletes the top-level element with the given keyword. Removing an
// absent keyword is a no-op.
func (d *Dataset) Remove(keyword string) error {
	idx, err := d.indexOf(keyword)
	if err != nil {
		return err
	}
	if idx < 0 {
		return nil
	}

	elems := d.Data.Elements
	d.Data.Elements = append(elems[:idx:idx], elems[idx+1:]...)
	return nil
}

// indexOf returns the position of the element carrying keyword, or -1.
func (d *Dataset) indexOf(keyword string) (int, error) {
	if keyword == "" {
		return -1, nil
	}

	found := -1
	for i, elem := range d.Data.Elements {
		if elem == nil {
			return -1, fmt.Errorf("%w: nil element at index %d", ErrRecordAccess, i)
		}
		if Keyword(elem.Tag) != keyword {
			continue
		}
		if found >= 0 {
			return -1, fmt.Errorf("%w: %s appears more than once (%s)", ErrRecordAccess, keyword, elem.Tag)
		}
		found = i
	}
	return found, nil
}
