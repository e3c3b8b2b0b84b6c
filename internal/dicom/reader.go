package dicom

import (
	"errors"
	"fmt"
	"os"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// ErrParse is returned when a file is not a readable DICOM file.
var ErrParse = errors.New("could not parse DICOM")

// Dataset wraps a DICOM dataset for keyword-addressed access
type Dataset struct {
	Data     dicom.Dataset
	FilePath string
}

// NewDataset wraps elements that were built in memory.
func NewDataset(elems ...*dicom.Element) *Dataset {
	return &Dataset{Data: dicom.Dataset{Elements: elems}}
}

// ReadDicom reads a DICOM file, pixel data included. The pixel data value is
// kept as the raw bytes from the file and written back unchanged by Save.
func ReadDicom(path string) (*Dataset, error) {
	return read(path, dicom.SkipProcessingPixelDataValue())
}

// ReadDicomMetadataOnly reads only the metadata (no pixel data).
func ReadDicomMetadataOnly(path string) (*Dataset, error) {
	return read(path, dicom.SkipPixelData())
}

func read(path string, opts ...dicom.ParseOption) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("could not stat file: %w", err)
	}

	ds, err := dicom.Parse(file, info.Size(), nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return &Dataset{
		Data:     ds,
		FilePath: path,
	}, nil
}

// GetString returns a string value for a tag, or empty string if not found.
func (d *Dataset) GetString(t tag.Tag) string {
	elem, err := d.Data.FindElementByTag(t)
	if err != nil || elem.Value == nil {
		return ""
	}

	switch v := elem.Value.GetValue().(type) {
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}

	return ""
}

// GetModality returns the DICOM modality (e.g., "US", "CT", "MR").
func (d *Dataset) GetModality() string {
	return d.GetString(tag.Modality)
}

// GetTransferSyntax returns the transfer syntax UID.
func (d *Dataset) GetTransferSyntax() string {
	return d.GetString(tag.TransferSyntaxUID)
}
