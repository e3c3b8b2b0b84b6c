// Package dicomtest builds small DICOM datasets and files for tests.
package dicomtest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// ExplicitVRLittleEndian is the transfer syntax used for generated files.
const ExplicitVRLittleEndian = "1.2.840.10008.1.2.1"

// Elem builds an element, failing the test on error.
func Elem(t testing.TB, tg tag.Tag, value any) *dicom.Element {
	t.Helper()
	e, err := dicom.NewElement(tg, value)
	require.NoError(t, err)
	return e
}

// Meta returns the file meta elements every generated file carries.
func Meta(t testing.TB) []*dicom.Element {
	t.Helper()
	return []*dicom.Element{
		Elem(t, tag.MediaStorageSOPClassUID, []string{"1.2.840.10008.5.1.4.1.1.2"}),
		Elem(t, tag.MediaStorageSOPInstanceUID, []string{"1.2.3.4.5.6"}),
		Elem(t, tag.TransferSyntaxUID, []string{ExplicitVRLittleEndian}),
	}
}

// Patient returns a typical identified CT header: PatientName, PatientID,
// StudyDate and AccessionNumber (sensitive) plus Modality and SOPClassUID (kept).
func Patient(t testing.TB) []*dicom.Element {
	t.Helper()
	return []*dicom.Element{
		Elem(t, tag.SOPClassUID, []string{"1.2.840.10008.5.1.4.1.1.2"}),
		Elem(t, tag.StudyDate, []string{"20230101"}),
		Elem(t, tag.AccessionNumber, []string{"ACC00001"}),
		Elem(t, tag.Modality, []string{"CT"}),
		Elem(t, tag.PatientName, []string{"Doe^John"}),
		Elem(t, tag.PatientID, []string{"123456"}),
	}
}

// Image returns the pixel module of a single-frame monochrome image whose
// PixelData value is payload, byte for byte.
func Image(t testing.TB, rows, cols, bits int, payload []byte) []*dicom.Element {
	t.Helper()
	return []*dicom.Element{
		Elem(t, tag.SamplesPerPixel, []int{1}),
		Elem(t, tag.PhotometricInterpretation, []string{"MONOCHROME2"}),
		Elem(t, tag.Rows, []int{rows}),
		Elem(t, tag.Columns, []int{cols}),
		Elem(t, tag.BitsAllocated, []int{bits}),
		Elem(t, tag.BitsStored, []int{bits}),
		Elem(t, tag.HighBit, []int{bits - 1}),
		Elem(t, tag.PixelRepresentation, []int{0}),
		Elem(t, tag.PixelData, dicom.PixelDataInfo{
			IntentionallyUnprocessed: true,
			UnprocessedValueData:     append([]byte(nil), payload...),
		}),
	}
}

// RawPixelData returns the PixelData value of the file at path as stored on disk.
func RawPixelData(t testing.TB, path string) []byte {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	info, err := f.Stat()
	require.NoError(t, err)

	ds, err := dicom.Parse(f, info.Size(), nil, dicom.SkipProcessingPixelDataValue())
	require.NoError(t, err)
	elem, err := ds.FindElementByTag(tag.PixelData)
	require.NoError(t, err)
	return dicom.MustGetPixelDataInfo(elem.Value).UnprocessedValueData
}

// WriteFile writes meta plus elems as a DICOM file at path.
func WriteFile(t testing.TB, path string, elems ...*dicom.Element) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))

	ds := dicom.Dataset{Elements: append(Meta(t), elems...)}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, dicom.Write(f, ds, dicom.SkipVRVerification(), dicom.SkipValueTypeVerification()))
}

// WriteCorrupt writes a file with a .dcm name that is not DICOM.
func WriteCorrupt(t testing.TB, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("this is not a DICOM header"), 0644))
}
