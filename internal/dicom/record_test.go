package dicom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suyashkumar/dicom/pkg/tag"

	dcm "dicom-redactor/internal/dicom"
	"dicom-redactor/internal/dicom/dicomtest"
)

func TestKeyword(t *testing.T) {
	tests := []struct {
		tag  tag.Tag
		want string
	}{
		{tag.PatientName, "PatientName"},
		{tag.AccessionNumber, "AccessionNumber"},
		{tag.PixelData, "PixelData"},
		{tag.Tag{Group: 0x0032, Element: 0x4000}, "StudyComments"}, // retired
		{tag.Tag{Group: 0x4000, Element: 0x4000}, "TextComments"},  // retired
		{tag.Tag{Group: 0x0009, Element: 0x1001}, ""}, // private
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, dcm.Keyword(tt.tag), tt.tag.String())
	}
}

func TestDatasetHasAndRemove(t *testing.T) {
	ds := dcm.NewDataset(dicomtest.Patient(t)...)

	ok, err := ds.Has("PatientName")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, ds.Remove("PatientName"))

	ok, err = ds.Has("PatientName")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t,
		[]string{"SOPClassUID", "StudyDate", "AccessionNumber", "Modality", "PatientID"},
		ds.Keywords())
}

func TestDatasetRemoveAbsentIsNoop(t *testing.T) {
	ds := dcm.NewDataset(dicomtest.Elem(t, tag.Modality, []string{"CT"}))

	require.NoError(t, ds.Remove("PatientName"))
	require.NoError(t, ds.Remove("NotAKeyword"))
	require.NoError(t, ds.Remove(""))
	assert.Equal(t, []string{"Modality"}, ds.Keywords())
}

func TestDatasetHasUnknownKeyword(t *testing.T) {
	ds := dcm.NewDataset(dicomtest.Patient(t)...)

	for _, name := range []string{"overlays", "Radiopharmaceutical Information Sequence", "patientname", ""} {
		ok, err := ds.Has(name)
		require.NoError(t, err)
		assert.False(t, ok, name)
	}
}

func TestDatasetDuplicateKeyword(t *testing.T) {
	ds := dcm.NewDataset(
		dicomtest.Elem(t, tag.PatientName, []string{"Doe^John"}),
		dicomtest.Elem(t, tag.PatientName, []string{"Doe^Jane"}),
	)

	_, err := ds.Has("PatientName")
	assert.ErrorIs(t, err, dcm.ErrRecordAccess)

	err = ds.Remove("PatientName")
	assert.ErrorIs(t, err, dcm.ErrRecordAccess)
	assert.Len(t, ds.Data.Elements, 2)
}

func TestDatasetNilElement(t *testing.T) {
	ds := dcm.NewDataset(dicomtest.Elem(t, tag.Modality, []string{"CT"}), nil)

	_, err := ds.Has("Modality")
	assert.ErrorIs(t, err, dcm.ErrRecordAccess)
}

func TestKeywordsPrivateTag(t *testing.T) {
	ds := dcm.NewDataset(dicomtest.Elem(t, tag.Modality, []string{"CT"}))
	priv := dicomtest.Elem(t, tag.Modality, []string{"XX"})
	priv.Tag = tag.Tag{Group: 0x0009, Element: 0x1001}
	ds.Data.Elements = append(ds.Data.Elements, priv)

	assert.Equal(t, []string{"Modality", "(0009,1001)"}, ds.Keywords())
}
