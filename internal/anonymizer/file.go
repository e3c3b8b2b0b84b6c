package anonymizer

import (
	dcm "dicom-redactor/internal/dicom"
)

// FileResult describes one redacted file.
type FileResult struct {
	Modality       string
	TransferSyntax string
	Removed        []string
}

// RedactFile reads a DICOM file, removes the sensitive fields and writes the
// result to outputPath. Nothing is written if reading or redaction fails.
func RedactFile(inputPath, outputPath string) (FileResult, error) {
	ds, err := dcm.ReadDicom(inputPath)
	if err != nil {
		return FileResult{}, err
	}

	removed, err := Present(ds)
	if err != nil {
		return FileResult{}, err
	}
	if err := Redact(ds); err != nil {
		return FileResult{}, err
	}
	if err := ds.Save(outputPath); err != nil {
		return FileResult{}, err
	}

	return FileResult{
		Modality:       ds.GetModality(),
		TransferSyntax: ds.GetTransferSyntax(),
		Removed:        removed,
	}, nil
}

// PreviewFile reports which sensitive fields a file carries without writing anything.
func PreviewFile(inputPath string) ([]string, error) {
	ds, err := dcm.ReadDicomMetadataOnly(inputPath)
	if err != nil {
		return nil, err
	}
	return Present(ds)
}
