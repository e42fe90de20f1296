// internal/services/pdf_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurukulpustakalaya/backend/internal/config"
	"github.com/gurukulpustakalaya/backend/internal/models"
)

func localPDFService(t *testing.T) *PDFService {
	t.Helper()
	// Empty access key means the storage service runs without an S3 client.
	storage, err := NewStorageService(&config.Config{})
	require.NoError(t, err)
	return &PDFService{storage: storage}
}

func TestDownloadURLFallsBackWithoutS3(t *testing.T) {
	svc := localPDFService(t)

	doc := &models.PDF{
		FileURL: "https://cdn.example.com/pdfs/notes.pdf",
		FileKey: "pdfs/notes.pdf",
	}

	// Presigning needs an S3 client, so local mode serves the stored URL.
	assert.Equal(t, doc.FileURL, svc.downloadURL(doc))
}

func TestDownloadURLWithoutStoredKey(t *testing.T) {
	svc := localPDFService(t)

	doc := &models.PDF{FileURL: "https://cdn.example.com/pdfs/legacy.pdf"}

	assert.Equal(t, doc.FileURL, svc.downloadURL(doc))
}
