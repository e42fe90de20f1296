// internal/visibility/visibility_test.go
package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gurukulpustakalaya/backend/internal/models"
)

func TestBookVisible(t *testing.T) {
	tests := []struct {
		name      string
		status    models.UploadStatus
		available bool
		want      bool
	}{
		{"approved and available", models.UploadStatusApproved, true, true},
		{"approved but sold", models.UploadStatusApproved, false, false},
		{"pending and available", models.UploadStatusPending, true, false},
		{"rejected and available", models.UploadStatusRejected, true, false},
		{"pending and sold", models.UploadStatusPending, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BookVisible(tt.status, tt.available))
		})
	}
}

func TestBookVisibilityFlagsFlipIndependently(t *testing.T) {
	// Changing either flag alone flips membership.
	assert.True(t, BookVisible(models.UploadStatusApproved, true))
	assert.False(t, BookVisible(models.UploadStatusRejected, true))
	assert.False(t, BookVisible(models.UploadStatusApproved, false))
}

func TestPDFVisible(t *testing.T) {
	assert.True(t, PDFVisible(models.UploadStatusApproved))
	assert.False(t, PDFVisible(models.UploadStatusPending))
	assert.False(t, PDFVisible(models.UploadStatusRejected))
}

func TestBucketForPartitionsPrices(t *testing.T) {
	tests := []struct {
		price float64
		want  PriceBucket
	}{
		{0, BucketFree},
		{0.01, BucketUnder500},
		{499.99, BucketUnder500},
		{500, BucketUnder500},
		{500.01, Bucket500To1K},
		{1000, Bucket500To1K},
		{1000.01, BucketOver1K},
		{25000, BucketOver1K},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BucketFor(tt.price), "price %v", tt.price)
	}
}

func TestBucketsAreExhaustive(t *testing.T) {
	// Every sampled non-negative price lands in exactly one bucket.
	prices := []float64{0, 1, 100, 500, 501, 999, 1000, 1001, 9999}
	for _, p := range prices {
		matches := 0
		for _, b := range []PriceBucket{BucketFree, BucketUnder500, Bucket500To1K, BucketOver1K} {
			if BucketFor(p) == b {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "price %v", p)
	}
}

func TestValidBucket(t *testing.T) {
	assert.True(t, ValidBucket(BucketFree))
	assert.True(t, ValidBucket(BucketOver1K))
	assert.False(t, ValidBucket(PriceBucket("cheap")))
	assert.False(t, ValidBucket(PriceBucket("")))
}
