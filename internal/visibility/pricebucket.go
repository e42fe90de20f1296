// internal/visibility/pricebucket.go
package visibility

import (
	"gorm.io/gorm"
)

// PriceBucket partitions non-negative prices. Buckets are mutually exclusive
// and collectively exhaustive: exactly 500 falls in under-500, exactly 1000
// in 500-1000.
type PriceBucket string

const (
	BucketFree     PriceBucket = "free"      // price == 0
	BucketUnder500 PriceBucket = "under-500" // (0, 500]
	Bucket500To1K  PriceBucket = "500-1000"  // (500, 1000]
	BucketOver1K   PriceBucket = "over-1000" // (1000, inf)
)

// ValidBucket reports whether tag names a defined price bucket.
func ValidBucket(tag PriceBucket) bool {
	switch tag {
	case BucketFree, BucketUnder500, Bucket500To1K, BucketOver1K:
		return true
	}
	return false
}

// BucketFor returns the bucket a non-negative price belongs to.
func BucketFor(price float64) PriceBucket {
	switch {
	case price == 0:
		return BucketFree
	case price <= 500:
		return BucketUnder500
	case price <= 1000:
		return Bucket500To1K
	default:
		return BucketOver1K
	}
}

// ApplyPriceBucket scopes a book query to a single price bucket.
// Unknown bucket tags leave the query unchanged.
func ApplyPriceBucket(db *gorm.DB, bucket PriceBucket) *gorm.DB {
	switch bucket {
	case BucketFree:
		return db.Where("price = 0")
	case BucketUnder500:
		return db.Where("price > 0 AND price <= 500")
	case Bucket500To1K:
		return db.Where("price > 500 AND price <= 1000")
	case BucketOver1K:
		return db.Where("price > 1000")
	default:
		return db
	}
}
