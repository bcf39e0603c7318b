package engine

import (
	"fmt"
	"strings"
)

// Bucket is the canonical leave category used for balance and policy
// lookup, independent of the display name of the LeaveType record that a
// request references. It is a required, validated field on leave types:
// runtime substring inference over names is deliberately not supported.
type Bucket string

const (
	BucketAnnual      Bucket = "annual"
	BucketPersonal    Bucket = "personal"
	BucketLongService Bucket = "long_service"
)

// Buckets lists every valid canonical bucket.
func Buckets() []Bucket {
	return []Bucket{BucketAnnual, BucketPersonal, BucketLongService}
}

// ParseBucket validates a bucket value supplied at leave-type creation.
func ParseBucket(s string) (Bucket, error) {
	switch Bucket(strings.ToLower(strings.TrimSpace(s))) {
	case BucketAnnual:
		return BucketAnnual, nil
	case BucketPersonal:
		return BucketPersonal, nil
	case BucketLongService:
		return BucketLongService, nil
	default:
		return "", fmt.Errorf("unknown leave bucket %q", s)
	}
}

// entitledTo reports whether an employment type accrues leave in the given
// bucket at all. Casual employees receive no annual or personal leave;
// contractors receive none of any kind.
func entitledTo(t EmploymentType, b Bucket) bool {
	switch t {
	case Casual:
		return b != BucketAnnual && b != BucketPersonal
	case Contractor:
		return false
	default:
		return true
	}
}
