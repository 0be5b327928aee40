package alloc

import "math"

// NumBuckets is the number of segregated free lists.
const NumBuckets = len(bucketLimits)

// bucketLimits holds the inclusive upper block size of each bucket. The
// last bucket is unbounded.
var bucketLimits = [...]int{
	32, 48, 64, 112, 160, 208, 512, 1024,
	2016, 4016, 8016, 15360, 30720, 61440,
	math.MaxInt,
}

// BucketFor returns the index of the free list that holds blocks of the
// given size. It is total and monotone in size.
func BucketFor(size int) int {
	// Binary search for the smallest limit >= size
	lo, hi := 0, NumBuckets-1
	for lo < hi {
		mid := (lo + hi) / 2
		if size <= bucketLimits[mid] {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// BucketRange returns the inclusive size range served by bucket i. The
// upper bound of the last bucket is math.MaxInt.
func BucketRange(i int) (lo, hi int) {
	if i > 0 {
		lo = bucketLimits[i-1] + 1
	}
	return lo, bucketLimits[i]
}
