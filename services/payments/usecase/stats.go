package usecase

import (
	"github.com/paylane/paylane/internal/pkg/models"
	"github.com/paylane/paylane/services/payments"
)

// TransitionDelta computes the counter adjustment a status transition
// applies to the owning payment method: decrement the bucket the previous
// status counted toward, increment the bucket the new status counts toward.
// A transition within the same bucket nets to zero but is still applied by
// the repository for auditability.
func TransitionDelta(previous, next models.PaymentStatus) payments.StatsDelta {
	var delta payments.StatsDelta
	applyBucket(&delta, models.BucketFor(previous), -1)
	applyBucket(&delta, models.BucketFor(next), +1)
	return delta
}

func applyBucket(delta *payments.StatsDelta, bucket models.StatBucket, amount int) {
	switch bucket {
	case models.BucketSuccessful:
		delta.Successful += amount
	case models.BucketFailed:
		delta.Failed += amount
	case models.BucketDisputed:
		delta.Disputed += amount
	}
}
