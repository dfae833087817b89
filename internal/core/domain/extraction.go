package domain

import "time"

// Sample identifies one discovered document to evaluate. EnqueuedAt is set
// when the sample travels through the evaluation queue; workers use it to
// measure queue lag.
type Sample struct {
	Format     string    `json:"format"`
	ID         string    `json:"id"`
	Path       string    `json:"path"`
	EnqueuedAt time.Time `json:"enqueued_at,omitzero"`
}

func (s Sample) Key() string {
	return BaselineKey(s.Format, s.ID)
}

// RawVector is the extraction adapter's wire shape. Label and OrderIndex are
// pointers so the normalizer can tell a missing field from a zero value.
type RawVector struct {
	OrderIndex *int         `json:"order_index"`
	Label      *string      `json:"label"`
	Text       string       `json:"text"`
	BBox       *BoundingBox `json:"bbox,omitempty"`
}
