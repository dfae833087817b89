package domain

import "unicode/utf8"

// BoundingBox is positional metadata carried through from the extraction
// pipeline. It is passthrough only; no check compares coordinates.
type BoundingBox struct {
	Page   int     `json:"page,omitempty"`
	Left   float64 `json:"l"`
	Top    float64 `json:"t"`
	Right  float64 `json:"r"`
	Bottom float64 `json:"b"`
}

// Vector is one ordered, labeled unit of extracted content. Labels are an
// open per-format vocabulary (title, table, list_item, ...), never an enum.
type Vector struct {
	OrderIndex int          `json:"order_index"`
	Label      string       `json:"label"`
	Text       string       `json:"text"`
	BBox       *BoundingBox `json:"bbox,omitempty"`
}

// CharCount is the number of code points in the vector text, matching how
// total_characters is accumulated across the baseline corpus.
func (v Vector) CharCount() int {
	return utf8.RuneCountInString(v.Text)
}
