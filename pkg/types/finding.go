// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Finding is one Area-for-Improvement row extracted from an audit document:
// the AFI text, the classification/entity pair parsed from its annotation,
// the recommendation matched by item number, and provenance.
type Finding struct {
	// AFI is the finding text with the annotation stripped.
	AFI string `json:"afi" yaml:"afi"`

	// Classification is the first half of the annotation pair (e.g. "Major").
	// Empty when no annotation was found.
	Classification string `json:"classification" yaml:"classification"`

	// Entity is the second half of the annotation pair (e.g. "Logistics").
	// Empty when no annotation was found.
	Entity string `json:"entity" yaml:"entity"`

	// Recommendation is the merged recommendation text matched to this
	// finding by item number. Empty when no recommendation carried the number.
	Recommendation string `json:"recommendation" yaml:"recommendation"`

	// ProcessLabel identifies the process block the finding belongs to
	// (e.g. "Process – 1.2 Goods receipt" or "Operational – Warehousing").
	ProcessLabel string `json:"process_label" yaml:"process_label"`

	// Document is the base name of the source file.
	Document string `json:"document" yaml:"document"`
}
