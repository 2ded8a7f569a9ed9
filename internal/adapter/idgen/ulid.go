// Package idgen provides the identifier stamped on every processing run.
package idgen

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator issues run ids. It implements usecase.IDGenerator; the id
// becomes the run_id log field and RunSummary.RunID.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a new run id. Ids sort by creation time, so runs logged
// to the same sink order lexically.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
