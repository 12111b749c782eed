package rangepart

import (
	"strconv"
	"strings"
)

// String renders a short human-readable summary, following this codebase's
// sketch-library ancestry of a multi-line "Name:\n  field : value" dump
// (frequencies.ItemsSketch.String).
func (r *RangePartitioner[K]) String() string {
	var sb strings.Builder
	sb.WriteString("RangePartitioner:")
	sb.WriteString("\n")
	sb.WriteString("  Partitions  : " + strconv.Itoa(r.numPartitions))
	sb.WriteString("\n")
	sb.WriteString("  Boundaries  : " + strconv.Itoa(len(r.boundaries)))
	sb.WriteString("\n")
	sb.WriteString("  Descending  : " + strconv.FormatBool(r.descending))
	sb.WriteString("\n")
	sb.WriteString("  KeyOrdering : " + r.descriptor.String())
	return sb.String()
}
