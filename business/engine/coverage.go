package engine

// CoverageMode selects how the gate judges catalog support for a tag.
type CoverageMode string

const (
	CoverageModeRatio CoverageMode = "RATIO"
	CoverageModeWorks CoverageMode = "WORKS"
	CoverageModeAuto  CoverageMode = "AUTO"
)

// PassesCoverageGate decides whether a tag has enough catalog support to be
// asked about. maxRatio <= 0 disables the upper bound.
//
// AUTO adapts the bar downward for small catalogs: the absolute minimum is
// clamped to the catalog size, then converted into a ratio floor that never
// drops below minRatio.
func PassesCoverageGate(
	tagWorkCount int,
	totalWorks int,
	mode CoverageMode,
	minRatio float64,
	minWorks int,
	maxRatio float64,
) bool {
	if tagWorkCount < 0 || totalWorks <= 0 {
		return false
	}

	ratio := float64(tagWorkCount) / float64(max(totalWorks, 1))

	if maxRatio > 0 && ratio > maxRatio {
		return false
	}

	switch mode {
	case CoverageModeRatio:
		return ratio >= minRatio
	case CoverageModeWorks:
		return tagWorkCount >= minWorks
	case CoverageModeAuto:
		fallthrough
	default:
		clampedMinWorks := min(minWorks, totalWorks)
		bar := max(minRatio, float64(clampedMinWorks)/float64(max(totalWorks, 1)))
		return ratio >= bar
	}
}
