package naming

import "regexp"

// Region is the video standard a ROM targets.
type Region string

const (
	RegionNone Region = ""     // No marker; treated as NTSC by the region rule.
	RegionPAL  Region = "pal"  // "(PAL" marker.
	RegionNTSC Region = "ntsc" // "(NTSC" marker.
)

// IsPAL reports whether r is PAL. Unmarked names count as NTSC.
func (r Region) IsPAL() bool { return r == RegionPAL }

// RegionRule pairs a compiled regex with the region it identifies. Rules are
// evaluated in order by [DetectRegion]; first match wins.
type RegionRule struct {
	Name    string
	Pattern *regexp.Regexp
	Region  Region
}

// RegionRules is checked in order: a name carrying both markers is PAL.
// Markers are case-sensitive so "(Palette Hack)" carries no region.
var RegionRules = []RegionRule{
	{Name: "pal", Pattern: regexp.MustCompile(`\(PAL`), Region: RegionPAL},
	{Name: "ntsc", Pattern: regexp.MustCompile(`\(NTSC`), Region: RegionNTSC},
}

// DetectRegion returns the region of the first matching rule, or RegionNone.
func DetectRegion(basename string) Region {
	for _, rule := range RegionRules {
		if rule.Pattern.MatchString(basename) {
			return rule.Region
		}
	}
	return RegionNone
}
