package config

// RuleSet selects the rules of a run and their parameters. The zero value
// of a field disables its rule. Field tags double as profile keys and match
// the long flag names.
type RuleSet struct {
	MakeFlat             bool   `yaml:"make-flat"`
	DelFilesWithout      string `yaml:"del-files-without"`
	DelFilesWith         string `yaml:"del-files-with"`
	DelNTSC              bool   `yaml:"del-ntsc-versions"`
	DelPAL               bool   `yaml:"del-pal-versions"`
	DelFirstVariants     bool   `yaml:"del-first-variants"`
	DelLastVariants      bool   `yaml:"del-last-variants"`
	DelVariantsWith      string `yaml:"del-variants-with"`
	DelVariantsWithout   string `yaml:"del-variants-without"`
	DelDuplicates        bool   `yaml:"del-duplicates"`
	DelClones            bool   `yaml:"del-roms-clones"`
	DelWithSamples       bool   `yaml:"del-roms-with-samples"`
	DelOlderThan         int    `yaml:"del-roms-older-than"`
	DelIfDescriptionHas  string `yaml:"del-if-description-has"`
	DelIfManufacturerHas string `yaml:"del-if-manufacturer-has"`
	DelIfCommentHas      string `yaml:"del-if-comment-has"`
	DelIfBIOSIs          string `yaml:"del-if-bios-is"`
	DelIfBIOSIsnt        string `yaml:"del-if-bios-isnt"`
}

// Merge returns r with every non-zero field of override applied on top.
func (r RuleSet) Merge(override RuleSet) RuleSet {
	out := r
	mergeBool(&out.MakeFlat, override.MakeFlat)
	mergeString(&out.DelFilesWithout, override.DelFilesWithout)
	mergeString(&out.DelFilesWith, override.DelFilesWith)
	mergeBool(&out.DelNTSC, override.DelNTSC)
	mergeBool(&out.DelPAL, override.DelPAL)
	mergeBool(&out.DelFirstVariants, override.DelFirstVariants)
	mergeBool(&out.DelLastVariants, override.DelLastVariants)
	mergeString(&out.DelVariantsWith, override.DelVariantsWith)
	mergeString(&out.DelVariantsWithout, override.DelVariantsWithout)
	mergeBool(&out.DelDuplicates, override.DelDuplicates)
	mergeBool(&out.DelClones, override.DelClones)
	mergeBool(&out.DelWithSamples, override.DelWithSamples)
	if override.DelOlderThan != 0 {
		out.DelOlderThan = override.DelOlderThan
	}
	mergeString(&out.DelIfDescriptionHas, override.DelIfDescriptionHas)
	mergeString(&out.DelIfManufacturerHas, override.DelIfManufacturerHas)
	mergeString(&out.DelIfCommentHas, override.DelIfCommentHas)
	mergeString(&out.DelIfBIOSIs, override.DelIfBIOSIs)
	mergeString(&out.DelIfBIOSIsnt, override.DelIfBIOSIsnt)
	return out
}

func mergeBool(dst *bool, v bool) {
	if v {
		*dst = true
	}
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Empty reports whether no rule is enabled.
func (r RuleSet) Empty() bool { return r == RuleSet{} }

// CatalogRules returns the flag names of the enabled rules that need a dat
// file, in pipeline order.
func (r RuleSet) CatalogRules() []string {
	var names []string
	add := func(on bool, name string) {
		if on {
			names = append(names, name)
		}
	}
	add(r.DelDuplicates, "del-duplicates")
	add(r.DelClones, "del-roms-clones")
	add(r.DelWithSamples, "del-roms-with-samples")
	add(r.DelOlderThan != 0, "del-roms-older-than")
	add(r.DelIfDescriptionHas != "", "del-if-description-has")
	add(r.DelIfManufacturerHas != "", "del-if-manufacturer-has")
	add(r.DelIfCommentHas != "", "del-if-comment-has")
	add(r.DelIfBIOSIs != "", "del-if-bios-is")
	add(r.DelIfBIOSIsnt != "", "del-if-bios-isnt")
	return names
}
