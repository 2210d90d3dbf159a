// Package naming derives the grouping keys used by the cleaning rules from a
// ROM filename.
//
// A filename such as "Game (Europe) (PAL).rom" yields:
//   - a title key ("game"), shared by every variant of the same title;
//   - a variant tag ("europe"), the text of the first parenthetical group;
//   - a region (PAL/NTSC/none) from the "(PAL"/"(NTSC" markers;
//   - a ROM name ("Game (Europe) (PAL)"), the text before the first dot,
//     used to look the file up in a dat catalog.
//
// Split along these boundaries: parser.go (ParseFilename, ParsedName) and
// rules.go (ordered region rules).
package naming
