// Package pipeline runs the enabled cleaning rules over a ROM collection in
// a fixed order, against one catalog load and one shared tally, and reports
// the result.
package pipeline
