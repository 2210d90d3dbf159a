// Package rules implements the ROM cleaning rules.
//
// Every rule is a function taking a *Context, the root directory and its
// own parameters. A rule lists the tree afresh, decides which files to
// delete, and performs (or, on a dry run, only logs) the deletions. Rules
// share no state except the Tally carried by the Context, so the effect of
// one rule is visible to the next only through the filesystem.
package rules
