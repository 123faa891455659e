// Package pipeline runs a locale dump end to end: discover every
// Localization.txt under the Mods directory, extract each file, aggregate and
// sort the rows, write the dump, and report per-file outcomes.
//
// Files are processed in discovery order. With Jobs > 1 extraction runs
// concurrently, but results are kept by discovery index so the dump and the
// summary are identical to a sequential run.
package pipeline
