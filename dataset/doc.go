// Package dataset reads and writes point clouds in a simple text format:
//
//	3
//	0.1 0.2
//	0.3 0.4
//	0.5,0.6
//
// The first non-blank line holds the number of points. Each following
// line holds one point; coordinates are separated by whitespace or commas.
// Blank lines and lines starting with '#' are ignored.
package dataset
