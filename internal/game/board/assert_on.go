//go:build !seabattle_noassert

package board

// Contract checks are compiled in unless built with the
// `seabattle_noassert` tag.
const asserts = true
