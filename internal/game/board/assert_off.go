//go:build seabattle_noassert

package board

const asserts = false
