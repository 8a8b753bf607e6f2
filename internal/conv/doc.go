// Package conv provides overflow-checked integer conversions.
package conv
