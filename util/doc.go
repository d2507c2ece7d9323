// Package util provides small generic helpers shared across packages:
// slice transforms, pointer helpers and secret masking.
package util
