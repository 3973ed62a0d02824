//go:build !unix

package scaffold

// The process umask only exists on unix; elsewhere modes apply as given.
func setUmask(mask int) int {
	return mask
}
