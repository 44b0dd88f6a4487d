//go:build !unix

package sensors

func majorMinor(string) string { return "" }
