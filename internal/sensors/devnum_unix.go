//go:build unix

package sensors

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// Roots for block device lookups. Replaced in tests.
var (
	sysBlockRoot = "/sys/class/block"
	devRoot      = "/dev"
)

// majorMinor returns the "MAJOR:MINOR" device number of a block device, or ""
// when it cannot be determined. sysfs is read first since it does not need
// device nodes; the /dev node is the fallback.
func majorMinor(name string) string {
	if b, err := os.ReadFile(filepath.Join(sysBlockRoot, name, "dev")); err == nil {
		if mm := strings.TrimSpace(string(b)); strings.Contains(mm, ":") {
			return mm
		}
	}

	var st unix.Stat_t
	if err := unix.Stat(filepath.Join(devRoot, name), &st); err != nil {
		return ""
	}
	if st.Mode&unix.S_IFMT != unix.S_IFBLK {
		return ""
	}
	dev := uint64(st.Rdev)
	return fmt.Sprintf("%d:%d", unix.Major(dev), unix.Minor(dev))
}
