package textutil

import "fmt"

var sizeUnits = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB"}

// HumanSize renders a byte count with binary units and two decimals,
// e.g. 1536 -> "1.50 KiB".
func HumanSize(size uint64) string {
	value := float64(size)
	for _, unit := range sizeUnits {
		if value < 1024 {
			return fmt.Sprintf("%.2f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.2f EiB", value)
}
