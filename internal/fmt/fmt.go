package fmt

import (
	"fmt"
	"strings"
)

// SprintFloat formats value with up to decimal fractional digits, trimming trailing zeros.
func SprintFloat(value float64, decimal uint) string {
	var floatStr string
	if decimal > 0 {
		floatFormat := fmt.Sprintf("%%.%df", decimal)
		floatStr = fmt.Sprintf(floatFormat, value)
		floatStr = strings.TrimRight(strings.TrimRight(floatStr, "0"), ".")
	} else {
		floatStr = fmt.Sprintf("%.0f", value)
	}
	return floatStr
}

// SprintFloatFixed formats value with exactly decimal fractional digits, never trimming. Machine
// coordinate output depends on this fixed width.
func SprintFloatFixed(value float64, decimal uint) string {
	floatFormat := fmt.Sprintf("%%.%df", decimal)
	return fmt.Sprintf(floatFormat, value)
}
