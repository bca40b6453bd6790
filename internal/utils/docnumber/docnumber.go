package docnumber

import (
	"fmt"
	"strconv"
	"strings"
)

// Width is the zero-padded width of the numeric suffix.
const Width = 8

// Format builds a document number from a type prefix and a counter value,
// e.g. Format("VTA", 1) -> "VTA-00000001".
func Format(prefix string, number int64) string {
	return fmt.Sprintf("%s-%0*d", prefix, Width, number)
}

// Parse splits a document number into its prefix and numeric suffix.
func Parse(documentNumber string) (prefix string, number int64, err error) {
	idx := strings.LastIndex(documentNumber, "-")
	if idx <= 0 || idx == len(documentNumber)-1 {
		return "", 0, fmt.Errorf("malformed document number %q", documentNumber)
	}
	number, err = strconv.ParseInt(documentNumber[idx+1:], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed document number %q: %w", documentNumber, err)
	}
	return documentNumber[:idx], number, nil
}
