package compare

import (
	"fmt"
	"strings"
)

// Report is the immutable result of one successful comparison.
// MeanError is signed, base subtracted from comparison.
type Report struct {
	BaseFile       string
	ComparisonFile string
	MeanError      float64
	RMSE           float64
	Accuracy95     float64
}

// String renders the multi-line vertical-accuracy report shown to the user.
// Statistics are formatted to three decimal places.
func (r *Report) String() string {
	var b strings.Builder
	b.WriteString("Vertical Accuracy Analysis\n\n")
	fmt.Fprintf(&b, "Base File: %s\n", r.BaseFile)
	fmt.Fprintf(&b, "Comparison File: %s\n\n", r.ComparisonFile)
	fmt.Fprintf(&b, "Mean vertical error: %.3f\n", r.MeanError)
	fmt.Fprintf(&b, "RMSE: %.3f\n", r.RMSE)
	fmt.Fprintf(&b, "Accuracy at 95%% confidence limit (m): %.3f\n", r.Accuracy95)
	return b.String()
}
