package audit

import (
	"fmt"
	"strings"

	"gaugeScope/internal/model"
)

// ApplyChecks annotates a row in place when the gauge looks wired to the
// wrong pool. The symbol comparison is a heuristic, so findings are written
// into the row rather than failing the audit.
func ApplyChecks(row *model.ReportRow, poolSymbol, gaugeSymbol string) {
	if strings.Contains(poolSymbol, "-gauge") {
		row.PoolAddress = fmt.Sprintf("ERROR: Gauge points to another Gauge: %s", row.PoolAddress)
	}
	if !strings.Contains(gaugeSymbol, model.NotApplicable) && !strings.Contains(gaugeSymbol, poolSymbol) {
		row.GaugeAddress = fmt.Sprintf("ERROR, %s doesnt match %s: %s", gaugeSymbol, poolSymbol, row.GaugeAddress)
	}
}
