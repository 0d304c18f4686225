package model

// ReportRow is one rendered line of a proposal audit.
type ReportRow struct {
	File         string `json:"file"`
	Commit       string `json:"commit"`
	Index        int    `json:"index"`
	Function     string `json:"function"`
	PoolID       string `json:"pool_id"`
	Symbol       string `json:"symbol"`
	PoolAddress  string `json:"pool_address"`
	AFactor      string `json:"a_factor"`
	GaugeAddress string `json:"gauge_address"`
	Type         string `json:"type"`
	Cap          string `json:"cap"`
	Style        string `json:"style"`
	Chain        string `json:"chain,omitempty"`
	PoolName     string `json:"pool_name,omitempty"`
}

// TableColumns is the fixed column order of the audit table.
var TableColumns = []string{
	"function",
	"pool_id",
	"symbol",
	"pool_address",
	"aFactor",
	"gauge_address",
	"type",
	"cap",
	"style",
}

// TableValues returns the row cells in TableColumns order.
func (r ReportRow) TableValues() []string {
	return []string{
		r.Function,
		r.PoolID,
		r.Symbol,
		r.PoolAddress,
		r.AFactor,
		r.GaugeAddress,
		r.Type,
		r.Cap,
		r.Style,
	}
}
