package audit

import (
	"fmt"

	"gaugeScope/internal/gauge"
	"gaugeScope/internal/model"
	"gaugeScope/internal/proposal"
)

const (
	badCallDataMarker = "!!!"
	errorStyle        = "ERROR"
)

func badCallDataRow(cls proposal.Classification) model.ReportRow {
	return model.ReportRow{
		Function:     proposal.BadCallDataFunction,
		PoolID:       cls.RawData,
		Symbol:       badCallDataMarker,
		PoolAddress:  badCallDataMarker,
		AFactor:      badCallDataMarker,
		GaugeAddress: badCallDataMarker,
		Type:         badCallDataMarker,
		Cap:          badCallDataMarker,
		Style:        badCallDataMarker,
	}
}

func gaugeRow(cls proposal.Classification, res gauge.Result) model.ReportRow {
	row := model.ReportRow{
		Function:     cls.Command,
		PoolID:       res.Pool.ID,
		Symbol:       res.Pool.Symbol,
		PoolAddress:  res.Pool.Address,
		AFactor:      res.Pool.AFactor,
		GaugeAddress: cls.GaugeAddress,
		Type:         cls.GaugeType,
		Cap:          res.Gauge.Cap,
		Style:        string(res.Gauge.Style),
		Chain:        res.Gauge.Chain,
		PoolName:     res.Pool.Name,
	}
	ApplyChecks(&row, res.Pool.Symbol, res.Gauge.Symbol)
	return row
}

// resolveErrorRow keeps what was learned about the gauge and puts the
// failure where the pool address would be.
func resolveErrorRow(cls proposal.Classification, res gauge.Result, err error) model.ReportRow {
	style := string(res.Gauge.Style)
	if style == "" {
		style = errorStyle
	}
	return model.ReportRow{
		Function:     cls.Command,
		PoolID:       model.NotApplicable,
		Symbol:       model.NotApplicable,
		PoolAddress:  fmt.Sprintf("ERROR: %v", err),
		AFactor:      model.NotApplicable,
		GaugeAddress: cls.GaugeAddress,
		Type:         cls.GaugeType,
		Cap:          model.NotApplicable,
		Style:        style,
		Chain:        res.Gauge.Chain,
	}
}
