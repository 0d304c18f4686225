package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"gaugeScope/internal/model"
)

// Free-text columns read better flush left; the rest stay centered.
var leftAligned = map[string]bool{
	"function":  true,
	"pool_name": true,
	"style":     true,
}

func columnAlignment() []tw.Align {
	aligns := make([]tw.Align, len(model.TableColumns))
	for i, col := range model.TableColumns {
		if leftAligned[col] {
			aligns[i] = tw.AlignLeft
		} else {
			aligns[i] = tw.AlignCenter
		}
	}
	return aligns
}

// RenderTable renders rows as an ASCII table in model.TableColumns order.
func RenderTable(rows []model.ReportRow) (string, error) {
	var buf bytes.Buffer

	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignCenter},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter, PerColumn: columnAlignment()},
		},
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	table := tablewriter.NewTable(&buf,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(model.TableColumns),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleASCII),
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)

	for _, row := range rows {
		if err := table.Append(row.TableValues()); err != nil {
			return "", fmt.Errorf("append row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("render table: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
