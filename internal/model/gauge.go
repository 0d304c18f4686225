package model

// GaugeStyle is the closed set of gauge layouts the resolver understands.
type GaugeStyle string

const (
	StyleMainnet            GaugeStyle = "mainnet"
	StyleL0Sidechain        GaugeStyle = "L0 sidechain"
	StyleChildChainStreamer GaugeStyle = "ChildChainStreamer"
	StyleSingleRecipient    GaugeStyle = "Single Recipient"
)

// NotApplicable marks a field that has no meaning for the row.
const NotApplicable = "N/A"

// GaugeDescriptor describes a resolved gauge.
type GaugeDescriptor struct {
	Address string     `json:"address"`
	Chain   string     `json:"chain"`
	Style   GaugeStyle `json:"style"`
	Symbol  string     `json:"symbol"`
	Cap     string     `json:"cap"`
}
