package dashboard

// DefaultTopN is the number of suppliers kept by each ranking
const DefaultTopN = 10

// Labels used by the automation split
const (
	AutomaticLabel = "Automatic"
	ManualLabel    = "Manual"
)

// Options tunes how a summary is computed and formatted
type Options struct {
	// TopN bounds the supplier rankings; values below 1 fall back to DefaultTopN
	TopN int

	// AutomaticMarker is the automation flag value of system-generated orders
	AutomaticMarker string

	// CurrencySymbol prefixes the formatted total spend
	CurrencySymbol string
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		TopN:            DefaultTopN,
		AutomaticMarker: "A",
		CurrencySymbol:  "$",
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.TopN < 1 {
		o.TopN = d.TopN
	}
	if o.AutomaticMarker == "" {
		o.AutomaticMarker = d.AutomaticMarker
	}
	if o.CurrencySymbol == "" {
		o.CurrencySymbol = d.CurrencySymbol
	}
	return o
}
