package units

// Conversion factors. Each is applied in a single hop and the result rounded.
const (
	// KmPerMile converts miles to kilometres.
	KmPerMile = 1.60934

	// LitersPerUSGallon converts US gallons to litres.
	LitersPerUSGallon = 3.785

	// LitersPerUKGallon converts UK (imperial) gallons to litres.
	LitersPerUKGallon = 4.546

	// KMPLPerMPGUS converts US miles per gallon to km/L.
	KMPLPerMPGUS = 0.425144

	// KMPLPerMPGUK converts UK miles per gallon to km/L.
	KMPLPerMPGUK = 0.354006

	// MPGUSPerKMPL converts km/L to US miles per gallon.
	MPGUSPerKMPL = 2.352145

	// MPGUKPerKMPL converts km/L to UK miles per gallon.
	MPGUKPerKMPL = 2.82481

	// ConsumptionBaseKm is the fixed distance of the L/100km consumption unit.
	ConsumptionBaseKm = 100.0
)

// DecimalPlaces is the precision applied at every conversion hop.
const DecimalPlaces = 2
