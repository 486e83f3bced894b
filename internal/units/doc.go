// Package units converts physical quantities used by the break-even calculator.
//
// Four quantity families are supported: Distance, FuelQuantity, FuelPrice and
// Mileage. Each family has a closed set of unit tags and a Convert function.
// Fuel families route through litres and mileage routes through km/L.
//
// Every conversion hop rounds to two decimal places, including the pivot hop.
// Converting a value to its own unit returns it unchanged.
package units
