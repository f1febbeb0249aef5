// Package vesseltemplate holds a static catalog of named vessel presets —
// ship type, dimensions and AIS class — that a scenario file can reference
// by name instead of spelling out every static field for a common vessel
// kind.
package vesseltemplate

import "github.com/goblimey/nmeasim/ais"

// Template is the set of static vessel fields a catalog entry pre-fills.
type Template struct {
	ShipType   uint8
	Dimensions ais.Dimensions
	Class      byte // 'A' or 'B'
}

// catalog is populated at package init from a small set of common vessel
// kinds; ship type codes follow the ITU-R M.1371 ship and cargo type table.
var catalog = map[string]Template{
	"cargo_general":  {ShipType: 70, Dimensions: ais.Dimensions{ToBow: 120, ToStern: 20, ToPort: 10, ToStarboard: 10}, Class: 'A'},
	"container_ship": {ShipType: 71, Dimensions: ais.Dimensions{ToBow: 280, ToStern: 40, ToPort: 20, ToStarboard: 20}, Class: 'A'},
	"tanker":         {ShipType: 80, Dimensions: ais.Dimensions{ToBow: 200, ToStern: 30, ToPort: 16, ToStarboard: 16}, Class: 'A'},
	"passenger":      {ShipType: 60, Dimensions: ais.Dimensions{ToBow: 150, ToStern: 30, ToPort: 14, ToStarboard: 14}, Class: 'A'},
	"fishing":        {ShipType: 30, Dimensions: ais.Dimensions{ToBow: 15, ToStern: 5, ToPort: 3, ToStarboard: 3}, Class: 'A'},
	"tug":            {ShipType: 52, Dimensions: ais.Dimensions{ToBow: 20, ToStern: 5, ToPort: 4, ToStarboard: 4}, Class: 'A'},
	"pilot_vessel":   {ShipType: 50, Dimensions: ais.Dimensions{ToBow: 10, ToStern: 3, ToPort: 2, ToStarboard: 2}, Class: 'B'},
	"sailing_yacht":  {ShipType: 36, Dimensions: ais.Dimensions{ToBow: 8, ToStern: 2, ToPort: 2, ToStarboard: 2}, Class: 'B'},
	"pleasure_craft": {ShipType: 37, Dimensions: ais.Dimensions{ToBow: 6, ToStern: 2, ToPort: 2, ToStarboard: 2}, Class: 'B'},
}

// Lookup returns the template registered under name, and whether one was
// found.
func Lookup(name string) (Template, bool) {
	t, ok := catalog[name]
	return t, ok
}

// Names returns every registered template name, for scenario validation
// error messages.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for n := range catalog {
		names = append(names, n)
	}
	return names
}
