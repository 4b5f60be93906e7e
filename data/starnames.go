// Package data holds static lookup tables used by galaxy generation.
package data

// StarNames is the fixed display-name table for generated stars. Names
// are drawn from it without replacement, indexed by generator draws, so
// the same seed always names the same galaxy.
var StarNames = []string{
	"Achernar",
	"Aldebaran",
	"Altair",
	"Antares",
	"Arcturus",
	"Bellatrix",
	"Betelgeuse",
	"Canopus",
	"Capella",
	"Castor",
	"Deneb",
	"Electra",
	"Fomalhaut",
	"Hadar",
	"Izar",
	"Kochab",
	"Merak",
	"Mira",
	"Mizar",
	"Nunki",
	"Pollux",
	"Procyon",
	"Regulus",
	"Rigel",
	"Sargas",
	"Sirius",
	"Spica",
	"Vega",
}
