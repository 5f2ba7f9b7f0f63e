package models

import (
	"fmt"
	"sort"
)

// Sector is a coarse tactical grouping. Squad slots additionally track the
// goalkeeper as its own sector so formation accounting stays unambiguous.
type Sector string

const (
	SectorGK  Sector = "GK"
	SectorDEF Sector = "DEF"
	SectorMEI Sector = "MEI"
	SectorATA Sector = "ATA"
)

// FieldSectors is the display order used for sorting and reporting.
var FieldSectors = []Sector{SectorDEF, SectorMEI, SectorATA}

// SlotOrder is the fill order used by the formation completion check and the
// suggestion engine: goalkeeper first, then back to front.
var SlotOrder = []Sector{SectorGK, SectorDEF, SectorMEI, SectorATA}

// PositionInfo describes a single position code from the catalog data.
type PositionInfo struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Sector Sector `json:"sector"`
}

var positionDetails = map[string]PositionInfo{
	"GK":  {Code: "GK", Label: "Goleiro", Sector: SectorDEF},
	"ZG":  {Code: "ZG", Label: "Zagueiro", Sector: SectorDEF},
	"LD":  {Code: "LD", Label: "Lateral Direita", Sector: SectorDEF},
	"LE":  {Code: "LE", Label: "Lateral Esquerda", Sector: SectorDEF},
	"VOL": {Code: "VOL", Label: "Volante", Sector: SectorMEI},
	"MLG": {Code: "MLG", Label: "Meia", Sector: SectorMEI},
	"MAT": {Code: "MAT", Label: "Meia Atacante", Sector: SectorMEI},
	"PD":  {Code: "PD", Label: "Ponta Direita", Sector: SectorATA},
	"PE":  {Code: "PE", Label: "Ponta Esquerda", Sector: SectorATA},
	"CA":  {Code: "CA", Label: "Centroavante", Sector: SectorATA},
	"ATA": {Code: "ATA", Label: "Atacante", Sector: SectorATA},
}

var sectorLabels = map[Sector]string{
	SectorGK:  "Goleiro",
	SectorDEF: "Defesa",
	SectorMEI: "Meio",
	SectorATA: "Ataque",
}

// SectorOf maps a position code to its field sector. Unrecognized codes fall
// back to DEF; the source data carries a fixed set of codes and the fallback
// keeps malformed records from breaking aggregation.
func SectorOf(pos string) Sector {
	if info, ok := positionDetails[pos]; ok {
		return info.Sector
	}
	return SectorDEF
}

// SlotFor returns the squad slot a position occupies. Goalkeepers take the
// dedicated GK slot; everyone else takes their field sector.
func SlotFor(pos string) Sector {
	if pos == "GK" {
		return SectorGK
	}
	return SectorOf(pos)
}

// PositionDetails returns the known position info for a code, if any.
func PositionDetails(pos string) (PositionInfo, bool) {
	info, ok := positionDetails[pos]
	return info, ok
}

// SectorLabel returns the display label for a sector.
func SectorLabel(s Sector) string {
	if label, ok := sectorLabels[s]; ok {
		return label
	}
	return string(s)
}

// SectorPositions returns the position codes belonging to a squad slot.
func SectorPositions(slot Sector) []string {
	var codes []string
	for code := range positionDetails {
		if SlotFor(code) == slot {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// Formation is a named template of required slot counts.
type Formation struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	GK    int    `json:"gk"`
	DEF   int    `json:"def"`
	MEI   int    `json:"mei"`
	ATA   int    `json:"ata"`
}

var formations = map[string]Formation{
	"4-3-3": {Name: "4-3-3", Label: "4-3-3 (Clássico)", GK: 1, DEF: 4, MEI: 3, ATA: 3},
	"4-4-2": {Name: "4-4-2", Label: "4-4-2 (Equilibrado)", GK: 1, DEF: 4, MEI: 4, ATA: 2},
	"5-3-2": {Name: "5-3-2", Label: "5-3-2 (Defensivo)", GK: 1, DEF: 5, MEI: 3, ATA: 2},
	"3-5-2": {Name: "3-5-2", Label: "3-5-2 (Ofensivo)", GK: 1, DEF: 3, MEI: 5, ATA: 2},
}

// ErrUnknownFormation signals a formation name with no template.
var ErrUnknownFormation = fmt.Errorf("unknown formation")

// FormationRequirements resolves a formation name to its slot counts.
func FormationRequirements(name string) (Formation, error) {
	f, ok := formations[name]
	if !ok {
		return Formation{}, fmt.Errorf("%w: %q", ErrUnknownFormation, name)
	}
	return f, nil
}

// Formations returns all templates in a stable order.
func Formations() []Formation {
	names := []string{"4-3-3", "4-4-2", "5-3-2", "3-5-2"}
	out := make([]Formation, 0, len(names))
	for _, n := range names {
		out = append(out, formations[n])
	}
	return out
}

// Required returns the slot count the formation demands for a slot.
func (f Formation) Required(slot Sector) int {
	switch slot {
	case SectorGK:
		return f.GK
	case SectorDEF:
		return f.DEF
	case SectorMEI:
		return f.MEI
	case SectorATA:
		return f.ATA
	}
	return 0
}

// TotalSlots returns the total number of players a complete squad holds.
func (f Formation) TotalSlots() int {
	return f.GK + f.DEF + f.MEI + f.ATA
}
