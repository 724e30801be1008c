package vocab

import (
	"strings"

	"github.com/ppiankov/dxcoder/internal/model"
)

// Organism-specific sepsis codes. A missing organism is A41.9.
var SepsisCodes = map[model.Organism]string{
	model.OrganismEColi:        "A41.51",
	model.OrganismKlebsiella:   "A41.59",
	model.OrganismProteus:      "A41.59",
	model.OrganismPseudomonas:  "A41.52",
	model.OrganismMRSA:         "A41.02",
	model.OrganismMSSA:         "A41.01",
	model.OrganismStrepPneumo:  "A40.3",
	model.OrganismEnterococcus: "A41.81",
}

// PneumoniaCodes by organism. A missing organism is J18.9.
var PneumoniaCodes = map[model.Organism]string{
	model.OrganismEColi:        "J15.5",
	model.OrganismKlebsiella:   "J15.0",
	model.OrganismPseudomonas:  "J15.1",
	model.OrganismProteus:      "J15.6",
	model.OrganismMRSA:         "J15.212",
	model.OrganismMSSA:         "J15.211",
	model.OrganismStrepPneumo:  "J13",
	model.OrganismEnterococcus: "J15.8",
}

// CausalOrganismCodes are the B95/B96 codes added to a localized infection
// whose organism is known.
var CausalOrganismCodes = map[model.Organism]string{
	model.OrganismEColi:        "B96.20",
	model.OrganismKlebsiella:   "B96.1",
	model.OrganismPseudomonas:  "B96.5",
	model.OrganismProteus:      "B96.4",
	model.OrganismEnterococcus: "B95.2",
	model.OrganismMRSA:         "B95.62",
	model.OrganismMSSA:         "B95.61",
	model.OrganismStrepPneumo:  "B95.3",
}

// SourceCodes are the localized-infection codes for a sepsis source or a
// standalone infection. The lung source is coded by the pneumonia module.
var SourceCodes = map[model.InfectionSite]string{
	model.SiteUrinary: "N39.0",
	model.SiteSkin:    "L03.90",
	model.SiteAbdomen: "K65.9",
	model.SiteBlood:   "R78.81",
}

// OrganismForCode inverts the sepsis and pneumonia tables. Codes shared by
// several organisms (A41.59) report false.
func OrganismForCode(code string) (model.Organism, bool) {
	var found model.Organism
	n := 0
	for _, table := range []map[model.Organism]string{SepsisCodes, PneumoniaCodes} {
		for o, c := range table {
			if c == code {
				found = o
				n++
			}
		}
	}
	return found, n == 1
}

// Unspecified codes per organism-bearing family.
const (
	SepsisUnspecified    = "A41.9"
	PneumoniaUnspecified = "J18.9"
)

// Administrative encounter codes in sequencing priority.
var administrative = []struct {
	Kind  model.ReasonKind
	Codes []string
}{
	{model.ReasonDialysis, []string{"Z49.31", "Z49.32"}},
	{model.ReasonChemotherapy, []string{"Z51.11"}},
	{model.ReasonRadiation, []string{"Z51.0"}},
	{model.ReasonFollowUp, []string{"Z08", "Z09"}},
}

// AdministrativeRank returns the sequencing priority of an administrative
// code (0 highest), or -1 for a clinical code.
func AdministrativeRank(code string) int {
	for i, a := range administrative {
		for _, c := range a.Codes {
			if c == code {
				return i
			}
		}
	}
	return -1
}

// IsAdministrative reports whether a code is an encounter-reason Z code.
func IsAdministrative(code string) bool {
	return AdministrativeRank(code) >= 0
}

// codeFamilies maps code prefixes to the families a code expresses. The
// longest matching prefix wins.
var codeFamilies = map[string][]model.Family{
	"I10":    {model.FamilyHypertension},
	"I11.0":  {model.FamilyHypertension, model.FamilyHeartFailure},
	"I12":    {model.FamilyHypertension, model.FamilyCKD},
	"I13":    {model.FamilyHypertension, model.FamilyHeartFailure, model.FamilyCKD},
	"I16":    {model.FamilyHypertensiveCrisis},
	"I50":    {model.FamilyHeartFailure},
	"I48":    {model.FamilyAtrialFib},
	"I25":    {model.FamilyCoronary},
	"I21":    {model.FamilyInfarction},
	"N18":    {model.FamilyCKD},
	"N17":    {model.FamilyAKI},
	"Z99.2":  {model.FamilyDialysis},
	"Z94.0":  {model.FamilyTransplant},
	"E10":    {model.FamilyDiabetes},
	"E11":    {model.FamilyDiabetes},
	"Z79.4":  {model.FamilyDiabetes},
	"Z79.84": {model.FamilyDiabetes},
	"A40":    {model.FamilySepsis},
	"A41":    {model.FamilySepsis},
	"R65.2":  {model.FamilySepsis, model.FamilySepticShock},
	"N39.0":  {model.FamilyInfection},
	"L03":    {model.FamilyInfection},
	"K65":    {model.FamilyInfection},
	"R78.81": {model.FamilyInfection},
	"B95":    {model.FamilyInfection},
	"B96":    {model.FamilyInfection},
	"J13":    {model.FamilyPneumonia},
	"J15":    {model.FamilyPneumonia},
	"J18":    {model.FamilyPneumonia},
	"J69":    {model.FamilyPneumonia},
	"J44":    {model.FamilyCOPD},
	"J45":    {model.FamilyAsthma},
	"J96":    {model.FamilyRespFailure},
	"L97":    {model.FamilyFootUlcer},
	"L89":    {model.FamilyPressureUlcer},
	"S72":    {model.FamilyFracture},
	"S52":    {model.FamilyFracture},
	"S22":    {model.FamilyFracture},
	"W19":    {model.FamilyFall},
	"C":      {model.FamilyNeoplasm},
	"Z85":    {model.FamilyNeoplasm},
	"D63.0":  {model.FamilyNeoplasm},
	"O":      {model.FamilyPregnancy},
	"Z3A":    {model.FamilyPregnancy},
	"Z33":    {model.FamilyPregnancy},
}

// FamiliesOf returns the families a code expresses.
func FamiliesOf(code string) []model.Family {
	best := ""
	for p := range codeFamilies {
		if strings.HasPrefix(code, p) && len(p) > len(best) {
			best = p
		}
	}
	if best == "" {
		return nil
	}
	return codeFamilies[best]
}

// Expresses reports whether a code expresses the family.
func Expresses(code string, f model.Family) bool {
	for _, x := range FamiliesOf(code) {
		if x == f {
			return true
		}
	}
	return false
}

// IsUnspecified reports codes that carry no specificity beyond the family:
// the .9 catch-alls and the x0 unspecified-subtype variants.
func IsUnspecified(code string) bool {
	switch code {
	case "I16.9", "I50.9", "I50.20", "I50.30", "I50.40", "I48.91", "I21.9",
		"N18.9", "N18.30", "E11.9", "E10.9", "E11.40", "E10.40", "A41.9", "J18.9",
		"J44.9", "J45.909", "J96.00", "J96.10", "J96.20", "J96.90", "J96.91", "J96.92",
		"C34.90", "C50.919", "C50.929", "O10.019", "O11.9", "O13.9", "O14.90", "O14.10", "O24.419",
		"L89.90":
		return true
	}
	if strings.HasPrefix(code, "L97.") && strings.HasSuffix(code, "9") {
		return true
	}
	if strings.HasPrefix(code, "L89.") && strings.HasSuffix(code, "9") {
		return true
	}
	return false
}
