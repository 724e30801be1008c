package model

import (
	"fmt"
	"sort"
	"strings"
)

// Attr names a context attribute that field handlers and narrative rules assign.
type Attr string

// FactSource tells where an assignment came from.
type FactSource string

const (
	SourceField     FactSource = "field"
	SourceNarrative FactSource = "narrative"
	SourceSync      FactSource = "sync"
)

// Fact records one positive assignment into the context for explainability.
type Fact struct {
	Attr   Attr       `json:"attr"`
	Value  string     `json:"value"`
	Line   int        `json:"line,omitempty"`
	Source FactSource `json:"source"`
	Text   string     `json:"text,omitempty"` // matched text or field line
}

func (f Fact) String() string {
	if f.Line > 0 {
		return fmt.Sprintf("%s=%s (line %d, %s: %q)", f.Attr, f.Value, f.Line, f.Source, f.Text)
	}
	return fmt.Sprintf("%s=%s (%s)", f.Attr, f.Value, f.Source)
}

// Context is the canonical clinical-fact tree built from one input.
// A nil subtree means "not documented", never an implicit negative.
// Handlers treat Context as a value: they copy the leaf they touch and return
// the new Context, so an earlier Context is never mutated.
type Context struct {
	Hypertension  *Hypertension       `json:"hypertension,omitempty"`
	HeartFailure  *HeartFailure       `json:"heart_failure,omitempty"`
	AtrialFib     *AtrialFib          `json:"atrial_fibrillation,omitempty"`
	Coronary      *Coronary           `json:"coronary_artery_disease,omitempty"`
	Infarction    *Infarction         `json:"myocardial_infarction,omitempty"`
	CKD           *CKD                `json:"ckd,omitempty"`
	RenalStatus   *RenalStatus        `json:"renal_status,omitempty"`
	AKI           *AKI                `json:"aki,omitempty"`
	Diabetes      *Diabetes           `json:"diabetes,omitempty"`
	Medications   *Medications        `json:"medications,omitempty"`
	Infection     *Infection          `json:"infection,omitempty"`
	Pneumonia     *Pneumonia          `json:"pneumonia,omitempty"`
	COPD          *COPD               `json:"copd,omitempty"`
	Asthma        *Asthma             `json:"asthma,omitempty"`
	RespFailure   *RespiratoryFailure `json:"respiratory_failure,omitempty"`
	FootUlcer     *FootUlcer          `json:"foot_ulcer,omitempty"`
	PressureUlcer *PressureUlcer      `json:"pressure_ulcer,omitempty"`
	Fracture      *Fracture           `json:"fracture,omitempty"`
	Fall          *Fall               `json:"fall,omitempty"`
	Neoplasm      *Neoplasm           `json:"neoplasm,omitempty"`
	Pregnancy     *Pregnancy          `json:"pregnancy,omitempty"`
	Patient       *Patient            `json:"patient,omitempty"`
	Encounter     *Encounter          `json:"encounter,omitempty"`

	Denied []Family `json:"denied,omitempty"` // families with a negated signal, sorted
	Facts  []Fact   `json:"facts,omitempty"`
}

type Hypertension struct {
	Crisis CrisisKind `json:"crisis,omitempty"`
}

type HeartFailure struct {
	Type   HFType `json:"type,omitempty"`
	Acuity Acuity `json:"acuity,omitempty"`
}

type AtrialFib struct {
	Kind AFibKind `json:"kind,omitempty"`
}

type Coronary struct{}

type Infarction struct {
	Kind InfarctionKind `json:"kind,omitempty"`
}

type CKD struct {
	Stage CKDStage `json:"stage,omitempty"`
}

type RenalStatus struct {
	Dialysis   DialysisModality `json:"dialysis,omitempty"`
	Transplant bool             `json:"transplant,omitempty"`
}

type AKI struct{}

type Diabetes struct {
	Type          DMType           `json:"type,omitempty"`
	Complications []DMComplication `json:"complications,omitempty"`
}

// Medications holds long-term drug use relevant to coding. It is kept apart
// from Diabetes so that a medication mention never asserts a diagnosis.
type Medications struct {
	Insulin   bool `json:"insulin,omitempty"`
	OralAgent bool `json:"oral_agent,omitempty"`
}

// Has reports whether the complication is documented.
func (d *Diabetes) Has(c DMComplication) bool {
	if d == nil {
		return false
	}
	for _, x := range d.Complications {
		if x == c {
			return true
		}
	}
	return false
}

type Infection struct {
	Sepsis   bool          `json:"sepsis,omitempty"`
	Severe   bool          `json:"severe,omitempty"`
	Shock    bool          `json:"shock,omitempty"`
	Organism Organism      `json:"organism,omitempty"`
	Site     InfectionSite `json:"site,omitempty"`
}

type Pneumonia struct {
	Organism   Organism `json:"organism,omitempty"`
	Aspiration bool     `json:"aspiration,omitempty"`
}

type COPD struct {
	Exacerbation       bool `json:"exacerbation,omitempty"`
	LowerRespInfection bool `json:"lower_respiratory_infection,omitempty"`
}

type Asthma struct {
	Severity          AsthmaSeverity `json:"severity,omitempty"`
	Exacerbation      bool           `json:"exacerbation,omitempty"`
	StatusAsthmaticus bool           `json:"status_asthmaticus,omitempty"`
}

type RespiratoryFailure struct {
	Acuity Acuity      `json:"acuity,omitempty"`
	Gas    GasExchange `json:"gas,omitempty"`
}

type FootUlcer struct {
	Site       UlcerSite  `json:"site,omitempty"`
	Laterality Laterality `json:"laterality,omitempty"`
	Depth      Depth      `json:"depth,omitempty"`
}

// Complete reports whether both site and depth were documented.
func (u *FootUlcer) Complete() bool {
	return u != nil && u.Site != UlcerSiteUnspecified && u.Depth != DepthUnspecified
}

type PressureUlcer struct {
	Site       PressureSite  `json:"site,omitempty"`
	Laterality Laterality    `json:"laterality,omitempty"`
	Stage      PressureStage `json:"stage,omitempty"`
}

type Fracture struct {
	Site       FractureSite  `json:"site,omitempty"`
	Laterality Laterality    `json:"laterality,omitempty"`
	Encounter  EncounterType `json:"encounter,omitempty"`
}

// Fall is a documented fall as the external cause of an injury.
type Fall struct{}

type Neoplasm struct {
	Site       NeoplasmSite   `json:"site,omitempty"`
	Laterality Laterality     `json:"laterality,omitempty"`
	History    bool           `json:"history,omitempty"`
	Metastases []NeoplasmSite `json:"metastases,omitempty"`
	Anemia     bool           `json:"anemia,omitempty"`
}

type Pregnancy struct {
	Trimester      Trimester  `json:"trimester,omitempty"`
	Weeks          int        `json:"weeks,omitempty"`
	GDM            GDMControl `json:"gdm,omitempty"`
	Preeclampsia   bool       `json:"preeclampsia,omitempty"`
	Severe         bool       `json:"severe,omitempty"`
	GestationalHTN bool       `json:"gestational_hypertension,omitempty"`
}

type Patient struct {
	Sex Sex `json:"sex,omitempty"`
}

// Reason is one stated reason for the encounter.
type Reason struct {
	Kind   ReasonKind `json:"kind"`
	Family Family     `json:"family,omitempty"` // for clinical reasons
	Text   string     `json:"text,omitempty"`
	Line   int        `json:"line,omitempty"`
}

type Encounter struct {
	Reasons []Reason `json:"reasons,omitempty"`
}

// HasReason reports whether a reason of the given kind (and family, for
// clinical reasons) is already recorded.
func (e *Encounter) HasReason(kind ReasonKind, family Family) bool {
	if e == nil {
		return false
	}
	for _, r := range e.Reasons {
		if r.Kind == kind && r.Family == family {
			return true
		}
	}
	return false
}

// Deny records a negated signal for a family. Idempotent.
func (c Context) Deny(f Family) Context {
	if c.IsDenied(f) {
		return c
	}
	denied := make([]Family, 0, len(c.Denied)+1)
	denied = append(denied, c.Denied...)
	denied = append(denied, f)
	sort.Slice(denied, func(i, j int) bool { return denied[i] < denied[j] })
	c.Denied = denied
	return c
}

// IsDenied reports whether a negated signal was recorded for the family.
func (c Context) IsDenied(f Family) bool {
	for _, d := range c.Denied {
		if d == f {
			return true
		}
	}
	return false
}

// AddFact appends provenance without sharing the previous backing array.
func (c Context) AddFact(f Fact) Context {
	facts := make([]Fact, len(c.Facts), len(c.Facts)+1)
	copy(facts, c.Facts)
	c.Facts = append(facts, f)
	return c
}

// Trigger describes the facts behind the given attributes, most recent first
// per attribute, for use as a code's triggering fact.
func (c Context) Trigger(attrs ...Attr) string {
	var parts []string
	for _, a := range attrs {
		for i := len(c.Facts) - 1; i >= 0; i-- {
			if c.Facts[i].Attr == a {
				parts = append(parts, c.Facts[i].String())
				break
			}
		}
	}
	return strings.Join(parts, "; ")
}

// Asserted reports whether the subtree for a family materialized.
func (c Context) Asserted(f Family) bool {
	switch f {
	case FamilyHypertension:
		return c.Hypertension != nil
	case FamilyHypertensiveCrisis:
		return c.Hypertension != nil && c.Hypertension.Crisis != CrisisNone
	case FamilyHeartFailure:
		return c.HeartFailure != nil
	case FamilyAtrialFib:
		return c.AtrialFib != nil
	case FamilyCoronary:
		return c.Coronary != nil
	case FamilyInfarction:
		return c.Infarction != nil
	case FamilyCKD:
		return c.CKD != nil
	case FamilyDialysis:
		return c.RenalStatus != nil && c.RenalStatus.Dialysis != DialysisNone
	case FamilyTransplant:
		return c.RenalStatus != nil && c.RenalStatus.Transplant
	case FamilyAKI:
		return c.AKI != nil
	case FamilyDiabetes:
		return c.Diabetes != nil
	case FamilySepsis:
		return c.Infection != nil && c.Infection.Sepsis
	case FamilySepticShock:
		return c.Infection != nil && c.Infection.Shock
	case FamilyInfection:
		return c.Infection != nil
	case FamilyPneumonia:
		return c.Pneumonia != nil
	case FamilyCOPD:
		return c.COPD != nil
	case FamilyAsthma:
		return c.Asthma != nil
	case FamilyRespFailure:
		return c.RespFailure != nil
	case FamilyFootUlcer:
		return c.FootUlcer != nil
	case FamilyPressureUlcer:
		return c.PressureUlcer != nil
	case FamilyFracture:
		return c.Fracture != nil
	case FamilyFall:
		return c.Fall != nil
	case FamilyNeoplasm:
		return c.Neoplasm != nil
	case FamilyPregnancy:
		return c.Pregnancy != nil
	case FamilyEncounter:
		return c.Encounter != nil
	case FamilyPatient:
		return c.Patient != nil
	}
	return false
}

// Conflicted reports a family that was both asserted and denied. Rule modules
// emit nothing for a conflicted family.
func (c Context) Conflicted(f Family) bool {
	return c.Asserted(f) && c.IsDenied(f)
}

// Usable reports a family that was asserted and not contradicted.
func (c Context) Usable(f Family) bool {
	return c.Asserted(f) && !c.IsDenied(f)
}

// Empty reports whether no subtree materialized.
func (c Context) Empty() bool {
	for _, f := range AllFamilies {
		if f == FamilyPatient {
			continue
		}
		if c.Asserted(f) {
			return false
		}
	}
	return true
}

// AllFamilies lists every family in a stable order.
var AllFamilies = []Family{
	FamilyHypertension, FamilyHypertensiveCrisis, FamilyHeartFailure, FamilyAtrialFib,
	FamilyCoronary, FamilyInfarction, FamilyCKD, FamilyDialysis, FamilyTransplant, FamilyAKI,
	FamilyDiabetes, FamilySepsis, FamilySepticShock, FamilyInfection, FamilyPneumonia,
	FamilyCOPD, FamilyAsthma, FamilyRespFailure, FamilyFootUlcer, FamilyPressureUlcer,
	FamilyFracture, FamilyFall, FamilyNeoplasm, FamilyPregnancy, FamilyEncounter, FamilyPatient,
}
