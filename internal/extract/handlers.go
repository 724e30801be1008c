package extract

import (
	"regexp"
	"strconv"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/vocab"
)

// value is what a field line or a narrative match hands to a handler:
// lower-cased text, the source line and the matcher to test it with. Field
// is set for field-line values.
type value struct {
	Text  string
	Line  int
	Match vocab.Matcher
	Field bool
}

func (v value) has(phrase string) bool {
	return v.Match(v.Text, phrase)
}

func (v value) any(phrases []string) bool {
	for _, p := range phrases {
		if v.has(p) {
			return true
		}
	}
	return false
}

func (v value) yes() bool {
	return vocab.AffirmativeValues[v.Text]
}

// asserts reports whether a value documents its family when the handler
// found no detail in it. A narrative match always does. A field value must
// be affirmative: "Sepsis: see below" asserts nothing.
func (v value) asserts(detail bool) bool {
	return detail || !v.Field || v.yes()
}

// handler merges one attribute into the context. It returns the new context
// and whether the value was understood. Handlers are idempotent: applying the
// same value twice yields the same context.
type handler func(ctx model.Context, v value) (model.Context, bool)

// advisories are attributes recognized only to explain why nothing is coded.
var advisories = map[model.Attr]string{
	vocab.AttrEGFR:      "eGFR documented without a provider-stated CKD stage; stage is not inferred from lab values",
	vocab.AttrUrosepsis: "urosepsis has no ICD-10-CM code; query the provider for sepsis or urinary tract infection",
}

// handlers is the single attribute dispatch table shared by field lines and
// narrative rules.
var handlers = map[model.Attr]handler{
	vocab.AttrHypertension:    presence(setHypertension),
	vocab.AttrHTNCrisis:       setHTNCrisis,
	vocab.AttrHeartFailure:    presence(setHeartFailure),
	vocab.AttrHFType:          setHFType,
	vocab.AttrHFAcuity:        setHFAcuity,
	vocab.AttrAtrialFib:       presence(setAtrialFib),
	vocab.AttrCoronary:        presence(setCoronary),
	vocab.AttrInfarction:      presence(setInfarction),
	vocab.AttrCKD:             presence(setCKD),
	vocab.AttrCKDStage:        setCKDStage,
	vocab.AttrESRD:            presence(setESRD),
	vocab.AttrDialysis:        presence(setDialysis),
	vocab.AttrTransplant:      presence(setTransplant),
	vocab.AttrAKI:             presence(setAKI),
	vocab.AttrDiabetes:        presence(setDiabetes),
	vocab.AttrDiabetesType:    setDiabetesType,
	vocab.AttrDMComplication:  setDMComplication,
	vocab.AttrInsulin:         presence(setInsulin),
	vocab.AttrOralAgent:       presence(setOralAgent),
	vocab.AttrSepsis:          presence(setSepsis),
	vocab.AttrSevereSepsis:    presence(setSevereSepsis),
	vocab.AttrSepticShock:     presence(setSepticShock),
	vocab.AttrOrganism:        setOrganism,
	vocab.AttrInfectionSite:   setInfectionSite,
	vocab.AttrUTI:             presence(localInfection(model.SiteUrinary)),
	vocab.AttrCellulitis:      presence(localInfection(model.SiteSkin)),
	vocab.AttrBacteremia:      presence(localInfection(model.SiteBlood)),
	vocab.AttrPeritonitis:     presence(localInfection(model.SiteAbdomen)),
	vocab.AttrPneumonia:       presence(setPneumonia),
	vocab.AttrPneumoniaOrg:    setPneumoniaOrganism,
	vocab.AttrAspiration:      presence(setAspiration),
	vocab.AttrCOPD:            presence(setCOPD),
	vocab.AttrCOPDExacerbate:  presence(setCOPDExacerbation),
	vocab.AttrAsthma:          presence(setAsthma),
	vocab.AttrAsthmaSeverity:  setAsthmaSeverity,
	vocab.AttrAsthmaExacerb:   presence(setAsthmaExacerbation),
	vocab.AttrStatusAsthma:    presence(setStatusAsthmaticus),
	vocab.AttrRespFailure:     presence(setRespFailure),
	vocab.AttrFootUlcer:       presence(setFootUlcer),
	vocab.AttrUlcerSite:       setUlcerSite,
	vocab.AttrUlcerDepth:      setUlcerDepth,
	vocab.AttrUlcerLaterality: setUlcerLaterality,
	vocab.AttrPressureUlcer:   presence(setPressureUlcer),
	vocab.AttrPressureSite:    setPressureSite,
	vocab.AttrPressureStage:   setPressureStage,
	vocab.AttrFracture:        presence(setFracture),
	vocab.AttrFractureSite:    setFractureSite,
	vocab.AttrFractureSide:    setFractureSide,
	vocab.AttrFractureEpisode: setFractureEpisode,
	vocab.AttrFall:            setFall,
	vocab.AttrNeoplasm:        presence(setNeoplasm),
	vocab.AttrNeoplasmSite:    setNeoplasmSite,
	vocab.AttrCancerHistory:   setCancerHistory,
	vocab.AttrMetastasis:      setMetastasis,
	vocab.AttrNeoplasmAnemia:  presence(setNeoplasmAnemia),
	vocab.AttrPregnancy:       presence(setPregnancy),
	vocab.AttrTrimester:       setTrimester,
	vocab.AttrGestationWeeks:  setGestationWeeks,
	vocab.AttrGDM:             presence(setGDM),
	vocab.AttrPreeclampsia:    presence(setPreeclampsia),
	vocab.AttrGestationalHTN:  presence(setGestationalHTN),
	vocab.AttrSex:             setSex,
	vocab.AttrAdmissionReason: setAdmissionReason,
}

// presence wraps a setter that materializes a family on an affirmative
// value. A rejected value leaves the context as it was.
func presence(set handler) handler {
	return func(ctx model.Context, v value) (model.Context, bool) {
		next, ok := set(ctx, v)
		if !ok {
			return ctx, false
		}
		return next, true
	}
}

// Cardiovascular

func setHypertension(ctx model.Context, v value) (model.Context, bool) {
	h := ctx.Hypertension.Copy()
	detail := false
	if v.has("hypertensive") {
		if kind, ok := vocab.CrisisKinds.First(v.Text, v.Match); ok {
			h.Crisis = mergeCrisis(h.Crisis, kind)
			detail = true
		}
	}
	ctx.Hypertension = &h
	return ctx, v.asserts(detail)
}

func setHTNCrisis(ctx model.Context, v value) (model.Context, bool) {
	kind, ok := vocab.CrisisKinds.First(v.Text, v.Match)
	if !ok {
		if !v.yes() {
			return ctx, false
		}
		kind = model.CrisisUnspecified
	}
	h := ctx.Hypertension.Copy()
	h.Crisis = mergeCrisis(h.Crisis, kind)
	ctx.Hypertension = &h
	return ctx, true
}

var crisisRank = map[model.CrisisKind]int{
	model.CrisisNone: 0, model.CrisisUnspecified: 1, model.CrisisUrgency: 2, model.CrisisEmergency: 3,
}

// mergeCrisis keeps the more specific crisis: a named urgency or emergency
// replaces an unspecified crisis, and emergency outranks urgency.
func mergeCrisis(a, b model.CrisisKind) model.CrisisKind {
	if crisisRank[b] > crisisRank[a] {
		return b
	}
	return a
}

func heartFailureDetail(hf model.HeartFailure, v value) (model.HeartFailure, bool) {
	found := false
	for _, t := range vocab.HFTypes.All(v.Text, v.Match) {
		hf.Type = vocab.MergeHFType(hf.Type, t)
		found = true
		if t == model.HFCombined {
			break
		}
	}
	for _, a := range vocab.AcuityTerms.All(v.Text, v.Match) {
		hf.Acuity = vocab.MergeAcuity(hf.Acuity, a)
		found = true
		if a == model.AcuityAcuteOnChronic {
			break
		}
	}
	return hf, found
}

func setHeartFailure(ctx model.Context, v value) (model.Context, bool) {
	hf, detail := heartFailureDetail(ctx.HeartFailure.Copy(), v)
	ctx.HeartFailure = &hf
	return ctx, v.asserts(detail)
}

func setHFType(ctx model.Context, v value) (model.Context, bool) {
	hf := ctx.HeartFailure.Copy()
	types := vocab.HFTypes.All(v.Text, v.Match)
	if len(types) == 0 {
		return ctx, false
	}
	for _, t := range types {
		hf.Type = vocab.MergeHFType(hf.Type, t)
		if t == model.HFCombined {
			break
		}
	}
	ctx.HeartFailure = &hf
	return ctx, true
}

func setHFAcuity(ctx model.Context, v value) (model.Context, bool) {
	hf := ctx.HeartFailure.Copy()
	acuities := vocab.AcuityTerms.All(v.Text, v.Match)
	if len(acuities) == 0 {
		return ctx, false
	}
	for _, a := range acuities {
		hf.Acuity = vocab.MergeAcuity(hf.Acuity, a)
		if a == model.AcuityAcuteOnChronic {
			break
		}
	}
	// a detail phrase may also name the type ("acute systolic heart failure")
	for _, t := range vocab.HFTypes.All(v.Text, v.Match) {
		hf.Type = vocab.MergeHFType(hf.Type, t)
		if t == model.HFCombined {
			break
		}
	}
	ctx.HeartFailure = &hf
	return ctx, true
}

func setAtrialFib(ctx model.Context, v value) (model.Context, bool) {
	af := ctx.AtrialFib.Copy()
	kind, detail := vocab.AFibKinds.First(v.Text, v.Match)
	if detail && af.Kind == model.AFibUnspecified {
		af.Kind = kind
	}
	ctx.AtrialFib = &af
	return ctx, v.asserts(detail)
}

func setCoronary(ctx model.Context, v value) (model.Context, bool) {
	ctx.Coronary = &model.Coronary{}
	return ctx, v.asserts(false)
}

func setInfarction(ctx model.Context, v value) (model.Context, bool) {
	mi := ctx.Infarction.Copy()
	kind, detail := vocab.InfarctionKinds.First(v.Text, v.Match)
	if detail && mi.Kind == model.InfarctionUnspecified {
		mi.Kind = kind
	}
	ctx.Infarction = &mi
	return ctx, v.asserts(detail)
}

// Renal

var bareStage = regexp.MustCompile(`^(?:stage\s*)?([1-5][ab]?|iii[ab]|iv|v|iii|ii|i)$`)

// parseCKDStage resolves a stage from prose ("stage 3b") or a bare field
// value ("4", "IIIb").
func parseCKDStage(v value) (model.CKDStage, bool) {
	if stage, ok := vocab.CKDStageLadder.Resolve(v.Text, v.Match); ok {
		return stage, true
	}
	if m := bareStage.FindStringSubmatch(v.Text); m != nil {
		return vocab.CKDStageLadder.Resolve("stage "+m[1], nil)
	}
	return model.CKDStageUnspecified, false
}

func setCKD(ctx model.Context, v value) (model.Context, bool) {
	ckd := ctx.CKD.Copy()
	stage, detail := parseCKDStage(v)
	if detail {
		ckd.Stage = vocab.CKDStageLadder.Max(ckd.Stage, stage)
	}
	ctx.CKD = &ckd
	return ctx, v.asserts(detail)
}

func setCKDStage(ctx model.Context, v value) (model.Context, bool) {
	stage, ok := parseCKDStage(v)
	if !ok {
		return ctx, false
	}
	ckd := ctx.CKD.Copy()
	ckd.Stage = vocab.CKDStageLadder.Max(ckd.Stage, stage)
	ctx.CKD = &ckd
	return ctx, true
}

func setESRD(ctx model.Context, v value) (model.Context, bool) {
	ckd := ctx.CKD.Copy()
	ckd.Stage = vocab.CKDStageLadder.Max(ckd.Stage, model.CKDStageESRD)
	ctx.CKD = &ckd
	modality, detail := vocab.DialysisModalities.First(v.Text, v.Match)
	if detail {
		r := ctx.RenalStatus.Copy()
		r.Dialysis = mergeDialysis(r.Dialysis, modality)
		ctx.RenalStatus = &r
	}
	return ctx, v.asserts(detail)
}

func mergeDialysis(current, next model.DialysisModality) model.DialysisModality {
	if current == model.DialysisNone || current == model.DialysisUnspecified {
		return next
	}
	return current
}

func setDialysis(ctx model.Context, v value) (model.Context, bool) {
	modality, detail := vocab.DialysisModalities.First(v.Text, v.Match)
	if !detail {
		modality = model.DialysisUnspecified
	}
	r := ctx.RenalStatus.Copy()
	r.Dialysis = mergeDialysis(r.Dialysis, modality)
	ctx.RenalStatus = &r
	return ctx, v.asserts(detail)
}

func setTransplant(ctx model.Context, v value) (model.Context, bool) {
	r := ctx.RenalStatus.Copy()
	r.Transplant = true
	ctx.RenalStatus = &r
	return ctx, v.asserts(false)
}

func setAKI(ctx model.Context, v value) (model.Context, bool) {
	ctx.AKI = &model.AKI{}
	return ctx, v.asserts(false)
}

// Diabetes

// addComplications merges complications, letting polyneuropathy and
// gastroparesis absorb a plain neuropathy.
func addComplications(d model.Diabetes, comps ...model.DMComplication) model.Diabetes {
	for _, c := range comps {
		if d.Has(c) {
			continue
		}
		if c == model.DMCompNeuropathy && (d.Has(model.DMCompPolyneuropathy) || d.Has(model.DMCompGastroparesis)) {
			continue
		}
		d.Complications = append(d.Complications, c)
	}
	if d.Has(model.DMCompPolyneuropathy) || d.Has(model.DMCompGastroparesis) {
		kept := d.Complications[:0:0]
		for _, c := range d.Complications {
			if c != model.DMCompNeuropathy {
				kept = append(kept, c)
			}
		}
		d.Complications = kept
	}
	return d
}

func diabetesDetail(ctx model.Context, v value) (model.Context, bool) {
	d := ctx.Diabetes.Copy()
	found := false
	if t, ok := vocab.DMTypes.First(v.Text, v.Match); ok {
		if d.Type == model.DMUnspecified {
			d.Type = t
		}
		found = true
	}
	if comps := vocab.DMComplications.All(v.Text, v.Match); len(comps) > 0 {
		d = addComplications(d, comps...)
		found = true
	}
	ctx.Diabetes = &d
	return ctx, found
}

func setDiabetes(ctx model.Context, v value) (model.Context, bool) {
	ctx, detail := diabetesDetail(ctx, v)
	if v.any(vocab.InsulinPhrases) {
		ctx = withInsulin(ctx)
		detail = true
	}
	if v.any(vocab.OralAgentPhrases) {
		ctx = withOralAgent(ctx)
		detail = true
	}
	return ctx, v.asserts(detail)
}

func setDiabetesType(ctx model.Context, v value) (model.Context, bool) {
	t, ok := vocab.DMTypes.First(v.Text, v.Match)
	if !ok {
		if m := bareStage.FindStringSubmatch(v.Text); m != nil {
			t, ok = vocab.DMTypes.First("type "+m[1], nil)
		}
	}
	if !ok {
		return ctx, false
	}
	d := ctx.Diabetes.Copy()
	if d.Type == model.DMUnspecified {
		d.Type = t
	}
	ctx.Diabetes = &d
	return ctx, true
}

func setDMComplication(ctx model.Context, v value) (model.Context, bool) {
	comps := vocab.DMComplications.All(v.Text, v.Match)
	if len(comps) == 0 {
		return ctx, false
	}
	d := ctx.Diabetes.Copy()
	if t, ok := vocab.DMTypes.First(v.Text, v.Match); ok && d.Type == model.DMUnspecified {
		d.Type = t
	}
	d = addComplications(d, comps...)
	ctx.Diabetes = &d
	return ctx, true
}

// doseAmount marks a medication field value that lists a dose.
var doseAmount = regexp.MustCompile(`\b\d+(?:\.\d+)? ?(?:units?|u|mg|g|mcg)\b`)

func withInsulin(ctx model.Context) model.Context {
	m := ctx.Medications.Copy()
	m.Insulin = true
	ctx.Medications = &m
	return ctx
}

func withOralAgent(ctx model.Context) model.Context {
	m := ctx.Medications.Copy()
	m.OralAgent = true
	ctx.Medications = &m
	return ctx
}

func setInsulin(ctx model.Context, v value) (model.Context, bool) {
	detail := v.any(vocab.InsulinPhrases) || doseAmount.MatchString(v.Text)
	return withInsulin(ctx), v.asserts(detail)
}

func setOralAgent(ctx model.Context, v value) (model.Context, bool) {
	detail := v.any(vocab.OralAgentPhrases) || doseAmount.MatchString(v.Text)
	return withOralAgent(ctx), v.asserts(detail)
}

// Infection

// infectionDetail fills organism and site from the value when unset and
// reports whether the value named either.
func infectionDetail(inf model.Infection, v value) (model.Infection, bool) {
	found := false
	if o, ok := vocab.Organisms.First(v.Text, v.Match); ok {
		if inf.Organism == model.OrganismUnspecified {
			inf.Organism = o
		}
		found = true
	}
	if s, ok := vocab.InfectionSites.First(v.Text, v.Match); ok {
		if inf.Site == model.SiteUnspecified {
			inf.Site = s
		}
		found = true
	}
	return inf, found
}

func setSepsis(ctx model.Context, v value) (model.Context, bool) {
	inf, detail := infectionDetail(ctx.Infection.Copy(), v)
	inf.Sepsis = true
	if v.has("severe") {
		inf.Severe = true
		detail = true
	}
	if v.has("septic shock") || v.has("shock") {
		inf.Shock = true
		inf.Severe = true
		detail = true
	}
	ctx.Infection = &inf
	return ctx, v.asserts(detail)
}

func setSevereSepsis(ctx model.Context, v value) (model.Context, bool) {
	inf := ctx.Infection.Copy()
	inf.Sepsis = true
	inf.Severe = true
	ctx.Infection = &inf
	return ctx, v.asserts(false)
}

func setSepticShock(ctx model.Context, v value) (model.Context, bool) {
	inf := ctx.Infection.Copy()
	inf.Sepsis = true
	inf.Severe = true
	inf.Shock = true
	ctx.Infection = &inf
	return ctx, v.asserts(false)
}

func setOrganism(ctx model.Context, v value) (model.Context, bool) {
	o, ok := vocab.Organisms.First(v.Text, v.Match)
	if !ok {
		return ctx, false
	}
	inf := ctx.Infection.Copy()
	if inf.Organism == model.OrganismUnspecified {
		inf.Organism = o
	}
	ctx.Infection = &inf
	return ctx, true
}

func setInfectionSite(ctx model.Context, v value) (model.Context, bool) {
	site, ok := vocab.InfectionSites.First(v.Text, v.Match)
	if !ok {
		return ctx, false
	}
	inf := ctx.Infection.Copy()
	if inf.Site == model.SiteUnspecified {
		inf.Site = site
	}
	ctx.Infection = &inf
	return ctx, true
}

// localInfection records a localized infection at a fixed site.
func localInfection(site model.InfectionSite) handler {
	return func(ctx model.Context, v value) (model.Context, bool) {
		inf := ctx.Infection.Copy()
		if inf.Site == model.SiteUnspecified {
			inf.Site = site
		}
		o, detail := vocab.Organisms.First(v.Text, v.Match)
		if detail && inf.Organism == model.OrganismUnspecified {
			inf.Organism = o
		}
		ctx.Infection = &inf
		return ctx, v.asserts(detail)
	}
}

// Respiratory

func setPneumonia(ctx model.Context, v value) (model.Context, bool) {
	p := ctx.Pneumonia.Copy()
	o, detail := vocab.Organisms.First(v.Text, v.Match)
	if detail && p.Organism == model.OrganismUnspecified {
		p.Organism = o
	}
	if v.has("aspiration") {
		p.Aspiration = true
		detail = true
	}
	ctx.Pneumonia = &p
	return ctx, v.asserts(detail)
}

func setPneumoniaOrganism(ctx model.Context, v value) (model.Context, bool) {
	o, ok := vocab.Organisms.First(v.Text, v.Match)
	if !ok {
		return ctx, false
	}
	p := ctx.Pneumonia.Copy()
	if p.Organism == model.OrganismUnspecified {
		p.Organism = o
	}
	ctx.Pneumonia = &p
	return ctx, true
}

func setAspiration(ctx model.Context, v value) (model.Context, bool) {
	p := ctx.Pneumonia.Copy()
	p.Aspiration = true
	ctx.Pneumonia = &p
	return ctx, v.asserts(false)
}

func setCOPD(ctx model.Context, v value) (model.Context, bool) {
	c := ctx.COPD.Copy()
	detail := v.has("exacerbation") || v.has("exacerbated")
	if detail {
		c.Exacerbation = true
	}
	ctx.COPD = &c
	return ctx, v.asserts(detail)
}

func setCOPDExacerbation(ctx model.Context, v value) (model.Context, bool) {
	c := ctx.COPD.Copy()
	c.Exacerbation = true
	ctx.COPD = &c
	return ctx, v.asserts(false)
}

func asthmaDetail(a model.Asthma, v value) (model.Asthma, bool) {
	found := false
	if sev, ok := vocab.AsthmaSeverityLadder.Resolve(v.Text, v.Match); ok {
		a.Severity = vocab.AsthmaSeverityLadder.Max(a.Severity, sev)
		found = true
	}
	if v.has("exacerbation") || v.has("attack") {
		a.Exacerbation = true
		found = true
	}
	if v.has("status asthmaticus") {
		a.StatusAsthmaticus = true
		found = true
	}
	return a, found
}

func setAsthma(ctx model.Context, v value) (model.Context, bool) {
	a, detail := asthmaDetail(ctx.Asthma.Copy(), v)
	ctx.Asthma = &a
	return ctx, v.asserts(detail)
}

func setAsthmaSeverity(ctx model.Context, v value) (model.Context, bool) {
	sev, ok := vocab.AsthmaSeverityLadder.Resolve(v.Text, v.Match)
	if !ok {
		return ctx, false
	}
	a := ctx.Asthma.Copy()
	a.Severity = vocab.AsthmaSeverityLadder.Max(a.Severity, sev)
	ctx.Asthma = &a
	return ctx, true
}

func setAsthmaExacerbation(ctx model.Context, v value) (model.Context, bool) {
	a := ctx.Asthma.Copy()
	a.Exacerbation = true
	ctx.Asthma = &a
	return ctx, v.asserts(false)
}

func setStatusAsthmaticus(ctx model.Context, v value) (model.Context, bool) {
	a := ctx.Asthma.Copy()
	a.StatusAsthmaticus = true
	ctx.Asthma = &a
	return ctx, v.asserts(false)
}

func setRespFailure(ctx model.Context, v value) (model.Context, bool) {
	r := ctx.RespFailure.Copy()
	detail := false
	for _, a := range vocab.AcuityTerms.All(v.Text, v.Match) {
		r.Acuity = vocab.MergeAcuity(r.Acuity, a)
		detail = true
		if a == model.AcuityAcuteOnChronic {
			break
		}
	}
	if gas, ok := vocab.GasTerms.First(v.Text, v.Match); ok {
		if r.Gas == model.GasUnspecified {
			r.Gas = gas
		}
		detail = true
	}
	ctx.RespFailure = &r
	return ctx, v.asserts(detail)
}

// Wounds

func footUlcerDetail(u model.FootUlcer, v value) (model.FootUlcer, bool) {
	found := false
	if site, ok := vocab.UlcerSites.First(v.Text, v.Match); ok {
		if u.Site == model.UlcerSiteUnspecified {
			u.Site = site
		}
		found = true
	}
	if side := vocab.ResolveLaterality(v.Text, v.Match); side != model.LateralityUnspecified {
		if u.Laterality == model.LateralityUnspecified {
			u.Laterality = side
		}
		found = true
	}
	if depth, ok := vocab.DepthLadder.Resolve(v.Text, v.Match); ok {
		u.Depth = vocab.DepthLadder.Max(u.Depth, depth)
		found = true
	}
	return u, found
}

func setFootUlcer(ctx model.Context, v value) (model.Context, bool) {
	u, detail := footUlcerDetail(ctx.FootUlcer.Copy(), v)
	ctx.FootUlcer = &u
	return ctx, v.asserts(detail)
}

func setUlcerSite(ctx model.Context, v value) (model.Context, bool) {
	site, ok := vocab.UlcerSites.First(v.Text, v.Match)
	if !ok {
		return ctx, false
	}
	u := ctx.FootUlcer.Copy()
	if u.Site == model.UlcerSiteUnspecified {
		u.Site = site
	}
	if side := vocab.ResolveLaterality(v.Text, v.Match); side != model.LateralityUnspecified && u.Laterality == model.LateralityUnspecified {
		u.Laterality = side
	}
	ctx.FootUlcer = &u
	return ctx, true
}

func setUlcerDepth(ctx model.Context, v value) (model.Context, bool) {
	depth, ok := vocab.DepthLadder.Resolve(v.Text, v.Match)
	if !ok {
		return ctx, false
	}
	u := ctx.FootUlcer.Copy()
	u.Depth = vocab.DepthLadder.Max(u.Depth, depth)
	ctx.FootUlcer = &u
	return ctx, true
}

func setUlcerLaterality(ctx model.Context, v value) (model.Context, bool) {
	side := vocab.ResolveLaterality(v.Text, v.Match)
	if side == model.LateralityUnspecified {
		return ctx, false
	}
	u := ctx.FootUlcer.Copy()
	if u.Laterality == model.LateralityUnspecified {
		u.Laterality = side
	}
	ctx.FootUlcer = &u
	return ctx, true
}

var barePressureStage = regexp.MustCompile(`^(?:stage\s*)?([1-4]|iv|iii|ii|i)$`)

func parsePressureStage(v value) (model.PressureStage, bool) {
	if stage, ok := vocab.PressureStageLadder.Resolve(v.Text, v.Match); ok {
		return stage, true
	}
	if m := barePressureStage.FindStringSubmatch(v.Text); m != nil {
		return vocab.PressureStageLadder.Resolve("stage "+m[1], nil)
	}
	if v.any(vocab.UnstageablePhrases) {
		return model.PressureStageUnstageable, true
	}
	return model.PressureStageUnspecified, false
}

// mergePressureStage lets a numeric stage replace unstageable and keeps the
// highest numeric stage.
func mergePressureStage(a, b model.PressureStage) model.PressureStage {
	switch {
	case a == model.PressureStageUnspecified:
		return b
	case b == model.PressureStageUnstageable:
		return a
	case a == model.PressureStageUnstageable:
		return b
	}
	return vocab.PressureStageLadder.Max(a, b)
}

func setPressureUlcer(ctx model.Context, v value) (model.Context, bool) {
	p := ctx.PressureUlcer.Copy()
	detail := false
	if site, ok := vocab.PressureSites.First(v.Text, v.Match); ok {
		if p.Site == model.PressureSiteUnspecified {
			p.Site = site
		}
		detail = true
	}
	if side := vocab.ResolveLaterality(v.Text, v.Match); side != model.LateralityUnspecified {
		if p.Laterality == model.LateralityUnspecified {
			p.Laterality = side
		}
		detail = true
	}
	if stage, ok := parsePressureStage(v); ok {
		p.Stage = mergePressureStage(p.Stage, stage)
		detail = true
	}
	ctx.PressureUlcer = &p
	return ctx, v.asserts(detail)
}

func setPressureSite(ctx model.Context, v value) (model.Context, bool) {
	site, ok := vocab.PressureSites.First(v.Text, v.Match)
	if !ok {
		return ctx, false
	}
	p := ctx.PressureUlcer.Copy()
	if p.Site == model.PressureSiteUnspecified {
		p.Site = site
	}
	if side := vocab.ResolveLaterality(v.Text, v.Match); side != model.LateralityUnspecified && p.Laterality == model.LateralityUnspecified {
		p.Laterality = side
	}
	ctx.PressureUlcer = &p
	return ctx, true
}

func setPressureStage(ctx model.Context, v value) (model.Context, bool) {
	stage, ok := parsePressureStage(v)
	if !ok {
		return ctx, false
	}
	p := ctx.PressureUlcer.Copy()
	p.Stage = mergePressureStage(p.Stage, stage)
	ctx.PressureUlcer = &p
	return ctx, true
}

// Trauma

func setFracture(ctx model.Context, v value) (model.Context, bool) {
	f := ctx.Fracture.Copy()
	detail := false
	if site, ok := vocab.FractureSites.First(v.Text, v.Match); ok {
		if f.Site == model.FractureSiteUnspecified {
			f.Site = site
		}
		detail = true
	}
	if side := vocab.ResolveLaterality(v.Text, v.Match); side != model.LateralityUnspecified {
		if f.Laterality == model.LateralityUnspecified {
			f.Laterality = side
		}
		detail = true
	}
	if enc, ok := vocab.EncounterTypes.First(v.Text, v.Match); ok {
		if f.Encounter == model.EncounterUnspecified {
			f.Encounter = enc
		}
		detail = true
	}
	ctx.Fracture = &f
	return ctx, v.asserts(detail)
}

func setFractureSite(ctx model.Context, v value) (model.Context, bool) {
	site, ok := vocab.FractureSites.First(v.Text, v.Match)
	if !ok {
		return ctx, false
	}
	f := ctx.Fracture.Copy()
	if f.Site == model.FractureSiteUnspecified {
		f.Site = site
	}
	if side := vocab.ResolveLaterality(v.Text, v.Match); side != model.LateralityUnspecified && f.Laterality == model.LateralityUnspecified {
		f.Laterality = side
	}
	ctx.Fracture = &f
	return ctx, true
}

func setFractureSide(ctx model.Context, v value) (model.Context, bool) {
	side := vocab.ResolveLaterality(v.Text, v.Match)
	if side == model.LateralityUnspecified {
		return ctx, false
	}
	f := ctx.Fracture.Copy()
	if f.Laterality == model.LateralityUnspecified {
		f.Laterality = side
	}
	ctx.Fracture = &f
	return ctx, true
}

func setFractureEpisode(ctx model.Context, v value) (model.Context, bool) {
	enc, ok := vocab.EncounterTypes.First(v.Text, v.Match)
	if !ok {
		return ctx, false
	}
	f := ctx.Fracture.Copy()
	if f.Encounter == model.EncounterUnspecified {
		f.Encounter = enc
	}
	ctx.Fracture = &f
	return ctx, true
}

func setFall(ctx model.Context, v value) (model.Context, bool) {
	if !v.yes() && !v.has("fall") && !v.has("fell") && !v.has("mechanical fall") {
		return ctx, false
	}
	ctx.Fall = &model.Fall{}
	return ctx, true
}

// Oncology

// earliestSite returns the primary site named first in the text, so "colon
// cancer with lung metastases" reads as colon.
func earliestSite(v value) (model.NeoplasmSite, bool) {
	best, bestAt := model.NeoplasmSiteUnspecified, -1
	for _, term := range vocab.NeoplasmPrimarySites {
		for _, phrase := range term.Phrases {
			at := vocab.IndexPhrases(v.Text, phrase)
			if len(at) == 0 || !v.has(phrase) {
				continue
			}
			if bestAt < 0 || at[0] < bestAt {
				best, bestAt = term.Value, at[0]
			}
		}
	}
	return best, bestAt >= 0
}

func setNeoplasm(ctx model.Context, v value) (model.Context, bool) {
	n := ctx.Neoplasm.Copy()
	first := ctx.Neoplasm == nil
	site, detail := earliestSite(v)
	if detail && n.Site == model.NeoplasmSiteUnspecified {
		n.Site = site
	}
	if side := vocab.ResolveLaterality(v.Text, v.Match); side != model.LateralityUnspecified && n.Laterality == model.LateralityUnspecified {
		n.Laterality = side
	}
	// an active mention anywhere outweighs a history mention
	history := false
	for _, cue := range vocab.HistoryCues {
		if vocab.ContainsPhrase(v.Text, cue) {
			history = true
			break
		}
	}
	if first {
		n.History = history
	} else if !history {
		n.History = false
	}
	ctx.Neoplasm = &n
	return ctx, v.asserts(detail || history)
}

func setNeoplasmSite(ctx model.Context, v value) (model.Context, bool) {
	site, ok := earliestSite(v)
	if !ok {
		return ctx, false
	}
	n := ctx.Neoplasm.Copy()
	if n.Site == model.NeoplasmSiteUnspecified {
		n.Site = site
	}
	if side := vocab.ResolveLaterality(v.Text, v.Match); side != model.LateralityUnspecified && n.Laterality == model.LateralityUnspecified {
		n.Laterality = side
	}
	ctx.Neoplasm = &n
	return ctx, true
}

func setCancerHistory(ctx model.Context, v value) (model.Context, bool) {
	site, ok := earliestSite(v)
	if !ok && !v.yes() {
		return ctx, false
	}
	if ctx.Neoplasm != nil && !ctx.Neoplasm.History {
		// already documented as active
		return ctx, true
	}
	n := ctx.Neoplasm.Copy()
	n.History = true
	if ok && n.Site == model.NeoplasmSiteUnspecified {
		n.Site = site
	}
	if side := vocab.ResolveLaterality(v.Text, v.Match); side != model.LateralityUnspecified && n.Laterality == model.LateralityUnspecified {
		n.Laterality = side
	}
	ctx.Neoplasm = &n
	return ctx, true
}

func setMetastasis(ctx model.Context, v value) (model.Context, bool) {
	sites := vocab.NeoplasmSecondarySites.All(v.Text, v.Match)
	if len(sites) == 0 {
		return ctx, false
	}
	n := ctx.Neoplasm.Copy()
	for _, s := range sites {
		seen := false
		for _, m := range n.Metastases {
			if m == s {
				seen = true
				break
			}
		}
		if !seen {
			n.Metastases = append(n.Metastases, s)
		}
	}
	ctx.Neoplasm = &n
	return ctx, true
}

func setNeoplasmAnemia(ctx model.Context, v value) (model.Context, bool) {
	n := ctx.Neoplasm.Copy()
	n.Anemia = true
	ctx.Neoplasm = &n
	return ctx, v.asserts(false)
}

// Obstetric

var (
	weeksPattern     = regexp.MustCompile(`\b(\d{1,2})(?:\+\d)? ?(?:weeks?|wks?)\b`)
	bareWeeks        = regexp.MustCompile(`\b(\d{1,2})\b`)
	trimesterPattern = regexp.MustCompile(`\b(?:first|second|third|1st|2nd|3rd) trimester\b`)
)

// parseWeeks reads completed weeks of gestation; out-of-range values are
// rejected rather than clamped.
func parseWeeks(text string, bare bool) (int, bool) {
	m := weeksPattern.FindStringSubmatch(text)
	if m == nil && bare {
		m = bareWeeks.FindStringSubmatch(text)
	}
	if m == nil {
		return 0, false
	}
	weeks, err := strconv.Atoi(m[1])
	if err != nil || weeks < 1 || weeks > 45 {
		return 0, false
	}
	return weeks, true
}

func setPregnancy(ctx model.Context, v value) (model.Context, bool) {
	p := ctx.Pregnancy.Copy()
	detail := false
	if weeks, ok := parseWeeks(v.Text, false); ok {
		if p.Weeks == 0 {
			p.Weeks = weeks
		}
		detail = true
	}
	if m := trimesterPattern.FindString(v.Text); m != "" {
		if t, ok := vocab.Trimesters.First(m, nil); ok && p.Trimester == model.TrimesterUnspecified {
			p.Trimester = t
		}
		detail = true
	}
	ctx.Pregnancy = &p
	return ctx, v.asserts(detail)
}

func setTrimester(ctx model.Context, v value) (model.Context, bool) {
	t, ok := vocab.Trimesters.First(v.Text, v.Match)
	if !ok {
		return ctx, false
	}
	p := ctx.Pregnancy.Copy()
	if p.Trimester == model.TrimesterUnspecified {
		p.Trimester = t
	}
	ctx.Pregnancy = &p
	return ctx, true
}

func setGestationWeeks(ctx model.Context, v value) (model.Context, bool) {
	weeks, ok := parseWeeks(v.Text, true)
	if !ok {
		return ctx, false
	}
	p := ctx.Pregnancy.Copy()
	if p.Weeks == 0 {
		p.Weeks = weeks
	}
	ctx.Pregnancy = &p
	return ctx, true
}

func setGDM(ctx model.Context, v value) (model.Context, bool) {
	control, detail := vocab.GDMControls.First(v.Text, v.Match)
	if !detail {
		control = model.GDMUnspecified
	}
	p := ctx.Pregnancy.Copy()
	if p.GDM == model.GDMNone || p.GDM == model.GDMUnspecified {
		p.GDM = control
	}
	ctx.Pregnancy = &p
	return ctx, v.asserts(detail)
}

func setPreeclampsia(ctx model.Context, v value) (model.Context, bool) {
	p := ctx.Pregnancy.Copy()
	p.Preeclampsia = true
	detail := v.any(vocab.SeverePreeclampsiaCues)
	if detail {
		p.Severe = true
	}
	ctx.Pregnancy = &p
	return ctx, v.asserts(detail)
}

func setGestationalHTN(ctx model.Context, v value) (model.Context, bool) {
	p := ctx.Pregnancy.Copy()
	p.GestationalHTN = true
	ctx.Pregnancy = &p
	return ctx, v.asserts(false)
}

// Patient and encounter

func setSex(ctx model.Context, v value) (model.Context, bool) {
	sex, ok := vocab.Sexes.First(v.Text, v.Match)
	if !ok {
		return ctx, false
	}
	p := ctx.Patient.Copy()
	if p.Sex == model.SexUnspecified {
		p.Sex = sex
	}
	ctx.Patient = &p
	return ctx, true
}

// classifyReason maps reason wording to an administrative kind or, failing
// that, to the clinical family it names.
func classifyReason(v value) (model.Reason, bool) {
	if kind, ok := vocab.ReasonValues[v.Text]; ok {
		return model.Reason{Kind: kind}, true
	}
	if kind, ok := vocab.Reasons.First(v.Text, v.Match); ok {
		return model.Reason{Kind: kind}, true
	}
	if family, ok := vocab.ClinicalReasons.First(v.Text, v.Match); ok {
		return model.Reason{Kind: model.ReasonClinical, Family: family}, true
	}
	return model.Reason{}, false
}

func setAdmissionReason(ctx model.Context, v value) (model.Context, bool) {
	reason, ok := classifyReason(v)
	if !ok {
		return ctx, false
	}
	if ctx.Encounter.HasReason(reason.Kind, reason.Family) {
		return ctx, true
	}
	reason.Text = v.Text
	reason.Line = v.Line
	e := ctx.Encounter.Copy()
	e.Reasons = append(e.Reasons, reason)
	ctx.Encounter = &e
	return ctx, true
}
