package model

// Copy helpers return a detached value of a leaf so handlers can modify it
// without touching the Context they received. A nil leaf yields the zero value.

func (d *Diabetes) Copy() Diabetes {
	if d == nil {
		return Diabetes{}
	}
	out := *d
	out.Complications = append([]DMComplication(nil), d.Complications...)
	return out
}

func (n *Neoplasm) Copy() Neoplasm {
	if n == nil {
		return Neoplasm{}
	}
	out := *n
	out.Metastases = append([]NeoplasmSite(nil), n.Metastases...)
	return out
}

func (e *Encounter) Copy() Encounter {
	if e == nil {
		return Encounter{}
	}
	return Encounter{Reasons: append([]Reason(nil), e.Reasons...)}
}

func (h *Hypertension) Copy() Hypertension {
	if h == nil {
		return Hypertension{}
	}
	return *h
}

func (h *HeartFailure) Copy() HeartFailure {
	if h == nil {
		return HeartFailure{}
	}
	return *h
}

func (a *AtrialFib) Copy() AtrialFib {
	if a == nil {
		return AtrialFib{}
	}
	return *a
}

func (i *Infarction) Copy() Infarction {
	if i == nil {
		return Infarction{}
	}
	return *i
}

func (k *CKD) Copy() CKD {
	if k == nil {
		return CKD{}
	}
	return *k
}

func (r *RenalStatus) Copy() RenalStatus {
	if r == nil {
		return RenalStatus{}
	}
	return *r
}

func (i *Infection) Copy() Infection {
	if i == nil {
		return Infection{}
	}
	return *i
}

func (p *Pneumonia) Copy() Pneumonia {
	if p == nil {
		return Pneumonia{}
	}
	return *p
}

func (c *COPD) Copy() COPD {
	if c == nil {
		return COPD{}
	}
	return *c
}

func (a *Asthma) Copy() Asthma {
	if a == nil {
		return Asthma{}
	}
	return *a
}

func (r *RespiratoryFailure) Copy() RespiratoryFailure {
	if r == nil {
		return RespiratoryFailure{}
	}
	return *r
}

func (u *FootUlcer) Copy() FootUlcer {
	if u == nil {
		return FootUlcer{}
	}
	return *u
}

func (p *PressureUlcer) Copy() PressureUlcer {
	if p == nil {
		return PressureUlcer{}
	}
	return *p
}

func (f *Fracture) Copy() Fracture {
	if f == nil {
		return Fracture{}
	}
	return *f
}

func (p *Pregnancy) Copy() Pregnancy {
	if p == nil {
		return Pregnancy{}
	}
	return *p
}

func (p *Patient) Copy() Patient {
	if p == nil {
		return Patient{}
	}
	return *p
}

func (m *Medications) Copy() Medications {
	if m == nil {
		return Medications{}
	}
	return *m
}
