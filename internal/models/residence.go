package models

import (
	"encoding/json"
	"time"

	"apartment-backend/internal/timeutil"
)

// ResidenceKind separates the temporary-residence log from the temporary-absence log.
type ResidenceKind string

const (
	TemporaryResidence ResidenceKind = "tamtru"
	TemporaryAbsence   ResidenceKind = "tamvang"
)

// ResidenceRecord is an entry in either log. Detail is the reason for a
// temporary residence, or the destination for a temporary absence.
type ResidenceRecord struct {
	Kind       ResidenceKind
	ID         string
	NationalID string
	Detail     string
	From       time.Time
	To         time.Time
}

// MarshalJSON keeps the field names each log has always used.
func (r ResidenceRecord) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"soCMND_CCCD": r.NationalID,
		"tuNgay":      r.From.Format(timeutil.DateLayout),
		"denNgay":     r.To.Format(timeutil.DateLayout),
	}
	if r.Kind == TemporaryAbsence {
		out["maTamVang"] = r.ID
		out["noiTamTru"] = r.Detail
	} else {
		out["maTamTru"] = r.ID
		out["lyDo"] = r.Detail
	}
	return json.Marshal(out)
}

// CreateResidenceRequest accepts the body of either log; Kind picks the fields.
type CreateResidenceRequest struct {
	MaTamTru    string `json:"maTamTru"`
	MaTamVang   string `json:"maTamVang"`
	SoCMND_CCCD string `json:"soCMND_CCCD"`
	LyDo        string `json:"lyDo"`
	NoiTamTru   string `json:"noiTamTru"`
	TuNgay      string `json:"tuNgay"`
	DenNgay     string `json:"denNgay"`
}

// ID returns the record key for kind
func (r *CreateResidenceRequest) ID(kind ResidenceKind) string {
	if kind == TemporaryAbsence {
		return r.MaTamVang
	}
	return r.MaTamTru
}

// Detail returns the reason or destination for kind
func (r *CreateResidenceRequest) Detail(kind ResidenceKind) string {
	if kind == TemporaryAbsence {
		return r.NoiTamTru
	}
	return r.LyDo
}
