package domain

const (
	TrustScoreMin     = 0
	TrustScoreMax     = 100
	TrustScoreDefault = 50

	// highReliabilityThreshold gates automatic publication for plain students.
	highReliabilityThreshold = 80
)

// TrustScore is a bounded reputation value. Every constructed or adjusted value
// is guaranteed to be within [TrustScoreMin, TrustScoreMax].
type TrustScore int

// NewTrustScore builds a score from a raw value, e.g. a row loaded from storage.
// A value outside the range is a data corruption signal, never silently clamped.
func NewTrustScore(value int) (TrustScore, error) {
	if value < TrustScoreMin || value > TrustScoreMax {
		return 0, ErrTrustScoreOutOfRange
	}
	return TrustScore(value), nil
}

func (s TrustScore) Value() int { return int(s) }

func (s TrustScore) IsHighReliability() bool { return int(s) >= highReliabilityThreshold }

// Adjust applies an impact delta and clamps the result. Pure and total: callers
// handle the surrounding persistence failure separately.
func (s TrustScore) Adjust(impact TrustImpact) TrustScore {
	v := int(s) + impact.Delta()
	if v < TrustScoreMin {
		v = TrustScoreMin
	}
	if v > TrustScoreMax {
		v = TrustScoreMax
	}
	return TrustScore(v)
}

type TrustImpact string

const (
	TrustImpactPositiveValidation    TrustImpact = "positive_validation"
	TrustImpactOfficialPostPublished TrustImpact = "official_post_published"
	TrustImpactReportConfirmed       TrustImpact = "report_confirmed"
	TrustImpactFakeNewsPublished     TrustImpact = "fake_news_published"
)

// trustDeltas keeps the reputation policy declarative and independently
// testable from the workflows that invoke it.
var trustDeltas = map[TrustImpact]int{
	TrustImpactPositiveValidation:    5,
	TrustImpactOfficialPostPublished: 10,
	TrustImpactReportConfirmed:       -20,
	TrustImpactFakeNewsPublished:     -50,
}

func (i TrustImpact) Delta() int { return trustDeltas[i] }

// ImpactForReportReason maps a confirmed report reason to the penalty applied
// to the post's author. FAKE_NEWS carries the heavy sanction; every other
// reason, harassment included, maps to the standard one.
func ImpactForReportReason(reason ReportReason) TrustImpact {
	if reason == ReportReasonFakeNews {
		return TrustImpactFakeNewsPublished
	}
	return TrustImpactReportConfirmed
}
