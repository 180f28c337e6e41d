package timeparse

import (
	"math"
	"strings"
	"time"

	"github.com/ridelens/ridelens/pkg/util"
)

// enum of timestamp representation kind, chosen by magnitude/format sniffing
type Kind uint8

const (
	Missing Kind = iota
	EpochSeconds
	EpochMillis
	EpochMicros
	Iso8601
	Unparseable
)

func (k Kind) String() string {
	switch k {
	case Missing:
		return "missing"
	case EpochSeconds:
		return "epoch_seconds"
	case EpochMillis:
		return "epoch_millis"
	case EpochMicros:
		return "epoch_micros"
	case Iso8601:
		return "iso8601"
	default:
		return "unparseable"
	}
}

// numeric magnitude windows. microseconds sit in [1e15,1e16); the secondary
// check splits millis from seconds at 1e11 (ms since 1973-03, s until year
// 5138), so every epoch between those bounds classifies unambiguously.
const (
	microsLowerBound  = 1e15
	microsUpperBound  = 1e16
	millisLowerBound  = 1e11
	secondsLowerBound = 1e8
)

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// Observer receives every parse outcome. parse tracing goes through this hook
// only, the package itself never logs.
type Observer func(raw string, kind Kind, epochMs int64, err error)

type Normalizer struct {
	observer Observer
}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

func NewNormalizerWithObserver(observer Observer) *Normalizer {
	return &Normalizer{
		observer: observer,
	}
}

// Parse. normalize a raw timestamp representation to canonical epoch
// milliseconds. fails with a util.ErrInvalidTimestamp-coded error for
// missing/unparseable input and never substitutes wall-clock time — ordering
// fallbacks are the caller's decision.
func (n *Normalizer) Parse(raw string) (int64, error) {
	epochMs, kind, err := normalize(raw)
	if n.observer != nil {
		n.observer(raw, kind, epochMs, err)
	}
	return epochMs, err
}

// Classify. the representation kind Parse would pick, without the observer.
func (n *Normalizer) Classify(raw string) Kind {
	_, kind, _ := normalize(raw)
	return kind
}

var defaultNormalizer = NewNormalizer()

func Parse(raw string) (int64, error) {
	return defaultNormalizer.Parse(raw)
}

func Classify(raw string) Kind {
	return defaultNormalizer.Classify(raw)
}

// ParseNumeric. normalize an already-numeric epoch value with the same
// magnitude sniffing Parse applies to numeric strings.
func ParseNumeric(value float64) (int64, error) {
	epochMs, _, err := sniffMagnitude(value)
	return epochMs, err
}

// Difference returns (t2 - t1) in seconds, signed. inputs are epoch ms.
func Difference(t1, t2 int64) float64 {
	return float64(t2-t1) / 1000.0
}

func normalize(raw string) (int64, Kind, error) {
	trimmed := strings.TrimSpace(raw)

	if isMissingSentinel(trimmed) {
		return 0, Missing, util.WrapErrorf(nil, util.ErrInvalidTimestamp,
			"timestamp is missing")
	}

	if value, err := util.StringToFloat64(trimmed); err == nil {
		epochMs, kind, err := sniffMagnitude(value)
		if err != nil {
			return 0, kind, util.WrapErrorf(nil, util.ErrInvalidTimestamp,
				"numeric timestamp %q has no plausible epoch magnitude", raw)
		}
		return epochMs, kind, nil
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UnixMilli(), Iso8601, nil
		}
	}

	return 0, Unparseable, util.WrapErrorf(nil, util.ErrInvalidTimestamp,
		"cannot parse timestamp %q", raw)
}

func sniffMagnitude(value float64) (int64, Kind, error) {
	switch {
	case value >= microsLowerBound && value < microsUpperBound:
		return int64(math.Round(value / 1000.0)), EpochMicros, nil
	case value >= millisLowerBound && value < microsLowerBound:
		return int64(math.Round(value)), EpochMillis, nil
	case value >= secondsLowerBound && value < millisLowerBound:
		return int64(math.Round(value * 1000.0)), EpochSeconds, nil
	default:
		return 0, Unparseable, util.WrapErrorf(nil, util.ErrInvalidTimestamp,
			"numeric value %f has no plausible epoch magnitude", value)
	}
}

func isMissingSentinel(trimmed string) bool {
	switch strings.ToLower(trimmed) {
	case "", "-", "null", "none", "nan":
		return true
	default:
		return false
	}
}
