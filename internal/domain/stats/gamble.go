package stats

// GambleEffect is a counter mutation produced by the gambling state machine.
// Profit carries the signed currency delta; Spent is the magnitude of a loss
// and is zero for gains.
type GambleEffect struct {
	Kind   string
	Spent  float64
	Profit float64
}

// GambleMachine infers gambling spend and profit for one actor from the only
// signals the host exposes: the actor's current apparatus association and the
// quantity of the wagering currency in their inventory. The baseline rolls
// forward on every observed change because no explicit bet event exists
// upstream. A gain that coincides with, but is unrelated to, the association
// (a trade completed while seated) is attributed to the apparatus; this is a
// known approximation.
type GambleMachine struct {
	engaged  bool
	kind     string
	baseline int64
}

func (m *GambleMachine) Engaged() bool { return m.engaged }
func (m *GambleMachine) Kind() string  { return m.kind }

// Observe feeds one sample. apparatusKind is the resolved apparatus kind, or
// empty when the actor has no recognized association. The returned effects
// must be applied in order.
func (m *GambleMachine) Observe(apparatusKind string, currency int64) []GambleEffect {
	if !m.engaged {
		if apparatusKind != "" {
			m.engaged = true
			m.kind = apparatusKind
			m.baseline = currency
		}
		return nil
	}

	var effects []GambleEffect
	if currency != m.baseline {
		delta := float64(currency - m.baseline)
		eff := GambleEffect{Kind: m.kind, Profit: delta}
		if delta < 0 {
			eff.Spent = -delta
		}
		effects = append(effects, eff)
		m.baseline = currency
	}

	switch {
	case apparatusKind == "":
		// One final delta was just evaluated above; clear the context.
		m.engaged = false
		m.kind = ""
		m.baseline = 0
	case apparatusKind != m.kind:
		m.kind = apparatusKind
		m.baseline = currency
	}
	return effects
}

// Reset drops the context without a final delta evaluation. Used when the
// actor disconnects and no trustworthy currency reading exists.
func (m *GambleMachine) Reset() {
	m.engaged = false
	m.kind = ""
	m.baseline = 0
}
