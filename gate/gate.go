// Package gate implements the attention gate: the pure scoring function that
// turns a proposal's raw evidence into the gated score used for competition.
//
// The gated score is
//
//	evidence*WE + salience*WS*salienceGain + urgency*WU*urgencyGain
//
// multiplied by the focus bias when the proposal's payload names the current
// focus concept. The gains derive from the drive vector: curiosity and boredom
// amplify salience, pain and confusion amplify urgency. With a nil drive
// vector (first cycle) both gains are 1.0 and no bias applies.
//
// The function has no hidden state, so competition ordering is deterministic
// for identical inputs.
package gate

import "github.com/cognisys/mindspace/core"

// Weights are the base multipliers for the three proposal subscores.
type Weights struct {
	Evidence float64 `yaml:"evidence"`
	Salience float64 `yaml:"salience"`
	Urgency  float64 `yaml:"urgency"`
}

// NeutralWeights returns all-1.0 weights, the first-cycle fallback.
func NeutralWeights() Weights {
	return Weights{Evidence: 1, Salience: 1, Urgency: 1}
}

// Params bundles the policy constants the gate needs beyond the per-cycle
// drive snapshot.
type Params struct {
	Weights Weights

	// FocusBias multiplies the score of proposals whose payload matches the
	// current focus concept. 1.0 disables the bias.
	FocusBias float64
}

// Score computes the gated score for one proposal. drives may be nil, in
// which case neutral gains apply. focus may be empty, disabling the bias.
func Score(p core.Proposal, drives *core.DriveVector, focus string, params Params) float64 {
	salienceGain, urgencyGain := gains(drives)

	score := p.Evidence*params.Weights.Evidence +
		p.Salience*params.Weights.Salience*salienceGain +
		p.Urgency*params.Weights.Urgency*urgencyGain

	// A nil drive vector means the first neutral cycle: no gains, no bias.
	if drives != nil && focus != "" && params.FocusBias > 0 {
		if concept, ok := core.ProposalConcept(p); ok && concept == focus {
			score *= params.FocusBias
		}
	}
	return score
}

// gains derives the salience and urgency amplifiers from the drive vector.
// Each gain is linear in the mean of its drive pair, spanning [1.0, 2.0] for
// drives in [0, 1].
func gains(drives *core.DriveVector) (salienceGain, urgencyGain float64) {
	if drives == nil {
		return 1, 1
	}
	salienceGain = 1 + (drives.Curiosity+drives.Boredom)/2
	urgencyGain = 1 + (drives.Pain+drives.Confusion)/2
	return salienceGain, urgencyGain
}
