package calc

import (
	"github.com/octo47/cgtcalc/log"
	"github.com/octo47/cgtcalc/util"
)

// An acquisition up to this many days after a disposal (inclusive) can be
// bed-and-breakfast matched against it.
const bedAndBreakfastWindowDays = 30

// MatchingProcessor settles pending disposals against pending
// acquisitions under the statutory rules: the same-day pass runs to
// completion before the bed-and-breakfast pass, so a same-day matched lot
// is structurally out of reach of the second rule.
type MatchingProcessor struct {
	state      *AssetState
	logger     log.Logger
	matchCount int
}

func NewMatchingProcessor(state *AssetState, logger log.Logger) *MatchingProcessor {
	return &MatchingProcessor{state: state, logger: logger}
}

func (p *MatchingProcessor) Process() error {
	p.logger.Debugf("Begin matching processor for %s.", p.state.Asset)

	if err := p.processRule(RuleSameDay); err != nil {
		return err
	}
	if err := p.processRule(RuleBedAndBreakfast); err != nil {
		return err
	}

	p.logger.Infof("Finished matching processor for %s. Matched %d and there are %d disposals left.",
		p.state.Asset, p.matchCount, len(p.state.PendingDisposals))
	return nil
}

// processRule walks both pending sequences with one cursor each. Every
// iteration either advances a cursor or removes an element, so the walk
// terminates. Cursors are not advanced after a removal: the next elements
// shift into the vacated positions.
func (p *MatchingProcessor) processRule(rule Rule) error {
	util.Assertf(rule == RuleSameDay || rule == RuleBedAndBreakfast,
		"processRule: not a matching rule: %s", rule)

	state := p.state
	acquisitionIdx := 0
	disposalIdx := 0
	for acquisitionIdx < len(state.PendingAcquisitions) && disposalIdx < len(state.PendingDisposals) {
		acquisition := state.PendingAcquisitions[acquisitionIdx]
		disposal := state.PendingDisposals[disposalIdx]

		switch rule {
		case RuleSameDay:
			if acquisition.Date.Before(disposal.Date) {
				acquisitionIdx++
				continue
			} else if disposal.Date.Before(acquisition.Date) {
				disposalIdx++
				continue
			}
		case RuleBedAndBreakfast:
			if acquisition.Date.Before(disposal.Date) {
				// The rule only reaches forward from the disposal.
				acquisitionIdx++
				continue
			} else if acquisition.Date.After(disposal.Date.AddDays(bedAndBreakfastWindowDays)) {
				disposalIdx++
				continue
			}
		}

		// If the disposal is too big we split it up
		if disposal.Quantity.GreaterThan(acquisition.Quantity) {
			remainder, err := disposal.Split(acquisition.Quantity)
			if err != nil {
				return err
			}
			state.PendingDisposals = insertDisposal(state.PendingDisposals, remainder, disposalIdx+1)
		}

		// If the acquisition is too big we split it up
		if acquisition.Quantity.GreaterThan(disposal.Quantity) {
			remainder, err := acquisition.Split(disposal.Quantity)
			if err != nil {
				return err
			}
			state.PendingAcquisitions = insertAcquisition(state.PendingAcquisitions, remainder, acquisitionIdx+1)
		}

		// Now both lots at the cursors carry the same quantity.
		match := &DisposalMatch{Rule: rule, Acquisition: acquisition, Disposal: disposal}
		p.logger.Debugf("Matched %s against %s (%s).", disposal, acquisition, rule)

		state.PendingAcquisitions = removeAcquisition(state.PendingAcquisitions, acquisitionIdx)
		state.MatchedAcquisitions = append(state.MatchedAcquisitions, acquisition)
		state.PendingDisposals = removeDisposal(state.PendingDisposals, disposalIdx)
		state.ProcessedDisposals = append(state.ProcessedDisposals, disposal)
		state.DisposalMatches = append(state.DisposalMatches, match)

		p.matchCount++
	}
	return nil
}

// Insert lot at index i and return the resulting slice
func insertAcquisition(slice []*Acquisition, a *Acquisition, i int) []*Acquisition {
	newSlice := make([]*Acquisition, 0, len(slice)+1)
	newSlice = append(newSlice, slice[:i]...)
	newSlice = append(newSlice, a)
	newSlice = append(newSlice, slice[i:]...)
	return newSlice
}

func insertDisposal(slice []*Disposal, d *Disposal, i int) []*Disposal {
	newSlice := make([]*Disposal, 0, len(slice)+1)
	newSlice = append(newSlice, slice[:i]...)
	newSlice = append(newSlice, d)
	newSlice = append(newSlice, slice[i:]...)
	return newSlice
}

func removeAcquisition(slice []*Acquisition, i int) []*Acquisition {
	return append(slice[:i], slice[i+1:]...)
}

func removeDisposal(slice []*Disposal, i int) []*Disposal {
	return append(slice[:i], slice[i+1:]...)
}
