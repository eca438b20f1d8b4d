package stream

import (
	"math/big"

	tide "github.com/iov-one/tide"
	"github.com/iov-one/tide/decimal"
	"github.com/iov-one/tide/errors"
)

// normDigits is the common precision both assets are scaled to before
// computing a price, so assets with different native precisions can be
// compared. The token registry caps registered decimals at this value.
const normDigits = 18

// calculateDiff returns the fraction of the remaining distribution
// window that elapsed between lastUpdated and now. It is zero before
// the window starts and once lastUpdated passed the window end. Both
// boundaries are clamped to the window, so irregular call timing cannot
// leak time from outside the window into the ratio.
//
// The ratio is taken against the remaining window, not the full one.
// Applying it to the remaining pot makes the drawdown compound instead
// of linear, which is what keeps repeated syncs at arbitrary moments
// equivalent to a single sync at the last of those moments.
func calculateDiff(now, streamStart, streamEnd, lastUpdated tide.UnixTime) (decimal.Decimal, error) {
	if now < streamStart || lastUpdated >= streamEnd {
		return decimal.Decimal{}, nil
	}
	if lastUpdated < streamStart {
		lastUpdated = streamStart
	}
	if now > streamEnd {
		now = streamEnd
	}
	num := int64(now - lastUpdated)
	den := int64(streamEnd - lastUpdated)
	if num <= 0 || den <= 0 {
		return decimal.Decimal{}, nil
	}
	return decimal.FromRatio(uint64(num), uint64(den))
}

// syncStream advances the global distribution state to the given
// moment. It is idempotent, calling it twice at the same now leaves the
// state unchanged the second time. Terminal streams are never touched.
func syncStream(s *Stream, now tide.UnixTime) error {
	if s.Status.IsTerminal() {
		return nil
	}
	diff, err := calculateDiff(now, s.StreamStart, s.StreamEnd, s.LastUpdated)
	if err != nil {
		return errors.Wrap(err, "diff")
	}
	if s.Shares == 0 || diff.IsZero() {
		s.LastUpdated = now
		return nil
	}

	distributed, err := diff.Scale(uint64(s.OutRemaining))
	if err != nil {
		return errors.Wrap(err, "distribution balance")
	}
	spent, err := diff.Scale(uint64(s.InSupply))
	if err != nil {
		return errors.Wrap(err, "spent")
	}
	if int64(spent) > s.InSupply {
		return errors.Wrapf(errors.ErrUnderflow, "spent %d exceeds supply %d", spent, s.InSupply)
	}
	s.SpentIn += int64(spent)
	s.InSupply -= int64(spent)

	if distributed > 0 {
		s.OutRemaining -= int64(distributed)
		delta, err := decimal.FromRatio(distributed, uint64(s.Shares))
		if err != nil {
			return errors.Wrap(err, "index delta")
		}
		if s.DistIndex, err = s.DistIndex.Add(delta); err != nil {
			return errors.Wrap(err, "index")
		}
		price, err := streamedPrice(spent, distributed, s.InDecimals, s.OutDecimals)
		if err != nil {
			return errors.Wrap(err, "price")
		}
		s.StreamedPrice = price
	}
	s.LastUpdated = now
	return nil
}

// streamedPrice returns spent/distributed with both amounts normalized
// to a common 18 digit precision using each asset's native decimal
// count. Comparing the raw integers of assets with different precisions
// would silently misprice the stream. All price call sites must go
// through this helper so rounding cannot diverge between them.
func streamedPrice(spent, distributed uint64, inDecimals, outDecimals uint32) (decimal.Decimal, error) {
	if distributed == 0 {
		return decimal.Decimal{}, errors.Wrap(errors.ErrDivision, "nothing distributed")
	}
	if inDecimals > normDigits || outDecimals > normDigits {
		return decimal.Decimal{}, errors.Wrap(errors.ErrHuman, "decimals exceed normalization scale")
	}
	// The normalized amounts overflow uint64 for most decimal counts,
	// so the ratio is computed on big integers and only the final
	// 10^-6 unit count must fit.
	num := new(big.Int).SetUint64(spent)
	num.Mul(num, pow10(normDigits-inDecimals))
	num.Mul(num, new(big.Int).SetUint64(decimal.Unit))
	den := new(big.Int).SetUint64(distributed)
	den.Mul(den, pow10(normDigits-outDecimals))
	num.Quo(num, den)
	if !num.IsUint64() {
		return decimal.Decimal{}, errors.Wrap(errors.ErrOverflow, "price")
	}
	return decimal.FromUnits(num.Uint64()), nil
}

func pow10(n uint32) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// syncPosition reconciles a position against the current global state.
// The stream must already be synced to now. New earnings since the last
// reconciliation are shares times the index delta, with the sub-unit
// fraction carried in PendingReward.
func syncPosition(p *Position, s *Stream, now tide.UnixTime) error {
	indexDiff, err := s.DistIndex.Subtract(p.Index)
	if err != nil {
		return errors.Wrapf(errors.ErrHuman, "distribution index regressed: %s < %s", s.DistIndex, p.Index)
	}
	if p.Shares == 0 {
		p.Index = s.DistIndex
		p.LastUpdateTime = now
		return nil
	}

	whole, rest, err := indexDiff.ScaleSplit(uint64(p.Shares))
	if err != nil {
		return errors.Wrap(err, "earned")
	}
	rest, err = rest.Add(p.PendingReward)
	if err != nil {
		return errors.Wrap(err, "carry")
	}
	extra, rest := rest.Split()
	p.Purchased += int64(whole + extra)
	p.PendingReward = rest

	inRemaining, err := decimal.MulQuo(uint64(s.InSupply), uint64(p.Shares), uint64(s.Shares))
	if err != nil {
		return errors.Wrap(err, "in remaining")
	}
	if int64(inRemaining) > p.InBalance {
		return errors.Wrapf(errors.ErrHuman, "position balance %d below its supply cut %d", p.InBalance, inRemaining)
	}
	p.SpentIn += p.InBalance - int64(inRemaining)
	p.InBalance = int64(inRemaining)

	p.Index = s.DistIndex
	p.LastUpdateTime = now
	return nil
}

// computeShares returns the share count corresponding to amountIn at
// the current supply to share ratio. The first deposit bootstraps the
// ratio at one share per unit. Deposits round down so a participant is
// never over credited, withdrawal burns round up so the pool is never
// under debited.
func computeShares(amountIn int64, roundUp bool, inSupply, totalShares int64) (int64, error) {
	if totalShares == 0 || amountIn == 0 {
		return amountIn, nil
	}
	var (
		shares uint64
		err    error
	)
	if roundUp {
		shares, err = decimal.MulQuoCeil(uint64(totalShares), uint64(amountIn), uint64(inSupply))
	} else {
		shares, err = decimal.MulQuo(uint64(totalShares), uint64(amountIn), uint64(inSupply))
	}
	if err != nil {
		return 0, errors.Wrap(err, "shares")
	}
	return int64(shares), nil
}

// settleExit splits a spent input amount into the protocol fee and the
// remainder. A ratio above one is rejected at configuration time and is
// an invariant violation here.
func settleExit(spentIn int64, exitFeeRatio decimal.Decimal) (net, fee int64, err error) {
	f, err := exitFeeRatio.Scale(uint64(spentIn))
	if err != nil {
		return 0, 0, errors.Wrap(err, "fee")
	}
	if int64(f) > spentIn {
		return 0, 0, errors.Wrapf(errors.ErrUnderflow, "fee %d exceeds spent %d", f, spentIn)
	}
	return spentIn - int64(f), int64(f), nil
}
