// Package pricing computes itemized invoice amounts. It is pure: no I/O, no
// shared state, deterministic for a given input.
package pricing

import (
	"github.com/shopspring/decimal"

	"mwn/internal/domain"
)

// Breakdown carries every stage of the pricing pipeline at full precision.
// The invoice display and the stored bill both need the individual stages,
// not just the total.
type Breakdown struct {
	Gross              decimal.Decimal
	PackageDiscount    decimal.Decimal
	MembershipDiscount decimal.Decimal
	Tax                decimal.Decimal
	Final              decimal.Decimal
}

// Rounded returns the breakdown with every amount rounded to 2 decimal
// places. Rounding happens here, once, at the display/storage boundary;
// intermediate stages always accumulate at full precision.
func (b Breakdown) Rounded() Breakdown {
	return Breakdown{
		Gross:              b.Gross.Round(2),
		PackageDiscount:    b.PackageDiscount.Round(2),
		MembershipDiscount: b.MembershipDiscount.Round(2),
		Tax:                b.Tax.Round(2),
		Final:              b.Final.Round(2),
	}
}

// Quote prices quantity units at unitPrice, applying the package discount to
// the gross amount, the membership discount to the already package-discounted
// amount, and the tax last. The stages compound sequentially; the order is
// load-bearing and must not be combined additively.
func Quote(unitPrice decimal.Decimal, quantity int, packageRate decimal.Decimal, tier domain.MembershipTier, taxRate decimal.Decimal) (*Breakdown, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if !validRate(packageRate) || !validRate(taxRate) {
		return nil, domain.ErrInvalidRate
	}
	membershipRate, ok := tier.DiscountRate()
	if !ok {
		return nil, domain.ErrInvalidRate
	}

	one := decimal.NewFromInt(1)

	gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	afterPackage := gross.Mul(one.Sub(packageRate))
	afterMembership := afterPackage.Mul(one.Sub(membershipRate))
	tax := afterMembership.Mul(taxRate)

	return &Breakdown{
		Gross:              gross,
		PackageDiscount:    gross.Sub(afterPackage),
		MembershipDiscount: afterPackage.Sub(afterMembership),
		Tax:                tax,
		Final:              afterMembership.Add(tax),
	}, nil
}

func validRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThan(decimal.NewFromInt(1))
}
