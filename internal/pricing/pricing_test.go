package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mwn/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestQuote_DetoxPackageScenario(t *testing.T) {
	// 8 detox sessions at 75.00, 15% package discount, platinum member, 8% tax.
	b, err := Quote(dec("75"), 8, dec("0.15"), domain.MembershipPlatinum, domain.WellnessTaxRate)
	require.NoError(t, err)

	r := b.Rounded()
	assert.True(t, r.Gross.Equal(dec("600.00")), "gross: %s", r.Gross)
	assert.True(t, r.PackageDiscount.Equal(dec("90.00")), "package discount: %s", r.PackageDiscount)
	assert.True(t, r.MembershipDiscount.Equal(dec("76.50")), "membership discount: %s", r.MembershipDiscount)
	assert.True(t, r.Tax.Equal(dec("34.68")), "tax: %s", r.Tax)
	assert.True(t, r.Final.Equal(dec("468.18")), "final: %s", r.Final)
}

func TestQuote_ConsultationNoDiscounts(t *testing.T) {
	b, err := Quote(dec("120"), 1, decimal.Zero, domain.MembershipNone, domain.WellnessTaxRate)
	require.NoError(t, err)

	r := b.Rounded()
	assert.True(t, r.Gross.Equal(dec("120.00")))
	assert.True(t, r.PackageDiscount.IsZero())
	assert.True(t, r.MembershipDiscount.IsZero())
	assert.True(t, r.Tax.Equal(dec("9.60")))
	assert.True(t, r.Final.Equal(dec("129.60")))
}

func TestQuote_StagesCompoundSequentially(t *testing.T) {
	// The membership discount must apply to the package-discounted amount, not
	// to the gross. An additive 15%+10% rendition would discount 150 here; the
	// sequential one discounts 135.
	b, err := Quote(dec("100"), 6, dec("0.15"), domain.MembershipGold, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, b.PackageDiscount.Equal(dec("90")), "package discount: %s", b.PackageDiscount)
	assert.True(t, b.MembershipDiscount.Equal(dec("51")), "membership discount: %s", b.MembershipDiscount)
	assert.True(t, b.Final.Equal(dec("459")), "final: %s", b.Final)
}

func TestQuote_GoldFourSessionScenario(t *testing.T) {
	// 4 sessions at 85.00, 10% package discount, gold member, 8% tax.
	b, err := Quote(dec("85"), 4, dec("0.10"), domain.MembershipGold, domain.WellnessTaxRate)
	require.NoError(t, err)

	r := b.Rounded()
	assert.True(t, r.Gross.Equal(dec("340.00")))
	assert.True(t, r.PackageDiscount.Equal(dec("34.00")))
	assert.True(t, r.MembershipDiscount.Equal(dec("30.60")))
	assert.True(t, r.Tax.Equal(dec("22.03")))
	assert.True(t, r.Final.Equal(dec("297.43")))
}

func TestQuote_Deterministic(t *testing.T) {
	first, err := Quote(dec("82.37"), 7, dec("0.12"), domain.MembershipSilver, domain.WellnessTaxRate)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Quote(dec("82.37"), 7, dec("0.12"), domain.MembershipSilver, domain.WellnessTaxRate)
		require.NoError(t, err)
		assert.True(t, first.Final.Equal(again.Final))
		assert.True(t, first.Tax.Equal(again.Tax))
	}
}

func TestQuote_FullPrecisionUntilRounded(t *testing.T) {
	// 33.33 * 3 * 0.93 * 0.95 * 1.08 keeps more than two decimal places until
	// Rounded() is called.
	b, err := Quote(dec("33.33"), 3, dec("0.07"), domain.MembershipSilver, domain.WellnessTaxRate)
	require.NoError(t, err)

	assert.False(t, b.Final.Equal(b.Final.Round(2)), "intermediate result should not be pre-rounded")

	r := b.Rounded()
	assert.True(t, r.Final.Equal(b.Final.Round(2)))
}

func TestQuote_Errors(t *testing.T) {
	tests := []struct {
		name        string
		unitPrice   decimal.Decimal
		quantity    int
		packageRate decimal.Decimal
		tier        domain.MembershipTier
		taxRate     decimal.Decimal
		want        error
	}{
		{
			name:      "zero quantity",
			unitPrice: dec("50"), quantity: 0, packageRate: decimal.Zero,
			tier: domain.MembershipNone, taxRate: domain.WellnessTaxRate,
			want: domain.ErrInvalidQuantity,
		},
		{
			name:      "negative quantity",
			unitPrice: dec("50"), quantity: -3, packageRate: decimal.Zero,
			tier: domain.MembershipNone, taxRate: domain.WellnessTaxRate,
			want: domain.ErrInvalidQuantity,
		},
		{
			name:      "negative package rate",
			unitPrice: dec("50"), quantity: 1, packageRate: dec("-0.1"),
			tier: domain.MembershipNone, taxRate: domain.WellnessTaxRate,
			want: domain.ErrInvalidRate,
		},
		{
			name:      "package rate of one",
			unitPrice: dec("50"), quantity: 1, packageRate: dec("1"),
			tier: domain.MembershipNone, taxRate: domain.WellnessTaxRate,
			want: domain.ErrInvalidRate,
		},
		{
			name:      "tax rate above one",
			unitPrice: dec("50"), quantity: 1, packageRate: decimal.Zero,
			tier: domain.MembershipNone, taxRate: dec("1.5"),
			want: domain.ErrInvalidRate,
		},
		{
			name:      "unknown membership tier",
			unitPrice: dec("50"), quantity: 1, packageRate: decimal.Zero,
			tier: domain.MembershipTier("diamond"), taxRate: domain.WellnessTaxRate,
			want: domain.ErrInvalidRate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Quote(tt.unitPrice, tt.quantity, tt.packageRate, tt.tier, tt.taxRate)
			assert.Nil(t, b)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBreakdown_Reconciles(t *testing.T) {
	b, err := Quote(dec("60"), 10, dec("0.10"), domain.MembershipGold, domain.WellnessTaxRate)
	require.NoError(t, err)

	// gross - discounts + tax == final, at full precision.
	recomputed := b.Gross.Sub(b.PackageDiscount).Sub(b.MembershipDiscount).Add(b.Tax)
	assert.True(t, recomputed.Equal(b.Final))
}
