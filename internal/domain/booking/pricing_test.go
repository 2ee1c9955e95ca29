package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotalWheelRemovalAndBalancing(t *testing.T) {
	quantities := map[string]int{
		"wheel-removal": 4,
		"balancing":     4,
	}

	breakdown, err := ComputeTotal(quantities, mountingTable, "r17")
	require.NoError(t, err)

	// 4 x 300 + 4 x 550
	assert.Equal(t, int64(3400), breakdown.Total)

	require.Len(t, breakdown.Lines, 2)
	assert.Equal(t, "balancing", breakdown.Lines[0].ServiceKey)
	assert.Equal(t, int64(550), breakdown.Lines[0].UnitPrice)
	assert.Equal(t, int64(2200), breakdown.Lines[0].LineTotal)
	assert.Equal(t, "wheel-removal", breakdown.Lines[1].ServiceKey)
	assert.Equal(t, int64(1200), breakdown.Lines[1].LineTotal)
}

func TestComputeTotalIsDeterministic(t *testing.T) {
	quantities := map[string]int{
		"wheel-removal": 2,
		"wheel-install": 2,
		"tire-removal":  2,
		"tire-install":  2,
		"balancing":     2,
	}

	first, err := ComputeTotal(quantities, mountingTable, "r16")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := ComputeTotal(quantities, mountingTable, "r16")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputeTotalSkipsZeroQuantities(t *testing.T) {
	quantities := map[string]int{
		"wheel-removal": 4,
		"balancing":     0,
	}

	breakdown, err := ComputeTotal(quantities, mountingTable, "r15")
	require.NoError(t, err)

	require.Len(t, breakdown.Lines, 1)
	assert.Equal(t, "wheel-removal", breakdown.Lines[0].ServiceKey)
}

func TestComputeTotalEmptySelection(t *testing.T) {
	breakdown, err := ComputeTotal(map[string]int{}, mountingTable, "r15")
	require.NoError(t, err)

	assert.Empty(t, breakdown.Lines)
	assert.Zero(t, breakdown.Total)
}

func TestComputeTotalFailsOnUnpricedService(t *testing.T) {
	quantities := map[string]int{
		"wheel-removal": 4,
		"chrome-plating": 4,
	}

	_, err := ComputeTotal(quantities, mountingTable, "r17")

	var unpriced *ErrUnpricedService
	require.ErrorAs(t, err, &unpriced)
	assert.Equal(t, []string{"chrome-plating"}, unpriced.ServiceKeys)
	assert.Equal(t, "r17", unpriced.DimensionKey)
}

func TestComputeTotalFailsOnUnknownDimension(t *testing.T) {
	quantities := map[string]int{"wheel-removal": 4}

	_, err := ComputeTotal(quantities, mountingTable, "r30")

	var unpriced *ErrUnpricedService
	require.ErrorAs(t, err, &unpriced)
	assert.Equal(t, []string{"wheel-removal"}, unpriced.ServiceKeys)
}

func TestApplyPromoCodeKnownCode(t *testing.T) {
	rate, total := ApplyPromoCode("жизнь", 3400)

	assert.Equal(t, 15, rate)
	assert.Equal(t, int64(2890), total)
}

func TestApplyPromoCodeCaseInsensitive(t *testing.T) {
	rate, total := ApplyPromoCode("  ЖИЗНЬ ", 1000)

	assert.Equal(t, 15, rate)
	assert.Equal(t, int64(850), total)
}

func TestApplyPromoCodeUnknownCode(t *testing.T) {
	rate, total := ApplyPromoCode("скидка", 3400)

	assert.Zero(t, rate)
	assert.Equal(t, int64(3400), total)
}

func TestPackageApplyIncrementsEveryConstituent(t *testing.T) {
	quantities := map[string]int{"balancing": 1}

	updated := MountingPackage.Apply(quantities, 4)

	assert.Equal(t, 4, updated["wheel-removal"])
	assert.Equal(t, 4, updated["tire-removal"])
	assert.Equal(t, 4, updated["tire-install"])
	assert.Equal(t, 5, updated["balancing"])
	assert.Equal(t, 4, updated["wheel-install"])

	// The input map is untouched
	assert.Equal(t, map[string]int{"balancing": 1}, quantities)
}

func TestPackageAppliedSelectionPricesConsistently(t *testing.T) {
	quantities := MountingPackage.Apply(map[string]int{}, 4)

	breakdown, err := ComputeTotal(quantities, mountingTable, "r17")
	require.NoError(t, err)

	require.Len(t, breakdown.Lines, len(MountingPackage.ServiceKeys))
	// 4 x (300 + 240 + 240 + 550 + 300)
	assert.Equal(t, int64(6520), breakdown.Total)
}

func TestPackageByName(t *testing.T) {
	pkg, ok := PackageByName("full-mounting")
	require.True(t, ok)
	assert.Equal(t, MountingPackage.Name, pkg.Name)

	_, ok = PackageByName("unknown")
	assert.False(t, ok)
}
