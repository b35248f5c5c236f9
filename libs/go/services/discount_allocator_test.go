package services_test

import (
	"testing"

	"github.com/ledgerline/ledgerline-api/libs/go/services"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decs(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = dec(v)
	}
	return out
}

func assertAmounts(t *testing.T, want []string, got []decimal.Decimal) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Truef(t, dec(want[i]).Equal(got[i]), "amount[%d]: want %s, got %s", i, want[i], got[i])
	}
}

func TestDiscountAllocator_Split(t *testing.T) {
	allocator := services.NewDiscountAllocator()

	tests := []struct {
		name    string
		total   string
		weights []string
		places  int32
		want    []string
		wantErr bool
	}{
		{
			name:    "largest remainder gets the leftover cent",
			total:   "10.00",
			weights: []string{"33.33", "33.33", "33.34"},
			places:  2,
			want:    []string{"3.33", "3.33", "3.34"},
		},
		{
			name:    "equal remainders resolved by position",
			total:   "10.00",
			weights: []string{"1", "1", "1"},
			places:  2,
			want:    []string{"3.34", "3.33", "3.33"},
		},
		{
			name:    "zero decimal currency",
			total:   "100",
			weights: []string{"1", "1", "1"},
			places:  0,
			want:    []string{"34", "33", "33"},
		},
		{
			name:    "three decimal currency",
			total:   "1.000",
			weights: []string{"2", "1"},
			places:  3,
			want:    []string{"0.667", "0.333"},
		},
		{
			name:    "zero total",
			total:   "0",
			weights: []string{"5", "10"},
			places:  2,
			want:    []string{"0", "0"},
		},
		{
			name:    "zero weight line gets nothing",
			total:   "5.00",
			weights: []string{"0", "10"},
			places:  2,
			want:    []string{"0", "5.00"},
		},
		{
			name:    "total below minor unit precision",
			total:   "1.005",
			weights: []string{"1"},
			places:  2,
			wantErr: true,
		},
		{
			name:    "negative total",
			total:   "-1.00",
			weights: []string{"1"},
			places:  2,
			wantErr: true,
		},
		{
			name:    "positive total over zero weights",
			total:   "1.00",
			weights: []string{"0", "0"},
			places:  2,
			wantErr: true,
		},
		{
			name:    "no weights",
			total:   "1.00",
			places:  2,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := allocator.Split(dec(tt.total), decs(tt.weights...), tt.places)
			if tt.wantErr {
				assert.Error(t, err)
				var verr *business.ValidationError
				assert.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assertAmounts(t, tt.want, got)
		})
	}
}

func TestDiscountAllocator_SplitSumsToTotal(t *testing.T) {
	allocator := services.NewDiscountAllocator()

	weightSets := [][]string{
		{"0.01", "0.01", "0.01", "99.97"},
		{"19.99", "5.01", "0.37"},
		{"1", "2", "3", "4", "5", "6", "7"},
		{"1000000.00", "0.01"},
	}
	totals := []string{"0.01", "0.07", "1.00", "3.33", "17.50", "99.99"}

	for _, weights := range weightSets {
		for _, total := range totals {
			got, err := allocator.Split(dec(total), decs(weights...), 2)
			require.NoError(t, err)

			sum := decimal.Zero
			for _, amount := range got {
				assert.False(t, amount.IsNegative())
				assert.True(t, amount.Equal(amount.Truncate(2)), "amount %s is not in whole cents", amount)
				sum = sum.Add(amount)
			}
			assert.Truef(t, sum.Equal(dec(total)), "weights %v total %s summed to %s", weights, total, sum)
		}
	}
}

func TestDiscountAllocator_AllocateLines(t *testing.T) {
	allocator := services.NewDiscountAllocator()
	lines := []business.AllocationLineInput{
		{LineItemID: "a", Amount: dec("33.33")},
		{LineItemID: "b", Amount: dec("33.33")},
		{LineItemID: "c", Amount: dec("33.34")},
	}

	t.Run("proportional", func(t *testing.T) {
		got, err := allocator.AllocateLines(dec("10.00"), lines, business.AllocationMethodProportional, 2)
		require.NoError(t, err)
		require.Len(t, got, 3)
		for i, line := range got {
			assert.Equal(t, int32(i), line.Position)
			assert.Equal(t, lines[i].LineItemID, line.LineItemID)
		}
		assert.True(t, dec("3.34").Equal(got[2].AllocatedAmount))
	})

	t.Run("equal", func(t *testing.T) {
		got, err := allocator.AllocateLines(dec("0.02"), lines, business.AllocationMethodEqual, 2)
		require.NoError(t, err)
		assert.True(t, dec("0.01").Equal(got[0].AllocatedAmount))
		assert.True(t, dec("0.01").Equal(got[1].AllocatedAmount))
		assert.True(t, got[2].AllocatedAmount.IsZero())
	})

	t.Run("equal split larger than a line", func(t *testing.T) {
		uneven := []business.AllocationLineInput{
			{LineItemID: "small", Amount: dec("1.00")},
			{LineItemID: "large", Amount: dec("99.00")},
		}
		_, err := allocator.AllocateLines(dec("10.00"), uneven, business.AllocationMethodEqual, 2)
		var verr *business.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("total above subtotal", func(t *testing.T) {
		_, err := allocator.AllocateLines(dec("100.01"), lines, business.AllocationMethodProportional, 2)
		var verr *business.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := allocator.AllocateLines(dec("1.00"), lines, "weighted", 2)
		var verr *business.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("missing line id", func(t *testing.T) {
		_, err := allocator.AllocateLines(dec("1.00"), []business.AllocationLineInput{{Amount: dec("5")}}, business.AllocationMethodProportional, 2)
		var verr *business.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}
