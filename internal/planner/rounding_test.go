package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxFill(t *testing.T) {
	assert.Equal(t, 30.0, boxFill(30, 10))
	assert.Equal(t, 20.0, boxFill(25, 10), "ties go to even")
	assert.Equal(t, 40.0, boxFill(35, 10), "ties go to even")
	assert.Equal(t, 24.0, boxFill(19, 12))
	assert.Equal(t, 33.0, boxFill(33, 0), "zero box leaves raw")
}

func TestBoxFill_Idempotent(t *testing.T) {
	for _, box := range []float64{1, 6, 12, 24, 50} {
		for k := 0; k <= 50; k++ {
			q := float64(k) * box
			assert.Equal(t, q, boxFill(q, box), "box=%v k=%d", box, k)
			assert.Equal(t, boxFill(q, box), boxFill(boxFill(q, box), box))
		}
	}
}

func TestRowOrPallet(t *testing.T) {
	rowRegime := &Snapshot{AvgDailySales: 1, PalletSize: 1000, RowSize: 100}

	tests := []struct {
		name string
		fill float64
		want float64
	}{
		{name: "remainder 0.3 rounds up", fill: 130, want: 200},
		{name: "remainder 0.29 rounds to nearest", fill: 129, want: 100},
		{name: "remainder 0.6 rounds up", fill: 160, want: 200},
		{name: "exactly one row", fill: 100, want: 100},
		{name: "half a row rounds up", fill: 50, want: 100},
		{name: "just under half a row is kept", fill: 49, want: 49},
		{name: "zero", fill: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rowOrPallet(tt.fill, rowRegime))
		})
	}

	t.Run("zero row size keeps fill", func(t *testing.T) {
		s := &Snapshot{AvgDailySales: 1, PalletSize: 1000, RowSize: 0}
		assert.Equal(t, 130.0, rowOrPallet(130, s))
	})

	t.Run("pallet regime", func(t *testing.T) {
		s := &Snapshot{AvgDailySales: 800, PalletSize: 1000, RowSize: 100}
		assert.Equal(t, 1000.0, rowOrPallet(1400, s))
		assert.Equal(t, 2000.0, rowOrPallet(2500, s), "ties go to even")
		assert.Equal(t, 2000.0, rowOrPallet(1600, s))
	})
}

func TestSnapToPallet(t *testing.T) {
	short := &Snapshot{AvgDailySales: 5, PalletSize: 100, RowSize: 25, ShelfLife: 90}
	long := &Snapshot{AvgDailySales: 5, PalletSize: 100, RowSize: 25, ShelfLife: 120}

	tests := []struct {
		name string
		s    *Snapshot
		q    float64
		want float64
	}{
		{name: "aligned", s: long, q: 300, want: 300},
		{name: "frac 0.6 snaps to pallet", s: short, q: 60, want: 100},
		{name: "frac 0.59 rounds to row", s: short, q: 59, want: 50},
		{name: "frac 0.5 above a pallet rounds half up", s: short, q: 250, want: 300},
		{name: "frac 0.5 long shelf life rounds half up", s: long, q: 50, want: 100},
		{name: "frac 0.4 above a pallet", s: long, q: 240, want: 200},
		{name: "frac 0.4 under a pallet is kept", s: long, q: 40, want: 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, snapToPallet(tt.q, tt.q, tt.s))
		})
	}

	t.Run("frac 0.5 and 0.49 under a pallet", func(t *testing.T) {
		s := &Snapshot{AvgDailySales: 5, PalletSize: 100, RowSize: 30, ShelfLife: 90}
		assert.Equal(t, 60.0, snapToPallet(50, 50, s))
		assert.Equal(t, 49.0, snapToPallet(49, 49, s))
	})

	t.Run("fast mover falls back to box fill", func(t *testing.T) {
		s := &Snapshot{AvgDailySales: 100, PalletSize: 100, RowSize: 20}
		assert.Equal(t, 130.0, snapToPallet(140, 130, s))
		assert.Equal(t, 200.0, snapToPallet(200, 130, s))
	})
}

func TestApplyPackaging(t *testing.T) {
	s := &Snapshot{AvgDailySales: 5, BoxSize: 10, PalletSize: 100, RowSize: 20}

	fill, final := applyPackaging(30, s)
	assert.Equal(t, 30.0, fill)
	assert.Equal(t, 40.0, final)

	fill, final = applyPackaging(0, s)
	assert.Zero(t, fill)
	assert.Zero(t, final)

	_, final = applyPackaging(-12, s)
	assert.Zero(t, final)
}
