package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billsplit/internal/models"
)

var epsilon = decimal.New(1, -12)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertAmount checks exact decimal equality.
func assertAmount(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), "%s = %s, want %s", field, got, want)
}

// assertClose tolerates the precision limit of non-terminating divisions.
func assertClose(t *testing.T, want, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, got.Sub(want).Abs().LessThan(epsilon), "%s = %s, want ~%s", field, got, want)
}

var (
	alice = models.Participant{ID: "a", Name: "Alice"}
	bob   = models.Participant{ID: "b", Name: "Bob"}
	carol = models.Participant{ID: "c", Name: "Carol"}
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name         string
		participants []models.Participant
		items        []models.LineItem
		tax          string
		tip          string
		validateFunc func(t *testing.T, records []SettlementRecord)
	}{
		{
			name:         "shared lunch and solo coffee with tax and tip",
			participants: []models.Participant{alice, bob},
			items: []models.LineItem{
				{ID: "i1", Name: "Lunch", Price: d("30"), AssignedTo: []string{"a", "b"}},
				{ID: "i2", Name: "Coffee", Price: d("10"), AssignedTo: []string{"a"}},
			},
			tax: "4",
			tip: "6",
			validateFunc: func(t *testing.T, records []SettlementRecord) {
				// Alice: 15 + 10 = 25, proportion 0.625 -> tax 2.5, tip 3.75
				// Bob: 15, proportion 0.375 -> tax 1.5, tip 2.25
				require.Len(t, records, 2)
				a, b := records[0], records[1]

				assert.Equal(t, "a", a.ParticipantID)
				assert.Equal(t, "Alice", a.Name)
				assertAmount(t, "25", a.Subtotal, "Alice subtotal")
				assertAmount(t, "2.5", a.TaxShare, "Alice tax")
				assertAmount(t, "3.75", a.TipShare, "Alice tip")
				assertAmount(t, "31.25", a.Total, "Alice total")

				assert.Equal(t, "b", b.ParticipantID)
				assertAmount(t, "15", b.Subtotal, "Bob subtotal")
				assertAmount(t, "1.5", b.TaxShare, "Bob tax")
				assertAmount(t, "2.25", b.TipShare, "Bob tip")
				assertAmount(t, "18.75", b.Total, "Bob total")

				assertAmount(t, "50", a.Total.Add(b.Total), "sum of totals")

				require.Len(t, a.AssignedItems, 2)
				assert.Equal(t, "Lunch", a.AssignedItems[0].Name)
				assert.Equal(t, "Coffee", a.AssignedItems[1].Name)
				require.Len(t, b.AssignedItems, 1)
				assert.Equal(t, "Lunch", b.AssignedItems[0].Name)
			},
		},
		{
			name:         "unassigned item is lost to no one",
			participants: []models.Participant{alice},
			items: []models.LineItem{
				{ID: "i1", Name: "Snack", Price: d("12"), AssignedTo: []string{}},
			},
			tax: "0",
			tip: "0",
			validateFunc: func(t *testing.T, records []SettlementRecord) {
				require.Len(t, records, 1)
				assertAmount(t, "0", records[0].Subtotal, "subtotal")
				assertAmount(t, "0", records[0].Total, "total")
				assert.Empty(t, records[0].AssignedItems)
			},
		},
		{
			name:         "unassigned item still dilutes tax and tip",
			participants: []models.Participant{alice},
			items: []models.LineItem{
				{ID: "i1", Name: "Steak", Price: d("30"), AssignedTo: []string{"a"}},
				{ID: "i2", Name: "Wine", Price: d("10")},
			},
			tax: "8",
			tip: "4",
			validateFunc: func(t *testing.T, records []SettlementRecord) {
				// proportion = 30/40
				assertAmount(t, "30", records[0].Subtotal, "subtotal")
				assertAmount(t, "6", records[0].TaxShare, "tax")
				assertAmount(t, "3", records[0].TipShare, "tip")
				assertAmount(t, "39", records[0].Total, "total")
			},
		},
		{
			name:         "no participants",
			participants: nil,
			items: []models.LineItem{
				{ID: "i1", Name: "Pizza", Price: d("20"), AssignedTo: []string{"a"}},
			},
			tax: "2",
			tip: "3",
			validateFunc: func(t *testing.T, records []SettlementRecord) {
				assert.NotNil(t, records)
				assert.Empty(t, records)
			},
		},
		{
			name:         "no items gives zero everywhere",
			participants: []models.Participant{alice, bob},
			items:        nil,
			tax:          "5",
			tip:          "7",
			validateFunc: func(t *testing.T, records []SettlementRecord) {
				require.Len(t, records, 2)
				for _, r := range records {
					assertAmount(t, "0", r.Subtotal, r.Name+" subtotal")
					assertAmount(t, "0", r.TaxShare, r.Name+" tax")
					assertAmount(t, "0", r.TipShare, r.Name+" tip")
					assertAmount(t, "0", r.Total, r.Name+" total")
				}
			},
		},
		{
			name:         "all items free guards division by zero",
			participants: []models.Participant{alice, bob},
			items: []models.LineItem{
				{ID: "i1", Name: "Water", Price: d("0"), AssignedTo: []string{"a", "b"}},
			},
			tax: "5",
			tip: "7",
			validateFunc: func(t *testing.T, records []SettlementRecord) {
				for _, r := range records {
					assertAmount(t, "0", r.TaxShare, r.Name+" tax")
					assertAmount(t, "0", r.TipShare, r.Name+" tip")
					assertAmount(t, "0", r.Total, r.Name+" total")
					assert.Len(t, r.AssignedItems, 1)
				}
			},
		},
		{
			name:         "unknown assignee is ignored but still divides the price",
			participants: []models.Participant{alice},
			items: []models.LineItem{
				{ID: "i1", Name: "Nachos", Price: d("10"), AssignedTo: []string{"a", "ghost"}},
			},
			tax: "2",
			tip: "0",
			validateFunc: func(t *testing.T, records []SettlementRecord) {
				require.Len(t, records, 1)
				assertAmount(t, "5", records[0].Subtotal, "subtotal")
				assertAmount(t, "1", records[0].TaxShare, "tax")
				assertAmount(t, "6", records[0].Total, "total")
			},
		},
		{
			name:         "negative tax propagates arithmetically",
			participants: []models.Participant{alice, bob},
			items: []models.LineItem{
				{ID: "i1", Name: "Lunch", Price: d("30"), AssignedTo: []string{"a", "b"}},
				{ID: "i2", Name: "Coffee", Price: d("10"), AssignedTo: []string{"a"}},
			},
			tax: "-4",
			tip: "0",
			validateFunc: func(t *testing.T, records []SettlementRecord) {
				assertAmount(t, "-2.5", records[0].TaxShare, "Alice tax")
				assertAmount(t, "22.5", records[0].Total, "Alice total")
			},
		},
		{
			name:         "output follows participant order, not item order",
			participants: []models.Participant{carol, bob, alice},
			items: []models.LineItem{
				{ID: "i1", Name: "Tea", Price: d("3"), AssignedTo: []string{"a"}},
				{ID: "i2", Name: "Cake", Price: d("6"), AssignedTo: []string{"c"}},
			},
			tax: "0",
			tip: "0",
			validateFunc: func(t *testing.T, records []SettlementRecord) {
				require.Len(t, records, 3)
				assert.Equal(t, []string{"c", "b", "a"}, []string{
					records[0].ParticipantID, records[1].ParticipantID, records[2].ParticipantID,
				})
				assertAmount(t, "6", records[0].Total, "Carol total")
				assertAmount(t, "0", records[1].Total, "Bob total")
				assertAmount(t, "3", records[2].Total, "Alice total")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := Calculate(tt.participants, tt.items, d(tt.tax), d(tt.tip))
			tt.validateFunc(t, records)
		})
	}
}

func TestCalculate_ThreeWaySplitPrecision(t *testing.T) {
	items := []models.LineItem{
		{ID: "i1", Name: "Pizza", Price: d("10"), AssignedTo: []string{"a", "b", "c"}},
	}
	records := Calculate([]models.Participant{alice, bob, carol}, items, d("1"), d("2"))

	sum := Sum(records)
	assertClose(t, d("10"), sum.Subtotal, "sum of subtotals")
	assertClose(t, d("1"), sum.Tax, "sum of tax shares")
	assertClose(t, d("2"), sum.Tip, "sum of tip shares")
	assertClose(t, d("13"), sum.Total, "sum of totals")

	for _, r := range records {
		assert.True(t, r.Total.Equal(r.Subtotal.Add(r.TaxShare).Add(r.TipShare)),
			"%s total must equal subtotal + tax + tip exactly", r.Name)
	}
}

func TestCalculate_Properties(t *testing.T) {
	participants := []models.Participant{alice, bob, carol}
	items := []models.LineItem{
		{ID: "i1", Name: "Ramen", Price: d("14.50"), AssignedTo: []string{"a"}},
		{ID: "i2", Name: "Gyoza", Price: d("7.25"), AssignedTo: []string{"a", "b", "c"}},
		{ID: "i3", Name: "Sake", Price: d("22"), AssignedTo: []string{"b", "c"}},
		{ID: "i4", Name: "Edamame", Price: d("4.99")},
		{ID: "i5", Name: "Mochi", Price: d("6.10"), AssignedTo: []string{"c", "ghost"}},
	}

	t.Run("subtotals add up to assigned item cost", func(t *testing.T) {
		records := Calculate(participants, items, d("5.30"), d("9"))
		// Mochi is half owned by an unknown id, so only 3.05 of it lands.
		want := d("14.50").Add(d("7.25")).Add(d("22")).Add(d("3.05"))
		assertClose(t, want, Sum(records).Subtotal, "sum of subtotals")
	})

	t.Run("total is subtotal plus shares", func(t *testing.T) {
		for _, r := range Calculate(participants, items, d("5.30"), d("9")) {
			assert.True(t, r.Total.Equal(r.Subtotal.Add(r.TaxShare).Add(r.TipShare)), r.Name)
		}
	})

	t.Run("no tax and tip means total equals subtotal", func(t *testing.T) {
		for _, r := range Calculate(participants, items, decimal.Zero, decimal.Zero) {
			assert.True(t, r.Total.Equal(r.Subtotal), r.Name)
		}
	})

	t.Run("identical input gives identical output", func(t *testing.T) {
		first := Calculate(participants, items, d("5.30"), d("9"))
		second := Calculate(participants, items, d("5.30"), d("9"))
		require.Len(t, second, len(first))
		for i := range first {
			assert.True(t, first[i].Total.Equal(second[i].Total))
			assert.Equal(t, first[i].ParticipantID, second[i].ParticipantID)
		}
	})
}

func TestCalculate_ReassignmentShrinksShares(t *testing.T) {
	participants := []models.Participant{alice, bob}
	solo := []models.LineItem{
		{ID: "i1", Name: "Fries", Price: d("9"), AssignedTo: []string{"a"}},
		{ID: "i2", Name: "Soda", Price: d("3"), AssignedTo: []string{"b"}},
	}
	shared := []models.LineItem{
		{ID: "i1", Name: "Fries", Price: d("9"), AssignedTo: []string{"a", "b"}},
		{ID: "i2", Name: "Soda", Price: d("3"), AssignedTo: []string{"b"}},
	}

	before := Calculate(participants, solo, d("1.2"), d("2.4"))
	after := Calculate(participants, shared, d("1.2"), d("2.4"))

	assert.True(t, TotalItemCost(solo).Equal(TotalItemCost(shared)))
	assert.True(t, after[0].Subtotal.LessThan(before[0].Subtotal), "Alice share should drop")
	assert.True(t, after[1].Subtotal.GreaterThan(before[1].Subtotal), "Bob gains a share")
	assertAmount(t, "4.5", after[0].Subtotal, "Alice subtotal")
	assertAmount(t, "7.5", after[1].Subtotal, "Bob subtotal")
}

func TestCalculate_DoesNotAliasInput(t *testing.T) {
	items := []models.LineItem{
		{ID: "i1", Name: "Burger", Price: d("12"), AssignedTo: []string{"a", "b"}},
	}
	records := Calculate([]models.Participant{alice, bob}, items, decimal.Zero, decimal.Zero)

	records[0].AssignedItems[0].AssignedTo[0] = "mutated"
	records[0].AssignedItems[0].Name = "mutated"

	assert.Equal(t, "a", items[0].AssignedTo[0])
	assert.Equal(t, "Burger", items[0].Name)
	assert.Equal(t, "a", records[1].AssignedItems[0].AssignedTo[0])
}

func TestTotalItemCostAndUnassignedCost(t *testing.T) {
	items := []models.LineItem{
		{Name: "A", Price: d("4.10"), AssignedTo: []string{"a"}},
		{Name: "B", Price: d("2.05")},
		{Name: "C", Price: d("1"), AssignedTo: []string{}},
	}
	assertAmount(t, "7.15", TotalItemCost(items), "total item cost")
	assertAmount(t, "3.05", UnassignedCost(items), "unassigned cost")
	assertAmount(t, "0", TotalItemCost(nil), "empty total")
}
