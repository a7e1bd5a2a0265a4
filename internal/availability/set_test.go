package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func record(date, time string) BookedSlotRecord {
	return BookedSlotRecord{Experience: BookedSlot{Date: date, Time: time}}
}

func TestBuild_EmptyInput(t *testing.T) {
	for _, records := range [][]BookedSlotRecord{nil, {}} {
		set := Build(records)
		assert.Equal(t, 0, set.Len())
		assert.False(t, set.Has(Slot{Date: "Oct 22", Time: "07:00 am"}))
	}
}

func TestSet_ZeroValueIsEmpty(t *testing.T) {
	var set Set
	assert.False(t, set.Has(Slot{Date: "Oct 22", Time: "07:00 am"}))
	assert.Equal(t, 0, set.Len())
}

func TestBuild_Membership(t *testing.T) {
	set := Build([]BookedSlotRecord{
		record("Oct 22", "07:00 am"),
		record("Oct 23", "11:00 am"),
		record("Oct 22", "07:00 am"),
	})

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Has(Slot{Date: "Oct 22", Time: "07:00 am"}))
	assert.True(t, set.Has(Slot{Date: "Oct 23", Time: "11:00 am"}))
	assert.False(t, set.Has(Slot{Date: "Oct 23", Time: "07:00 am"}))
	assert.False(t, set.Has(Slot{Date: "Oct 22", Time: "11:00 am"}))
}

func TestBuild_KeysAreInjective(t *testing.T) {
	// These pairs collapse to "a-b-c" under a plain "-" separator.
	set := Build([]BookedSlotRecord{record("a-b", "c")})

	assert.True(t, set.Has(Slot{Date: "a-b", Time: "c"}))
	assert.False(t, set.Has(Slot{Date: "a", Time: "b-c"}))
	assert.NotEqual(t, Slot{Date: "a-b", Time: "c"}.Key(), Slot{Date: "a", Time: "b-c"}.Key())
}

func TestBuild_SkipsIncompleteRecords(t *testing.T) {
	set := Build([]BookedSlotRecord{record("", "07:00 am"), record("Oct 22", "")})

	assert.Equal(t, 0, set.Len())
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	assert.Len(t, catalog.Dates, 5)
	assert.True(t, catalog.HasDate("Oct 24"))
	assert.False(t, catalog.HasDate("Nov 1"))

	slot, ok := catalog.TimeSlot("1:00 pm")
	assert.True(t, ok)
	assert.True(t, slot.SoldOut())

	slot, ok = catalog.TimeSlot("09:00 am")
	assert.True(t, ok)
	assert.False(t, slot.SoldOut())
	assert.Equal(t, "2 left", slot.Left)

	_, ok = catalog.TimeSlot("3:00 pm")
	assert.False(t, ok)
}
