package catalog

import (
	"testing"
	"time"

	"github.com/mark3labs/oli/internal/booking"
	"github.com/stretchr/testify/require"
)

type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(n int) int   { return r.n % n }

func TestResolveAddress(t *testing.T) {
	t.Parallel()

	addr, ok := ResolveAddress("90210")
	require.True(t, ok)
	require.Equal(t, "Beverly Hills, CA 90210", addr.Formatted)

	addr, ok = ResolveAddress("10099")
	require.True(t, ok)
	require.Equal(t, "Your City, ST 10099", addr.Formatted)

	_, ok = ResolveAddress("99999")
	require.False(t, ok)
}

func TestPopularZipsAreSupported(t *testing.T) {
	t.Parallel()

	for _, zip := range PopularZips {
		require.True(t, IsSupported(zip), zip)
		addr, _ := ResolveAddress(zip)
		require.NotEqual(t, PlaceholderCity, addr.City, zip)
	}
}

func TestProviderIDs(t *testing.T) {
	t.Parallel()

	c := New(fixedRand{})
	var ids []string
	for _, p := range c.Providers() {
		ids = append(ids, p.ID)
	}
	require.Equal(t, []string{"sarah-johnson", "michael-chen", "emily-rodriguez", "david-kim"}, ids)

	p, ok := c.Provider("david-kim")
	require.True(t, ok)
	require.Equal(t, "Licensed Nail Technician", p.Title)
}

func TestCatalogCopies(t *testing.T) {
	t.Parallel()

	c := New(fixedRand{})
	c.Services()[0].Name = "changed"
	c.Providers()[0].Specialties[0] = "changed"

	svc, ok := c.Service("massage-60")
	require.True(t, ok)
	require.Equal(t, "60-Minute Therapeutic Massage", svc.Name)
	require.Equal(t, "Deep Tissue", c.Providers()[0].Specialties[0])

	_, ok = c.Service("haircut")
	require.False(t, ok)
}

func TestGenerateSlots(t *testing.T) {
	t.Parallel()

	providers := New(nil).Providers()

	slots := GenerateSlots("2026-03-15", fixedRand{f: 0.5, n: 1}, providers)
	require.Len(t, slots, SlotsPerDay)
	require.Equal(t, "09:00", slots[0].Time)
	require.Equal(t, "09:30", slots[1].Time)
	require.Equal(t, "18:30", slots[len(slots)-1].Time)
	for _, s := range slots {
		require.True(t, s.Available)
		require.Equal(t, "michael-chen", s.ProviderID)
	}

	// At or below the threshold a slot is taken and carries no provider.
	for _, s := range GenerateSlots("2026-03-15", fixedRand{f: 0.3}, providers) {
		require.False(t, s.Available)
		require.Empty(t, s.ProviderID)
	}
}

func TestUpcomingDates(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 12, 30, 23, 0, 0, 0, time.UTC)
	dates := UpcomingDates(now, 3)
	require.Equal(t, []string{"2026-12-31", "2027-01-01", "2027-01-02"}, dates)

	for _, d := range UpcomingDates(now, 14) {
		_, err := booking.ParseDate(d)
		require.NoError(t, err)
	}
}
