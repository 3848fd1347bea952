// Package catalog provides the static service, provider and service-area
// tables and the mocked slot availability the wizard books against.
package catalog

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gosimple/slug"
	"github.com/mark3labs/oli/internal/booking"
)

// Slot generation bounds: 09:00 through 18:30 in 30-minute steps.
const (
	firstSlotHour   = 9
	endSlotHour     = 19
	slotMinutes     = 30
	SlotsPerDay     = (endSlotHour - firstSlotHour) * 60 / slotMinutes
	unavailableOdds = 0.3
)

// Static is the in-memory catalog. It is read-only apart from the randomness
// source used for availability.
type Static struct {
	services  []booking.Service
	providers []booking.Provider
	rnd       booking.Rand
}

// New returns the default catalog drawing availability from rnd. A nil rnd
// gets a time-seeded source.
func New(rnd booking.Rand) *Static {
	if rnd == nil {
		seed := uint64(time.Now().UnixNano())
		rnd = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Static{
		services:  defaultServices(),
		providers: defaultProviders(),
		rnd:       rnd,
	}
}

// Services returns every bookable service in display order.
func (c *Static) Services() []booking.Service {
	return append([]booking.Service(nil), c.services...)
}

// Service looks a service up by ID.
func (c *Static) Service(id string) (booking.Service, bool) {
	for _, s := range c.services {
		if s.ID == id {
			return s, true
		}
	}
	return booking.Service{}, false
}

// Providers returns every provider in display order.
func (c *Static) Providers() []booking.Provider {
	out := make([]booking.Provider, len(c.providers))
	for i, p := range c.providers {
		p.Specialties = append([]string(nil), p.Specialties...)
		out[i] = p
	}
	return out
}

// Provider looks a provider up by ID.
func (c *Static) Provider(id string) (booking.Provider, bool) {
	for _, p := range c.Providers() {
		if p.ID == id {
			return p, true
		}
	}
	return booking.Provider{}, false
}

// ResolveAddress implements booking.Catalog.
func (c *Static) ResolveAddress(zip string) (booking.Address, bool) {
	return ResolveAddress(zip)
}

// Slots implements booking.Catalog. Every call draws fresh availability, so
// two queries for the same date can disagree.
func (c *Static) Slots(date string) []booking.TimeSlot {
	return GenerateSlots(date, c.rnd, c.providers)
}

// GenerateSlots builds the day's slots. Each slot is independently available
// with probability 0.7; available slots carry a randomly drawn provider ID.
// The date only labels the query; it does not influence availability.
func GenerateSlots(_ string, rnd booking.Rand, providers []booking.Provider) []booking.TimeSlot {
	slots := make([]booking.TimeSlot, 0, SlotsPerDay)
	for hour := firstSlotHour; hour < endSlotHour; hour++ {
		for minute := 0; minute < 60; minute += slotMinutes {
			slot := booking.TimeSlot{
				Time:      fmt.Sprintf("%02d:%02d", hour, minute),
				Available: rnd.Float64() > unavailableOdds,
			}
			if slot.Available && len(providers) > 0 {
				slot.ProviderID = providers[rnd.IntN(len(providers))].ID
			}
			slots = append(slots, slot)
		}
	}
	return slots
}

// UpcomingDates returns n consecutive dates starting the day after now.
func UpcomingDates(now time.Time, n int) []string {
	dates := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		dates = append(dates, now.AddDate(0, 0, i).Format(booking.DateLayout))
	}
	return dates
}

func defaultServices() []booking.Service {
	return []booking.Service{
		{
			ID:          "massage-60",
			Name:        "60-Minute Therapeutic Massage",
			Description: "A full-body therapeutic massage designed to relieve tension, improve circulation, and promote deep relaxation.",
			Duration:    60,
			PriceRange:  "$120-150",
			ImageURL:    "https://images.pexels.com/photos/3757942/pexels-photo-3757942.jpeg?auto=compress&cs=tinysrgb&w=800",
			Category:    "Massage Therapy",
		},
		{
			ID:          "massage-90",
			Name:        "90-Minute Deep Tissue Massage",
			Description: "Intensive deep tissue work targeting chronic muscle tension and specific problem areas.",
			Duration:    90,
			PriceRange:  "$180-220",
			ImageURL:    "https://images.pexels.com/photos/3997991/pexels-photo-3997991.jpeg?auto=compress&cs=tinysrgb&w=800",
			Category:    "Massage Therapy",
		},
		{
			ID:          "facial-classic",
			Name:        "Classic European Facial",
			Description: "A rejuvenating facial treatment including cleansing, exfoliation, extractions, and hydrating mask.",
			Duration:    75,
			PriceRange:  "$100-130",
			ImageURL:    "https://images.pexels.com/photos/3985360/pexels-photo-3985360.jpeg?auto=compress&cs=tinysrgb&w=800",
			Category:    "Skincare",
		},
		{
			ID:          "manicure-gel",
			Name:        "Gel Manicure",
			Description: "Long-lasting gel manicure with nail shaping, cuticle care, and professional color application.",
			Duration:    45,
			PriceRange:  "$45-65",
			ImageURL:    "https://images.pexels.com/photos/3997982/pexels-photo-3997982.jpeg?auto=compress&cs=tinysrgb&w=800",
			Category:    "Nail Care",
		},
		{
			ID:          "pedicure-spa",
			Name:        "Spa Pedicure",
			Description: "Luxurious pedicure with foot soak, exfoliation, massage, and nail treatment.",
			Duration:    60,
			PriceRange:  "$55-75",
			ImageURL:    "https://images.pexels.com/photos/3997987/pexels-photo-3997987.jpeg?auto=compress&cs=tinysrgb&w=800",
			Category:    "Nail Care",
		},
		{
			ID:          "wellness-consultation",
			Name:        "Wellness Consultation",
			Description: "Personalized wellness assessment and treatment plan development with our certified practitioners.",
			Duration:    30,
			PriceRange:  "$75-95",
			ImageURL:    "https://images.pexels.com/photos/4047186/pexels-photo-4047186.jpeg?auto=compress&cs=tinysrgb&w=800",
			Category:    "Wellness",
		},
	}
}

func defaultProviders() []booking.Provider {
	providers := []booking.Provider{
		{
			Name:        "Sarah Johnson",
			Title:       "Licensed Massage Therapist",
			Bio:         "With over 8 years of experience, Sarah specializes in therapeutic and deep tissue massage techniques.",
			ImageURL:    "https://images.pexels.com/photos/3985359/pexels-photo-3985359.jpeg?auto=compress&cs=tinysrgb&w=400",
			Rating:      4.9,
			Specialties: []string{"Deep Tissue", "Swedish", "Sports Massage"},
		},
		{
			Name:        "Michael Chen",
			Title:       "Certified Wellness Practitioner",
			Bio:         "Michael combines traditional techniques with modern wellness approaches for holistic healing.",
			ImageURL:    "https://images.pexels.com/photos/5794051/pexels-photo-5794051.jpeg?auto=compress&cs=tinysrgb&w=400",
			Rating:      4.8,
			Specialties: []string{"Therapeutic Massage", "Wellness Coaching", "Stress Relief"},
		},
		{
			Name:        "Emily Rodriguez",
			Title:       "Master Esthetician",
			Bio:         "Emily is passionate about skincare and has helped hundreds of clients achieve healthy, glowing skin.",
			ImageURL:    "https://images.pexels.com/photos/3985357/pexels-photo-3985357.jpeg?auto=compress&cs=tinysrgb&w=400",
			Rating:      4.9,
			Specialties: []string{"Facial Treatments", "Anti-Aging", "Acne Treatment"},
		},
		{
			Name:        "David Kim",
			Title:       "Licensed Nail Technician",
			Bio:         "David brings creativity and precision to nail care with 6 years of professional experience.",
			ImageURL:    "https://images.pexels.com/photos/5794059/pexels-photo-5794059.jpeg?auto=compress&cs=tinysrgb&w=400",
			Rating:      4.7,
			Specialties: []string{"Gel Manicures", "Nail Art", "Pedicures"},
		},
	}
	// IDs are the slugged names, e.g. "sarah-johnson".
	for i := range providers {
		providers[i].ID = slug.Make(providers[i].Name)
	}
	return providers
}
