package scenario

import (
	"github.com/mgerber/venue-forecast/internal/engine"
)

// DefaultInputs returns the documented default value for every input
// field. These are the figures a freshly created scenario starts from.
func DefaultInputs() engine.Inputs {
	return engine.Inputs{
		Profitraining: 700,

		TicketPrice:               15,
		TicketsPerWeek:            60,
		GastronomyProfitPerTicket: 2.5,

		ShowsPerWeek:     2,
		GemaFeePerShow:   45,
		KvrFeePerShow:    25,
		ArtistFeePerShow: 250,

		Course1PricePerParticipant: 20,
		Course1Participants:        12,
		Course1PerWeek:             2,
		Course1TrainerCosts:        50,

		Course2PricePerParticipant: 25,
		Course2Participants:        10,
		Course2PerWeek:             1,
		Course2TrainerCosts:        50,

		Course3PricePerParticipant: 18,
		Course3Participants:        15,
		Course3PerWeek:             1,
		Course3TrainerCosts:        45,

		WorkshopProfitPerParticipant: 30,
		WorkshopParticipants:         10,
		WorkshopsPerMonth:            2,

		RentalsPerWeek: 1,
		RentalPrice:    150,

		Rent:         4500,
		Salaries:     12257.05,
		Marketing:    800,
		Technology:   350,
		HeatingCosts: defaultHeatingCosts,
		OtherCosts:   500,

		WeeklyReserves: defaultWeeklyReserves,
	}
}

// Defaults for fields added after the initial schema; the migration steps
// backfill these into older records.
const (
	defaultHeatingCosts   = 600
	defaultWeeklyReserves = 200
)

// EmptyInputs returns inputs with every field explicitly at zero. Each
// field is enumerated so that adding a field to Inputs forces a decision
// here rather than silently inheriting a default.
func EmptyInputs() engine.Inputs {
	return engine.Inputs{
		Profitraining: 0,

		TicketPrice:               0,
		TicketsPerWeek:            0,
		GastronomyProfitPerTicket: 0,

		ShowsPerWeek:     0,
		GemaFeePerShow:   0,
		KvrFeePerShow:    0,
		ArtistFeePerShow: 0,

		Course1PricePerParticipant: 0,
		Course1Participants:        0,
		Course1PerWeek:             0,
		Course1TrainerCosts:        0,

		Course2PricePerParticipant: 0,
		Course2Participants:        0,
		Course2PerWeek:             0,
		Course2TrainerCosts:        0,

		Course3PricePerParticipant: 0,
		Course3Participants:        0,
		Course3PerWeek:             0,
		Course3TrainerCosts:        0,

		WorkshopProfitPerParticipant: 0,
		WorkshopParticipants:         0,
		WorkshopsPerMonth:            0,

		RentalsPerWeek: 0,
		RentalPrice:    0,

		Rent:         0,
		Salaries:     0,
		Marketing:    0,
		Technology:   0,
		HeatingCosts: 0,
		OtherCosts:   0,

		WeeklyReserves: 0,
	}
}
