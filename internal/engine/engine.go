// Package engine defines the scenario input and metric data structures and
// implements the pure calculation that derives a full set of financial
// metrics from a flat set of weekly and monthly business parameters.
package engine

import (
	"github.com/mgerber/venue-forecast/pkg/constants"
)

// Inputs holds all user-supplied business parameters for one scenario.
// Monthly figures are converted to weekly figures inside the engine using
// constants.WeeksPerMonth; no field is bounded by the data model itself.
type Inputs struct {
	// Fixed monthly income from the profi training program.
	Profitraining float64 `json:"profitraining" yaml:"profitraining"`

	// Ticket sales.
	TicketPrice               float64 `json:"ticketPrice" yaml:"ticketPrice"`
	TicketsPerWeek            float64 `json:"ticketsPerWeek" yaml:"ticketsPerWeek"`
	GastronomyProfitPerTicket float64 `json:"gastronomyProfitPerTicket" yaml:"gastronomyProfitPerTicket"`

	// Shows and the per-show fees they incur.
	ShowsPerWeek     float64 `json:"showsPerWeek" yaml:"showsPerWeek"`
	GemaFeePerShow   float64 `json:"gemaFeePerShow" yaml:"gemaFeePerShow"`
	KvrFeePerShow    float64 `json:"kvrFeePerShow" yaml:"kvrFeePerShow"`
	ArtistFeePerShow float64 `json:"artistFeePerShow" yaml:"artistFeePerShow"`

	// Three parallel course groups.
	Course1PricePerParticipant float64 `json:"course1PricePerParticipant" yaml:"course1PricePerParticipant"`
	Course1Participants        float64 `json:"course1Participants" yaml:"course1Participants"`
	Course1PerWeek             float64 `json:"course1PerWeek" yaml:"course1PerWeek"`
	Course1TrainerCosts        float64 `json:"course1TrainerCosts" yaml:"course1TrainerCosts"`

	Course2PricePerParticipant float64 `json:"course2PricePerParticipant" yaml:"course2PricePerParticipant"`
	Course2Participants        float64 `json:"course2Participants" yaml:"course2Participants"`
	Course2PerWeek             float64 `json:"course2PerWeek" yaml:"course2PerWeek"`
	Course2TrainerCosts        float64 `json:"course2TrainerCosts" yaml:"course2TrainerCosts"`

	Course3PricePerParticipant float64 `json:"course3PricePerParticipant" yaml:"course3PricePerParticipant"`
	Course3Participants        float64 `json:"course3Participants" yaml:"course3Participants"`
	Course3PerWeek             float64 `json:"course3PerWeek" yaml:"course3PerWeek"`
	Course3TrainerCosts        float64 `json:"course3TrainerCosts" yaml:"course3TrainerCosts"`

	// Workshops.
	WorkshopProfitPerParticipant float64 `json:"workshopProfitPerParticipant" yaml:"workshopProfitPerParticipant"`
	WorkshopParticipants         float64 `json:"workshopParticipants" yaml:"workshopParticipants"`
	WorkshopsPerMonth            float64 `json:"workshopsPerMonth" yaml:"workshopsPerMonth"`

	// Room rentals.
	RentalsPerWeek float64 `json:"rentalsPerWeek" yaml:"rentalsPerWeek"`
	RentalPrice    float64 `json:"rentalPrice" yaml:"rentalPrice"`

	// Monthly fixed costs.
	Rent         float64 `json:"rent" yaml:"rent"`
	Salaries     float64 `json:"salaries" yaml:"salaries"`
	Marketing    float64 `json:"marketing" yaml:"marketing"`
	Technology   float64 `json:"technology" yaml:"technology"`
	HeatingCosts float64 `json:"heatingCosts" yaml:"heatingCosts"`
	OtherCosts   float64 `json:"otherCosts" yaml:"otherCosts"`

	// Weekly cost buffer.
	WeeklyReserves float64 `json:"weeklyReserves" yaml:"weeklyReserves"`
}

// CourseGroup is the array view of one of the three parallel course groups.
type CourseGroup struct {
	PricePerParticipant float64
	Participants        float64
	PerWeek             float64
	TrainerCosts        float64
}

// Courses returns the three course groups as an array so callers can
// iterate instead of addressing numbered fields.
func (in Inputs) Courses() [3]CourseGroup {
	return [3]CourseGroup{
		{in.Course1PricePerParticipant, in.Course1Participants, in.Course1PerWeek, in.Course1TrainerCosts},
		{in.Course2PricePerParticipant, in.Course2Participants, in.Course2PerWeek, in.Course2TrainerCosts},
		{in.Course3PricePerParticipant, in.Course3Participants, in.Course3PerWeek, in.Course3TrainerCosts},
	}
}

// SetCourse writes one course group back into the numbered fields. The
// index is 0-based; out-of-range indices are ignored.
func (in *Inputs) SetCourse(i int, c CourseGroup) {
	switch i {
	case 0:
		in.Course1PricePerParticipant = c.PricePerParticipant
		in.Course1Participants = c.Participants
		in.Course1PerWeek = c.PerWeek
		in.Course1TrainerCosts = c.TrainerCosts
	case 1:
		in.Course2PricePerParticipant = c.PricePerParticipant
		in.Course2Participants = c.Participants
		in.Course2PerWeek = c.PerWeek
		in.Course2TrainerCosts = c.TrainerCosts
	case 2:
		in.Course3PricePerParticipant = c.PricePerParticipant
		in.Course3Participants = c.Participants
		in.Course3PerWeek = c.PerWeek
		in.Course3TrainerCosts = c.TrainerCosts
	}
}

// Metrics holds every derived financial figure for one scenario. All
// fields are computed by ComputeMetrics and never user-supplied. Monetary
// values are plain floating point; rounding is a presentation concern.
type Metrics struct {
	// Weekly baselines.
	BaseWeeklyRevenue      float64 `json:"baseWeeklyRevenue" yaml:"baseWeeklyRevenue"`
	BaseWeeklyRevenueGross float64 `json:"baseWeeklyRevenueGross" yaml:"baseWeeklyRevenueGross"`
	BaseWeeklyCosts        float64 `json:"baseWeeklyCosts" yaml:"baseWeeklyCosts"`

	// Per-source weekly revenue breakdown (gross, except gastronomy which
	// is already net).
	FixedIncomePerWeek       float64 `json:"fixedIncomePerWeek" yaml:"fixedIncomePerWeek"`
	TicketRevenuePerWeek     float64 `json:"ticketRevenuePerWeek" yaml:"ticketRevenuePerWeek"`
	GastronomyRevenuePerWeek float64 `json:"gastronomyRevenuePerWeek" yaml:"gastronomyRevenuePerWeek"`
	Course1RevenuePerWeek    float64 `json:"course1RevenuePerWeek" yaml:"course1RevenuePerWeek"`
	Course2RevenuePerWeek    float64 `json:"course2RevenuePerWeek" yaml:"course2RevenuePerWeek"`
	Course3RevenuePerWeek    float64 `json:"course3RevenuePerWeek" yaml:"course3RevenuePerWeek"`
	WorkshopRevenuePerWeek   float64 `json:"workshopRevenuePerWeek" yaml:"workshopRevenuePerWeek"`
	RentalRevenuePerWeek     float64 `json:"rentalRevenuePerWeek" yaml:"rentalRevenuePerWeek"`

	// Per-source weekly cost breakdown.
	MonthlyCostsPerWeek float64 `json:"monthlyCostsPerWeek" yaml:"monthlyCostsPerWeek"`
	ShowFeesPerWeek     float64 `json:"showFeesPerWeek" yaml:"showFeesPerWeek"`
	WeeklyReserves      float64 `json:"weeklyReserves" yaml:"weeklyReserves"`

	// Annual aggregates.
	TotalRevenue        float64 `json:"totalRevenue" yaml:"totalRevenue"`
	TotalRevenueGross   float64 `json:"totalRevenueGross" yaml:"totalRevenueGross"`
	TotalCosts          float64 `json:"totalCosts" yaml:"totalCosts"`
	TotalProfit         float64 `json:"totalProfit" yaml:"totalProfit"`
	TotalProfitGross    float64 `json:"totalProfitGross" yaml:"totalProfitGross"`
	ProfitMarginPercent float64 `json:"profitMarginPercent" yaml:"profitMarginPercent"`

	// Historical vs. projected split at the current-week boundary.
	HistoricalRevenue float64 `json:"historicalRevenue" yaml:"historicalRevenue"`
	HistoricalCosts   float64 `json:"historicalCosts" yaml:"historicalCosts"`
	ProjectedRevenue  float64 `json:"projectedRevenue" yaml:"projectedRevenue"`
	ProjectedCosts    float64 `json:"projectedCosts" yaml:"projectedCosts"`
	ProjectedProfit   float64 `json:"projectedProfit" yaml:"projectedProfit"`

	// VAT.
	TotalVAT  float64 `json:"totalVAT" yaml:"totalVAT"`
	WeeklyVAT float64 `json:"weeklyVAT" yaml:"weeklyVAT"`

	// Net aliases kept for callers that address the net figures by their
	// explicit names at the serialization boundary.
	TotalRevenueNet        float64 `json:"totalRevenueNet" yaml:"totalRevenueNet"`
	TotalProfitNet         float64 `json:"totalProfitNet" yaml:"totalProfitNet"`
	ProfitMarginNetPercent float64 `json:"profitMarginNetPercent" yaml:"profitMarginNetPercent"`
}

// ComputeOptions carries the optional calculation context. The zero value
// means no historical/projected split and plain 52-week annualization.
type ComputeOptions struct {
	// CurrentWeek is the calendar week in [1, 52] separating historical
	// from projected weeks. Zero disables the split.
	CurrentWeek int

	// RevenueMultipliers and CostMultipliers are per-week scaling factors.
	// Anything that is not exactly 52 entries long is treated as absent.
	RevenueMultipliers []float64
	CostMultipliers    []float64
}

// ComputeMetrics derives all metrics from the inputs using plain 52-week
// annualization and no historical/projected split.
func ComputeMetrics(in Inputs) Metrics {
	return ComputeMetricsWithOptions(in, ComputeOptions{})
}

// ComputeMetricsWithOptions derives all metrics from the inputs. It is a
// pure function: it never mutates its arguments and identical arguments
// yield identical results.
func ComputeMetricsWithOptions(in Inputs, opts ComputeOptions) Metrics {
	var m Metrics

	// Step 1: per-source weekly revenue, gross. Course revenue may go
	// negative when trainer costs exceed ticket income; that is a valid
	// contribution and is not clamped.
	m.FixedIncomePerWeek = in.Profitraining / constants.WeeksPerMonth
	m.TicketRevenuePerWeek = in.TicketPrice * in.TicketsPerWeek
	m.GastronomyRevenuePerWeek = in.GastronomyProfitPerTicket * in.TicketsPerWeek
	courses := in.Courses()
	courseRevenue := [3]float64{}
	for i, c := range courses {
		courseRevenue[i] = (c.PricePerParticipant*c.Participants - c.TrainerCosts) * c.PerWeek
	}
	m.Course1RevenuePerWeek = courseRevenue[0]
	m.Course2RevenuePerWeek = courseRevenue[1]
	m.Course3RevenuePerWeek = courseRevenue[2]
	m.WorkshopRevenuePerWeek = in.WorkshopProfitPerParticipant * in.WorkshopParticipants * in.WorkshopsPerMonth / constants.WeeksPerMonth
	m.RentalRevenuePerWeek = in.RentalsPerWeek * in.RentalPrice

	m.BaseWeeklyRevenueGross = m.FixedIncomePerWeek +
		m.TicketRevenuePerWeek +
		m.GastronomyRevenuePerWeek +
		courseRevenue[0] + courseRevenue[1] + courseRevenue[2] +
		m.WorkshopRevenuePerWeek +
		m.RentalRevenuePerWeek

	// Step 2: weekly VAT split. Gastronomy profit is already net and is
	// exempt from the extraction.
	m.BaseWeeklyRevenue, m.WeeklyVAT = splitVAT(m.BaseWeeklyRevenueGross, m.GastronomyRevenuePerWeek)

	// Step 3: per-source weekly costs.
	m.MonthlyCostsPerWeek = (in.Rent + in.Salaries + in.Marketing + in.Technology + in.HeatingCosts + in.OtherCosts) / constants.WeeksPerMonth
	m.ShowFeesPerWeek = (in.GemaFeePerShow + in.KvrFeePerShow + in.ArtistFeePerShow) * in.ShowsPerWeek
	m.WeeklyReserves = in.WeeklyReserves
	m.BaseWeeklyCosts = m.MonthlyCostsPerWeek + in.WeeklyReserves + m.ShowFeesPerWeek

	// Step 4: annual aggregation. A multiplier sequence that is not
	// exactly 52 entries long degrades to unweighted annualization.
	revMult := validMultipliers(opts.RevenueMultipliers)
	costMult := validMultipliers(opts.CostMultipliers)
	if costMult == nil {
		costMult = revMult
	}

	revWeight := float64(constants.WeeksPerYear)
	if revMult != nil {
		revWeight = sum(revMult)
	}
	costWeight := float64(constants.WeeksPerYear)
	if costMult != nil {
		costWeight = sum(costMult)
	}

	m.TotalRevenueGross = m.BaseWeeklyRevenueGross * revWeight
	// VAT extraction happens once on the aggregate gross rather than
	// summed week by week, which avoids rounding drift.
	m.TotalRevenue, m.TotalVAT = splitVAT(m.TotalRevenueGross, m.GastronomyRevenuePerWeek*revWeight)
	m.TotalCosts = m.BaseWeeklyCosts * costWeight
	m.TotalProfit = m.TotalRevenue - m.TotalCosts
	m.TotalProfitGross = m.TotalRevenueGross - m.TotalCosts
	if m.TotalRevenue > 0 {
		m.ProfitMarginPercent = m.TotalProfit / m.TotalRevenue * constants.PercentageMultiplier
	}

	// Step 5: historical vs. projected split, only when both a current
	// week and a valid revenue multiplier sequence are present. The VAT
	// split is applied to each partition's gross sum independently, not
	// allocated from the annual figure.
	if opts.CurrentWeek > 0 && revMult != nil {
		boundary := opts.CurrentWeek - 1
		if boundary > constants.WeeksPerYear {
			boundary = constants.WeeksPerYear
		}
		histRevWeight := sum(revMult[:boundary])
		projRevWeight := sum(revMult[boundary:])
		histCostWeight := sum(costMult[:boundary])
		projCostWeight := sum(costMult[boundary:])

		histGross := m.BaseWeeklyRevenueGross * histRevWeight
		projGross := m.BaseWeeklyRevenueGross * projRevWeight
		m.HistoricalRevenue, _ = splitVAT(histGross, m.GastronomyRevenuePerWeek*histRevWeight)
		m.ProjectedRevenue, _ = splitVAT(projGross, m.GastronomyRevenuePerWeek*projRevWeight)
		m.HistoricalCosts = m.BaseWeeklyCosts * histCostWeight
		m.ProjectedCosts = m.BaseWeeklyCosts * projCostWeight
		m.ProjectedProfit = m.ProjectedRevenue - m.ProjectedCosts
	} else {
		m.ProjectedRevenue = m.TotalRevenue
		m.ProjectedCosts = m.TotalCosts
		m.ProjectedProfit = m.TotalProfit
	}

	m.TotalRevenueNet = m.TotalRevenue
	m.TotalProfitNet = m.TotalProfit
	m.ProfitMarginNetPercent = m.ProfitMarginPercent

	return m
}

// splitVAT backs the fixed-rate VAT out of a gross amount. The exempt
// portion passes through untouched and carries no VAT.
func splitVAT(gross, exempt float64) (net, vat float64) {
	taxable := gross - exempt
	net = taxable/constants.GrossFactor + exempt
	vat = taxable - taxable/constants.GrossFactor
	return net, vat
}

// validMultipliers returns the sequence when it has exactly 52 entries and
// nil otherwise. The length check is explicit; sequences are never padded
// or truncated.
func validMultipliers(m []float64) []float64 {
	if len(m) != constants.WeeksPerYear {
		return nil
	}
	return m
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
