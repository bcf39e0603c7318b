package engine

// DefaultStandardDayHours is the jurisdictional default length of a
// standard workday, used when neither the policy nor the employee record
// can supply one.
const DefaultStandardDayHours = 7.6

// HoursPerDay derives the hours charged per day of leave. Precedence is
// strict: the policy's standard hours per day when positive, else the
// employee's weekly hours over a five-day week, else the jurisdictional
// default. Every call site, the interactive pre-submit check and the
// authoritative validation path alike, must go through this function;
// the two paths diverging is a correctness bug, not a tuning choice.
func HoursPerDay(standardHoursPerDay, hoursPerWeek float64) float64 {
	if standardHoursPerDay > 0 {
		return standardHoursPerDay
	}
	if hoursPerWeek > 0 {
		return hoursPerWeek / 5
	}
	return DefaultStandardDayHours
}
