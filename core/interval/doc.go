// Package interval implements the date and mileage arithmetic used to decide
// whether a spare part is due. Dates are calendar days at UTC midnight.
// Months are a fixed 30 days (see DaysPerMonth), not calendar months.
package interval
