package services

import "time"

// CalculateFine charges perDay currency units for every started day past the
// due date. A return on or before the due date owes nothing.
func CalculateFine(dueDate, returnedAt time.Time, perDay int64) int64 {
	overdue := returnedAt.Sub(dueDate)
	if overdue <= 0 {
		return 0
	}

	days := int64(overdue / (24 * time.Hour))
	if overdue%(24*time.Hour) != 0 {
		days++
	}

	return days * perDay
}
