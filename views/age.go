// ABOUTME: Age calculation for the home page greeting
// ABOUTME: Counts completed years, accounting for whether the birthday has passed

package views

import (
	"time"

	"github.com/edududs/PoliticSystem/models"
)

// Age returns completed years between birth and now. ok is false without a birth date.
func Age(birth *models.Date, now time.Time) (int, bool) {
	if birth == nil || birth.IsZero() {
		return 0, false
	}
	b := birth.Time

	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	return age, true
}
