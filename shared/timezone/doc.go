// Package timezone resolves the application timezone from APP_TIMEZONE once
// at start-up. Booking dates and the "today" rule are evaluated in it, so a
// slot date never depends on the host clock's zone.
package timezone
