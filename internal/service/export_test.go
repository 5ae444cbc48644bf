package service

import "time"

// SetNow pins the service clock so streak and window tests are deterministic
func (s *AnalyticsService) SetNow(now func() time.Time) {
	s.now = now
}
