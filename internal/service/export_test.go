package service

import "time"

func (s *ProgressService) SetClock(now func() time.Time) { s.now = now }
