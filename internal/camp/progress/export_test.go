package progress

import "time"

func (s *Service) SetNowFunc(nowFunc func() time.Time) {
	s.nowFunc = nowFunc
}

func (h *Handler) SetNowFunc(nowFunc func() time.Time) {
	h.nowFunc = nowFunc
}
