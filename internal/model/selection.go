package model

// Selection is a brush rectangle in scatter-plot pixel space
type Selection struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Normalize orders the corners so that X0 <= X1 and Y0 <= Y1
func (s Selection) Normalize() Selection {
	if s.X0 > s.X1 {
		s.X0, s.X1 = s.X1, s.X0
	}
	if s.Y0 > s.Y1 {
		s.Y0, s.Y1 = s.Y1, s.Y0
	}
	return s
}

// Contains reports whether (x, y) lies inside the rectangle, bounds included
func (s Selection) Contains(x, y float64) bool {
	n := s.Normalize()
	return x >= n.X0 && x <= n.X1 && y >= n.Y0 && y <= n.Y1
}
