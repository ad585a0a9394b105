package pixconv

// Premultiply returns p with its color channels multiplied by alpha.
// Alpha is passed through unchanged.
func (p RGBAF32) Premultiply() RGBAF32 {
	return RGBAF32{R: p.R * p.A, G: p.G * p.A, B: p.B * p.A, A: p.A}
}

// Premultiply returns p with its color channels multiplied by alpha.
// Alpha is passed through unchanged.
func (p BGRAF32) Premultiply() BGRAF32 {
	return BGRAF32{B: p.B * p.A, G: p.G * p.A, R: p.R * p.A, A: p.A}
}

// Premultiply returns p with each color channel set to color*alpha/65535,
// truncated. Alpha is passed through unchanged.
func (p RGBAU16) Premultiply() RGBAU16 {
	return RGBAU16{
		R: premul16(p.R, p.A),
		G: premul16(p.G, p.A),
		B: premul16(p.B, p.A),
		A: p.A,
	}
}

// Premultiply returns p with each color channel set to color*alpha/65535,
// truncated. Alpha is passed through unchanged.
func (p BGRAU16) Premultiply() BGRAU16 {
	return BGRAU16{
		B: premul16(p.B, p.A),
		G: premul16(p.G, p.A),
		R: premul16(p.R, p.A),
		A: p.A,
	}
}

func premul16(c, a uint16) uint16 {
	return uint16(uint32(c) * uint32(a) / unorm16Max)
}
