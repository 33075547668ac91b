package mandel

// escapeRadius2 is the squared escape radius, compared against |z|² to avoid a square root.
const escapeRadius2 = 4.0

// Escape iterates z ← z² + c from z = 0 and returns the index of the first
// iteration whose |z|² exceeds 4. It returns maxIter when the orbit stays bounded.
func Escape(c complex128, maxIter int) int {
	cr, ci := real(c), imag(c)
	var zr, zi float64
	for i := 0; i < maxIter; i++ {
		// explicit conversions keep the compiler from fusing multiply-adds,
		// so every architecture produces the same orbit
		zr, zi = float64(zr*zr)-float64(zi*zi)+cr, float64(2*zr*zi)+ci
		if float64(zr*zr)+float64(zi*zi) > escapeRadius2 {
			return i
		}
	}
	return maxIter
}
