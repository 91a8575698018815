package stats

import "math"

// Classroom is the small-group side model: each of Students draws an
// independent daily infection with probability PInfect, so the daily
// infection count is Binomial(n, p).
type Classroom struct {
	Students int
	PInfect  float64
}

// NewClassroom returns the reference 20-student, p=0.02 configuration.
func NewClassroom() Classroom {
	return Classroom{Students: 20, PInfect: 0.02}
}

// Expected returns the mean daily infections, n·p.
func (c Classroom) Expected() float64 {
	return float64(c.Students) * c.PInfect
}

// PMF returns P(X = k) for the daily infection count.
func (c Classroom) PMF(k int) float64 {
	if k < 0 || k > c.Students {
		return 0
	}
	if c.PInfect <= 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	if c.PInfect >= 1 {
		if k == c.Students {
			return 1
		}
		return 0
	}
	n := float64(c.Students)
	kf := float64(k)

	// log C(n,k) via lgamma keeps n=20 well away from overflow anyway,
	// but matches how larger classrooms would have to be computed.
	lc, _ := math.Lgamma(n + 1)
	lk, _ := math.Lgamma(kf + 1)
	lnk, _ := math.Lgamma(n - kf + 1)
	logChoose := lc - lk - lnk

	logP := logChoose + kf*math.Log(c.PInfect) + (n-kf)*math.Log(1-c.PInfect)
	return math.Exp(logP)
}

// Distribution returns the PMF over 0..Students.
func (c Classroom) Distribution() []float64 {
	dist := make([]float64, c.Students+1)
	for k := range dist {
		dist[k] = c.PMF(k)
	}
	return dist
}
