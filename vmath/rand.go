package vmath

// Rand is the uniform random stream consumed by stimulus generation
// Float64 returns values in [0, 1)
type Rand interface {
	Float64() float64
}

// FastRand is a seeded xorshift64 stream
// Identical seeds produce identical streams, which makes dot fields reproducible
type FastRand struct {
	state uint64
}

// NewFastRand creates a stream from seed; the seed is scrambled with splitmix64
// so small consecutive seeds do not yield correlated early outputs
func NewFastRand(seed uint64) *FastRand {
	s := splitmix64(seed)
	if s == 0 {
		s = 1
	}
	return &FastRand{state: s}
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float64 returns the top 53 bits as a float in [0, 1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) * (1.0 / (1 << 53))
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Shuffle permutes n elements in place via swap (Fisher-Yates)
func (r *FastRand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, r.Intn(i+1))
	}
}
