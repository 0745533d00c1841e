package systems

// Layout gives the field offsets of one particle slot. Offsets of -1 mean
// the field is not stored.
type Layout struct {
	X, Y     int
	VX, VY   int
	Age      int
	Lifetime int
	Speed    int
	Radius   int
	Hue      int
	Width    int // minimum stride holding every field
}

var (
	radialLayout = Layout{X: 0, Y: 1, VX: 2, VY: 3, Age: 4, Lifetime: 5, Speed: -1, Radius: 6, Hue: 7, Width: 8}
	flowLayout   = Layout{X: 0, Y: 1, VX: 2, VY: 3, Age: 4, Lifetime: 5, Speed: 6, Radius: 7, Hue: 8, Width: 9}
)

// LayoutFor returns the slot layout used by a motion model.
func LayoutFor(m Motion) Layout {
	switch m {
	case MotionRadial:
		return radialLayout
	default:
		return flowLayout
	}
}

// Buffer is a flat fixed-stride array of particle state.
// Particle i occupies data[i*stride : (i+1)*stride].
type Buffer struct {
	data   []float32
	count  int
	stride int
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(count, stride int) *Buffer {
	b := &Buffer{}
	b.Resize(count, stride)
	return b
}

// Resize reallocates to exactly count*stride zeroed values, discarding
// all prior state. Non-positive arguments give an empty buffer.
func (b *Buffer) Resize(count, stride int) {
	if count < 0 {
		count = 0
	}
	if stride < 0 {
		stride = 0
	}
	b.count = count
	b.stride = stride
	b.data = make([]float32, count*stride)
}

// Len returns the number of scalars held.
func (b *Buffer) Len() int { return len(b.data) }

// Count returns the number of particles.
func (b *Buffer) Count() int { return b.count }

// Stride returns the number of fields per particle.
func (b *Buffer) Stride() int { return b.stride }

// Base returns the index of particle i's first field.
func (b *Buffer) Base(i int) int { return i * b.stride }

// Get reads one field of particle i.
func (b *Buffer) Get(i, field int) float32 {
	return b.data[i*b.stride+field]
}

// Set writes one field of particle i.
func (b *Buffer) Set(i, field int, v float32) {
	b.data[i*b.stride+field] = v
}

// Slot returns particle i's fields as a sub-slice aliasing the buffer.
func (b *Buffer) Slot(i int) []float32 {
	base := i * b.stride
	return b.data[base : base+b.stride : base+b.stride]
}
