package pose

// bounds tracks an axis-aligned bounding box over landmark coordinates.
type bounds struct {
	minX, maxX float64
	minY, maxY float64
	seen       bool
}

func (b *bounds) add(l Landmark) {
	if !b.seen {
		b.minX, b.maxX = l.X, l.X
		b.minY, b.maxY = l.Y, l.Y
		b.seen = true
		return
	}
	if l.X < b.minX {
		b.minX = l.X
	}
	if l.X > b.maxX {
		b.maxX = l.X
	}
	if l.Y < b.minY {
		b.minY = l.Y
	}
	if l.Y > b.maxY {
		b.maxY = l.Y
	}
}

// remap rescales a landmark into the [0,1] box. A zero-extent axis maps to 0
// so a degenerate frame contributes a neutral value instead of NaN.
func (b *bounds) remap(l Landmark) Landmark {
	out := l
	if rangeX := b.maxX - b.minX; rangeX > 0 {
		out.X = (l.X - b.minX) / rangeX
	} else {
		out.X = 0
	}
	if rangeY := b.maxY - b.minY; rangeY > 0 {
		out.Y = (l.Y - b.minY) / rangeY
	} else {
		out.Y = 0
	}
	return out
}

// NormalizeFrame rescales a single frame's x/y coordinates to [0,1] on each
// axis independently, using the frame's own bounding box. This makes the
// spatial metric invariant to the performer's distance from the camera and
// to absolute screen position. Returns a new frame.
func NormalizeFrame(f Frame) Frame {
	if len(f) == 0 {
		return Frame{}
	}

	var b bounds
	for _, l := range f {
		b.add(l)
	}

	out := make(Frame, len(f))
	for i, l := range f {
		out[i] = b.remap(l)
	}
	return out
}

// NormalizeSequence rescales every frame in the sequence using one bounding
// box computed jointly across all frames, so the whole sequence shares a
// consistent scale. Used once when ingesting a newly generated reference
// sequence. Returns a new slice of frames.
func NormalizeSequence(frames []Frame) []Frame {
	if len(frames) == 0 {
		return nil
	}

	var b bounds
	for _, f := range frames {
		for _, l := range f {
			b.add(l)
		}
	}

	out := make([]Frame, len(frames))
	for i, f := range frames {
		nf := make(Frame, len(f))
		for j, l := range f {
			nf[j] = b.remap(l)
		}
		out[i] = nf
	}
	return out
}
