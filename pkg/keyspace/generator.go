package keyspace

// Batch is a group of candidates that share a cursor and differ only in the
// lowest bits of the discriminant byte.
type Batch [BatchSize]SecretKey

// Generator walks one search region forward from its start cursor.
// It is owned by a single worker and is not safe for concurrent use.
type Generator struct {
	base  SecretKey
	batch Batch
}

// NewGenerator returns a generator positioned at cursor. The marker byte is the
// fixed part of every discriminant; members add their index to it.
func NewGenerator(cursor uint64, marker byte) *Generator {
	g := &Generator{
		base: NewSecretKey(marker&^memberMask, cursor),
	}
	g.fill()
	return g
}

// Batch returns the candidates for the current cursor. The returned pointer stays
// valid until the next call to Advance.
func (g *Generator) Batch() *Batch {
	return &g.batch
}

// Cursor returns the low limb of the current position.
func (g *Generator) Cursor() uint64 {
	return g.base.LowLimb()
}

// Advance moves every batch member to the next cursor value.
func (g *Generator) Advance() {
	g.base.Increment()
	g.fill()
}

func (g *Generator) fill() {
	marker := g.base.Discriminant()
	for i := range g.batch {
		g.batch[i] = g.base
		g.batch[i].SetDiscriminant(marker | byte(i))
	}
}

// MakeBatch builds the batch for a single cursor without keeping walk state.
func MakeBatch(cursor uint64, marker byte) Batch {
	return NewGenerator(cursor, marker).batch
}
