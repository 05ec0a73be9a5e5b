package bufpool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p := New()
	require.NotNil(t, p)

	buf := p.Get()
	require.NotNil(t, buf)
	require.Zero(t, buf.Len())
}

func TestPutResetsBuffer(t *testing.T) {
	p := New()

	buf := p.Get()
	buf.WriteString("scratch data")
	require.NotZero(t, buf.Len())
	p.Put(buf)

	reused := p.Get()
	require.Same(t, buf, reused)
	require.Zero(t, reused.Len())
}

func TestPutBatch(t *testing.T) {
	p := New()

	a, b := p.Get(), p.Get()
	a.WriteString("a")
	b.WriteString("b")
	p.Put(a, b)

	require.Zero(t, p.Get().Len())
	require.Zero(t, p.Get().Len())
}

func TestPrime(t *testing.T) {
	p := New()

	require.Equal(t, 3, p.Prime(3))
	require.LessOrEqual(t, p.Prime(3), 0)
}
