package serial

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermotone/core"
	"thermotone/protocol"
)

// scriptPort replays canned chunks, then reports EOF like a quiet line.
type scriptPort struct {
	chunks [][]byte
}

func (p *scriptPort) Read(b []byte) (int, error) {
	if len(p.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(b, p.chunks[0])
	if n == len(p.chunks[0]) {
		p.chunks = p.chunks[1:]
	} else {
		p.chunks[0] = p.chunks[0][n:]
	}
	return n, nil
}

func (p *scriptPort) Write(b []byte) (int, error) { return len(b), nil }
func (p *scriptPort) Close() error                { return nil }
func (p *scriptPort) Flush() error                { return nil }

func reportStream(reports ...protocol.Report) []byte {
	var stream []byte
	for _, r := range reports {
		stream = protocol.AppendReport(stream, r.Seq, r.Value)
	}
	return stream
}

func TestSamplerReadsReports(t *testing.T) {
	stream := reportStream(
		protocol.Report{Seq: 0, Value: 1000},
		protocol.Report{Seq: 1, Value: 2000},
	)
	// Split mid-frame to exercise reassembly across reads.
	port := &scriptPort{chunks: [][]byte{stream[:4], stream[4:]}}
	sampler := NewSampler(port)

	ctx := context.Background()

	first, err := sampler.Sample(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.Sample(1000), first)

	second, err := sampler.Sample(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.Sample(2000), second)
}

func TestSamplerClampsOutOfRangeValue(t *testing.T) {
	port := &scriptPort{chunks: [][]byte{reportStream(protocol.Report{Seq: 0, Value: 60000})}}
	sampler := NewSampler(port)

	got, err := sampler.Sample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.Sample(core.SampleMax), got)
}

func TestSamplerHonorsCancellation(t *testing.T) {
	port := &scriptPort{} // nothing to read, ever
	sampler := NewSampler(port)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := sampler.Sample(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSamplerTracksDroppedReports(t *testing.T) {
	stream := reportStream(
		protocol.Report{Seq: 0, Value: 1},
		protocol.Report{Seq: 4, Value: 2}, // 1, 2, 3 lost in transit
	)
	port := &scriptPort{chunks: [][]byte{stream}}
	sampler := NewSampler(port)

	ctx := context.Background()
	_, err := sampler.Sample(ctx)
	require.NoError(t, err)
	_, err = sampler.Sample(ctx)
	require.NoError(t, err)

	assert.Equal(t, uint64(3), sampler.Dropped())
}
