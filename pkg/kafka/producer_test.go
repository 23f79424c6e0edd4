package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestProducer_PublishEncodesJSON(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, "snappy")

	require.NoError(t, p.Publish(context.Background(), "watchlist.backup", []byte("AAPL"), map[string]string{"symbol": "AAPL"}))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "watchlist.backup", w.msgs[0].Topic)
	assert.Equal(t, []byte("AAPL"), w.msgs[0].Key)

	require.Len(t, w.msgs[0].Headers, 1)
	assert.Equal(t, "application/json", string(w.msgs[0].Headers[0].Value))

	var got map[string]string
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, "AAPL", got["symbol"])
}

func TestProducer_PublishRawString(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, "lz4")

	require.NoError(t, p.Publish(context.Background(), "t", nil, "raw"))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("raw"), w.msgs[0].Value)
	assert.Empty(t, w.msgs[0].Headers)
}

func TestCompressionCodec(t *testing.T) {
	assert.Equal(t, kafka.Zstd, compressionCodec("zstd"))
	assert.Equal(t, kafka.Snappy, compressionCodec("brotli"))
}

func TestProducer_PublishError(t *testing.T) {
	boom := errors.New("broker down")
	p := newProducer(&fakeWriter{err: boom}, "snappy")
	err := p.Publish(context.Background(), "t", nil, "raw")
	assert.ErrorIs(t, err, boom)
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	assert.ErrorIs(t, err, ErrNoBrokers)
}
