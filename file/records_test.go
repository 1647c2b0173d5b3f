package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowutils/flowkit/serializer"
)

type settlement struct {
	TradeNo string  `order:"0" header:"trade_no"`
	Amount  float64 `order:"1" header:"amount"`
	Settled bool    `order:"2" header:"settled"`
}

func sampleSettlements() []interface{} {
	return []interface{}{
		settlement{TradeNo: "T-1", Amount: 10.5, Settled: true},
		settlement{TradeNo: "T-2", Amount: 99},
	}
}

func TestWriteReadRecords(t *testing.T) {
	mem := NewMemFileStorage()

	for _, discriminator := range []string{serializer.CSV, serializer.TSV, serializer.JSONL} {
		name := "out/settlements." + discriminator
		require.NoError(t, WriteRecords(mem, name, discriminator, sampleSettlements()))

		back, err := ReadRecords(mem, name, discriminator, settlement{})
		require.NoError(t, err, discriminator)
		assert.Equal(t, sampleSettlements(), back, discriminator)
	}
}

func TestWriteRecords_UnknownMethod(t *testing.T) {
	mem := NewMemFileStorage()
	err := WriteRecords(mem, "x.bin", "pickle", sampleSettlements())
	assert.Error(t, err)

	_, err = ReadRecords(mem, "x.bin", "pickle", settlement{})
	assert.Error(t, err)
}

func TestReadRecords_MissingFile(t *testing.T) {
	mem := NewMemFileStorage()
	_, err := ReadRecords(mem, "absent.csv", serializer.CSV, settlement{})
	assert.Error(t, err)
}
