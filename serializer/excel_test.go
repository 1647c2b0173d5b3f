package serializer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcelMethod_RoundTrip(t *testing.T) {
	m := NewExcelMethod()
	var buf bytes.Buffer
	require.NoError(t, m.Write(&buf, samplePlans()))
	assert.True(t, buf.Len() > 0)

	back, err := m.Read(bytes.NewReader(buf.Bytes()), repayPlan{})
	require.NoError(t, err)
	assert.Equal(t, samplePlans(), back)
}

func TestExcelMethod_CustomSheet(t *testing.T) {
	m := NewExcelMethod()
	m.Sheet = "repayments"

	var buf bytes.Buffer
	require.NoError(t, m.Write(&buf, samplePlans()[:1]))

	back, err := m.Read(bytes.NewReader(buf.Bytes()), repayPlan{})
	require.NoError(t, err)
	assert.Equal(t, samplePlans()[:1], back)

	// The default sheet holds nothing.
	defaultSheet := NewExcelMethod()
	back, err = defaultSheet.Read(bytes.NewReader(buf.Bytes()), repayPlan{})
	require.NoError(t, err)
	assert.Equal(t, 0, len(back))
}

func TestExcelMethod_WriteEmpty(t *testing.T) {
	m := NewExcelMethod()
	var buf bytes.Buffer
	require.NoError(t, m.Write(&buf, nil))

	back, err := m.Read(bytes.NewReader(buf.Bytes()), repayPlan{})
	require.NoError(t, err)
	assert.Equal(t, 0, len(back))
}
