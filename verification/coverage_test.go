package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoverPointFirstMatchingBinWins(t *testing.T) {
	cp := NewCoverPoint("width")
	cp.AddBin("small", func(v any) bool { return v.(int) < 10 })
	cp.AddBin("any", func(v any) bool { return true })

	cp.Sample(5)
	cp.Sample(50)
	cp.Sample(100)

	report := cp.Report()
	assert.Equal(t, "small", report[0].Name)
	assert.Equal(t, 1, report[0].Hits)
	assert.Equal(t, "any", report[1].Name)
	assert.Equal(t, 2, report[1].Hits)
	assert.Equal(t, "miss", report[2].Name)
	assert.Equal(t, 0, report[2].Hits)
}

func TestCoverPointNoMatchIncrementsMiss(t *testing.T) {
	cp := NewCoverPoint("width")
	cp.AddBin("small", func(v any) bool { return v.(int) < 10 })

	cp.Sample(50)
	report := cp.Report()
	assert.Equal(t, 0, report[0].Hits)
	assert.Equal(t, 1, report[len(report)-1].Hits)
}

func TestCoverGroupReportsAllRegisteredPoints(t *testing.T) {
	cg := NewCoverGroup("txn")
	a := NewCoverPoint("a")
	b := NewCoverPoint("b")
	cg.AddPoint(a)
	cg.AddPoint(b)

	assert.Same(t, a, cg.Point("a"))
	assert.Same(t, b, cg.Point("b"))

	report := cg.Report()
	assert.Contains(t, report, "a")
	assert.Contains(t, report, "b")
}
