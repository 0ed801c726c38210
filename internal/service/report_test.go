package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapReportBuilder_Build(t *testing.T) {
	report := NewMapReportBuilder("NEW", "ACTIVE", "CLOSED").
		Add("ACTIVE", 2).
		Add("ACTIVE", 1).
		Build()

	assert.Equal(t, map[string]int{
		"NEW":    0,
		"ACTIVE": 3,
		"CLOSED": 0,
	}, report)
}

func TestMapReportBuilder_SetOverwrites(t *testing.T) {
	b := NewMapReportBuilder("A")
	b.Add("A", 5)
	b.Set("A", 2)

	assert.Equal(t, map[string]int{"A": 2}, b.Build())
}

func TestMapReportBuilder_UndeclaredKeysAppear(t *testing.T) {
	report := NewMapReportBuilder("A").Add("B", 1).Build()

	assert.Equal(t, map[string]int{"A": 0, "B": 1}, report)
}

func TestMapReportBuilder_BuildReturnsCopy(t *testing.T) {
	b := NewMapReportBuilder()
	b.Add("A", 1)

	first := b.Build()
	first["A"] = 99

	assert.Equal(t, map[string]int{"A": 1}, b.Build())
}

func TestMapReportBuilder_EmptyBuilder(t *testing.T) {
	assert.Empty(t, NewMapReportBuilder().Build())
}
