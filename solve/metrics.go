package main

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/anthropics/gobbletsolve/engine"
)

// metrics mirrors engine.Stats as Prometheus gauges, refreshed by
// sample on every checkpoint tick.
type metrics struct {
	framesVisited prometheus.Gauge
	tableHits     prometheus.Gauge
	tableMisses   prometheus.Gauge
	cycleDraws    prometheus.Gauge
	zugzwangs     prometheus.Gauge
	tableEntries  prometheus.Gauge
	maxStackDepth prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		framesVisited: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gobbletsolve_frames_visited_total",
			Help: "Search frames fully resolved so far in this run.",
		}),
		tableHits: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gobbletsolve_table_hits_total",
			Help: "Child lookups served from the transposition table.",
		}),
		tableMisses: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gobbletsolve_table_misses_total",
			Help: "Child lookups that required descending further.",
		}),
		cycleDraws: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gobbletsolve_cycle_draws_total",
			Help: "Children scored as a draw due to path repetition.",
		}),
		zugzwangs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gobbletsolve_zugzwangs_total",
			Help: "Frames resolved with no legal move for the side to move.",
		}),
		tableEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gobbletsolve_table_entries",
			Help: "Distinct canonical positions currently solved.",
		}),
		maxStackDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gobbletsolve_max_stack_depth",
			Help: "Deepest the explicit search frame stack has reached.",
		}),
	}
	reg.MustRegister(m.framesVisited, m.tableHits, m.tableMisses,
		m.cycleDraws, m.zugzwangs, m.tableEntries, m.maxStackDepth)
	return m
}

func (m *metrics) sample(s *engine.Solver) {
	st := s.Stats()
	m.framesVisited.Set(float64(st.FramesVisited))
	m.tableHits.Set(float64(st.TableHits))
	m.tableMisses.Set(float64(st.TableMisses))
	m.cycleDraws.Set(float64(st.CycleDraws))
	m.zugzwangs.Set(float64(st.Zugzwangs))
	m.tableEntries.Set(float64(s.Table().Len()))
	m.maxStackDepth.Set(float64(st.MaxStackDepth))
}
