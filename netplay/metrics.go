// This file is part of Rollnet.
//
// Rollnet is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Rollnet is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Rollnet.  If not, see <https://www.gnu.org/licenses/>.

package netplay

import (
	"github.com/jetsetilly/rollnet/curated"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "rollnet"

// Metrics for a netplay session.
type Metrics struct {
	RollbackFrames  prometheus.Counter
	CatchUps        prometheus.Counter
	Desyncs         prometheus.Counter
	Disconnects     prometheus.Counter
	SessionsStarted prometheus.Counter

	FramesBehind prometheus.Gauge
	Ping         prometheus.Gauge
	Jitter       prometheus.Gauge
	State        prometheus.Gauge
}

// NewMetrics creates the netplay metrics and registers them with the
// registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	counter := func(name string, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "netplay",
			Name:      name,
			Help:      help,
		})
	}

	gauge := func(name string, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "netplay",
			Name:      name,
			Help:      help,
		})
	}

	m := &Metrics{
		RollbackFrames:  counter("rollback_frames_total", "Frames simulated again because of a misprediction."),
		CatchUps:        counter("catch_ups_total", "Extra frames simulated to catch up with the remote peer."),
		Desyncs:         counter("desyncs_total", "Desyncs reported by the rollback engine."),
		Disconnects:     counter("disconnects_total", "Remote players that have disconnected."),
		SessionsStarted: counter("sessions_started_total", "Sessions that have reached the running state."),
		FramesBehind:    gauge("frames_behind", "Estimate of how many frames the local simulation is behind the remote simulation."),
		Ping:            gauge("ping_seconds", "Average round trip time to the remote peer."),
		Jitter:          gauge("jitter_seconds", "Average deviation of the round trip time."),
		State:           gauge("session_state", "State of the netplay session (0 idle, 1 transitioning, 2 connecting, 3 running, 4 exiting)."),
	}

	for _, c := range []prometheus.Collector{
		m.RollbackFrames, m.CatchUps, m.Desyncs, m.Disconnects, m.SessionsStarted,
		m.FramesBehind, m.Ping, m.Jitter, m.State,
	} {
		if err := reg.Register(c); err != nil {
			return nil, curated.Errorf(MetricsError, err)
		}
	}

	return m, nil
}
