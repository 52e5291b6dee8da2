// Package metrics exposes Prometheus counters for command parsing and data
// loading. A nil *Recorder is valid and records nothing.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Load outcomes for RecordLoaded.
const (
	OutcomeAccepted  = "accepted"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
)

// Recorder holds the address book counters.
type Recorder struct {
	CommandsParsed *prometheus.CounterVec
	ParseFailures  *prometheus.CounterVec
	RecordsLoaded  *prometheus.CounterVec
}

// NewRecorder creates the counters and registers them on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		CommandsParsed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "addressbook_commands_parsed_total",
				Help: "Total number of command lines parsed successfully",
			},
			[]string{"keyword"},
		),
		ParseFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "addressbook_command_parse_failures_total",
				Help: "Total number of command lines rejected by the parser",
			},
			[]string{"reason"}, // reason: malformed, unknown, invalid_arguments
		),
		RecordsLoaded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "addressbook_records_loaded_total",
				Help: "Total number of persisted records processed at load time",
			},
			[]string{"kind", "outcome"}, // kind: person, task
		),
	}

	for _, c := range []prometheus.Collector{r.CommandsParsed, r.ParseFailures, r.RecordsLoaded} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return r, nil
}

// IncCommandParsed counts a successfully parsed command.
func (r *Recorder) IncCommandParsed(keyword string) {
	if r == nil {
		return
	}
	r.CommandsParsed.WithLabelValues(keyword).Inc()
}

// IncParseFailure counts a rejected command line.
func (r *Recorder) IncParseFailure(reason string) {
	if r == nil {
		return
	}
	r.ParseFailures.WithLabelValues(reason).Inc()
}

// RecordLoaded counts one persisted record with its load outcome.
func (r *Recorder) RecordLoaded(kind, outcome string) {
	if r == nil {
		return
	}
	r.RecordsLoaded.WithLabelValues(kind, outcome).Inc()
}

// WriteTextfile writes every metric gathered by g to path in the Prometheus
// text exposition format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
