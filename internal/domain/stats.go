package domain

import (
	"math"
	"sort"
	"time"
)

// Summary describes a dataset at a glance: record count, covered date range,
// and the share of missing readings per field.
type Summary struct {
	TotalRecords int               `json:"total_records"`
	Start        time.Time         `json:"start"`
	End          time.Time         `json:"end"`
	MissingPct   map[Field]float64 `json:"missing_pct"`
}

// FieldStats holds the descriptive statistics of one field, computed over
// present values only. Count is the number of valid readings; the remaining
// fields are zero when Count is zero.
type FieldStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Std    float64 `json:"std"`
}

// DailyAverage is the mean of one field over the valid readings of one day.
type DailyAverage struct {
	Date  time.Time `json:"date"`
	Mean  float64   `json:"mean"`
	Count int       `json:"count"`
}

// Summary computes record count, date range, and per-field missing
// percentages (rounded to two decimals, matching the dashboard display).
func (d Dataset) Summary() Summary {
	s := Summary{
		TotalRecords: len(d),
		MissingPct:   make(map[Field]float64, len(Fields)),
	}
	if len(d) > 0 {
		s.Start = d[0].Timestamp
		s.End = d[len(d)-1].Timestamp
	}

	for _, f := range Fields {
		missing := 0
		for _, obs := range d {
			if _, ok := obs.Value(f); !ok {
				missing++
			}
		}
		pct := 0.0
		if len(d) > 0 {
			pct = math.Round(float64(missing)/float64(len(d))*100*100) / 100
		}
		s.MissingPct[f] = pct
	}
	return s
}

// Stats computes descriptive statistics for one field. Missing readings are
// excluded, never treated as zero.
func (d Dataset) Stats(f Field) FieldStats {
	values := d.values(f)
	if len(values) == 0 {
		return FieldStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return FieldStats{
		Count:  len(values),
		Mean:   mean(values),
		Median: median(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Std:    stddev(values),
	}
}

// FilterByRange returns the observations with from <= timestamp <= to, in
// source order. A zero from or to leaves that end open.
func (d Dataset) FilterByRange(from, to time.Time) Dataset {
	out := make(Dataset, 0, len(d))
	for _, obs := range d {
		if !from.IsZero() && obs.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && obs.Timestamp.After(to) {
			continue
		}
		out = append(out, obs)
	}
	return out
}

// Select returns a copy of the dataset restricted to the given fields. The
// receiver's observations are never mutated.
func (d Dataset) Select(fields []Field) Dataset {
	out := make(Dataset, len(d))
	for i, obs := range d {
		m := make(map[Field]float64, len(fields))
		for _, f := range fields {
			if v, ok := obs.Value(f); ok {
				m[f] = v
			}
		}
		out[i] = Observation{Timestamp: obs.Timestamp, Measurements: m}
	}
	return out
}

// DailyAverages buckets one field by calendar day (UTC) and averages the
// valid readings of each day. Days with no valid reading are omitted.
// Results are in chronological order.
func (d Dataset) DailyAverages(f Field) []DailyAverage {
	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[time.Time]*bucket)
	order := make([]time.Time, 0)

	for _, obs := range d {
		v, ok := obs.Value(f)
		if !ok {
			continue
		}
		day := obs.Timestamp.Truncate(24 * time.Hour)
		b, seen := buckets[day]
		if !seen {
			b = &bucket{}
			buckets[day] = b
			order = append(order, day)
		}
		b.sum += v
		b.count++
	}

	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })

	out := make([]DailyAverage, 0, len(order))
	for _, day := range order {
		b := buckets[day]
		out = append(out, DailyAverage{Date: day, Mean: b.sum / float64(b.count), Count: b.count})
	}
	return out
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median expects its input already sorted.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// stddev is the sample standard deviation (n-1 denominator), matching the
// reference dashboard. Returns 0 for fewer than two values.
func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

func (d Dataset) values(f Field) []float64 {
	out := make([]float64, 0, len(d))
	for _, obs := range d {
		if v, ok := obs.Value(f); ok {
			out = append(out, v)
		}
	}
	return out
}
