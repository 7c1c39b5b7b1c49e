package domain

import "time"

// Field identifies one measured column of the dataset. The values are the
// exact header names used by the UCI export.
type Field string

const (
	FieldCO     Field = "CO(GT)"
	FieldPT08S1 Field = "PT08.S1(CO)"
	FieldNMHC   Field = "NMHC(GT)"
	FieldC6H6   Field = "C6H6(GT)"
	FieldPT08S2 Field = "PT08.S2(NMHC)"
	FieldNOx    Field = "NOx(GT)"
	FieldPT08S3 Field = "PT08.S3(NOx)"
	FieldNO2    Field = "NO2(GT)"
	FieldPT08S4 Field = "PT08.S4(NO2)"
	FieldPT08S5 Field = "PT08.S5(O3)"
	FieldT      Field = "T"
	FieldRH     Field = "RH"
	FieldAH     Field = "AH"
)

// Fields lists every measured column in source order.
var Fields = []Field{
	FieldCO, FieldPT08S1, FieldNMHC, FieldC6H6, FieldPT08S2,
	FieldNOx, FieldPT08S3, FieldNO2, FieldPT08S4, FieldPT08S5,
	FieldT, FieldRH, FieldAH,
}

var knownFields = func() map[Field]bool {
	m := make(map[Field]bool, len(Fields))
	for _, f := range Fields {
		m[f] = true
	}
	return m
}()

// ParseField validates a column name against the known measured fields.
func ParseField(s string) (Field, bool) {
	f := Field(s)
	return f, knownFields[f]
}

// Observation is one cleaned, timestamped set of readings. A field absent
// from Measurements is missing (sentinel or unparseable in the source).
// Observations are constructed once per load and must not be mutated.
type Observation struct {
	Timestamp    time.Time         `json:"timestamp"`
	Measurements map[Field]float64 `json:"measurements"`
}

// Value returns the reading for f and whether it is present.
func (o Observation) Value(f Field) (float64, bool) {
	v, ok := o.Measurements[f]
	return v, ok
}

// Dataset is an ordered sequence of observations in source row order.
type Dataset []Observation
