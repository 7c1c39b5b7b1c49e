// Package domain models the UCI Air Quality dataset: hourly pollutant and
// weather readings recorded by a monitoring station in an Italian city
// between March 2004 and February 2005.
//
// # Data Source
//
// The dataset is distributed by the UCI Machine Learning Repository at
// https://archive.ics.uci.edu/dataset/360/air+quality, both as a
// semicolon-delimited CSV and as an XLSX workbook with identical content.
// The export uses Italian locale conventions: ";" as the field separator and
// "," as the decimal separator. Files end with a run of fully blank rows and
// carry two trailing unnamed columns, both artifacts of the original export.
//
// # Columns
//
// Each row holds a Date (DD/MM/YYYY), a Time (HH.MM.SS in most exports,
// HH:MM:SS in some mirrors), and thirteen measured fields:
//
//	CO(GT)         true hourly averaged CO concentration (mg/m³, reference analyzer)
//	PT08.S1(CO)    tin oxide sensor response (resistance proxy, unitless)
//	NMHC(GT)       non-methanic hydrocarbons concentration (µg/m³)
//	C6H6(GT)       benzene concentration (µg/m³)
//	PT08.S2(NMHC)  titania sensor response
//	NOx(GT)        NOx concentration (ppb)
//	PT08.S3(NOx)   tungsten oxide sensor response
//	NO2(GT)        NO2 concentration (µg/m³)
//	PT08.S4(NO2)   tungsten oxide sensor response
//	PT08.S5(O3)    indium oxide sensor response
//	T              temperature (°C)
//	RH             relative humidity (%)
//	AH             absolute humidity (g/m³)
//
// # Missing Data
//
// The export encodes "no reading" as the sentinel value -200, appearing as
// "-200", "-200,0", or "-200.0" depending on the column. A sentinel means the
// field is missing, never a valid low reading: cleaned observations omit the
// field entirely, and every derived statistic excludes missing values rather
// than substituting zero. Tokens that fail numeric parsing are downgraded to
// missing as well.
//
// # Ordering
//
// Rows are in chronological order with hourly granularity. Cleaning preserves
// source order; it only excludes rows whose Date/Time pair cannot be parsed.
package domain
