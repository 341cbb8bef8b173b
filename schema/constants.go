package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// ExpertiseBand is the display-only classification of a final score.
	ExpertiseBand string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
)

// Expertise bands. Bands never influence ranking; they only color output.
const (
	HighBand   ExpertiseBand = "High"
	MediumBand ExpertiseBand = "Medium"
	LowBand    ExpertiseBand = "Low"
)

// Band thresholds on the final [0,1] score.
const (
	HighBandMin   = 0.7
	MediumBandMin = 0.4
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// BandFor classifies a final score into its display band.
func BandFor(score float64) ExpertiseBand {
	switch {
	case score >= HighBandMin:
		return HighBand
	case score >= MediumBandMin:
		return MediumBand
	default:
		return LowBand
	}
}
