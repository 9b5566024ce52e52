package schema

// Custom string types for type safety.
type (
	// QuestionType is the kind of answer a question expects.
	QuestionType string

	// OutputMode represents the format of the output.
	OutputMode string

	// SortMode represents how property listings are ordered.
	SortMode string

	// Theme is the display theme stored in settings.
	Theme string

	// DatabaseBackend represents the database backend for a store.
	DatabaseBackend string
)

// All question types supported.
const (
	ChoiceQuestion  QuestionType = "choice"
	BooleanQuestion QuestionType = "boolean"
	NumericQuestion QuestionType = "numeric"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All sort modes supported.
const (
	SortByScore   SortMode = "score" // default
	SortByName    SortMode = "name"
	SortByCreated SortMode = "created"
	SortByPrice   SortMode = "price"
)

// All themes supported.
const (
	LightTheme  Theme = "light"
	DarkTheme   Theme = "dark"
	SystemTheme Theme = "system" // default
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	MemoryBackend     DatabaseBackend = "memory"
	NoneBackend       DatabaseBackend = "none"
)

// ValidQuestionTypes lists all valid question types.
var ValidQuestionTypes = map[QuestionType]struct{}{
	ChoiceQuestion:  {},
	BooleanQuestion: {},
	NumericQuestion: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidSortModes lists all valid sort modes.
var ValidSortModes = map[SortMode]struct{}{
	SortByScore:   {},
	SortByName:    {},
	SortByCreated: {},
	SortByPrice:   {},
}

// ValidThemes lists all valid themes.
var ValidThemes = map[Theme]struct{}{
	LightTheme:  {},
	DarkTheme:   {},
	SystemTheme: {},
}

// ValidRecordBackends lists all valid property record backends.
var ValidRecordBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	MemoryBackend:     {},
}

// ValidHistoryBackends lists all valid score history backends.
var ValidHistoryBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
