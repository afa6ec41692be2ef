package schema

// Custom string types for type safety.
type (
	// Strategy selects how two series are aligned onto a common index.
	Strategy string

	// ImputeMethod selects how the upsample strategy fills missing cells.
	ImputeMethod string

	// TrainMode controls whether the embedding strategy trains a new model
	// or loads an existing checkpoint for inference only.
	TrainMode string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// All alignment strategies supported.
const (
	UpsampleStrategy   Strategy = "upsample"
	DownsampleStrategy Strategy = "downsample"
	EmbeddingStrategy  Strategy = "embedding"
)

// All imputation methods supported by the upsample strategy.
const (
	KNNImpute  ImputeMethod = "knn"
	MeanImpute ImputeMethod = "mean"
)

// All training modes supported by the embedding strategy.
const (
	TrainModeTrain TrainMode = "train" // default
	TrainModeEval  TrainMode = "eval"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All run-store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidStrategies lists all valid alignment strategies.
var ValidStrategies = map[Strategy]struct{}{
	UpsampleStrategy:   {},
	DownsampleStrategy: {},
	EmbeddingStrategy:  {},
}

// ValidImputeMethods lists all valid imputation methods.
var ValidImputeMethods = map[ImputeMethod]struct{}{
	KNNImpute:  {},
	MeanImpute: {},
}

// ValidTrainModes lists all valid training modes.
var ValidTrainModes = map[TrainMode]struct{}{
	TrainModeTrain: {},
	TrainModeEval:  {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid run-store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// EmbeddingColumnPrefix is the column name prefix for embedding output
// columns: concat_emb1 .. concat_emb{emb_dim}.
const EmbeddingColumnPrefix = "concat_emb"
