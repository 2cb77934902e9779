package save

// Schema versions. The current payload is snappy-compressed canonical JSON;
// v1 predates the compressed payload and several state fields, and is
// upgraded by the migration chain on load.
const (
	SchemaV1 = 1
	SchemaV2 = 2

	CurrentSchema = SchemaV2
)

// Envelope is the durable on-disk container for a run. The digest covers the
// payload bytes exactly as stored, so any corruption is caught before the
// payload is even decompressed.
type Envelope struct {
	Schema     int    `json:"schema"`
	TuningHash string `json:"tuning_hash"`
	CreatedAt  int64  `json:"created_at"`
	SavedAt    int64  `json:"saved_at"`
	Digest     string `json:"digest"`
	Payload    []byte `json:"payload"`
}
