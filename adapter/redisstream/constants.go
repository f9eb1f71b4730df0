package redisstream

// Field constants (avoid typos/allocs)
const (
	fieldID         = "id"
	fieldReference  = "reference"
	fieldType       = "type"
	fieldCodec      = "codec"
	fieldPayload    = "payload"    // raw []byte, no base64
	fieldProducedAt = "producedAt" // int64 ns
	fieldMetaPrefix = "meta:"
)
